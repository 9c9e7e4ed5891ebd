package usage

import (
	"context"
	"fmt"
	"log"

	"github.com/fhuszti/blog-media-go/internal/model"
	"github.com/fhuszti/blog-media-go/internal/port"
)

type trackerSrv struct {
	resolver port.ContentResolver
	repo     port.MediaRepository
}

// compile-time check: *trackerSrv must satisfy port.UsageTracker
var _ port.UsageTracker = (*trackerSrv)(nil)

// NewTracker constructs the usage reconciliation service. It keeps every
// media's usage list in sync with owner lifecycle events by diffing the
// assets an owner referenced before and after each event.
func NewTracker(resolver port.ContentResolver, repo port.MediaRepository) port.UsageTracker {
	return &trackerSrv{resolver: resolver, repo: repo}
}

// OwnerCreated registers the owner on every asset its content embeds,
// plus its featured image.
func (s *trackerSrv) OwnerCreated(ctx context.Context, in port.OwnerCreatedInput) error {
	ids, err := s.collectAssetIDs(ctx, in.Content, in.FeaturedID)
	if err != nil {
		return err
	}

	ref := model.UsageRef{Model: in.Owner.Model, RefID: in.Owner.RefID}
	s.addAll(ctx, ids, ref)
	return nil
}

// OwnerUpdated reconciles by set difference: assets only the old version
// referenced lose the owner, assets only the new version references gain
// it, and assets present in both are left untouched. An old featured
// image that is still embedded in the new content keeps its reference.
func (s *trackerSrv) OwnerUpdated(ctx context.Context, in port.OwnerUpdatedInput) error {
	oldIDs, err := s.collectAssetIDs(ctx, in.OldContent, in.OldFeaturedID)
	if err != nil {
		return fmt.Errorf("resolving old content: %w", err)
	}
	newIDs, err := s.collectAssetIDs(ctx, in.NewContent, in.NewFeaturedID)
	if err != nil {
		return fmt.Errorf("resolving new content: %w", err)
	}

	newSet := make(map[string]bool, len(newIDs))
	for _, id := range newIDs {
		newSet[id] = true
	}
	oldSet := make(map[string]bool, len(oldIDs))
	for _, id := range oldIDs {
		oldSet[id] = true
	}

	var toAdd, toRemove []string
	for _, id := range newIDs {
		if !oldSet[id] {
			toAdd = append(toAdd, id)
		}
	}
	for _, id := range oldIDs {
		if !newSet[id] {
			toRemove = append(toRemove, id)
		}
	}

	ref := model.UsageRef{Model: in.Owner.Model, RefID: in.Owner.RefID}
	s.addAll(ctx, toAdd, ref)
	s.removeAll(ctx, toRemove, ref)
	return nil
}

// OwnerDeleted unregisters the owner from every asset it referenced.
func (s *trackerSrv) OwnerDeleted(ctx context.Context, in port.OwnerDeletedInput) error {
	ids, err := s.collectAssetIDs(ctx, in.Content, in.FeaturedID)
	if err != nil {
		return err
	}

	ref := model.UsageRef{Model: in.Owner.Model, RefID: in.Owner.RefID}
	s.removeAll(ctx, ids, ref)
	return nil
}

// collectAssetIDs resolves the embedded assets of content and folds in
// the featured image id, deduplicated, first-seen order.
func (s *trackerSrv) collectAssetIDs(ctx context.Context, content, featuredID string) ([]string, error) {
	ids, err := s.resolver.ExtractAssetIDs(ctx, content)
	if err != nil {
		return nil, err
	}

	if featuredID == "" {
		return ids, nil
	}
	for _, id := range ids {
		if id == featuredID {
			return ids, nil
		}
	}
	return append(ids, featuredID), nil
}

// addAll registers ref on every id. Failures are logged and skipped: an
// owner event must never fail because one asset record misbehaved, and
// the health scan surfaces whatever drifted.
func (s *trackerSrv) addAll(ctx context.Context, ids []string, ref model.UsageRef) {
	for _, id := range ids {
		if err := s.repo.AddUsage(ctx, id, ref); err != nil {
			log.Printf("failed to register usage %s:%s on media %q: %v", ref.Model, ref.RefID, id, err)
		}
	}
}

func (s *trackerSrv) removeAll(ctx context.Context, ids []string, ref model.UsageRef) {
	for _, id := range ids {
		if err := s.repo.RemoveUsage(ctx, id, ref); err != nil {
			log.Printf("failed to unregister usage %s:%s on media %q: %v", ref.Model, ref.RefID, id, err)
		}
	}
}
