package usage

import (
	"context"
	"errors"
	"testing"

	"github.com/fhuszti/blog-media-go/internal/model"
	"github.com/fhuszti/blog-media-go/internal/port"
	"github.com/fhuszti/blog-media-go/internal/usecase/media"
)

type usageCall struct {
	id  string
	ref model.UsageRef
}

// usageRepo records usage mutations; every other repository method is
// left to the embedded nil interface and would panic if reached.
type usageRepo struct {
	port.MediaRepository

	added   []usageCall
	removed []usageCall

	addErrFor    map[string]error
	removeErrFor map[string]error
}

func (r *usageRepo) AddUsage(ctx context.Context, id string, ref model.UsageRef) error {
	if err := r.addErrFor[id]; err != nil {
		return err
	}
	r.added = append(r.added, usageCall{id: id, ref: ref})
	return nil
}

func (r *usageRepo) RemoveUsage(ctx context.Context, id string, ref model.UsageRef) error {
	if err := r.removeErrFor[id]; err != nil {
		return err
	}
	r.removed = append(r.removed, usageCall{id: id, ref: ref})
	return nil
}

// mockResolver maps content strings straight to asset ids.
type mockResolver struct {
	ids map[string][]string
	err error
}

func (m *mockResolver) ExtractAssetIDs(ctx context.Context, content string) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.ids[content], nil
}

var owner = port.OwnerRef{Model: "posts", RefID: "post-7"}

func ids(calls []usageCall) []string {
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.id
	}
	return out
}

func sameIDs(got []usageCall, want ...string) bool {
	if len(got) != len(want) {
		return false
	}
	for i, c := range got {
		if c.id != want[i] {
			return false
		}
	}
	return true
}

func TestOwnerCreatedRegistersEveryAsset(t *testing.T) {
	repo := &usageRepo{}
	resolver := &mockResolver{ids: map[string][]string{
		"<p>body</p>": {"id-a", "id-b", "id-c"},
	}}
	srv := NewTracker(resolver, repo)

	err := srv.OwnerCreated(context.Background(), port.OwnerCreatedInput{
		Owner:   owner,
		Content: "<p>body</p>",
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if !sameIDs(repo.added, "id-a", "id-b", "id-c") {
		t.Errorf("expected all three assets registered, got %v", ids(repo.added))
	}
	if repo.added[0].ref != (model.UsageRef{Model: "posts", RefID: "post-7"}) {
		t.Errorf("unexpected reference %+v", repo.added[0].ref)
	}
	if len(repo.removed) != 0 {
		t.Errorf("creation must remove nothing, got %v", ids(repo.removed))
	}
}

func TestOwnerCreatedIncludesFeaturedImage(t *testing.T) {
	repo := &usageRepo{}
	resolver := &mockResolver{ids: map[string][]string{"body": {"id-a"}}}
	srv := NewTracker(resolver, repo)

	err := srv.OwnerCreated(context.Background(), port.OwnerCreatedInput{
		Owner:      owner,
		Content:    "body",
		FeaturedID: "id-f",
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if !sameIDs(repo.added, "id-a", "id-f") {
		t.Errorf("expected the featured image registered too, got %v", ids(repo.added))
	}
}

func TestOwnerCreatedDedupesFeaturedAlsoEmbedded(t *testing.T) {
	repo := &usageRepo{}
	resolver := &mockResolver{ids: map[string][]string{"body": {"id-a", "id-f"}}}
	srv := NewTracker(resolver, repo)

	err := srv.OwnerCreated(context.Background(), port.OwnerCreatedInput{
		Owner:      owner,
		Content:    "body",
		FeaturedID: "id-f",
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if !sameIDs(repo.added, "id-a", "id-f") {
		t.Errorf("expected each asset registered once, got %v", ids(repo.added))
	}
}

func TestOwnerCreatedResolverErrorPropagates(t *testing.T) {
	boom := errors.New("mongo down")
	srv := NewTracker(&mockResolver{err: boom}, &usageRepo{})

	err := srv.OwnerCreated(context.Background(), port.OwnerCreatedInput{Owner: owner, Content: "body"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected the resolver error surfaced, got %v", err)
	}
}

func TestOwnerCreatedAssetFailureKeepsGoing(t *testing.T) {
	repo := &usageRepo{addErrFor: map[string]error{"id-b": media.ErrMediaNotFound}}
	resolver := &mockResolver{ids: map[string][]string{"body": {"id-a", "id-b", "id-c"}}}
	srv := NewTracker(resolver, repo)

	err := srv.OwnerCreated(context.Background(), port.OwnerCreatedInput{Owner: owner, Content: "body"})
	if err != nil {
		t.Fatalf("one misbehaving asset must not fail the event, got %v", err)
	}
	if !sameIDs(repo.added, "id-a", "id-c") {
		t.Errorf("expected the healthy assets registered, got %v", ids(repo.added))
	}
}

func TestOwnerUpdatedSetDifference(t *testing.T) {
	repo := &usageRepo{}
	resolver := &mockResolver{ids: map[string][]string{
		"old": {"id-a", "id-b"},
		"new": {"id-a", "id-c"},
	}}
	srv := NewTracker(resolver, repo)

	err := srv.OwnerUpdated(context.Background(), port.OwnerUpdatedInput{
		Owner:      owner,
		OldContent: "old",
		NewContent: "new",
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if !sameIDs(repo.added, "id-c") {
		t.Errorf("expected only id-c gained, got %v", ids(repo.added))
	}
	if !sameIDs(repo.removed, "id-b") {
		t.Errorf("expected only id-b lost, got %v", ids(repo.removed))
	}
}

func TestOwnerUpdatedNoChangesTouchesNothing(t *testing.T) {
	repo := &usageRepo{}
	resolver := &mockResolver{ids: map[string][]string{"same": {"id-a", "id-b"}}}
	srv := NewTracker(resolver, repo)

	err := srv.OwnerUpdated(context.Background(), port.OwnerUpdatedInput{
		Owner:      owner,
		OldContent: "same",
		NewContent: "same",
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if len(repo.added) != 0 || len(repo.removed) != 0 {
		t.Errorf("an unchanged owner must touch nothing, added %v removed %v", ids(repo.added), ids(repo.removed))
	}
}

func TestOwnerUpdatedFeaturedSwap(t *testing.T) {
	repo := &usageRepo{}
	resolver := &mockResolver{ids: map[string][]string{"body": {"id-a"}}}
	srv := NewTracker(resolver, repo)

	err := srv.OwnerUpdated(context.Background(), port.OwnerUpdatedInput{
		Owner:         owner,
		OldContent:    "body",
		NewContent:    "body",
		OldFeaturedID: "id-f1",
		NewFeaturedID: "id-f2",
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if !sameIDs(repo.added, "id-f2") {
		t.Errorf("expected the new featured image gained, got %v", ids(repo.added))
	}
	if !sameIDs(repo.removed, "id-f1") {
		t.Errorf("expected the old featured image lost, got %v", ids(repo.removed))
	}
}

func TestOwnerUpdatedOldFeaturedStillEmbeddedKeepsReference(t *testing.T) {
	repo := &usageRepo{}
	resolver := &mockResolver{ids: map[string][]string{
		"old": {"id-a"},
		"new": {"id-a", "id-f1"},
	}}
	srv := NewTracker(resolver, repo)

	err := srv.OwnerUpdated(context.Background(), port.OwnerUpdatedInput{
		Owner:         owner,
		OldContent:    "old",
		NewContent:    "new",
		OldFeaturedID: "id-f1",
		NewFeaturedID: "id-f2",
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if !sameIDs(repo.added, "id-f2") {
		t.Errorf("expected only the new featured image gained, got %v", ids(repo.added))
	}
	if len(repo.removed) != 0 {
		t.Errorf("the demoted featured image is still embedded and must keep its reference, removed %v", ids(repo.removed))
	}
}

func TestOwnerUpdatedResolverErrorPropagates(t *testing.T) {
	boom := errors.New("mongo down")
	repo := &usageRepo{}
	srv := NewTracker(&mockResolver{err: boom}, repo)

	err := srv.OwnerUpdated(context.Background(), port.OwnerUpdatedInput{
		Owner:      owner,
		OldContent: "old",
		NewContent: "new",
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected the resolver error surfaced, got %v", err)
	}
	if len(repo.added) != 0 || len(repo.removed) != 0 {
		t.Error("nothing may change when resolution failed")
	}
}

func TestOwnerDeletedUnregistersEverything(t *testing.T) {
	repo := &usageRepo{}
	resolver := &mockResolver{ids: map[string][]string{"body": {"id-a", "id-b"}}}
	srv := NewTracker(resolver, repo)

	err := srv.OwnerDeleted(context.Background(), port.OwnerDeletedInput{
		Owner:      owner,
		Content:    "body",
		FeaturedID: "id-f",
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if !sameIDs(repo.removed, "id-a", "id-b", "id-f") {
		t.Errorf("expected every reference removed, got %v", ids(repo.removed))
	}
	if len(repo.added) != 0 {
		t.Errorf("deletion must add nothing, got %v", ids(repo.added))
	}
}

func TestOwnerDeletedAssetFailureKeepsGoing(t *testing.T) {
	repo := &usageRepo{removeErrFor: map[string]error{"id-a": errors.New("transient")}}
	resolver := &mockResolver{ids: map[string][]string{"body": {"id-a", "id-b"}}}
	srv := NewTracker(resolver, repo)

	err := srv.OwnerDeleted(context.Background(), port.OwnerDeletedInput{Owner: owner, Content: "body"})
	if err != nil {
		t.Fatalf("one misbehaving asset must not fail the event, got %v", err)
	}
	if !sameIDs(repo.removed, "id-b") {
		t.Errorf("expected the healthy asset unregistered, got %v", ids(repo.removed))
	}
}
