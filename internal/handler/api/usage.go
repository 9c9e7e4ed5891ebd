package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/fhuszti/blog-media-go/internal/port"
	"github.com/fhuszti/blog-media-go/internal/validation"
)

type OwnerRefPayload struct {
	Model string `json:"model" validate:"required,max=100"`
	RefID string `json:"ref_id" validate:"required,max=100"`
}

type OwnerCreatedRequest struct {
	Owner      OwnerRefPayload `json:"owner" validate:"required"`
	Content    string          `json:"content"`
	FeaturedID string          `json:"featured_id" validate:"omitempty,uuid"`
}

type OwnerUpdatedRequest struct {
	Owner         OwnerRefPayload `json:"owner" validate:"required"`
	OldContent    string          `json:"old_content"`
	NewContent    string          `json:"new_content"`
	OldFeaturedID string          `json:"old_featured_id" validate:"omitempty,uuid"`
	NewFeaturedID string          `json:"new_featured_id" validate:"omitempty,uuid"`
}

type OwnerDeletedRequest struct {
	Owner      OwnerRefPayload `json:"owner" validate:"required"`
	Content    string          `json:"content"`
	FeaturedID string          `json:"featured_id" validate:"omitempty,uuid"`
}

// OwnerCreatedHandler registers a new owner's references on every asset
// its content embeds.
func OwnerCreatedHandler(svc port.UsageTracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req OwnerCreatedRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		err := svc.OwnerCreated(r.Context(), port.OwnerCreatedInput{
			Owner:      port.OwnerRef{Model: req.Owner.Model, RefID: req.Owner.RefID},
			Content:    req.Content,
			FeaturedID: req.FeaturedID,
		})
		if err != nil {
			writeDomainError(w, "Could not track new owner", err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
		log.Printf("✅  Successfully tracked created owner %s:%s", req.Owner.Model, req.Owner.RefID)
	}
}

// OwnerUpdatedHandler reconciles references after an owner's content
// changed.
func OwnerUpdatedHandler(svc port.UsageTracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req OwnerUpdatedRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		err := svc.OwnerUpdated(r.Context(), port.OwnerUpdatedInput{
			Owner:         port.OwnerRef{Model: req.Owner.Model, RefID: req.Owner.RefID},
			OldContent:    req.OldContent,
			NewContent:    req.NewContent,
			OldFeaturedID: req.OldFeaturedID,
			NewFeaturedID: req.NewFeaturedID,
		})
		if err != nil {
			writeDomainError(w, "Could not track owner update", err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
		log.Printf("✅  Successfully tracked updated owner %s:%s", req.Owner.Model, req.Owner.RefID)
	}
}

// OwnerDeletedHandler unregisters a deleted owner from every asset it
// referenced.
func OwnerDeletedHandler(svc port.UsageTracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req OwnerDeletedRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		err := svc.OwnerDeleted(r.Context(), port.OwnerDeletedInput{
			Owner:      port.OwnerRef{Model: req.Owner.Model, RefID: req.Owner.RefID},
			Content:    req.Content,
			FeaturedID: req.FeaturedID,
		})
		if err != nil {
			writeDomainError(w, "Could not track owner deletion", err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
		log.Printf("✅  Successfully tracked deleted owner %s:%s", req.Owner.Model, req.Owner.RefID)
	}
}

// UsageHealthScanHandler enqueues a background scan of every media's
// usage bookkeeping.
func UsageHealthScanHandler(dispatcher port.TaskDispatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := dispatcher.EnqueueUsageHealthScan(r.Context()); err != nil {
			WriteError(w, http.StatusInternalServerError, "Could not enqueue usage health scan", err)
			return
		}

		w.WriteHeader(http.StatusAccepted)
		log.Printf("✅  Successfully enqueued usage health scan")
	}
}

// decodeAndValidate decodes the JSON body into req and runs struct
// validation, writing the error response itself on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request payload", err)
		return false
	}

	if errs := validation.ValidateStruct(req); errs != nil {
		errsJSON, err := validation.ErrorsToJson(errs)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "failed to encode validation errors", err)
			return false
		}
		RespondRawJSON(w, http.StatusBadRequest, []byte(errsJSON))
		log.Printf("❌  Validation failed: %s", errsJSON)
		return false
	}
	return true
}
