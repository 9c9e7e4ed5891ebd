package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/fhuszti/blog-media-go/internal/port"
	"github.com/fhuszti/blog-media-go/internal/validation"
)

type BulkDeleteRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,max=100,dive,uuid"`
}

// BulkDeleteMediasHandler deletes a batch of medias. The whole batch is
// refused when any member is still referenced by content.
func BulkDeleteMediasHandler(svc port.BulkDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BulkDeleteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request payload", err)
			return
		}

		if errs := validation.ValidateStruct(req); errs != nil {
			errsJSON, err := validation.ErrorsToJson(errs)
			if err != nil {
				WriteError(w, http.StatusInternalServerError, "failed to encode validation errors", err)
				return
			}
			RespondRawJSON(w, http.StatusBadRequest, []byte(errsJSON))
			log.Printf("❌  Validation failed: %s", errsJSON)
			return
		}

		out, err := svc.BulkDeleteMedias(r.Context(), req.IDs)
		if err != nil {
			writeDomainError(w, "Failed to delete medias", err)
			return
		}

		RespondJSON(w, http.StatusOK, out)
		log.Printf("✅  Successfully deleted %d media(s)", len(out.Deleted))
	}
}
