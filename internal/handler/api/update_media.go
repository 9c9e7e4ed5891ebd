package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/fhuszti/blog-media-go/internal/api_context"
	"github.com/fhuszti/blog-media-go/internal/port"
	"github.com/fhuszti/blog-media-go/internal/validation"
)

type UpdateMediaRequest struct {
	AltText *string `json:"alt_text" validate:"omitempty,max=255"`
	Caption *string `json:"caption" validate:"omitempty,max=500"`
	Folder  *string `json:"folder" validate:"omitempty,max=100"`
}

// UpdateMediaHandler edits a media's presentation metadata. Absent fields
// are left untouched.
func UpdateMediaHandler(svc port.MediaUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.IDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "ID is required", nil)
			return
		}

		var req UpdateMediaRequest
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

		out, err := svc.UpdateMedia(r.Context(), port.UpdateMediaInput{
			ID:      id,
			AltText: req.AltText,
			Caption: req.Caption,
			Folder:  req.Folder,
		})
		if err != nil {
			writeDomainError(w, "Could not update media", err)
			return
		}

		RespondJSON(w, http.StatusOK, out)
		log.Printf("✅  Successfully updated media #%s", id)
	}
}
