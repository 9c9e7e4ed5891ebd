package api

import (
	"log"
	"net/http"

	"github.com/fhuszti/blog-media-go/internal/api_context"
	"github.com/fhuszti/blog-media-go/internal/port"
)

// RestoreMediaHandler clears a soft-delete timestamp.
func RestoreMediaHandler(svc port.MediaRestorer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.IDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "ID is required", nil)
			return
		}

		out, err := svc.RestoreMedia(r.Context(), id)
		if err != nil {
			writeDomainError(w, "Could not restore media", err)
			return
		}

		RespondJSON(w, http.StatusOK, out)
		log.Printf("✅  Successfully restored media #%s", id)
	}
}
