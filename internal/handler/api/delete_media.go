package api

import (
	"log"
	"net/http"

	"github.com/fhuszti/blog-media-go/internal/api_context"
	"github.com/fhuszti/blog-media-go/internal/port"
)

// DeleteMediaHandler deletes a media by ID. A media still referenced by
// content is refused with the blocking owners enumerated.
func DeleteMediaHandler(svc port.MediaDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.IDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "ID is required", nil)
			return
		}

		if err := svc.DeleteMedia(r.Context(), id); err != nil {
			writeDomainError(w, "Failed to delete media", err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
		log.Printf("✅  Successfully deleted media #%s", id)
	}
}
