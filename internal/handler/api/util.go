package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fhuszti/blog-media-go/internal/logger"
	"github.com/fhuszti/blog-media-go/internal/usecase/media"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func WriteError(w http.ResponseWriter, status int, msg string, err error) {
	ctx := context.Background()
	if err != nil {
		logger.Errorf(ctx, "❌  %s: %v", msg, err)
	} else {
		logger.Error(ctx, "❌  "+msg)
	}
	w.Header().Set("Cache-Control", "no-store, max-age=0, must-revalidate")
	RespondJSON(w, status, ErrorResponse{Error: msg})
}

func RespondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Errorf(context.Background(), "❌  Failed to encode JSON response: %v", err)
	}
}

func RespondRawJSON(w http.ResponseWriter, status int, raw []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(raw); err != nil {
		logger.Errorf(context.Background(), "❌  Failed to write JSON payload: %v", err)
	}
}

type inUseResponse struct {
	Error  string `json:"error"`
	ID     string `json:"id,omitempty"`
	UsedIn any    `json:"used_in,omitempty"`
}

type bulkInUseResponse struct {
	Error   string               `json:"error"`
	Blocked []media.BlockedMedia `json:"blocked"`
}

// writeDomainError maps use case errors onto HTTP statuses; anything
// unknown is a 500 with msg as the public text.
func writeDomainError(w http.ResponseWriter, msg string, err error) {
	var inUse *media.InUseError
	if errors.As(err, &inUse) {
		logger.Errorf(context.Background(), "❌  %s: %v", msg, err)
		w.Header().Set("Cache-Control", "no-store, max-age=0, must-revalidate")
		RespondJSON(w, http.StatusConflict, inUseResponse{
			Error:  "media is still referenced by content",
			ID:     inUse.ID,
			UsedIn: inUse.Refs,
		})
		return
	}
	var bulkInUse *media.BulkInUseError
	if errors.As(err, &bulkInUse) {
		logger.Errorf(context.Background(), "❌  %s: %v", msg, err)
		w.Header().Set("Cache-Control", "no-store, max-age=0, must-revalidate")
		RespondJSON(w, http.StatusConflict, bulkInUseResponse{
			Error:   "some medias are still referenced by content",
			Blocked: bulkInUse.Blocked,
		})
		return
	}

	switch {
	case errors.Is(err, media.ErrMediaNotFound), errors.Is(err, media.ErrObjectNotFound):
		WriteError(w, http.StatusNotFound, "Media not found", nil)
	case errors.Is(err, media.ErrEmptyFile):
		WriteError(w, http.StatusBadRequest, "File is empty", nil)
	case errors.Is(err, media.ErrFileTooLarge):
		WriteError(w, http.StatusRequestEntityTooLarge, "File is too large", err)
	case errors.Is(err, media.ErrInvalidMimeType):
		WriteError(w, http.StatusUnsupportedMediaType, "File type is not allowed", err)
	case errors.Is(err, media.ErrUnprocessableImage):
		WriteError(w, http.StatusUnprocessableEntity, "Image could not be processed", err)
	case errors.Is(err, media.ErrDuplicateFileName):
		WriteError(w, http.StatusConflict, "A media with this file name already exists", err)
	default:
		WriteError(w, http.StatusInternalServerError, msg, err)
	}
}
