package api

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/fhuszti/blog-media-go/internal/api_context"
	"github.com/fhuszti/blog-media-go/internal/port"
	"github.com/fhuszti/blog-media-go/internal/usecase/media"
)

// uploadOverhead leaves room for the multipart framing and the text
// fields around a maximum-size file.
const uploadOverhead = 1 << 20

// UploadMediaHandler ingests a multipart upload: the file under "file",
// plus optional "folder", "alt_text" and "caption" fields.
func UploadMediaHandler(svc port.MediaUploader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, media.MaxFileSize+uploadOverhead)
		if err := r.ParseMultipartForm(media.MaxFileSize + uploadOverhead); err != nil {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				WriteError(w, http.StatusRequestEntityTooLarge, "Upload exceeds the size limit", err)
				return
			}
			WriteError(w, http.StatusBadRequest, "Could not parse multipart body", err)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			WriteError(w, http.StatusBadRequest, "A file is required under the \"file\" field", err)
			return
		}
		defer func() { _ = file.Close() }()

		data, err := io.ReadAll(file)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "Could not read uploaded file", err)
			return
		}

		uploadedBy, _ := api_context.AuthUserIDFromContext(r.Context())

		out, err := svc.UploadMedia(r.Context(), port.UploadMediaInput{
			FileName:   header.Filename,
			MimeType:   detectMimeType(data, header.Header.Get("Content-Type")),
			Data:       data,
			Folder:     r.FormValue("folder"),
			AltText:    r.FormValue("alt_text"),
			Caption:    r.FormValue("caption"),
			UploadedBy: uploadedBy,
		})
		if err != nil {
			writeDomainError(w, "Could not upload media", err)
			return
		}

		RespondJSON(w, http.StatusCreated, out)
		log.Printf("✅  Successfully uploaded media #%s as %q", out.ID, out.FileName)
	}
}

// detectMimeType trusts the bytes over the declared header; sniffing
// covers every allowed type, so the declaration only breaks ties when
// the sniffer gives up.
func detectMimeType(data []byte, declared string) string {
	sniffed := http.DetectContentType(data)
	if sniffed == "application/octet-stream" && declared != "" {
		return declared
	}
	return sniffed
}
