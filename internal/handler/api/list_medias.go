package api

import (
	"log"
	"net/http"
	"strconv"

	"github.com/fhuszti/blog-media-go/internal/port"
)

// ListMediasHandler serves the filtered, paginated registry listing.
// Query parameters: folder, mime_type, search, deleted (only|all),
// page, limit, sort_by, order (asc|desc).
func ListMediasHandler(svc port.MediaLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		in := port.ListMediasInput{
			Folder:     q.Get("folder"),
			MimePrefix: q.Get("mime_type"),
			Search:     q.Get("search"),
			Page:       atoiOrZero(q.Get("page")),
			Limit:      atoiOrZero(q.Get("limit")),
			SortBy:     q.Get("sort_by"),
			SortDesc:   q.Get("order") != "asc",
		}
		switch q.Get("deleted") {
		case "only":
			in.Deleted = port.DeletedOnly
		case "include", "all":
			in.Deleted = port.DeletedInclude
		}

		out, err := svc.ListMedias(r.Context(), in)
		if err != nil {
			writeDomainError(w, "Could not list medias", err)
			return
		}

		RespondJSON(w, http.StatusOK, out)
		log.Printf("✅  Successfully listed %d media(s) (page %d)", len(out.Items), out.Pagination.Page)
	}
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
