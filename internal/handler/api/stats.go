package api

import (
	"log"
	"net/http"

	"github.com/fhuszti/blog-media-go/internal/port"
)

func GetStorageStatsHandler(svc port.StatsGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := svc.GetStorageStats(r.Context())
		if err != nil {
			writeDomainError(w, "Could not compute storage stats", err)
			return
		}

		RespondJSON(w, http.StatusOK, out)
		log.Printf("✅  Successfully returned storage stats")
	}
}

func GetFolderStatsHandler(svc port.StatsGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := svc.GetFolderStats(r.Context())
		if err != nil {
			writeDomainError(w, "Could not compute folder stats", err)
			return
		}

		RespondJSON(w, http.StatusOK, out)
		log.Printf("✅  Successfully returned stats for %d folder(s)", len(out))
	}
}
