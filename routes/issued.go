package routes

import (
	"net/http"

	"pixurl/issued"
	"pixurl/logger"
)

// IssuedQueryHandler looks up an issued URL by hash
func IssuedQueryHandler(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, "issued", http.MethodGet) {
		return
	}

	hash := r.URL.Query().Get("hash")
	if hash == "" {
		http.Error(w, "hash parameter required", http.StatusBadRequest)
		return
	}

	record, err := issued.Get(hash)
	if err != nil {
		logger.Errorf("Failed to query issued URL %s: %v", hash, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if record == nil {
		writeJSON(w, http.StatusNotFound, map[string]interface{}{
			"hash":    hash,
			"status":  "not_found",
			"message": "No URL was issued with this hash",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"hash":      record.Hash,
		"status":    "issued",
		"url":       record.URL,
		"source":    record.Source,
		"subject":   record.Subject,
		"timestamp": record.Timestamp,
	})
}

// IssuedListHandler lists every issued URL (admin endpoint)
func IssuedListHandler(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, "issued/list", http.MethodGet) {
		return
	}

	records, err := issued.List()
	if err != nil {
		logger.Errorf("Failed to list issued URLs: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"issued": records,
		"count":  len(records),
	})
}
