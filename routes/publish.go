package routes

import (
	"encoding/json"
	"errors"
	"net/http"

	"pixurl/job"
	"pixurl/logger"
	"pixurl/models"
)

// PublishHandler queues a manifest publish job
func PublishHandler(w http.ResponseWriter, r *http.Request) {
	logger.Debugf("Publish request: method=%s, remoteAddr=%s", r.Method, r.RemoteAddr)
	if !allowMethod(w, r, "publish", http.MethodPost) {
		return
	}

	var req models.PublishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	id, err := job.Enqueue(req)
	if err != nil {
		if errors.Is(err, job.ErrMissingSource) || errors.Is(err, job.ErrUnsupportedWrite) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		logger.Errorf("Failed to queue publish job: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"id": id, "state": job.JobStatePending.String()})
}
