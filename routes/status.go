package routes

import (
	"fmt"
	"net/http"

	"pixurl/job"
	"pixurl/logger"
)

// JobStatusHandler returns the status of a publish job by id
func JobStatusHandler(w http.ResponseWriter, r *http.Request) {
	logger.Debugf("Job status request: method=%s, remoteAddr=%s", r.Method, r.RemoteAddr)
	if !allowMethod(w, r, "status", http.MethodGet) {
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		logger.Warn("Missing id parameter in status request")
		http.Error(w, "Missing id parameter", http.StatusBadRequest)
		return
	}

	status, exists := job.GetStatus(id)
	if !exists {
		logger.Warnf("Job not found: %s", id)
		http.Error(w, fmt.Sprintf("Job %s not found", id), http.StatusNotFound)
		return
	}

	logger.Debugf("Job status: id=%s, state=%s", id, status.Name)
	writeJSON(w, http.StatusOK, status)
}
