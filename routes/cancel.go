package routes

import (
	"errors"
	"fmt"
	"net/http"

	"pixurl/job"
	"pixurl/logger"
)

// CancelJobHandler cancels a pending publish job by id
func CancelJobHandler(w http.ResponseWriter, r *http.Request) {
	logger.Debugf("Cancel job request: method=%s, remoteAddr=%s", r.Method, r.RemoteAddr)
	if !allowMethod(w, r, "cancel", http.MethodDelete) {
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		logger.Warn("Missing id parameter in cancel request")
		http.Error(w, "Missing id parameter", http.StatusBadRequest)
		return
	}

	if err := job.CancelJob(id); err != nil {
		logger.Errorf("Failed to cancel job %s: %v", id, err)
		if errors.Is(err, job.ErrJobNotFound) {
			http.Error(w, fmt.Sprintf("Job not found: %v", err), http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Cannot cancel job: %v", err), http.StatusConflict)
		}
		return
	}

	logger.Infof("Job cancelled successfully: %s", id)
	w.WriteHeader(http.StatusNoContent)
}
