package routes

import (
	"net/http"

	"pixurl/failures"
	"pixurl/logger"
)

// FailureQueryHandler returns the failure recorded for a publish job
func FailureQueryHandler(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, "failures", http.MethodGet) {
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "id parameter required", http.StatusBadRequest)
		return
	}

	record, err := failures.GetFailure(id)
	if err != nil {
		logger.Errorf("Failed to query failure for job %s: %v", id, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if record == nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"id":      id,
			"status":  "no_failure",
			"message": "No failure recorded for this job",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":        record.ID,
		"status":    "failed",
		"timestamp": record.Timestamp,
		"error":     record.Error,
		"job_data":  record.JobData,
	})
}

// FailureListHandler lists all failures (admin endpoint)
func FailureListHandler(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, "failures/list", http.MethodGet) {
		return
	}

	failuresList, err := failures.ListFailures()
	if err != nil {
		logger.Errorf("Failed to list failures: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"failures": failuresList,
		"count":    len(failuresList),
	})
}
