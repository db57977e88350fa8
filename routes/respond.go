package routes

import (
	"encoding/json"
	"net/http"

	"pixurl/logger"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(v); err != nil {
		logger.Errorf("Failed to encode response: %v", err)
	}
}

func allowMethod(w http.ResponseWriter, r *http.Request, endpoint string, methods ...string) bool {
	for _, m := range methods {
		if r.Method == m {
			return true
		}
	}
	logger.Warnf("Invalid method for %s endpoint: %s", endpoint, r.Method)
	http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	return false
}
