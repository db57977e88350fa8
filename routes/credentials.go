package routes

import (
	"encoding/json"
	"net/http"

	"pixurl/credentials"
	"pixurl/logger"
)

// RegisterCredentialsHandler stores storage backend credentials and returns
// the key publish requests refer to them by
func RegisterCredentialsHandler(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, "credentials", http.MethodPost) {
		return
	}

	credsBody := make(map[string]string)
	if err := json.NewDecoder(r.Body).Decode(&credsBody); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if len(credsBody) == 0 {
		http.Error(w, "Credentials must not be empty", http.StatusBadRequest)
		return
	}

	key, err := credentials.Register(credsBody)
	if err != nil {
		logger.Errorf("Failed to store credentials: %v", err)
		http.Error(w, "Failed to store credentials", http.StatusInternalServerError)
		return
	}

	logger.Info("Registered storage credentials")
	writeJSON(w, http.StatusCreated, map[string]string{"storage_key": key})
}
