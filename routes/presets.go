package routes

import (
	"encoding/json"
	"errors"
	"net/http"

	"pixurl/logger"
	"pixurl/presets"
)

// PresetsHandler lists, fetches, saves and deletes presets.
//
//	GET    /presets            list
//	GET    /presets?name=thumb one preset
//	POST   /presets            body: {"name": ..., "options": {...}}
//	DELETE /presets?name=thumb
func PresetsHandler(w http.ResponseWriter, r *http.Request) {
	logger.Debugf("Presets request: method=%s, remoteAddr=%s", r.Method, r.RemoteAddr)

	switch r.Method {
	case http.MethodGet:
		getPresets(w, r)
	case http.MethodPost:
		RequireAuth(savePreset)(w, r)
	case http.MethodDelete:
		RequireAuth(deletePreset)(w, r)
	default:
		allowMethod(w, r, "presets", http.MethodGet, http.MethodPost, http.MethodDelete)
	}
}

func getPresets(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		list, err := presets.List()
		if err != nil {
			logger.Errorf("Failed to list presets: %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"presets": list,
			"count":   len(list),
		})
		return
	}

	p, err := presets.Get(name)
	if err != nil {
		if errors.Is(err, presets.ErrNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		logger.Errorf("Failed to get preset %s: %v", name, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func savePreset(w http.ResponseWriter, r *http.Request) {
	var p presets.Preset
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := presets.Save(p); err != nil {
		if errors.Is(err, presets.ErrInvalidName) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		logger.Errorf("Failed to save preset %s: %v", p.Name, err)
		http.Error(w, "Failed to save preset", http.StatusInternalServerError)
		return
	}

	logger.Infof("Saved preset %s", p.Name)
	writeJSON(w, http.StatusCreated, p)
}

func deletePreset(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		http.Error(w, "name parameter required", http.StatusBadRequest)
		return
	}
	if err := presets.Delete(name); err != nil {
		logger.Errorf("Failed to delete preset %s: %v", name, err)
		http.Error(w, "Failed to delete preset", http.StatusInternalServerError)
		return
	}

	logger.Infof("Deleted preset %s", name)
	w.WriteHeader(http.StatusNoContent)
}
