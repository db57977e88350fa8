package routes

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"pixurl/credentials"
	"pixurl/failures"
	"pixurl/issued"
	"pixurl/logger"
	"pixurl/presets"
)

// Build-time variables (injected by ldflags)
var (
	version   = "dev"
	buildTime = "unknown"
	gitCommit = "unknown"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	GoVersion string            `json:"go_version"`
	Uptime    string            `json:"uptime"`
	StartTime string            `json:"start_time"`
	Stores    map[string]string `json:"stores"`
}

var startTime = time.Now()

// storeChecks are the databases reported by the health endpoint
var storeChecks = map[string]func() error{
	"presets":     presets.CheckHealth,
	"issued":      issued.CheckHealth,
	"failures":    failures.CheckHealth,
	"credentials": credentials.CheckHealth,
}

// formatUptime formats a duration into days, hours, minutes, seconds
func formatUptime(d time.Duration) string {
	days := int(d.Hours() / 24)
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dd %dh %dm %ds", days, hours, minutes, seconds)
}

// HealthHandler reports service and store health for load balancers and monitoring
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	logger.Debugf("Health check request: method=%s, remoteAddr=%s", r.Method, r.RemoteAddr)
	if !allowMethod(w, r, "health", http.MethodGet) {
		return
	}

	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   version,
		GoVersion: runtime.Version(),
		Uptime:    formatUptime(time.Since(startTime)),
		StartTime: startTime.Format("2006-01-02 15:04:05 MST"),
		Stores:    make(map[string]string, len(storeChecks)),
	}

	status := http.StatusOK
	for name, check := range storeChecks {
		if err := check(); err != nil {
			logger.Warnf("Store %s unhealthy: %v", name, err)
			response.Stores[name] = err.Error()
			response.Status = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}
		response.Stores[name] = "ok"
	}

	logger.Debugf("Health check response: status=%s, version=%s", response.Status, response.Version)
	writeJSON(w, status, response)
}
