package routes

import (
	"net/http"

	"pixurl/config"
	"pixurl/images"
)

// Register installs every endpoint on mux. URLs are built with client.
func Register(mux *http.ServeMux, client *images.Client) {
	mux.HandleFunc("/url", RequireAuth(URLHandler(client)))
	mux.HandleFunc("/srcset", RequireAuth(SrcSetHandler(client)))
	mux.HandleFunc("/responsive", RequireAuth(ResponsiveHandler(client)))
	mux.HandleFunc("/token", TokenHandler(client, config.GetJWTSecret))

	mux.HandleFunc("/presets", PresetsHandler)
	mux.HandleFunc("/issued", IssuedQueryHandler)
	mux.HandleFunc("/issued/list", RequireAuth(IssuedListHandler))

	mux.HandleFunc("/credentials", RequireAuth(RegisterCredentialsHandler))
	mux.HandleFunc("/publish", RequireAuth(PublishHandler))
	mux.HandleFunc("/status", JobStatusHandler)
	mux.HandleFunc("/cancel", RequireAuth(CancelJobHandler))
	mux.HandleFunc("/failures", FailureQueryHandler)
	mux.HandleFunc("/failures/list", RequireAuth(FailureListHandler))

	mux.HandleFunc("/health", HealthHandler)
	mux.HandleFunc("/version", VersionHandler)
}
