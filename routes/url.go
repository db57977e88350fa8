package routes

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"pixurl/images"
	"pixurl/issued"
	"pixurl/logger"
	"pixurl/models"
	"pixurl/presets"
	"pixurl/thumbor"
)

var errMissingSource = errors.New("src parameter required")

// parseTransformQuery reads transform options from query parameters. Absent
// parameters leave the option unset.
func parseTransformQuery(q url.Values) (images.TransformOptions, error) {
	var opts images.TransformOptions

	ints := []struct {
		name string
		set  func(int)
	}{
		{"width", func(n int) { opts.Width = thumbor.Int(n) }},
		{"height", func(n int) { opts.Height = thumbor.Int(n) }},
		{"quality", func(n int) { opts.Quality = n }},
		{"blur", func(n int) { opts.Blur = n }},
	}
	for _, p := range ints {
		raw := q.Get(p.name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return opts, fmt.Errorf("invalid %s: %q", p.name, raw)
		}
		p.set(n)
	}

	bools := []struct {
		name string
		dst  *bool
	}{
		{"smart", &opts.SmartCrop},
		{"grayscale", &opts.Grayscale},
		{"trim", &opts.Trim},
		{"flip_h", &opts.FlipHorizontally},
		{"flip_v", &opts.FlipVertically},
	}
	for _, p := range bools {
		raw := q.Get(p.name)
		if raw == "" {
			continue
		}
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return opts, fmt.Errorf("invalid %s: %q", p.name, raw)
		}
		*p.dst = b
	}

	opts.Format = q.Get("format")
	return opts, nil
}

// resolveURLRequest turns req into the source and final options, applying a
// stored preset. Request options override the preset, except that boolean
// flags can only be switched on (see images.TransformOptions.Merge).
func resolveURLRequest(req models.URLRequest) (string, images.TransformOptions, error) {
	if req.Source == "" {
		return "", images.TransformOptions{}, errMissingSource
	}
	opts, err := presets.Resolve(req.Preset, req.Options)
	if err != nil {
		return "", images.TransformOptions{}, err
	}
	return req.Source, opts, nil
}

func urlRequestFromQuery(r *http.Request) (models.URLRequest, error) {
	q := r.URL.Query()
	opts, err := parseTransformQuery(q)
	if err != nil {
		return models.URLRequest{}, err
	}
	return models.URLRequest{Source: q.Get("src"), Preset: q.Get("preset"), Options: opts}, nil
}

// writeResolveError maps request resolution errors to status codes
func writeResolveError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, presets.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, err.Error(), http.StatusBadRequest)
	}
}

// recordIssued logs an issued URL. The log is best effort.
func recordIssued(u, source, subject string) {
	if u == "" {
		return
	}
	if _, err := issued.StoreIssued(u, source, subject); err != nil {
		logger.Warnf("Failed to record issued URL for %s: %v", source, err)
	}
}

// queryHandler serves a GET endpoint that builds something from query parameters
func queryHandler(endpoint string, build func(r *http.Request, src string, opts images.TransformOptions) interface{}) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger.Debugf("%s request: method=%s, remoteAddr=%s", endpoint, r.Method, r.RemoteAddr)
		if !allowMethod(w, r, endpoint, http.MethodGet) {
			return
		}

		req, err := urlRequestFromQuery(r)
		if err != nil {
			logger.Warnf("Bad %s request: %v", endpoint, err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		src, opts, err := resolveURLRequest(req)
		if err != nil {
			logger.Warnf("Bad %s request: %v", endpoint, err)
			writeResolveError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, build(r, src, opts))
	}
}

// URLHandler returns {"url": ...} for the requested transform
func URLHandler(client *images.Client) http.HandlerFunc {
	return queryHandler("url", func(r *http.Request, src string, opts images.TransformOptions) interface{} {
		u := client.OptimizedURL(src, opts)
		recordIssued(u, src, subjectOf(r))
		return map[string]string{"url": u}
	})
}

// SrcSetHandler returns {"srcset": ...} for the requested transform
func SrcSetHandler(client *images.Client) http.HandlerFunc {
	return queryHandler("srcset", func(r *http.Request, src string, opts images.TransformOptions) interface{} {
		return map[string]string{"srcset": client.SrcSet(src, opts)}
	})
}

// ResponsiveHandler returns the small, medium and large URLs
func ResponsiveHandler(client *images.Client) http.HandlerFunc {
	return queryHandler("responsive", func(r *http.Request, src string, opts images.TransformOptions) interface{} {
		urls := client.ResponsiveURLs(src, opts)
		subject := subjectOf(r)
		for _, u := range []string{urls.Small, urls.Medium, urls.Large} {
			recordIssued(u, src, subject)
		}
		return urls
	})
}

// TokenResponse is every URL form for a token-carried request
type TokenResponse struct {
	URL        string                `json:"url"`
	SrcSet     string                `json:"srcset"`
	Responsive images.ResponsiveURLs `json:"responsive"`
}

// TokenHandler builds URLs for the request carried in the bearer token claims.
// It is only available when a JWT secret is configured.
func TokenHandler(client *images.Client, secret func() []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger.Debugf("Token request: method=%s, remoteAddr=%s", r.Method, r.RemoteAddr)
		if !allowMethod(w, r, "token", http.MethodPost) {
			return
		}

		key := secret()
		if key == nil {
			logger.Warn("Token request received but no JWT secret is configured")
			http.Error(w, "Token requests are disabled", http.StatusNotImplemented)
			return
		}

		claims, err := verifyRequest(r, key)
		if err != nil {
			logger.Warnf("Rejected token from %s: %v", r.RemoteAddr, err)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		src, opts, err := resolveURLRequest(claims.Request)
		if err != nil {
			logger.Warnf("Bad token request from subject %s: %v", claims.Subject, err)
			writeResolveError(w, err)
			return
		}

		resp := TokenResponse{
			URL:        client.OptimizedURL(src, opts),
			SrcSet:     client.SrcSet(src, opts),
			Responsive: client.ResponsiveURLs(src, opts),
		}
		recordIssued(resp.URL, src, claims.Subject)

		logger.Infof("Issued URLs for subject %s: %s", claims.Subject, src)
		writeJSON(w, http.StatusOK, resp)
	}
}
