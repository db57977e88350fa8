package routes

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"pixurl/config"
	"pixurl/logger"
	"pixurl/models"
	"pixurl/utils"
)

type claimsKey struct{}

const clockSkew = 30 * time.Second

var errMissingBearer = errors.New("missing bearer token")

func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return "", errMissingBearer
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if token == "" {
		return "", errMissingBearer
	}
	return token, nil
}

// verifyRequest checks the bearer token of r against the configured secret
func verifyRequest(r *http.Request, secret []byte) (*models.URLClaims, error) {
	token, err := bearerToken(r)
	if err != nil {
		return nil, err
	}
	return utils.VerifyURLToken(token, utils.VerifyConfig{SecretKey: secret, ClockSkew: clockSkew})
}

// RequireAuth rejects requests without a valid bearer token when a JWT
// secret is configured. Verified claims are available via ClaimsFrom.
func RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		secret := config.GetJWTSecret()
		if secret == nil {
			next(w, r)
			return
		}

		claims, err := verifyRequest(r, secret)
		if err != nil {
			logger.Warnf("Rejected request to %s from %s: %v", r.URL.Path, r.RemoteAddr, err)
			w.Header().Set("WWW-Authenticate", `Bearer realm="pixurl"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), claimsKey{}, claims)))
	}
}

// ClaimsFrom returns the verified token claims of an authenticated request
func ClaimsFrom(ctx context.Context) (*models.URLClaims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*models.URLClaims)
	return claims, ok
}

func subjectOf(r *http.Request) string {
	if claims, ok := ClaimsFrom(r.Context()); ok {
		return claims.Subject
	}
	return ""
}
