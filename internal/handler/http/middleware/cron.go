package middleware

import (
	"net/http"
	"strings"

	"github.com/poncheo/poncheo-backend-go/internal/domain/auth"
	"github.com/poncheo/poncheo-backend-go/internal/handler/http/response"
	"golang.org/x/crypto/bcrypt"
)

// CronSecret admits external schedulers that present the shared secret in X-Cron-Secret
// or as a bearer token. The secret is checked against its bcrypt hash. An empty hash
// disables the endpoint.
func CronSecret(secretHash string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			secret := r.Header.Get("X-Cron-Secret")
			if secret == "" {
				secret = strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			}

			if secretHash == "" || secret == "" ||
				bcrypt.CompareHashAndPassword([]byte(secretHash), []byte(secret)) != nil {
				response.HandleError(w, auth.ErrInvalidCronSecret)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
