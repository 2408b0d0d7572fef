package middleware

import (
	"net/http"

	"github.com/poncheo/poncheo-backend-go/internal/domain/auth"
	"github.com/poncheo/poncheo-backend-go/internal/handler/http/response"
)

// RequireSupervisor requires a role that may review corrections and run payroll.
func RequireSupervisor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requester, ok := RequesterFromContext(r.Context())
		if !ok {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		if !requester.Role.CanReview() {
			response.HandleError(w, auth.ErrSupervisorRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
