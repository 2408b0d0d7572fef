package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/poncheo/poncheo-backend-go/internal/domain/auth"
	"github.com/poncheo/poncheo-backend-go/internal/domain/employee"
	"github.com/poncheo/poncheo-backend-go/internal/handler/http/response"
	"github.com/poncheo/poncheo-backend-go/internal/pkg/jwt"
)

type requesterKey struct{}

// AuthRequired rejects requests without a verified access token and stores the caller
// as an employee.Requester on the context.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			tokenType, ok := claims[jwt.ClaimType].(string)
			if !ok || tokenType != jwt.TokenTypeAccess {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			employeeID, ok := claims[jwt.ClaimEmployeeID].(string)
			if !ok || employeeID == "" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			role, _ := claims[jwt.ClaimRole].(string)

			requester := employee.Requester{EmployeeID: employeeID, Role: employee.Role(role)}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requesterKey{}, requester)))
		}
		return http.HandlerFunc(hfn)
	}
}

// RequesterFromContext returns the caller set by AuthRequired.
func RequesterFromContext(ctx context.Context) (employee.Requester, bool) {
	requester, ok := ctx.Value(requesterKey{}).(employee.Requester)
	return requester, ok
}
