package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/poncheo/poncheo-backend-go/internal/domain/auth"
	"github.com/poncheo/poncheo-backend-go/internal/domain/employee"
	"github.com/poncheo/poncheo-backend-go/internal/handler/http/middleware"
	"github.com/poncheo/poncheo-backend-go/internal/handler/http/response"
	"github.com/poncheo/poncheo-backend-go/internal/pkg/validator"
)

// requesterOrFail writes a 401 and returns false when the request carries no caller.
func requesterOrFail(w http.ResponseWriter, r *http.Request) (employee.Requester, bool) {
	requester, ok := middleware.RequesterFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return employee.Requester{}, false
	}
	return requester, true
}

func queryString(r *http.Request, key string) *string {
	if v := r.URL.Query().Get(key); v != "" {
		return &v
	}
	return nil
}

func queryInt(r *http.Request, key string) int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return 0
}

// pathID reads the {id} route parameter and writes a 400 unless it is a UUIDv7.
func pathID(w http.ResponseWriter, r *http.Request, resource string) (string, bool) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.BadRequest(w, "Invalid "+resource+" ID", map[string]string{"id": "id must be a valid UUID"})
		return "", false
	}
	return id, true
}
