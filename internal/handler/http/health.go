package http

import (
	"context"
	"net/http"

	"github.com/poncheo/poncheo-backend-go/internal/handler/http/response"
)

// Pinger reports whether the backing store answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler interface {
	Health(w http.ResponseWriter, r *http.Request)
}

type healthHandlerImpl struct {
	store   Pinger
	version string
}

func NewHealthHandler(store Pinger, version string) HealthHandler {
	return &healthHandlerImpl{store: store, version: version}
}

// Health handles GET /health
func (h *healthHandlerImpl) Health(w http.ResponseWriter, r *http.Request) {
	if h.store != nil {
		if err := h.store.Ping(r.Context()); err != nil {
			response.ServiceUnavailable(w, "Store is not reachable")
			return
		}
	}

	response.Success(w, map[string]string{
		"status":  "ok",
		"version": h.version,
	})
}
