package http

import (
	"context"
	"net/http"

	"github.com/poncheo/poncheo-backend-go/internal/handler/http/response"
	"github.com/poncheo/poncheo-backend-go/internal/pkg/cron"
)

// AutoCloser runs one auto-close sweep.
type AutoCloser interface {
	RunAutoCloseOnce(ctx context.Context) (cron.AutoCloseReport, error)
}

type JobHandler interface {
	AutoClose(w http.ResponseWriter, r *http.Request)
}

type jobHandlerImpl struct {
	autoCloser AutoCloser
}

func NewJobHandler(autoCloser AutoCloser) JobHandler {
	return &jobHandlerImpl{autoCloser: autoCloser}
}

// AutoClose handles POST /jobs/auto-close
func (h *jobHandlerImpl) AutoClose(w http.ResponseWriter, r *http.Request) {
	report, err := h.autoCloser.RunAutoCloseOnce(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Auto-close completed", report)
}
