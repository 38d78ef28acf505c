package health

import (
	"net/http"

	"github.com/mindmatrix/backend/internal/logic/health"
	"github.com/mindmatrix/backend/internal/svc"

	"github.com/zeromicro/go-zero/rest/httpx"
)

// RootHandler serves the GET / liveness endpoint.
func RootHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l := health.NewHealthLogic(r.Context(), svcCtx)
		httpx.OkJsonCtx(r.Context(), w, l.Root())
	}
}

// HealthHandler serves the GET /health endpoint, returning 503 when any
// dependency is degraded.
func HealthHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l := health.NewHealthLogic(r.Context(), svcCtx)
		resp, healthy := l.Health()
		if healthy {
			httpx.OkJsonCtx(r.Context(), w, resp)
		} else {
			httpx.WriteJsonCtx(r.Context(), w, http.StatusServiceUnavailable, resp)
		}
	}
}
