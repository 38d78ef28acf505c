package health

import (
	"context"
	"time"

	"github.com/mindmatrix/backend/internal/svc"
	"github.com/mindmatrix/backend/internal/types"

	"github.com/zeromicro/go-zero/core/logx"
)

type HealthLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewHealthLogic(ctx context.Context, svcCtx *svc.ServiceContext) *HealthLogic {
	return &HealthLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// Root reports basic liveness.
func (l *HealthLogic) Root() *types.RootResponse {
	return &types.RootResponse{
		Status:    "online",
		Service:   "Mind Matrix API",
		Version:   types.Version,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// Health reports detailed service health. The second return value is true
// when every dependency is operational.
func (l *HealthLogic) Health() (*types.HealthResponse, bool) {
	services := map[string]string{
		"api":        "operational",
		"ai_service": "operational",
		"database":   "operational",
	}
	healthy := true

	if err := l.svcCtx.Store.Ping(l.ctx); err != nil {
		l.Errorf("health check: database unreachable: %v", err)
		services["database"] = "unavailable"
		healthy = false
	}

	if len(l.svcCtx.Registry.All()) == 0 {
		services["ai_service"] = "unavailable"
		healthy = false
	}

	status := "healthy"
	if !healthy {
		status = "unhealthy"
	}

	return &types.HealthResponse{
		Status:            status,
		Services:          services,
		ActiveConnections: l.svcCtx.Manager.Count(),
		Timestamp:         time.Now().UTC().Format(time.RFC3339),
	}, healthy
}
