package handler

import (
	"net/http"

	"github.com/mindmatrix/backend/internal/handler/chat"
	"github.com/mindmatrix/backend/internal/handler/health"
	"github.com/mindmatrix/backend/internal/handler/service"
	"github.com/mindmatrix/backend/internal/svc"

	"github.com/zeromicro/go-zero/rest"
)

func RegisterHandlers(server *rest.Server, svcCtx *svc.ServiceContext) {
	server.AddRoutes([]rest.Route{
		{
			Method:  http.MethodGet,
			Path:    "/",
			Handler: health.RootHandler(svcCtx),
		},
		{
			Method:  http.MethodGet,
			Path:    "/health",
			Handler: health.HealthHandler(svcCtx),
		},
		{
			Method:  http.MethodGet,
			Path:    "/api/services",
			Handler: service.GetServicesHandler(svcCtx),
		},
		{
			Method:  http.MethodGet,
			Path:    "/ws/chat",
			Handler: chat.ChatHandler(svcCtx),
		},
	})
}
