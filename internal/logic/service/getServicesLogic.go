package service

import (
	"context"

	"github.com/mindmatrix/backend/internal/svc"
	"github.com/mindmatrix/backend/internal/types"

	"github.com/zeromicro/go-zero/core/logx"
)

type GetServicesLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewGetServicesLogic(ctx context.Context, svcCtx *svc.ServiceContext) *GetServicesLogic {
	return &GetServicesLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// GetServices lists the registered upstream providers.
func (l *GetServicesLogic) GetServices() *types.ServiceListResponse {
	providers := l.svcCtx.Registry.All()

	infos := make([]types.ProviderInfo, 0, len(providers))
	for _, p := range providers {
		infos = append(infos, types.ProviderInfo{
			Name:         p.Name,
			Type:         p.Type,
			Status:       p.Status,
			Capabilities: p.Capabilities,
		})
	}

	return &types.ServiceListResponse{
		Code:    0,
		Message: "success",
		Data:    infos,
	}
}
