package service

import (
	"net/http"

	"github.com/mindmatrix/backend/internal/logic/service"
	"github.com/mindmatrix/backend/internal/svc"

	"github.com/zeromicro/go-zero/rest/httpx"
)

func GetServicesHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l := service.NewGetServicesLogic(r.Context(), svcCtx)
		httpx.OkJsonCtx(r.Context(), w, l.GetServices())
	}
}
