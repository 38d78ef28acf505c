package chat

import (
	"net/http"
	"strings"

	"github.com/mindmatrix/backend/internal/logic/chat"
	"github.com/mindmatrix/backend/internal/svc"

	"github.com/gorilla/websocket"
	"github.com/zeromicro/go-zero/core/logx"
)

// ChatHandler upgrades /ws/chat requests and runs one session per
// connection.
func ChatHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			for _, allowed := range svcCtx.Config.CORSOrigins {
				if allowed == "*" || strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logx.Errorf("WebSocket upgrade failed: %v", err)
			return
		}
		defer conn.Close()

		l := chat.NewChatSessionLogic(r.Context(), svcCtx, conn)
		l.Run()
	}
}
