package main

import (
	"encoding/json"
	"strings"

	"github.com/mindmatrix/backend/internal/config"
	"github.com/mindmatrix/backend/internal/handler"
	"github.com/mindmatrix/backend/internal/store"
	"github.com/mindmatrix/backend/internal/svc"

	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/service"
	"github.com/zeromicro/go-zero/rest"
)

// restConf builds the go-zero server configuration from the settings
// snapshot, letting conf fill framework defaults for everything else.
// Timeout is disabled because WebSocket sessions are long-lived.
func restConf(c config.Settings) rest.RestConf {
	mode := service.ProMode
	if c.Debug {
		mode = service.DevMode
	}

	level := strings.ToLower(c.LogLevel)
	switch level {
	case "debug", "info", "error", "severe":
	default:
		level = "info"
	}

	doc, err := json.Marshal(map[string]any{
		"Name":    "mindmatrix-api",
		"Host":    c.Host,
		"Port":    c.Port,
		"Mode":    mode,
		"Timeout": 0,
		"Log":     map[string]any{"Level": level},
	})
	logx.Must(err)

	var rc rest.RestConf
	logx.Must(conf.LoadFromJsonBytes(doc, &rc))
	return rc
}

func main() {
	c := config.MustLoad()

	st, err := store.Open(c.DatabaseURL)
	logx.Must(err)
	defer st.Close()

	svcCtx := svc.NewServiceContext(c, st)

	server := rest.MustNewServer(restConf(c), rest.WithCors(c.CORSOrigins...))
	defer server.Stop()

	handler.RegisterHandlers(server, svcCtx)

	logx.Infof("starting Mind Matrix API at %s:%d...", c.Host, c.Port)
	server.Start()
}
