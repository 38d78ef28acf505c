package svc

import (
	"github.com/mindmatrix/backend/internal/ai"
	"github.com/mindmatrix/backend/internal/config"
	"github.com/mindmatrix/backend/internal/store"
	"github.com/mindmatrix/backend/internal/ws"
	"github.com/mindmatrix/backend/pkg/provider"
)

type ServiceContext struct {
	Config   config.Settings
	Registry *provider.Registry
	AI       *ai.Service
	Manager  *ws.Manager
	Store    *store.Store
}

func NewServiceContext(c config.Settings, st *store.Store) *ServiceContext {
	registry := provider.NewRegistry()
	registry.RegisterLLM("groq", provider.NewGroqProvider(c.GrokAPIKey, c.AIBaseURL))
	registry.RegisterTTS("elevenlabs", provider.NewElevenLabsProvider(c.ElevenLabsAPIKey))

	return &ServiceContext{
		Config:   c,
		Registry: registry,
		AI:       ai.NewService(c, registry),
		Manager:  ws.NewManager(),
		Store:    st,
	}
}
