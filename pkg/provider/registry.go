package provider

import (
	"context"
	"errors"
	"fmt"
)

// ErrUpstream is the uniform failure signal for every provider. Transport
// errors, bad status codes and malformed responses all wrap it so callers
// never have to match on transport-level error types.
var ErrUpstream = errors.New("upstream service error")

// Registry manages the configured providers behind unified interfaces.
type Registry struct {
	llmProviders map[string]LLMProvider
	ttsProviders map[string]TTSProvider
}

func NewRegistry() *Registry {
	return &Registry{
		llmProviders: make(map[string]LLMProvider),
		ttsProviders: make(map[string]TTSProvider),
	}
}

// LLMProvider streams chat completions. The returned channel is closed when
// the completion finishes, the stream fails mid-flight, or ctx is cancelled;
// cancelling ctx releases the underlying HTTP response.
type LLMProvider interface {
	Name() string
	ChatStream(ctx context.Context, req *ChatRequest) (<-chan *ChatDelta, error)
}

// TTSProvider streams synthesized speech. A mid-stream upstream failure
// terminates the channel rather than surfacing an error; zero chunks is a
// valid, degraded outcome.
type TTSProvider interface {
	Name() string
	Synthesize(ctx context.Context, text string, opts *TTSOptions) (<-chan *AudioChunk, error)
}

type ChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Stream      bool      `json:"stream"`
}

type Message struct {
	Role    string `json:"role"` // system|user|assistant
	Content string `json:"content"`
}

type ChatDelta struct {
	Text         string `json:"text"`
	FinishReason string `json:"finish_reason,omitempty"`
}

type AudioChunk struct {
	Data   []byte `json:"data"`
	SeqNum int    `json:"seq_num"`
}

type TTSOptions struct {
	VoiceID      string `json:"voice_id"`
	ModelID      string `json:"model_id,omitempty"`
	OutputFormat string `json:"output_format,omitempty"`
}

func (r *Registry) RegisterLLM(name string, p LLMProvider) {
	r.llmProviders[name] = p
}

func (r *Registry) RegisterTTS(name string, p TTSProvider) {
	r.ttsProviders[name] = p
}

func (r *Registry) GetLLM(name string) (LLMProvider, error) {
	if p, ok := r.llmProviders[name]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("LLM provider '%s' not found", name)
}

func (r *Registry) GetTTS(name string) (TTSProvider, error) {
	if p, ok := r.ttsProviders[name]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("TTS provider '%s' not found", name)
}

// ProviderInfo describes a registered provider for service discovery.
type ProviderInfo struct {
	Name         string   `json:"name"`
	Type         string   `json:"type"`
	Status       string   `json:"status"`
	Capabilities []string `json:"capabilities,omitempty"`
}

// All returns information about every registered provider.
func (r *Registry) All() []ProviderInfo {
	var providers []ProviderInfo

	for name := range r.llmProviders {
		providers = append(providers, ProviderInfo{
			Name:         name,
			Type:         "llm",
			Status:       "online",
			Capabilities: []string{"chat_stream"},
		})
	}

	for name := range r.ttsProviders {
		providers = append(providers, ProviderInfo{
			Name:         name,
			Type:         "tts",
			Status:       "online",
			Capabilities: []string{"synthesize_stream"},
		})
	}

	return providers
}
