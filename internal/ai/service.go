// Package ai composes the completion and speech providers behind a single
// orchestration service. Provider failures are converted into uniform error
// signals here so the session handler never sees transport-level errors.
package ai

import (
	"context"
	"errors"
	"strings"

	"github.com/mindmatrix/backend/internal/config"
	"github.com/mindmatrix/backend/pkg/provider"

	"github.com/zeromicro/go-zero/core/logx"
)

// ErrEmptyInput is returned by Sanitize for empty or whitespace-only input.
var ErrEmptyInput = errors.New("input text cannot be empty")

const systemPrompt = "You are Mind Matrix, an advanced AI assistant with empathetic intelligence. " +
	"Provide thoughtful, helpful, and accurate responses. Be conversational yet professional. " +
	"Keep responses concise but complete. If you're unsure, acknowledge it honestly."

const (
	llmProviderName = "groq"
	ttsProviderName = "elevenlabs"
)

// Service is stateless between calls; it holds only the configured provider
// registry and the settings snapshot.
type Service struct {
	registry *provider.Registry
	cfg      config.Settings
}

func NewService(cfg config.Settings, registry *provider.Registry) *Service {
	return &Service{
		registry: registry,
		cfg:      cfg,
	}
}

// Sanitize trims input and enforces the configured maximum message length.
// Oversized input is truncated silently; empty input is an error.
func (s *Service) Sanitize(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", ErrEmptyInput
	}

	if len(input) > s.cfg.MaxMessageLength {
		logx.Infof("input truncated from %d to %d characters", len(input), s.cfg.MaxMessageLength)
		input = input[:s.cfg.MaxMessageLength]
	}

	return input, nil
}

// buildMessages prepends the system prompt, appends the most recent
// MaxHistoryLength turns of history, and ends with the current user turn.
func (s *Service) buildMessages(userInput string, history []provider.Message) []provider.Message {
	messages := make([]provider.Message, 0, len(history)+2)
	messages = append(messages, provider.Message{
		Role:    "system",
		Content: systemPrompt,
	})

	if len(history) > s.cfg.MaxHistoryLength {
		history = history[len(history)-s.cfg.MaxHistoryLength:]
	}
	messages = append(messages, history...)

	messages = append(messages, provider.Message{
		Role:    "user",
		Content: userInput,
	})

	return messages
}

// Respond sanitizes userInput, builds the message context and requests a
// streaming completion. Concatenating the returned fragments in order yields
// the full reply. Validation and upstream failures both surface as a single
// error so the session can treat "no response" as one recoverable condition.
func (s *Service) Respond(ctx context.Context, userInput string, history []provider.Message) (<-chan string, error) {
	userInput, err := s.Sanitize(userInput)
	if err != nil {
		return nil, err
	}

	llm, err := s.registry.GetLLM(llmProviderName)
	if err != nil {
		return nil, err
	}

	logx.Infof("requesting AI completion (input length: %d)", len(userInput))

	deltaStream, err := llm.ChatStream(ctx, &provider.ChatRequest{
		Model:       s.cfg.AIModel,
		Messages:    s.buildMessages(userInput, history),
		Temperature: s.cfg.AITemperature,
		MaxTokens:   s.cfg.AIMaxTokens,
		Stream:      true,
	})
	if err != nil {
		logx.Errorf("completion request failed: %v", err)
		return nil, err
	}

	fragments := make(chan string, 100)
	go func() {
		defer close(fragments)
		for delta := range deltaStream {
			if delta == nil || delta.Text == "" {
				continue
			}
			select {
			case fragments <- delta.Text:
			case <-ctx.Done():
				return
			}
		}
	}()

	return fragments, nil
}

// Speak streams synthesized audio for text. Empty input yields a closed
// channel immediately without invoking the speech provider. An error is
// only returned when the synthesis call itself cannot be established.
func (s *Service) Speak(ctx context.Context, text string) (<-chan []byte, error) {
	if strings.TrimSpace(text) == "" {
		logx.Info("empty text provided for TTS, skipping")
		empty := make(chan []byte)
		close(empty)
		return empty, nil
	}

	tts, err := s.registry.GetTTS(ttsProviderName)
	if err != nil {
		return nil, err
	}

	logx.Infof("generating TTS for %d characters", len(text))

	chunkStream, err := tts.Synthesize(ctx, text, &provider.TTSOptions{
		VoiceID:      s.cfg.VoiceID,
		ModelID:      s.cfg.AudioModel,
		OutputFormat: s.cfg.AudioFormat,
	})
	if err != nil {
		logx.Errorf("speech synthesis request failed: %v", err)
		return nil, err
	}

	audio := make(chan []byte, 10)
	go func() {
		defer close(audio)
		for chunk := range chunkStream {
			if chunk == nil || len(chunk.Data) == 0 {
				continue
			}
			select {
			case audio <- chunk.Data:
			case <-ctx.Done():
				return
			}
		}
	}()

	return audio, nil
}
