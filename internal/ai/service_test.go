package ai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mindmatrix/backend/internal/config"
	"github.com/mindmatrix/backend/pkg/provider"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLLM struct {
	calls     int
	lastReq   *provider.ChatRequest
	fragments []string
	err       error
}

func (f *fakeLLM) Name() string { return "fake-llm" }

func (f *fakeLLM) ChatStream(ctx context.Context, req *provider.ChatRequest) (<-chan *provider.ChatDelta, error) {
	f.calls++
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	ch := make(chan *provider.ChatDelta, len(f.fragments))
	for _, text := range f.fragments {
		ch <- &provider.ChatDelta{Text: text}
	}
	close(ch)
	return ch, nil
}

type fakeTTS struct {
	calls  int
	chunks [][]byte
	err    error
}

func (f *fakeTTS) Name() string { return "fake-tts" }

func (f *fakeTTS) Synthesize(ctx context.Context, text string, opts *provider.TTSOptions) (<-chan *provider.AudioChunk, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	ch := make(chan *provider.AudioChunk, len(f.chunks))
	for i, data := range f.chunks {
		ch <- &provider.AudioChunk{Data: data, SeqNum: i}
	}
	close(ch)
	return ch, nil
}

func newTestService(llm provider.LLMProvider, tts provider.TTSProvider) *Service {
	cfg := config.Settings{
		AIModel:          "test-model",
		AITemperature:    0.7,
		AIMaxTokens:      256,
		VoiceID:          "voice-1",
		MaxMessageLength: 40,
		MaxHistoryLength: 4,
	}
	registry := provider.NewRegistry()
	registry.RegisterLLM("groq", llm)
	registry.RegisterTTS("elevenlabs", tts)
	return NewService(cfg, registry)
}

func TestSanitize(t *testing.T) {
	s := newTestService(&fakeLLM{}, &fakeTTS{})

	t.Run("trims", func(t *testing.T) {
		got, err := s.Sanitize("  hello  ")
		require.NoError(t, err)
		assert.Equal(t, "hello", got)
	})

	t.Run("idempotent", func(t *testing.T) {
		once, err := s.Sanitize("  hello world  ")
		require.NoError(t, err)
		twice, err := s.Sanitize(once)
		require.NoError(t, err)
		assert.Equal(t, once, twice)
	})

	t.Run("empty is an error", func(t *testing.T) {
		_, err := s.Sanitize("   \t\n ")
		assert.ErrorIs(t, err, ErrEmptyInput)
	})

	t.Run("truncates to max length", func(t *testing.T) {
		long := strings.Repeat("x", 100)
		got, err := s.Sanitize(long)
		require.NoError(t, err)
		assert.Len(t, got, 40)
		assert.Equal(t, long[:40], got)
	})
}

func TestBuildMessages(t *testing.T) {
	s := newTestService(&fakeLLM{}, &fakeTTS{})

	history := []provider.Message{
		{Role: "user", Content: "one"},
		{Role: "assistant", Content: "two"},
		{Role: "user", Content: "three"},
		{Role: "assistant", Content: "four"},
		{Role: "user", Content: "five"},
		{Role: "assistant", Content: "six"},
	}

	messages := s.buildMessages("current", history)

	// system + capped history + current user turn
	require.Len(t, messages, s.cfg.MaxHistoryLength+2)
	assert.Equal(t, "system", messages[0].Role)
	assert.Contains(t, messages[0].Content, "Mind Matrix")
	assert.Equal(t, provider.Message{Role: "user", Content: "current"}, messages[len(messages)-1])
	// most recent turns are kept
	assert.Equal(t, "three", messages[1].Content)
}

func TestBuildMessagesShortHistory(t *testing.T) {
	s := newTestService(&fakeLLM{}, &fakeTTS{})

	messages := s.buildMessages("hi", nil)
	require.Len(t, messages, 2)
	assert.Equal(t, "system", messages[0].Role)
	assert.Equal(t, "user", messages[1].Role)
}

func TestRespond(t *testing.T) {
	llm := &fakeLLM{fragments: []string{"Hel", "lo", "", "!"}}
	s := newTestService(llm, &fakeTTS{})

	stream, err := s.Respond(context.Background(), "hi", nil)
	require.NoError(t, err)

	var full strings.Builder
	for fragment := range stream {
		full.WriteString(fragment)
	}
	assert.Equal(t, "Hello!", full.String())

	require.NotNil(t, llm.lastReq)
	assert.Equal(t, "test-model", llm.lastReq.Model)
	assert.True(t, llm.lastReq.Stream)
	assert.Equal(t, "hi", llm.lastReq.Messages[len(llm.lastReq.Messages)-1].Content)
}

func TestRespondEmptyInputNeverCallsProvider(t *testing.T) {
	llm := &fakeLLM{fragments: []string{"unused"}}
	s := newTestService(llm, &fakeTTS{})

	_, err := s.Respond(context.Background(), "   ", nil)
	assert.ErrorIs(t, err, ErrEmptyInput)
	assert.Zero(t, llm.calls)
}

func TestRespondUpstreamFailure(t *testing.T) {
	llm := &fakeLLM{err: provider.ErrUpstream}
	s := newTestService(llm, &fakeTTS{})

	_, err := s.Respond(context.Background(), "hi", nil)
	assert.ErrorIs(t, err, provider.ErrUpstream)
}

func TestSpeak(t *testing.T) {
	tts := &fakeTTS{chunks: [][]byte{[]byte("aa"), []byte("bb")}}
	s := newTestService(&fakeLLM{}, tts)

	stream, err := s.Speak(context.Background(), "hello")
	require.NoError(t, err)

	var got []byte
	for chunk := range stream {
		got = append(got, chunk...)
	}
	assert.Equal(t, []byte("aabb"), got)
	assert.Equal(t, 1, tts.calls)
}

func TestSpeakEmptyTextSkipsProvider(t *testing.T) {
	tts := &fakeTTS{chunks: [][]byte{[]byte("unused")}}
	s := newTestService(&fakeLLM{}, tts)

	for _, input := range []string{"", "   ", "\n\t"} {
		stream, err := s.Speak(context.Background(), input)
		require.NoError(t, err)

		count := 0
		for range stream {
			count++
		}
		assert.Zero(t, count)
	}
	assert.Zero(t, tts.calls)
}

func TestSpeakUpstreamFailure(t *testing.T) {
	tts := &fakeTTS{err: errors.New("synthesis exploded")}
	s := newTestService(&fakeLLM{}, tts)

	_, err := s.Speak(context.Background(), "hello")
	assert.Error(t, err)
}
