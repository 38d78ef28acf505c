package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/zeromicro/go-zero/core/logx"
)

// ElevenLabs rejects texts above this length outright; the provider
// truncates to a shorter bound with a marker instead of failing the call.
const (
	ttsMaxTextLength      = 5000
	ttsTruncatedLength    = 4900
	ttsTruncationMarker   = "..."
	ttsStreamChunkSize    = 4096
	defaultElevenLabsBase = "https://api.elevenlabs.io"
)

type ElevenLabsProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewElevenLabsProvider(apiKey string) *ElevenLabsProvider {
	return &ElevenLabsProvider{
		apiKey:     apiKey,
		baseURL:    defaultElevenLabsBase,
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}
}

// NewElevenLabsProviderWithBaseURL exists for tests pointing at a fake server.
func NewElevenLabsProviderWithBaseURL(apiKey, baseURL string) *ElevenLabsProvider {
	p := NewElevenLabsProvider(apiKey)
	p.baseURL = strings.TrimSuffix(baseURL, "/")
	return p
}

func (p *ElevenLabsProvider) Name() string {
	return "elevenlabs"
}

type elevenLabsRequest struct {
	Text    string `json:"text"`
	ModelID string `json:"model_id,omitempty"`
}

// Synthesize streams synthesized speech for text as opaque binary chunks.
// Chunk boundaries carry no semantic meaning. A failure before the stream is
// established wraps ErrUpstream; a failure mid-stream closes the channel
// early, so consumers must treat zero chunks as a valid degraded outcome.
func (p *ElevenLabsProvider) Synthesize(ctx context.Context, text string, opts *TTSOptions) (<-chan *AudioChunk, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: empty text", ErrUpstream)
	}

	if len(text) > ttsMaxTextLength {
		logx.Infof("elevenlabs: text too long for TTS (%d chars), truncating", len(text))
		text = text[:ttsTruncatedLength] + ttsTruncationMarker
	}

	if opts == nil {
		opts = &TTSOptions{}
	}

	reqBody, err := json.Marshal(&elevenLabsRequest{
		Text:    text,
		ModelID: opts.ModelID,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: marshal request: %v", ErrUpstream, err)
	}

	endpoint := fmt.Sprintf("%s/v1/text-to-speech/%s/stream", p.baseURL, url.PathEscape(opts.VoiceID))
	if opts.OutputFormat != "" {
		endpoint += "?output_format=" + url.QueryEscape(opts.OutputFormat)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", ErrUpstream, err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("xi-api-key", p.apiKey)

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("%w: status %d: %s", ErrUpstream, resp.StatusCode, string(body))
	}

	resultChan := make(chan *AudioChunk, 10)

	go func() {
		defer resp.Body.Close()
		defer close(resultChan)

		seqNum := 0
		buf := make([]byte, ttsStreamChunkSize)
		for {
			n, err := resp.Body.Read(buf)
			if n > 0 {
				chunk := &AudioChunk{
					Data:   append([]byte(nil), buf[:n]...),
					SeqNum: seqNum,
				}
				seqNum++

				select {
				case resultChan <- chunk:
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				if err != io.EOF {
					logx.Errorf("elevenlabs: stream reading error: %v", err)
				}
				return
			}
		}
	}()

	return resultChan, nil
}
