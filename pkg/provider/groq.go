package provider

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/zeromicro/go-zero/core/logx"
)

// GroqProvider talks to an OpenAI-compatible chat completions endpoint over
// SSE. Groq hosts the default deployment but any compatible base URL works.
type GroqProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewGroqProvider(apiKey, baseURL string) *GroqProvider {
	return &GroqProvider{
		apiKey:  apiKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

func (p *GroqProvider) Name() string {
	return "groq"
}

// OpenAI-compatible wire structures.
type groqChatResponse struct {
	ID      string       `json:"id"`
	Object  string       `json:"object"`
	Created int64        `json:"created"`
	Model   string       `json:"model"`
	Choices []groqChoice `json:"choices"`
}

type groqChoice struct {
	Index        int      `json:"index"`
	Delta        *Message `json:"delta,omitempty"`
	Message      *Message `json:"message,omitempty"`
	FinishReason string   `json:"finish_reason,omitempty"`
}

// ChatStream requests a streaming completion and returns a channel of
// incremental deltas. Any failure before the stream is established wraps
// ErrUpstream; failures mid-stream close the channel.
func (p *GroqProvider) ChatStream(ctx context.Context, req *ChatRequest) (<-chan *ChatDelta, error) {
	if len(req.Messages) == 0 {
		return nil, fmt.Errorf("%w: empty message list", ErrUpstream)
	}

	wireReq := *req
	wireReq.Stream = true

	reqBody, err := json.Marshal(&wireReq)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal request: %v", ErrUpstream, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", ErrUpstream, err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	httpReq.Header.Set("Accept", "text/event-stream")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("%w: status %d: %s", ErrUpstream, resp.StatusCode, string(body))
	}

	deltaStream := make(chan *ChatDelta, 100)

	go func() {
		defer resp.Body.Close()
		defer close(deltaStream)

		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			line := scanner.Text()

			if line == "" || strings.HasPrefix(line, ":") {
				continue
			}

			if !strings.HasPrefix(line, "data: ") {
				continue
			}
			data := strings.TrimPrefix(line, "data: ")

			if data == "[DONE]" {
				return
			}

			var streamResp groqChatResponse
			if err := json.Unmarshal([]byte(data), &streamResp); err != nil {
				logx.Errorf("groq: failed to parse stream data: %v", err)
				continue
			}

			if len(streamResp.Choices) == 0 {
				continue
			}

			choice := streamResp.Choices[0]
			delta := &ChatDelta{FinishReason: choice.FinishReason}
			if choice.Delta != nil {
				delta.Text = choice.Delta.Content
			}

			select {
			case deltaStream <- delta:
			case <-ctx.Done():
				return
			}
		}

		if err := scanner.Err(); err != nil {
			logx.Errorf("groq: stream reading error: %v", err)
		}
	}()

	return deltaStream, nil
}
