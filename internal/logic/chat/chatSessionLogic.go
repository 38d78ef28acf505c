package chat

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/mindmatrix/backend/internal/svc"
	"github.com/mindmatrix/backend/internal/ws"
	"github.com/mindmatrix/backend/pkg/provider"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/zeromicro/go-zero/core/logx"
)

const welcomeMessage = "Connected to Mind Matrix. How can I help you today?"

// ChatSessionLogic owns the lifecycle of one WebSocket chat session: the
// receive loop, the heartbeat, per-connection chat history and streaming of
// completion text and synthesized audio back to the client.
type ChatSessionLogic struct {
	logx.Logger
	ctx    context.Context
	cancel context.CancelFunc
	svcCtx *svc.ServiceContext
	conn   *websocket.Conn
	sid    string

	// history is scoped to this connection and discarded on close.
	history []provider.Message
}

func NewChatSessionLogic(ctx context.Context, svcCtx *svc.ServiceContext, conn *websocket.Conn) *ChatSessionLogic {
	ctx, cancel := context.WithCancel(ctx)
	return &ChatSessionLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		cancel: cancel,
		svcCtx: svcCtx,
		conn:   conn,
		sid:    uuid.NewString(),
	}
}

// Run drives the session until the client disconnects or the transport
// fails. Teardown cancels and joins the heartbeat before unregistering, so
// no ping can race the closing socket.
func (l *ChatSessionLogic) Run() {
	manager := l.svcCtx.Manager
	manager.Register(l.conn)

	heartbeatDone := make(chan struct{})
	go l.heartbeat(heartbeatDone)

	defer func() {
		l.cancel()
		<-heartbeatDone
		manager.Unregister(l.conn)
		l.Infof("session %s ended, messages: %d", l.sid, len(l.history))
	}()

	l.Infof("chat session %s started", l.sid)
	manager.TrySend(l.conn, ws.SystemMessage(welcomeMessage))

	for {
		_, data, err := l.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				l.Errorf("session %s: receive error: %v", l.sid, err)
			}
			return
		}

		userInput := strings.TrimSpace(string(data))
		if userInput == "" {
			manager.SendError(l.conn, "Empty message received", "")
			continue
		}

		// Reject rather than truncate here: the client gets an actionable
		// error instead of a silently shortened message.
		if len(userInput) > l.svcCtx.Config.MaxMessageLength {
			manager.SendError(l.conn, "Message too long",
				fmt.Sprintf("Maximum length is %d characters", l.svcCtx.Config.MaxMessageLength))
			continue
		}

		l.handleTurn(userInput)
	}
}

// handleTurn processes one user message: completion first, then speech for
// the finished reply. The user turn stays in history even when the
// assistant fails to answer.
func (l *ChatSessionLogic) handleTurn(userInput string) {
	manager := l.svcCtx.Manager

	l.history = append(l.history, provider.Message{Role: "user", Content: userInput})

	fragments, err := l.svcCtx.AI.Respond(l.ctx, userInput, l.history[:len(l.history)-1])
	if err != nil {
		l.Errorf("session %s: completion failed: %v", l.sid, err)
		manager.SendError(l.conn, "AI service unavailable", "Could not generate response. Please try again.")
		return
	}

	var full strings.Builder
	for fragment := range fragments {
		full.WriteString(fragment)
	}

	fullText := full.String()
	if fullText == "" {
		manager.SendError(l.conn, "Empty response from AI", "")
		return
	}

	manager.TrySend(l.conn, ws.TextMessage(fullText))
	l.history = append(l.history, provider.Message{Role: "assistant", Content: fullText})
	l.Infof("session %s: sent response (%d characters)", l.sid, len(fullText))

	l.streamAudio(fullText)
}

// streamAudio synthesizes speech for the reply and streams base64 chunks.
// A synthesis failure degrades to a warning; the text reply already sent is
// never discarded.
func (l *ChatSessionLogic) streamAudio(fullText string) {
	manager := l.svcCtx.Manager

	audio, err := l.svcCtx.AI.Speak(l.ctx, fullText)
	if err != nil {
		l.Errorf("session %s: audio generation error: %v", l.sid, err)
		manager.TrySend(l.conn, ws.WarningMessage("Audio generation failed, but text response is available"))
		return
	}

	chunkCount := 0
	for chunk := range audio {
		encoded := base64.StdEncoding.EncodeToString(chunk)
		manager.TrySend(l.conn, ws.AudioChunkMessage(encoded))
		chunkCount++
	}

	manager.TrySend(l.conn, ws.AudioEndMessage())
	l.Infof("session %s: audio streaming completed, %d chunks", l.sid, chunkCount)
}

// heartbeat pings the client at the configured interval until the session
// context is cancelled. It fires independently of message traffic; writes
// are serialized per connection by the manager.
func (l *ChatSessionLogic) heartbeat(done chan<- struct{}) {
	defer close(done)

	interval := l.svcCtx.Config.HeartbeatInterval
	if interval <= 0 {
		interval = 30 * time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-l.ctx.Done():
			return
		case <-ticker.C:
			if l.svcCtx.Manager.Contains(l.conn) {
				l.svcCtx.Manager.TrySend(l.conn, ws.PingMessage())
			}
		}
	}
}
