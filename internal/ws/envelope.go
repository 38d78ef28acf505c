package ws

import "time"

// Envelope types sent to the client. Every server-to-client frame is a JSON
// object carrying one of these discriminators.
const (
	TypeSystem   = "system"
	TypeText     = "text"
	TypeAudio    = "audio"
	TypeAudioEnd = "audio_end"
	TypeWarning  = "warning"
	TypeError    = "error"
	TypePing     = "ping"
)

// Envelope is the unit sent to a client over the WebSocket.
type Envelope struct {
	Type      string `json:"type"`
	Content   string `json:"content,omitempty"`
	Error     string `json:"error,omitempty"`
	Details   string `json:"details,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func SystemMessage(content string) *Envelope {
	return &Envelope{Type: TypeSystem, Content: content, Timestamp: now()}
}

func TextMessage(content string) *Envelope {
	return &Envelope{Type: TypeText, Content: content, Timestamp: now()}
}

// AudioChunkMessage carries one base64-encoded audio chunk.
func AudioChunkMessage(encoded string) *Envelope {
	return &Envelope{Type: TypeAudio, Content: encoded}
}

func AudioEndMessage() *Envelope {
	return &Envelope{Type: TypeAudioEnd}
}

func WarningMessage(content string) *Envelope {
	return &Envelope{Type: TypeWarning, Content: content}
}

func ErrorMessage(errMsg, details string) *Envelope {
	return &Envelope{Type: TypeError, Error: errMsg, Details: details, Timestamp: now()}
}

func PingMessage() *Envelope {
	return &Envelope{Type: TypePing}
}
