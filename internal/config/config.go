package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/zeromicro/go-zero/core/logx"
)

// Settings is the immutable runtime configuration snapshot. It is created
// once at startup and shared read-only by every component.
type Settings struct {
	// API credentials (required)
	GrokAPIKey       string
	ElevenLabsAPIKey string

	// Server
	Host  string
	Port  int
	Debug bool

	// Database
	DatabaseURL string

	// AI model
	AIModel       string
	AIBaseURL     string
	AITemperature float64
	AIMaxTokens   int

	// Audio
	VoiceID     string
	AudioModel  string
	AudioFormat string

	// WebSocket
	HeartbeatInterval time.Duration

	// Rate limiting
	MaxMessageLength int
	MaxHistoryLength int

	// CORS
	CORSOrigins []string

	// Logging
	LogLevel string
}

// Load reads settings from the environment, applying documented defaults.
// A .env file in the working directory is honored when present. Safe to
// call repeatedly; it has no side effects beyond reading the environment.
func Load() Settings {
	_ = godotenv.Load()

	return Settings{
		GrokAPIKey:       os.Getenv("GROK_API_KEY"),
		ElevenLabsAPIKey: os.Getenv("ELEVENLABS_API_KEY"),

		Host:  envString("HOST", "0.0.0.0"),
		Port:  envInt("PORT", 8000),
		Debug: envBool("DEBUG", true),

		DatabaseURL: envString("DATABASE_URL", "mindmatrix.db"),

		AIModel:       envString("AI_MODEL", "llama-3.3-70b-versatile"),
		AIBaseURL:     envString("AI_BASE_URL", "https://api.groq.com/openai/v1"),
		AITemperature: envFloat("AI_TEMPERATURE", 0.7),
		AIMaxTokens:   envInt("AI_MAX_TOKENS", 2048),

		VoiceID:     envString("VOICE_ID", "21m00Tcm4TlvDq8ikWAM"),
		AudioModel:  envString("AUDIO_MODEL", "eleven_multilingual_v2"),
		AudioFormat: envString("AUDIO_FORMAT", "mp3_44100_128"),

		HeartbeatInterval: time.Duration(envInt("WS_HEARTBEAT_INTERVAL", 30)) * time.Second,

		MaxMessageLength: envInt("MAX_MESSAGE_LENGTH", 4000),
		MaxHistoryLength: envInt("MAX_HISTORY_LENGTH", 50),

		CORSOrigins: strings.Split(envString("CORS_ORIGINS", "*"), ","),

		LogLevel: envString("LOG_LEVEL", "info"),
	}
}

// Validate reports whether the settings are complete enough to start the
// server, with an ordered list of problems when they are not.
func (s Settings) Validate() (bool, []string) {
	var problems []string

	if s.GrokAPIKey == "" {
		problems = append(problems, "GROK_API_KEY is not set in environment variables")
	}
	if s.ElevenLabsAPIKey == "" {
		problems = append(problems, "ELEVENLABS_API_KEY is not set in environment variables")
	}

	return len(problems) == 0, problems
}

// MustLoad loads settings and exits the process when required credentials
// are missing. Invalid configuration is fatal before the listener binds.
func MustLoad() Settings {
	s := Load()
	if ok, problems := s.Validate(); !ok {
		fmt.Fprintln(os.Stderr, "configuration errors:")
		for _, p := range problems {
			fmt.Fprintf(os.Stderr, "  - %s\n", p)
		}
		os.Exit(1)
	}
	return s
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logx.Errorf("invalid value for %s: %q, using default %d", key, v, def)
		return def
	}
	return n
}

func envFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		logx.Errorf("invalid value for %s: %q, using default %g", key, v, def)
		return def
	}
	return f
}

func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return strings.EqualFold(v, "true") || v == "1"
}
