package types

// Version reported by the liveness endpoint.
const Version = "2.0.0"

// RootResponse is the GET / liveness payload.
type RootResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}

// HealthResponse is the GET /health payload.
type HealthResponse struct {
	Status            string            `json:"status"`
	Services          map[string]string `json:"services,omitempty"`
	ActiveConnections int               `json:"active_connections"`
	Error             string            `json:"error,omitempty"`
	Timestamp         string            `json:"timestamp"`
}

// ProviderInfo describes one registered upstream provider.
type ProviderInfo struct {
	Name         string   `json:"name"`
	Type         string   `json:"type"`
	Status       string   `json:"status"`
	Capabilities []string `json:"capabilities,omitempty"`
}

// ServiceListResponse is the GET /api/services payload.
type ServiceListResponse struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Data    []ProviderInfo `json:"data"`
}
