// Package ports defines the interfaces through which the application talks
// to injected collaborators. The analysis core depends on none of them.
package ports

// RequestEntry is one structured record of a handled HTTP request.
type RequestEntry struct {
	RequestID string                 `json:"request_id"`
	Endpoint  string                 `json:"endpoint"`
	Status    int                    `json:"status"`
	LatencyMS float64                `json:"latency_ms"`
	Extra     map[string]interface{} `json:"extra,omitempty"`
}

// RequestLogger records request entries as a pure side effect. Implementations
// must be safe for concurrent use by multiple handlers.
type RequestLogger interface {
	LogRequest(entry RequestEntry)
}

// NopRequestLogger discards all entries.
type NopRequestLogger struct{}

func (NopRequestLogger) LogRequest(RequestEntry) {}
