// Package llm provides the wire representation of text-generation API
// requests and responses, plus the HTTP client that issues them.
package llm

// Generation settings are fixed in this design and are not exposed to
// the user.
const (
	DefaultMaxNewTokens = 200
	DefaultTemperature  = 0.7
)

// Parameters contains model inference parameters.
type Parameters struct {
	MaxNewTokens int     `json:"max_new_tokens"` // Max tokens to generate
	Temperature  float64 `json:"temperature"`    // Sampling randomness
}

// GenerateRequest is a text-generation request (Hugging Face
// Inference-compatible).
type GenerateRequest struct {
	Inputs     string     `json:"inputs"`     // The prompt
	Parameters Parameters `json:"parameters"` // Generation options
}
