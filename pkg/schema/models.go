package schema

import "fmt"

// Capability defaults applied when the backend omits a field. A descriptor is
// only ever rejected for a missing ID; everything else is synthesized.
const (
	DefaultContextWindow = 4096
	DefaultMaxOutput     = 4096
)

// ModelDescriptor is the normalized record for one model served by the
// backend gateway.
type ModelDescriptor struct {
	ID            string        `json:"id" yaml:"id"`
	Name          string        `json:"name" yaml:"name"`
	Description   string        `json:"description" yaml:"description"`
	ContextWindow int           `json:"context_window" yaml:"context_window"`
	MaxOutput     int           `json:"max_output" yaml:"max_output"`
	Streaming     bool          `json:"streaming" yaml:"streaming"`
	Vision        bool          `json:"vision" yaml:"vision"`
	ToolCalls     bool          `json:"tool_calls" yaml:"tool_calls"`
	Pricing       *ModelPricing `json:"pricing,omitempty" yaml:"pricing,omitempty"`
}

// ModelPricing holds per-token costs. Units follow the backend's convention
// (cost per 1M tokens).
type ModelPricing struct {
	Input  float64 `json:"input" yaml:"input"`
	Output float64 `json:"output" yaml:"output"`
}

// NewModelDescriptor builds a descriptor for the given id with every optional
// capability set to its default.
func NewModelDescriptor(id string) ModelDescriptor {
	return ModelDescriptor{
		ID:            id,
		Name:          id,
		Description:   fmt.Sprintf("Model %s provided by the configured gateway", id),
		ContextWindow: DefaultContextWindow,
		MaxOutput:     DefaultMaxOutput,
		Streaming:     true,
		Vision:        false,
		ToolCalls:     true,
	}
}
