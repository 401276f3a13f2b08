package api

import (
	"fmt"

	"github.com/okibi/gateway-bridge/pkg/schema"
)

// Model is the shape the host's provider registry consumes.
type Model struct {
	ID            string   `json:"id"`
	Object        string   `json:"object"`
	OwnedBy       string   `json:"owned_by"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	ContextLength int      `json:"context_length"`
	MaxOutput     int      `json:"max_output"`
	Capabilities  []string `json:"capabilities"`
	Pricing       *Pricing `json:"pricing,omitempty"`
}

type Pricing struct {
	Prompt     string `json:"prompt"`
	Completion string `json:"completion"`
}

// FromDescriptor converts a normalized descriptor into the registry shape.
func FromDescriptor(d schema.ModelDescriptor) Model {
	m := Model{
		ID:            d.ID,
		Object:        "model",
		OwnedBy:       "gateway",
		Name:          d.Name,
		Description:   d.Description,
		ContextLength: d.ContextWindow,
		MaxOutput:     d.MaxOutput,
	}
	if d.Streaming {
		m.Capabilities = append(m.Capabilities, "streaming")
	}
	if d.Vision {
		m.Capabilities = append(m.Capabilities, "vision")
	}
	if d.ToolCalls {
		m.Capabilities = append(m.Capabilities, "tools")
	}
	if d.Pricing != nil {
		m.Pricing = &Pricing{
			Prompt:     fmt.Sprintf("%g", d.Pricing.Input),
			Completion: fmt.Sprintf("%g", d.Pricing.Output),
		}
	}
	return m
}

// FromDescriptors maps a discovery result into registry models, preserving
// backend order.
func FromDescriptors(ds []schema.ModelDescriptor) []Model {
	models := make([]Model, 0, len(ds))
	for _, d := range ds {
		models = append(models, FromDescriptor(d))
	}
	return models
}
