package modeldata

import "github.com/okibi/gateway-bridge/pkg/schema"

// DefaultCatalog is the last rung of the discovery fallback ladder: a small
// hard-coded set of well-known general-purpose models that guarantees the
// host always ends up with a usable list even when the backend is down and
// nothing has ever been cached.
func DefaultCatalog() []schema.ModelDescriptor {
	return []schema.ModelDescriptor{
		{
			ID:            "gpt-4o",
			Name:          "GPT-4o",
			Description:   "Fast, capable general-purpose multimodal model.",
			ContextWindow: 128000,
			MaxOutput:     16384,
			Streaming:     true,
			Vision:        true,
			ToolCalls:     true,
			Pricing:       &schema.ModelPricing{Input: 5, Output: 15},
		},
		{
			ID:            "gpt-4o-mini",
			Name:          "GPT-4o mini",
			Description:   "Cost-effective small model for everyday tasks.",
			ContextWindow: 128000,
			MaxOutput:     16384,
			Streaming:     true,
			Vision:        true,
			ToolCalls:     true,
			Pricing:       &schema.ModelPricing{Input: 0.15, Output: 0.6},
		},
		{
			ID:            "gpt-4-turbo",
			Name:          "GPT-4 Turbo",
			Description:   "Large-context GPT-4 generation model.",
			ContextWindow: 128000,
			MaxOutput:     4096,
			Streaming:     true,
			Vision:        true,
			ToolCalls:     true,
			Pricing:       &schema.ModelPricing{Input: 10, Output: 30},
		},
		{
			ID:            "gpt-3.5-turbo",
			Name:          "GPT-3.5 Turbo",
			Description:   "Cost-effective legacy chat model.",
			ContextWindow: 16385,
			MaxOutput:     4096,
			Streaming:     true,
			Vision:        false,
			ToolCalls:     true,
			Pricing:       &schema.ModelPricing{Input: 0.5, Output: 1.5},
		},
	}
}

// knownContextWindows enriches bare discovery entries for models whose limits
// are publicly documented but not reported by every gateway.
var knownContextWindows = map[string]int{
	"gpt-4o":            128000,
	"gpt-4o-mini":       128000,
	"gpt-4-turbo":       128000,
	"gpt-3.5-turbo":     16385,
	"deepseek-chat":     65536,
	"deepseek-reasoner": 65536,
}

// KnownContextWindow reports the documented context window for id, if any.
func KnownContextWindow(id string) (int, bool) {
	n, ok := knownContextWindows[id]
	return n, ok
}
