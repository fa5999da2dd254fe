// Package llm provides the Gemini client and model configuration used for
// text generation.
package llm

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for short rewrites such as a three-sentence summary
	TierLite ModelTier = "lite"
	// TierStandard is the default for generation requests
	TierStandard ModelTier = "standard"
	// TierAdvanced is for longer rewrites when quality matters more than latency
	TierAdvanced ModelTier = "advanced"
)

// Provider represents an LLM provider
type Provider string

// ProviderGemini is the Google Gemini provider
const ProviderGemini Provider = "gemini"

// DefaultTemperature keeps generated CV text close to the prompt while
// still varying wording between requests.
const DefaultTemperature float32 = 0.7

// Config holds the model configuration for the application
type Config struct {
	Provider    Provider
	Models      map[ModelTier]string
	Temperature float32
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return DefaultGeminiConfig()
}

// DefaultGeminiConfig returns the default Gemini configuration
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
		Temperature: DefaultTemperature,
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: try standard, then lite
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

// WithModel returns a new Config with a specific model for a tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	next := c.clone()
	next.Models[tier] = model
	return next
}

// WithTemperature returns a new Config using the given sampling temperature
func (c *Config) WithTemperature(temperature float32) *Config {
	next := c.clone()
	next.Temperature = temperature
	return next
}

func (c *Config) clone() *Config {
	next := &Config{
		Provider:    c.Provider,
		Models:      make(map[ModelTier]string, len(c.Models)),
		Temperature: c.Temperature,
	}
	for k, v := range c.Models {
		next.Models[k] = v
	}
	return next
}
