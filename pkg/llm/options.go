package llm

// Options contains model inference parameters. Nil fields fall back to the
// provider's defaults.
type Options struct {
	Temperature *float64 `json:"temperature,omitempty"` // Creativity (0.0-2.0)
	TopP        *float64 `json:"top_p,omitempty"`       // Nucleus sampling threshold
	MaxTokens   *int     `json:"max_tokens,omitempty"`  // Max tokens to generate
}
