package llm

import (
	"fmt"

	"github.com/scrypster/inkwell/internal/config"
)

// NewAnalyzerFromConfig creates an Analyzer for the configured provider.
// Provider "none" (or empty) returns (nil, nil): enrichment then runs purely
// on the local heuristic classifier.
func NewAnalyzerFromConfig(cfg config.LLMConfig) (*Analyzer, error) {
	switch cfg.Provider {
	case "none", "":
		return nil, nil
	case "ollama":
		return NewAnalyzer(NewOllamaClient(OllamaConfig{
			BaseURL: cfg.OllamaURL,
			Model:   cfg.OllamaModel,
		})), nil
	case "openai":
		return NewAnalyzer(NewOpenAIClient(OpenAIConfig{
			APIKey: cfg.OpenAIAPIKey,
			Model:  cfg.OpenAIModel,
		})), nil
	default:
		return nil, fmt.Errorf("unsupported analysis provider: %q", cfg.Provider)
	}
}
