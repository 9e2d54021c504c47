package llm

import "context"

// TextGenerator is the interface for LLM text completion. Journal analysis
// uses single-string completion style (not chat history).
type TextGenerator interface {
	Complete(ctx context.Context, prompt string) (string, error)
	GetModel() string
}
