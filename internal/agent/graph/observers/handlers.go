package observers

import (
	einocb "github.com/cloudwego/eino/callbacks"
)

// NewAllCallbacks returns every observer handler, ready for compose.WithCallbacks.
func NewAllCallbacks() []einocb.Handler {
	return []einocb.Handler{
		NewNodeCallbacks(),
		NewPromptCallbacks(),
	}
}
