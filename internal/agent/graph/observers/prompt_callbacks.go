package observers

import (
	"context"

	einocb "github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components/prompt"
	callbackHelper "github.com/cloudwego/eino/utils/callbacks"

	logx "github.com/arudraviharbommana/intelli-nlp/pkg/logger"
)

// newPromptHandler logs template rendering. Every composed reply fragment is
// rendered through the prompt component, so this sees each of them.
func newPromptHandler() *callbackHelper.PromptCallbackHandler {
	return &callbackHelper.PromptCallbackHandler{
		OnStart: func(ctx context.Context, info *einocb.RunInfo, input *prompt.CallbackInput) context.Context {
			e := logx.Debug().Str("component", string(info.Component)).Str("name", info.Name)
			if input != nil {
				e = e.Int("variables", len(input.Variables))
			}
			e.Msg("template render start")
			return ctx
		},
		OnEnd: func(ctx context.Context, info *einocb.RunInfo, output *prompt.CallbackOutput) context.Context {
			e := logx.Debug().Str("name", info.Name)
			if output != nil && len(output.Result) > 0 && output.Result[0] != nil {
				e = e.Int("rendered_len", len(output.Result[0].Content))
			}
			e.Msg("template render end")
			return ctx
		},
		OnError: func(ctx context.Context, info *einocb.RunInfo, err error) context.Context {
			logx.Warn().Err(err).Str("name", info.Name).Msg("template render failed")
			return ctx
		},
	}
}

// NewPromptCallbacks constructs a callbacks.Handler for prompt lifecycle events.
func NewPromptCallbacks() einocb.Handler {
	return callbackHelper.NewHandlerHelper().
		Prompt(newPromptHandler()).
		Handler()
}
