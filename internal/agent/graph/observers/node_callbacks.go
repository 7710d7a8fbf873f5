package observers

import (
	"context"
	"time"

	einocb "github.com/cloudwego/eino/callbacks"

	logx "github.com/arudraviharbommana/intelli-nlp/pkg/logger"
)

type startKey struct{}

// NewNodeCallbacks logs the lifecycle of every graph node with its duration.
func NewNodeCallbacks() einocb.Handler {
	return einocb.NewHandlerBuilder().
		OnStartFn(func(ctx context.Context, info *einocb.RunInfo, _ einocb.CallbackInput) context.Context {
			logx.Debug().Str("node", info.Name).Str("type", info.Type).Msg("node start")
			return context.WithValue(ctx, startKey{}, time.Now())
		}).
		OnEndFn(func(ctx context.Context, info *einocb.RunInfo, _ einocb.CallbackOutput) context.Context {
			e := logx.Debug().Str("node", info.Name)
			if started, ok := ctx.Value(startKey{}).(time.Time); ok {
				e = e.Dur("took", time.Since(started))
			}
			e.Msg("node end")
			return ctx
		}).
		OnErrorFn(func(ctx context.Context, info *einocb.RunInfo, err error) context.Context {
			logx.Error().Err(err).Str("node", info.Name).Str("type", info.Type).Msg("node failed")
			return ctx
		}).
		Build()
}
