package nodes

import (
	"context"

	"github.com/cloudwego/eino/compose"

	"github.com/arudraviharbommana/intelli-nlp/internal/agent/model"
)

// ===== Small helpers to keep nodes simple/readable =====

// readState copies the fields a node needs out of the per-turn state.
func readState[T any](ctx context.Context, read func(*model.AppState) T) (T, error) {
	var out T
	err := compose.ProcessState(ctx, func(_ context.Context, s *model.AppState) error {
		out = read(s)
		return nil
	})
	return out, err
}

func writeState(ctx context.Context, write func(*model.AppState)) error {
	return compose.ProcessState(ctx, func(_ context.Context, s *model.AppState) error {
		write(s)
		return nil
	})
}

func attachmentNames(atts []model.Attachment) []string {
	names := make([]string, 0, len(atts))
	for _, a := range atts {
		names = append(names, a.Name)
	}
	return names
}
