package nodes

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/compose"

	"github.com/arudraviharbommana/intelli-nlp/internal/agent/analyzer"
	"github.com/arudraviharbommana/intelli-nlp/internal/agent/composer"
	"github.com/arudraviharbommana/intelli-nlp/internal/agent/graph/conversations"
	"github.com/arudraviharbommana/intelli-nlp/internal/agent/intent"
	"github.com/arudraviharbommana/intelli-nlp/internal/agent/model"
	"github.com/arudraviharbommana/intelli-nlp/internal/agent/tracker"
	logx "github.com/arudraviharbommana/intelli-nlp/pkg/logger"
)

// NewTurnRecorderPreHandler seeds the per-turn state from the input.
func NewTurnRecorderPreHandler() func(context.Context, model.QueryInput, *model.AppState) (model.QueryInput, error) {
	return func(ctx context.Context, in model.QueryInput, s *model.AppState) (model.QueryInput, error) {
		in.Query = strings.TrimSpace(in.Query)
		s.ConversationID = in.ConversationID
		s.Utterance = in.Query
		s.Attachments = in.Attachments
		s.Reports = nil
		s.Recent = nil
		return in, nil
	}
}

// NewTurnRecorderNode appends the user turn to History before anything else reads it.
func NewTurnRecorderNode(mm *conversations.MessagesManager) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, in model.QueryInput) (model.QueryInput, error) {
		if _, err := mm.RecordUserTurn(ctx, in.ConversationID, in.Query, in.Attachments); err != nil {
			return in, fmt.Errorf("record user turn: %w", err)
		}
		logx.Debug().
			Str("conversation_id", in.ConversationID).
			Int("attachments", len(in.Attachments)).
			Strs("attachment_names", attachmentNames(in.Attachments)).
			Msg("User turn recorded")
		return in, nil
	})
}

// NewContextTrackerNode updates and persists the conversation context, then
// snapshots it with the look-back window into state for composition.
func NewContextTrackerNode(mm *conversations.MessagesManager) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, in model.QueryInput) (model.QueryInput, error) {
		current, err := mm.LoadContext(ctx, in.ConversationID)
		if err != nil {
			return in, fmt.Errorf("load context: %w", err)
		}
		updated := tracker.Update(current, in.Query, in.Attachments)
		if err := mm.SaveContext(ctx, in.ConversationID, updated); err != nil {
			return in, fmt.Errorf("save context: %w", err)
		}

		recent, err := mm.RecentTurns(ctx, in.ConversationID)
		if err != nil {
			return in, fmt.Errorf("load recent turns: %w", err)
		}

		if err := writeState(ctx, func(s *model.AppState) {
			s.Context = updated
			s.Recent = recent
		}); err != nil {
			return in, fmt.Errorf("failed to access state: %w", err)
		}

		logx.Debug().
			Str("conversation_id", in.ConversationID).
			Strs("topics", updated.Topics).
			Str("tone", string(updated.Tone)).
			Msg("Context updated")
		return in, nil
	})
}

// NewAttachmentAnalyzerNode produces one report per attachment, in input order.
func NewAttachmentAnalyzerNode() *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, in model.QueryInput) ([]model.AttachmentReport, error) {
		return analyzer.AnalyzeAll(in.Attachments), nil
	})
}

// NewAttachmentAnalyzerPostHandler stores the reports in state.
func NewAttachmentAnalyzerPostHandler() func(context.Context, []model.AttachmentReport, *model.AppState) ([]model.AttachmentReport, error) {
	return func(ctx context.Context, out []model.AttachmentReport, s *model.AppState) ([]model.AttachmentReport, error) {
		s.Reports = out
		return out, nil
	}
}

// NewIntentClassifierNode classifies the utterance and assembles the composer input.
func NewIntentClassifierNode() *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, reports []model.AttachmentReport) (model.ComposeInput, error) {
		in, err := readState(ctx, func(s *model.AppState) model.ComposeInput {
			return model.ComposeInput{
				Utterance: s.Utterance,
				Intent:    intent.Classify(s.Utterance),
				Reports:   reports,
				Context:   s.Context.Clone(),
				Recent:    s.Recent,
			}
		})
		if err != nil {
			return model.ComposeInput{}, fmt.Errorf("failed to access state: %w", err)
		}
		logx.Debug().Str("intent", in.Intent.String()).Int("reports", len(in.Reports)).Msg("Intent classified")
		return in, nil
	})
}

// NewComposerCondition routes to attachment composition whenever reports
// exist, regardless of the classified intent.
func NewComposerCondition() func(context.Context, model.ComposeInput) (string, error) {
	return func(ctx context.Context, in model.ComposeInput) (string, error) {
		if len(in.Reports) > 0 {
			return NodeAttachmentComposer, nil
		}
		return NodeIntentComposer, nil
	}
}

func NewAttachmentComposerNode(c *composer.Composer) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, in model.ComposeInput) (string, error) {
		return c.ComposeAttachments(ctx, in), nil
	})
}

func NewIntentComposerNode(c *composer.Composer) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, in model.ComposeInput) (string, error) {
		return c.ComposeIntent(ctx, in), nil
	})
}

// NewResponseRecorderNode appends the reply to History as the assistant turn.
func NewResponseRecorderNode(mm *conversations.MessagesManager) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, reply string) (string, error) {
		conversationID, err := readState(ctx, func(s *model.AppState) string { return s.ConversationID })
		if err != nil {
			return "", fmt.Errorf("failed to access state: %w", err)
		}
		if _, err := mm.RecordAssistantTurn(ctx, conversationID, reply); err != nil {
			return "", fmt.Errorf("record assistant turn: %w", err)
		}
		logx.Debug().Str("conversation_id", conversationID).Msg("Assistant turn recorded")
		return reply, nil
	})
}
