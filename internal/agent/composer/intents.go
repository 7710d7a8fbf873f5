package composer

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/schema"

	"github.com/arudraviharbommana/intelli-nlp/internal/agent/model"
	"github.com/arudraviharbommana/intelli-nlp/internal/agent/tracker"
)

func (c *Composer) intentReply(ctx context.Context, in model.ComposeInput) (string, error) {
	switch in.Intent {
	case model.IntentGreeting:
		return c.greeting(ctx, in)
	case model.IntentQuestion:
		return c.question(ctx, in)
	case model.IntentRequest:
		return c.request(ctx, in)
	case model.IntentAnalysis:
		return c.analysis(ctx, in)
	case model.IntentOpinion:
		return c.opinion(ctx, in)
	case model.IntentConversation, "":
		return c.conversation(ctx, in)
	default:
		return "", fmt.Errorf("compose: unknown intent %q", in.Intent)
	}
}

func (c *Composer) greeting(ctx context.Context, in model.ComposeInput) (string, error) {
	t := c.templates.Greeting
	v := vars(in, map[string]any{"LastTopic": lastUserTopic(in.Recent)})

	tpls := make([]string, 0, 3)
	if in.HasPriorTurns() {
		tpls = append(tpls, t.Callback)
	}
	tpls = append(tpls, c.pickString(t.Openers), t.Capabilities)
	return renderAll(ctx, "\n\n", v, tpls...)
}

func (c *Composer) question(ctx context.Context, in model.ComposeInput) (string, error) {
	t := c.templates.Question
	topic := tracker.TopicPhrase(in.Utterance)
	var earlier []string
	if len(in.Context.Topics) >= 2 {
		earlier = otherTopics(in.Context.Topics, topic)
	}

	opener, ok := t.Openers[questionFamily(QuestionWord(in.Utterance))]
	if !ok {
		opener = t.Openers[familyOther]
	}
	head, err := renderAll(ctx, " ", vars(in, nil), opener, t.Elaboration)
	if err != nil || len(earlier) == 0 {
		return head, err
	}
	callback, err := render(ctx, t.Callback, vars(in, map[string]any{"Earlier": earlier[0]}))
	if err != nil {
		return "", err
	}
	return head + "\n\n" + callback, nil
}

func (c *Composer) request(ctx context.Context, in model.ComposeInput) (string, error) {
	t := c.templates.Request
	plan, ok := t.Plans[ActionWord(in.Utterance)]
	if !ok {
		plan = t.Plans[defaultAction]
	}
	closing, ok := t.Closings[string(in.Context.Tone)]
	if !ok {
		closing = t.Closings[string(model.ToneFriendly)]
	}
	return renderAll(ctx, "\n\n", vars(in, nil), plan, closing)
}

func (c *Composer) analysis(ctx context.Context, in model.ComposeInput) (string, error) {
	t := c.templates.Analysis
	return renderAll(ctx, "\n\n", vars(in, nil), t.Framework, t.Findings, t.Insights)
}

func (c *Composer) opinion(ctx context.Context, in model.ComposeInput) (string, error) {
	t := c.templates.Opinion
	v := vars(in, nil)

	head := []string{t.Appreciation}
	if hasFirstPerson(in.Utterance) {
		head = append(head, t.FirstPerson)
	}
	first, err := renderAll(ctx, " ", v, head...)
	if err != nil {
		return "", err
	}
	reflection, err := render(ctx, t.Reflection, v)
	if err != nil {
		return "", err
	}
	return first + "\n\n" + reflection, nil
}

func (c *Composer) conversation(ctx context.Context, in model.ComposeInput) (string, error) {
	t := c.templates.Conversation
	topic := tracker.TopicPhrase(in.Utterance)

	extra := map[string]any{}
	tpls := []string{c.pickString(t.Openers), t.Engagement}
	if earlier, ok := secondMostRecent(in.Context.Topics); ok && earlier != topic {
		extra["Earlier"] = earlier
		tpls = append(tpls, t.Callback)
	}
	head, err := renderAll(ctx, " ", vars(in, extra), tpls...)
	if err != nil {
		return "", err
	}
	closing, err := render(ctx, t.Closing, vars(in, nil))
	if err != nil {
		return "", err
	}
	return head + "\n\n" + closing, nil
}

// otherTopics returns tracked topics other than current, oldest first.
func otherTopics(topics []string, current string) []string {
	var out []string
	for _, t := range topics {
		if t != current {
			out = append(out, t)
		}
	}
	return out
}

func secondMostRecent(topics []string) (string, bool) {
	if len(topics) < 2 {
		return "", false
	}
	return topics[len(topics)-2], true
}

// lastUserTopic returns the topic of the most recent prior user turn, or ""
// when that turn had no usable topic.
func lastUserTopic(recent []model.Turn) string {
	for i := len(recent) - 1; i >= 0; i-- {
		if recent[i].Role != schema.User {
			continue
		}
		if topic := tracker.TopicPhrase(recent[i].Content); topic != tracker.PlaceholderTopic {
			return topic
		}
		return ""
	}
	return ""
}
