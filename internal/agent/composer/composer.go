package composer

import (
	"context"
	"math/rand/v2"
	"strings"

	"github.com/arudraviharbommana/intelli-nlp/internal/agent/model"
	"github.com/arudraviharbommana/intelli-nlp/internal/agent/tracker"
	errx "github.com/arudraviharbommana/intelli-nlp/internal/core/error"
	logx "github.com/arudraviharbommana/intelli-nlp/pkg/logger"
)

// Fallbacks are the apologetic replies used when composition or any earlier
// pipeline stage fails. They are kept out of the template catalogue so they
// are available even when templates cannot be rendered.
var Fallbacks = []string{
	"I'm sorry, I ran into a problem while processing your message. Could you try again?",
	"Apologies, something went wrong on my side. Please try rephrasing your message.",
	"I'm sorry, I couldn't put together a response just now. Let's try that once more.",
}

// Chooser returns an index in [0, n). It picks among equivalent variants.
type Chooser func(n int) int

// Composer renders replies from the template catalogue.
type Composer struct {
	templates *Templates
	choose    Chooser
}

// Option configures a Composer.
type Option func(*Composer)

// WithChooser replaces the random variant picker, mainly for tests.
func WithChooser(ch Chooser) Option {
	return func(c *Composer) {
		if ch != nil {
			c.choose = ch
		}
	}
}

// WithTemplates replaces the embedded template catalogue.
func WithTemplates(t *Templates) Option {
	return func(c *Composer) {
		if t != nil {
			c.templates = t
		}
	}
}

// New builds a Composer over the embedded templates unless WithTemplates is given.
func New(opts ...Option) (*Composer, error) {
	c := &Composer{choose: rand.IntN}
	for _, opt := range opts {
		opt(c)
	}
	if c.templates == nil {
		t, err := DefaultTemplates()
		if err != nil {
			return nil, err
		}
		c.templates = t
	}
	return c, nil
}

// Compose produces the reply for one turn. It never fails: any rendering
// error degrades to a fallback reply.
func (c *Composer) Compose(ctx context.Context, in model.ComposeInput) string {
	if len(in.Reports) > 0 {
		return c.ComposeAttachments(ctx, in)
	}
	return c.ComposeIntent(ctx, in)
}

// ComposeIntent builds an intent-focused reply.
func (c *Composer) ComposeIntent(ctx context.Context, in model.ComposeInput) string {
	return c.guard(func() (string, error) { return c.intentReply(ctx, in) })
}

// ComposeAttachments builds an attachment-focused reply followed by the
// per-attachment analysis reports.
func (c *Composer) ComposeAttachments(ctx context.Context, in model.ComposeInput) string {
	return c.guard(func() (string, error) { return c.attachmentReply(ctx, in) })
}

// Fallback returns one of the apologetic fallback replies.
func (c *Composer) Fallback() string {
	return Fallbacks[c.pick(len(Fallbacks))]
}

func (c *Composer) guard(build func() (string, error)) (reply string) {
	defer func() {
		if r := recover(); r != nil {
			logx.Error().Err(errx.Recover(r)).Msg("response composition panicked")
			reply = c.Fallback()
		}
	}()
	reply, err := build()
	if err != nil {
		logx.Error().Err(err).Msg("response composition failed")
		return c.Fallback()
	}
	if strings.TrimSpace(reply) == "" {
		return c.Fallback()
	}
	return reply
}

func (c *Composer) pick(n int) int {
	if n <= 1 {
		return 0
	}
	i := c.choose(n)
	if i < 0 || i >= n {
		return 0
	}
	return i
}

func (c *Composer) pickString(options []string) string {
	if len(options) == 0 {
		return ""
	}
	return options[c.pick(len(options))]
}

// vars builds the template variables shared by every template.
func vars(in model.ComposeInput, extra map[string]any) map[string]any {
	v := map[string]any{
		"Topic":     tracker.TopicPhrase(in.Utterance),
		"Utterance": strings.TrimSpace(in.Utterance),
		"Tone":      string(in.Context.Tone),
		"Earlier":   "",
		"LastTopic": "",
		"Name":      "",
		"Category":  "",
		"Count":     len(in.Reports),
		"Insight":   "",
	}
	for k, val := range extra {
		v[k] = val
	}
	return v
}

// renderAll renders tpls in order and joins the non-empty results with sep.
func renderAll(ctx context.Context, sep string, v map[string]any, tpls ...string) (string, error) {
	parts := make([]string, 0, len(tpls))
	for _, tpl := range tpls {
		s, err := render(ctx, tpl, v)
		if err != nil {
			return "", err
		}
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, sep), nil
}
