package composer

import (
	"context"
	"strings"

	"github.com/arudraviharbommana/intelli-nlp/internal/agent/analyzer"
	"github.com/arudraviharbommana/intelli-nlp/internal/agent/model"
)

const (
	stepsDocuments = "documents"
	stepsCode      = "code"
	stepsImages    = "images"
	stepsGeneral   = "general"
)

func (c *Composer) attachmentReply(ctx context.Context, in model.ComposeInput) (string, error) {
	var (
		lead string
		err  error
	)
	if len(in.Reports) == 1 {
		lead, err = c.singleAttachment(ctx, in)
	} else {
		lead, err = c.multipleAttachments(ctx, in)
	}
	if err != nil {
		return "", err
	}

	title, err := render(ctx, c.templates.Attachments.ReportsTitle, vars(in, nil))
	if err != nil {
		return "", err
	}
	return strings.Join([]string{lead, title, analyzer.Join(in.Reports)}, "\n\n"), nil
}

func (c *Composer) singleAttachment(ctx context.Context, in model.ComposeInput) (string, error) {
	t := c.templates.Attachments.Single
	r := in.Reports[0]

	follow := t.Insights[string(r.Category)]
	if follow == "" {
		follow = t.Insights[string(model.CategoryDocument)]
	}
	if in.Intent == model.IntentQuestion {
		if answer, ok := t.Answers[questionFamily(QuestionWord(in.Utterance))]; ok {
			follow = answer
		}
	}
	return renderAll(ctx, " ", vars(in, reportVars(r)), t.Opening, follow)
}

func (c *Composer) multipleAttachments(ctx context.Context, in model.ComposeInput) (string, error) {
	t := c.templates.Attachments.Multiple

	lines := make([]string, 0, len(in.Reports)+1)
	opening, err := render(ctx, t.Opening, vars(in, nil))
	if err != nil {
		return "", err
	}
	lines = append(lines, opening)

	for _, r := range in.Reports {
		insight := t.Summaries[string(r.Category)]
		if insight == "" {
			insight = t.Summaries[string(model.CategoryDocument)]
		}
		extra := reportVars(r)
		extra["Insight"] = insight
		line, err := render(ctx, t.Line, vars(in, extra))
		if err != nil {
			return "", err
		}
		lines = append(lines, line)
	}

	steps := []string{t.NextStepsTitle}
	for _, group := range nextStepGroups(in.Reports) {
		for _, s := range t.NextSteps[group] {
			steps = append(steps, "• "+s)
		}
	}
	return strings.Join(lines, "\n") + "\n\n" + strings.Join(steps, "\n"), nil
}

// nextStepGroups picks suggestion groups by the categories present.
func nextStepGroups(reports []model.AttachmentReport) []string {
	var docs, code, images bool
	for _, r := range reports {
		switch r.Category {
		case model.CategoryText, model.CategoryPDF:
			docs = true
		case model.CategoryCode:
			code = true
		case model.CategoryImage:
			images = true
		}
	}

	var groups []string
	if docs {
		groups = append(groups, stepsDocuments)
	}
	if code {
		groups = append(groups, stepsCode)
	}
	if images {
		groups = append(groups, stepsImages)
	}
	if len(groups) == 0 {
		groups = append(groups, stepsGeneral)
	}
	return groups
}

func reportVars(r model.AttachmentReport) map[string]any {
	name := r.Name
	if name == "" {
		name = "your " + r.Category.Label()
	}
	return map[string]any{
		"Name":     name,
		"Category": r.Category.Label(),
	}
}
