// Package analyzer derives a structured textual report for each uploaded
// attachment from its category, name, size and decoded content.
package analyzer

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/sourcegraph/conc/iter"

	"github.com/arudraviharbommana/intelli-nlp/internal/agent/model"
	errx "github.com/arudraviharbommana/intelli-nlp/internal/core/error"
	logx "github.com/arudraviharbommana/intelli-nlp/pkg/logger"
)

var analyzers = map[model.Category]func(model.Attachment) string{
	model.CategoryImage: analyzeImage,
	model.CategoryText:  analyzeText,
	model.CategoryPDF:   analyzePDF,
	model.CategoryCode:  analyzeCode,
}

// Analyze returns the report for a single attachment. It never fails: empty
// content yields a short notice and an unexpected panic yields a generic one.
func Analyze(att model.Attachment) (report string) {
	defer func() {
		if r := recover(); r != nil {
			logx.Error().Err(errx.Recover(r)).
				Str("attachment_id", att.ID).
				Str("category", string(att.Category)).
				Msg("attachment analysis panicked")
			report = fmt.Sprintf("I received %s but could not analyze its contents.", displayName(att))
		}
	}()

	fn, ok := analyzers[att.Category]
	if !ok {
		fn = analyzeGeneric
	}
	return fn(att)
}

// AnalyzeAll analyzes every attachment concurrently. Analyses share no state,
// so the result only depends on the input; reports keep the input order.
func AnalyzeAll(atts []model.Attachment) []model.AttachmentReport {
	if len(atts) == 0 {
		return nil
	}
	return iter.Map(atts, func(att *model.Attachment) model.AttachmentReport {
		return model.AttachmentReport{
			AttachmentID: att.ID,
			Name:         att.Name,
			Category:     att.Category,
			Report:       Analyze(*att),
		}
	})
}

// Join concatenates reports, each under a labeled header.
func Join(reports []model.AttachmentReport) string {
	var b strings.Builder
	for i, r := range reports {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "--- Analysis of %s (%s) ---\n", r.Name, r.Category.Label())
		b.WriteString(strings.TrimSpace(r.Report))
	}
	return b.String()
}

// ===== shared helpers =====

// keywordRule maps a keyword family to a result; the first rule with any
// keyword contained in the subject wins.
type keywordRule[T any] struct {
	keywords []string
	result   T
}

func matchFirst[T any](rules []keywordRule[T], subject string) (T, bool) {
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(subject, kw) {
				return r.result, true
			}
		}
	}
	var zero T
	return zero, false
}

func displayName(att model.Attachment) string {
	if strings.TrimSpace(att.Name) == "" {
		return "an unnamed " + att.Category.Label()
	}
	return att.Name
}

func humanSize(size int64) string {
	if size < 0 {
		size = 0
	}
	return humanize.Bytes(uint64(size))
}

func insufficientContent(att model.Attachment) string {
	return fmt.Sprintf("%s appears to contain empty or minimal content (%d characters), so there is not enough to analyze. "+
		"Try uploading a file with more content.", displayName(att), len(att.Content))
}

func writeBullets(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString(title)
	b.WriteString("\n")
	for _, it := range items {
		b.WriteString("• ")
		b.WriteString(it)
		b.WriteString("\n")
	}
}
