package analyzer

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/arudraviharbommana/intelli-nlp/internal/agent/model"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func attachment(name string, category model.Category, size int64, content string) model.Attachment {
	return model.Attachment{
		ID:        "att-" + name,
		Name:      name,
		Category:  category,
		Size:      size,
		Content:   content,
		CreatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestAnalyzeAll_PreservesInputOrder(t *testing.T) {
	atts := make([]model.Attachment, 0, 12)
	for i := 0; i < 12; i++ {
		atts = append(atts, attachment(fmt.Sprintf("notes-%02d.txt", i), model.CategoryText, 100, "Hello world. This is a test."))
	}

	reports := AnalyzeAll(atts)

	require.Len(t, reports, len(atts))
	for i, r := range reports {
		assert.Equal(t, atts[i].ID, r.AttachmentID)
		assert.Equal(t, atts[i].Name, r.Name)
		assert.Contains(t, r.Report, atts[i].Name)
	}
}

func TestAnalyzeAll_Empty(t *testing.T) {
	assert.Nil(t, AnalyzeAll(nil))
}

func TestAnalyze_UnknownCategoryFallsBackToGeneric(t *testing.T) {
	report := Analyze(attachment("blob.bin", model.Category("archive"), 2048, ""))
	assert.Contains(t, report, "General file")
	assert.Contains(t, report, "2.0 kB")
}

func TestJoin_LabelsEachReport(t *testing.T) {
	joined := Join([]model.AttachmentReport{
		{Name: "a.txt", Category: model.CategoryText, Report: "first\n"},
		{Name: "b.png", Category: model.CategoryImage, Report: "second"},
	})

	assert.Equal(t, "--- Analysis of a.txt (text file) ---\nfirst\n\n--- Analysis of b.png (image) ---\nsecond", joined)
}

func TestFingerprint(t *testing.T) {
	att := attachment("photo.png", model.CategoryImage, 1234, "")

	fp := Fingerprint(att)
	assert.Len(t, fp, 8)
	assert.Equal(t, fp, Fingerprint(att), "fingerprint must be deterministic")

	att.Size++
	assert.NotEqual(t, fp, Fingerprint(att))
}

func TestRollingHash(t *testing.T) {
	assert.Equal(t, uint32(0), rollingHash(""))
	assert.Equal(t, uint32(97), rollingHash("a"))
	assert.Equal(t, uint32(97*31+98), rollingHash("ab"))
}

func TestMatchFirst_UsesRuleOrder(t *testing.T) {
	rules := []keywordRule[string]{
		{keywords: []string{"chart"}, result: "first"},
		{keywords: []string{"screen", "chart"}, result: "second"},
	}

	got, ok := matchFirst(rules, "screen-chart.png")
	require.True(t, ok)
	assert.Equal(t, "first", got)

	_, ok = matchFirst(rules, "holiday.png")
	assert.False(t, ok)
}

func TestAnalyze_RecoversFromPanics(t *testing.T) {
	orig := analyzers[model.CategoryImage]
	analyzers[model.CategoryImage] = func(model.Attachment) string { panic("boom") }
	defer func() { analyzers[model.CategoryImage] = orig }()

	report := Analyze(attachment("x.png", model.CategoryImage, 1, ""))
	assert.True(t, strings.Contains(report, "could not analyze"))
}
