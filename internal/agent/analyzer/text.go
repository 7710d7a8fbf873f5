package analyzer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/arudraviharbommana/intelli-nlp/internal/agent/model"
)

const (
	minTextLength = 10
	maxTextTopics = 5
)

// TextStats holds the raw counts reported for a text attachment.
type TextStats struct {
	Lines     int
	Words     int
	Sentences int
	Chars     int
}

// AvgWordsPerSentence falls back to the word count when no sentence was found.
func (s TextStats) AvgWordsPerSentence() float64 {
	if s.Sentences == 0 {
		return float64(s.Words)
	}
	return float64(s.Words) / float64(s.Sentences)
}

var sentenceSplit = regexp.MustCompile(`[.!?]`)

// ComputeTextStats counts lines, whitespace-separated words, sentences
// (fragments between . ! ? longer than 5 characters) and characters.
func ComputeTextStats(content string) TextStats {
	sentences := 0
	for _, frag := range sentenceSplit.Split(content, -1) {
		if len(strings.TrimSpace(frag)) > 5 {
			sentences++
		}
	}
	return TextStats{
		Lines:     strings.Count(content, "\n") + 1,
		Words:     len(strings.Fields(content)),
		Sentences: sentences,
		Chars:     len(content),
	}
}

// ===== content sub-types =====

type textKind string

const (
	textKindCode      textKind = "Source code"
	textKindAcademic  textKind = "Academic paper"
	textKindLetter    textKind = "Formal letter"
	textKindTechnical textKind = "Technical notes"
	textKindProse     textKind = "General prose"
)

// Ordered by priority: the first matching kind wins.
var textKindRules = []struct {
	kind  textKind
	match func(raw, lower string) bool
}{
	{textKindCode, func(raw, _ string) bool { return containsAny(raw, "function", "class", "import", "def ") }},
	{textKindAcademic, func(_, lower string) bool { return containsAny(lower, "abstract", "introduction", "methodology") }},
	{textKindLetter, func(_, lower string) bool { return containsAny(lower, "dear", "sincerely", "regards") }},
	{textKindTechnical, func(raw, _ string) bool { return containsAny(raw, "TODO", "FIXME", "NOTE:") }},
}

func detectTextKind(content string) textKind {
	lower := strings.ToLower(content)
	for _, r := range textKindRules {
		if r.match(content, lower) {
			return r.kind
		}
	}
	return textKindProse
}

var textKindAnalyses = map[textKind]func(content string, stats TextStats) []string{
	textKindCode:      analyzeEmbeddedCode,
	textKindAcademic:  analyzeAcademic,
	textKindLetter:    analyzeLetter,
	textKindTechnical: analyzeTechnicalNotes,
	textKindProse:     analyzeProse,
}

var (
	academicSections = []string{"Abstract", "Introduction", "Methodology", "Results", "Discussion", "Conclusion", "References"}
	academicTerms    = []string{"hypothesis", "analysis", "significant", "research", "data", "framework", "theory", "evidence", "findings", "literature"}
	citationPattern  = regexp.MustCompile(`\([^()]*\b(?:1[89]|20)\d{2}[a-z]?\b[^()]*\)`)
	headingPattern   = regexp.MustCompile(`(?m)^\s*#{1,6}\s+\S`)
	paragraphSplit   = regexp.MustCompile(`\n\s*\n`)
)

func analyzeEmbeddedCode(content string, _ TextStats) []string {
	lower := strings.ToLower(content)
	out := []string{
		fmt.Sprintf("Function definitions: %d", strings.Count(content, "function")+strings.Count(content, "def ")),
		fmt.Sprintf("Class definitions: %d", strings.Count(content, "class ")),
		fmt.Sprintf("Import statements: %d", strings.Count(content, "import ")),
	}
	if strings.Contains(lower, "todo") || strings.Contains(lower, "fixme") {
		out = append(out, "Contains open TODO/FIXME markers")
	}
	out = append(out, "Tip: upload it with its original extension for a full code review")
	return out
}

func analyzeAcademic(content string, _ TextStats) []string {
	lower := strings.ToLower(content)
	var found []string
	for _, s := range academicSections {
		if strings.Contains(lower, strings.ToLower(s)) {
			found = append(found, s)
		}
	}
	sections := "none of the standard sections"
	if len(found) > 0 {
		sections = strings.Join(found, ", ")
	}

	terms := 0
	for _, t := range academicTerms {
		terms += strings.Count(lower, t)
	}

	return []string{
		"Sections present: " + sections,
		fmt.Sprintf("Citations: %d", len(citationPattern.FindAllString(content, -1))),
		fmt.Sprintf("Academic terminology hits: %d", terms),
	}
}

func analyzeLetter(content string, _ TextStats) []string {
	lower := strings.ToLower(content)
	salutation := "missing"
	if strings.Contains(lower, "dear") {
		salutation = "present"
	}
	closing := "missing"
	if containsAny(lower, "sincerely", "regards", "respectfully") {
		closing = "present"
	}
	out := []string{
		"Salutation: " + salutation,
		"Closing: " + closing,
		fmt.Sprintf("Paragraphs: %d", countParagraphs(content)),
	}
	if containsAny(lower, "please", "request", "would appreciate") {
		out = append(out, "Contains a request addressed to the reader")
	}
	return out
}

func analyzeTechnicalNotes(content string, _ TextStats) []string {
	return []string{
		fmt.Sprintf("TODO markers: %d", strings.Count(content, "TODO")),
		fmt.Sprintf("FIXME markers: %d", strings.Count(content, "FIXME")),
		fmt.Sprintf("Notes: %d", strings.Count(content, "NOTE:")),
		fmt.Sprintf("Headings: %d", len(headingPattern.FindAllString(content, -1))),
		fmt.Sprintf("Code blocks: %d", strings.Count(content, "```")/2),
	}
}

func analyzeProse(content string, stats TextStats) []string {
	return []string{
		fmt.Sprintf("Paragraphs: %d", countParagraphs(content)),
		fmt.Sprintf("Average sentence length: %.1f words", stats.AvgWordsPerSentence()),
		fmt.Sprintf("Questions: %d, exclamations: %d", strings.Count(content, "?"), strings.Count(content, "!")),
	}
}

// ===== topics, complexity, tone =====

var (
	capitalizedPhrase = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)+\b`)
	quotedPhrase      = regexp.MustCompile(`"([^"\n]+)"`)
	technicalWord     = regexp.MustCompile(`\b[A-Za-z]+(?:tion|ment|ness|ity|ism|ology|graphy)\b`)
)

// ExtractTextTopics returns up to five salient topics: capitalized phrases,
// quoted substrings, then words with technical suffixes.
func ExtractTextTopics(content string) []string {
	var candidates []string
	candidates = append(candidates, capitalizedPhrase.FindAllString(content, -1)...)
	for _, m := range quotedPhrase.FindAllStringSubmatch(content, -1) {
		candidates = append(candidates, m[1])
	}
	for _, w := range technicalWord.FindAllString(content, -1) {
		candidates = append(candidates, strings.ToLower(w))
	}

	seen := make(map[string]bool, len(candidates))
	topics := make([]string, 0, maxTextTopics)
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if len(c) <= 3 || len(c) >= 50 || seen[c] {
			continue
		}
		seen[c] = true
		topics = append(topics, c)
		if len(topics) == maxTextTopics {
			break
		}
	}
	return topics
}

// WritingComplexity classifies by average words per sentence.
func WritingComplexity(stats TextStats) string {
	avg := stats.AvgWordsPerSentence()
	switch {
	case avg > 20:
		return "complex"
	case avg > 15:
		return "moderate"
	default:
		return "concise"
	}
}

var (
	formalConnectives = []string{"however", "therefore", "furthermore", "moreover", "consequently", "nevertheless", "thus", "hence", "accordingly"}
	casualPhrases     = []string{"i think", "i feel", "i'm", "i guess", "you know", "kind of", "pretty much", "gonna", "wanna", "lol"}
)

// WritingTone compares formal connective hits with first-person casual phrases.
func WritingTone(content string) string {
	lower := strings.ToLower(content)
	formal, casual := 0, 0
	for _, w := range formalConnectives {
		formal += strings.Count(lower, w)
	}
	for _, p := range casualPhrases {
		casual += strings.Count(lower, p)
	}
	switch {
	case formal > casual:
		return "formal"
	case casual > formal:
		return "conversational"
	default:
		return "neutral"
	}
}

func analyzeText(att model.Attachment) string {
	content := att.Content
	if len(content) < minTextLength {
		return insufficientContent(att)
	}

	stats := ComputeTextStats(content)
	kind := detectTextKind(content)

	var b strings.Builder
	fmt.Fprintf(&b, "Text analysis: %s\n", displayName(att))
	writeBullets(&b, "Statistics:", []string{
		fmt.Sprintf("Lines: %d", stats.Lines),
		fmt.Sprintf("Words: %d", stats.Words),
		fmt.Sprintf("Sentences: %d", stats.Sentences),
		fmt.Sprintf("Characters: %d", stats.Chars),
	})
	fmt.Fprintf(&b, "\nContent type: %s\n", kind)
	writeBullets(&b, "Details:", textKindAnalyses[kind](content, stats))

	if topics := ExtractTextTopics(content); len(topics) > 0 {
		fmt.Fprintf(&b, "\nKey topics: %s\n", strings.Join(topics, ", "))
	} else {
		b.WriteString("\nKey topics: none stood out\n")
	}
	fmt.Fprintf(&b, "Writing style: %s (%.1f words per sentence)\n", WritingComplexity(stats), stats.AvgWordsPerSentence())
	fmt.Fprintf(&b, "Tone: %s", WritingTone(content))
	return b.String()
}

func countParagraphs(content string) int {
	n := 0
	for _, p := range paragraphSplit.Split(strings.TrimSpace(content), -1) {
		if strings.TrimSpace(p) != "" {
			n++
		}
	}
	return n
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
