package analyzer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/arudraviharbommana/intelli-nlp/internal/agent/model"
)

var extLanguage = map[string]string{
	".js": "JavaScript", ".jsx": "JavaScript (React)", ".ts": "TypeScript", ".tsx": "TypeScript (React)",
	".py": "Python", ".java": "Java", ".go": "Go", ".rb": "Ruby", ".php": "PHP",
	".c": "C", ".h": "C", ".cpp": "C++", ".cs": "C#", ".rs": "Rust", ".swift": "Swift", ".kt": "Kotlin",
	".html": "HTML", ".css": "CSS", ".sql": "SQL", ".sh": "Shell",
}

// Content sniffing: a language is chosen when both tokens of a pair appear.
var languageSniffers = []struct {
	tokens   [2]string
	language string
}{
	{[2]string{"def ", "import "}, "Python"},
	{[2]string{"package ", "func "}, "Go"},
	{[2]string{"public class", "import java"}, "Java"},
	{[2]string{"function", "const "}, "JavaScript"},
	{[2]string{"#include", "int main"}, "C/C++"},
	{[2]string{"fn ", "let mut"}, "Rust"},
}

// DetectLanguage resolves the language from the extension, then the content.
func DetectLanguage(name, content string) string {
	ext := strings.ToLower(name)
	if i := strings.LastIndexByte(ext, '.'); i >= 0 {
		if lang, ok := extLanguage[ext[i:]]; ok {
			return lang
		}
	}
	for _, s := range languageSniffers {
		if strings.Contains(content, s.tokens[0]) && strings.Contains(content, s.tokens[1]) {
			return s.language
		}
	}
	return "Unknown"
}

var (
	functionTokens = []string{"function ", "def ", "func ", "=>"}
	classTokens    = []string{"class "}
	importTokens   = []string{"import ", "require(", "#include", "using "}
	variableTokens = []string{"const ", "let ", "var "}
	controlFlow    = regexp.MustCompile(`\b(?:if|else|for|while|switch|case|try|catch)\b`)
)

// CodeComplexity buckets the number of control-flow keywords.
func CodeComplexity(content string) string {
	n := len(controlFlow.FindAllString(content, -1))
	switch {
	case n < 5:
		return "low"
	case n < 15:
		return "medium"
	default:
		return "high"
	}
}

type labelRule struct {
	label  string
	tokens []string
}

var functionalityRules = []labelRule{
	{"API calls", []string{"fetch(", "axios", "http.Get", "requests.", "XMLHttpRequest"}},
	{"UI state hooks", []string{"useState", "useEffect", "useReducer"}},
	{"Server routing", []string{"app.get(", "app.post(", "router.", "express(", "http.HandleFunc"}},
	{"Database access", []string{"SELECT ", "INSERT ", "mongoose", "db.Query", "sql.Open", "cursor.execute"}},
	{"Testing", []string{"describe(", "it(", "test(", "expect(", "assert", "func Test"}},
	{"Object-oriented design", []string{"class ", "extends ", "this.", "self."}},
}

var patternRules = []labelRule{
	{"Modular exports", []string{"export ", "module.exports"}},
	{"Asynchronous code", []string{"async ", "await ", "Promise", "go func"}},
	{"Functional collection operations", []string{".map(", ".filter(", ".reduce("}},
}

func matchLabels(content string, rules []labelRule) []string {
	var out []string
	for _, r := range rules {
		if containsAny(content, r.tokens...) {
			out = append(out, r.label)
		}
	}
	return out
}

func countTokens(content string, tokens []string) int {
	n := 0
	for _, t := range tokens {
		n += strings.Count(content, t)
	}
	return n
}

func analyzeCode(att model.Attachment) string {
	content := att.Content
	if len(content) < minTextLength {
		return insufficientContent(att)
	}

	lines := strings.Split(content, "\n")
	comments := 0
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if strings.HasPrefix(l, "//") || strings.HasPrefix(l, "#") || strings.HasPrefix(l, "/*") || strings.HasPrefix(l, "*") {
			comments++
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Code analysis: %s\n", displayName(att))
	fmt.Fprintf(&b, "Language: %s\n", DetectLanguage(att.Name, content))
	writeBullets(&b, "Structure:", []string{
		fmt.Sprintf("Lines: %d (%d comment lines)", len(lines), comments),
		fmt.Sprintf("Functions: %d", countTokens(content, functionTokens)),
		fmt.Sprintf("Classes: %d", countTokens(content, classTokens)),
		fmt.Sprintf("Imports: %d", countTokens(content, importTokens)),
		fmt.Sprintf("Variable declarations: %d", countTokens(content, variableTokens)),
	})
	fmt.Fprintf(&b, "Complexity: %s\n", CodeComplexity(content))

	if f := matchLabels(content, functionalityRules); len(f) > 0 {
		fmt.Fprintf(&b, "Functionality: %s\n", strings.Join(f, ", "))
	} else {
		b.WriteString("Functionality: general-purpose logic\n")
	}
	if p := matchLabels(content, patternRules); len(p) > 0 {
		fmt.Fprintf(&b, "Patterns: %s\n", strings.Join(p, ", "))
	}
	b.WriteString("\nI can review this code, explain how it works, suggest improvements or help debug it.")
	return b.String()
}
