package analyzer

import (
	"fmt"
	"strings"

	"github.com/arudraviharbommana/intelli-nlp/internal/agent/model"
)

type genericProfile struct {
	kind        string
	description string
	offers      []string
}

var genericByExt = map[string]genericProfile{}

func init() {
	register := func(p genericProfile, exts ...string) {
		for _, e := range exts {
			genericByExt[e] = p
		}
	}
	register(genericProfile{
		kind:        "Word processing document",
		description: "A formatted text document that typically contains headings, paragraphs, lists and possibly tables or images.",
		offers:      []string{"Summarize the main points", "Review structure and clarity", "Draft a reply or follow-up"},
	}, ".doc", ".docx", ".odt")
	register(genericProfile{
		kind:        "Presentation",
		description: "A slide deck, usually made of headline statements, bullet points, visuals and speaker notes.",
		offers:      []string{"Turn the slides into talking points", "Suggest a clearer narrative", "Write a summary for people who missed it"},
	}, ".ppt", ".pptx", ".key", ".odp")
	register(genericProfile{
		kind:        "Spreadsheet",
		description: "Tabular data organized in sheets, rows and columns, often with formulas and charts.",
		offers:      []string{"Explain what the columns represent", "Suggest formulas or pivots", "Describe trends worth charting"},
	}, ".xls", ".xlsx", ".ods")
	register(genericProfile{
		kind:        "Delimited data",
		description: "Plain tabular data with one record per line and fields separated by a delimiter.",
		offers:      []string{"Describe the columns and data types", "Spot missing or inconsistent values", "Suggest an analysis or visualization"},
	}, ".csv", ".tsv")
}

var otherProfile = genericProfile{
	kind:        "General file",
	description: "A file whose format I can only describe from its name and size.",
	offers:      []string{"Tell me what the file contains", "Paste relevant excerpts as text", "Ask about the file type"},
}

func analyzeGeneric(att model.Attachment) string {
	ext := att.Extension()
	profile, ok := genericByExt[ext]
	if !ok {
		profile = otherProfile
	}

	var b strings.Builder
	fmt.Fprintf(&b, "File analysis: %s\n", displayName(att))
	fmt.Fprintf(&b, "Type: %s\n", profile.kind)
	fmt.Fprintf(&b, "Size: %s\n", humanSize(att.Size))
	b.WriteString(profile.description)
	b.WriteString("\n")

	if (ext == ".csv" || ext == ".tsv") && att.HasContent() {
		sep := ","
		if ext == ".tsv" {
			sep = "\t"
		}
		rows := strings.Split(strings.TrimSpace(att.Content), "\n")
		fmt.Fprintf(&b, "Rows: %d, columns: %d\n", len(rows), len(strings.Split(rows[0], sep)))
	}

	b.WriteString("\n")
	writeBullets(&b, "I can:", profile.offers)
	return strings.TrimRight(b.String(), "\n")
}
