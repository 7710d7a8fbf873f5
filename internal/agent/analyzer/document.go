package analyzer

import (
	"fmt"
	"math"
	"strings"

	"github.com/arudraviharbommana/intelli-nlp/internal/agent/model"
)

// bytesPerPage is the rough page size used to estimate a PDF's length.
const bytesPerPage = 50_000

type documentProfile struct {
	purpose   string
	structure []string
	offer     string
}

var documentRules = []keywordRule[documentProfile]{
	{
		keywords: []string{"report", "analysis"},
		result: documentProfile{
			purpose:   "Report",
			structure: []string{"Executive summary", "Findings backed by data, tables or figures", "Conclusions and recommendations"},
			offer:     "I can pull out the key findings, summarize each section or list the recommendations.",
		},
	},
	{
		keywords: []string{"manual", "guide", "instruction"},
		result: documentProfile{
			purpose:   "Manual or guide",
			structure: []string{"Table of contents and overview", "Step-by-step procedures", "Troubleshooting and reference material"},
			offer:     "I can walk you through a procedure, find a specific instruction or build a quick-start checklist.",
		},
	},
	{
		keywords: []string{"research", "study", "paper"},
		result: documentProfile{
			purpose:   "Research paper",
			structure: []string{"Abstract and introduction", "Methodology and results", "Discussion and references"},
			offer:     "I can summarize the methodology, explain the results or outline the paper's contribution.",
		},
	},
	{
		keywords: []string{"contract", "agreement", "legal"},
		result: documentProfile{
			purpose:   "Legal document",
			structure: []string{"Parties and definitions", "Terms, obligations and conditions", "Termination clauses and signatures"},
			offer:     "I can outline the main obligations and dates, though this is not legal advice.",
		},
	},
	{
		keywords: []string{"presentation", "slide"},
		result: documentProfile{
			purpose:   "Exported presentation",
			structure: []string{"One slide per page", "Headline statements with supporting bullets", "Charts, visuals and speaker notes"},
			offer:     "I can condense the slides into talking points or a written summary.",
		},
	},
}

// EstimatePages approximates the page count as ceil(size / 50000).
func EstimatePages(size int64) int {
	if size <= 0 {
		return 0
	}
	return int(math.Ceil(float64(size) / bytesPerPage))
}

func analyzePDF(att model.Attachment) string {
	pages := EstimatePages(att.Size)
	profile, ok := matchFirst(documentRules, strings.ToLower(att.Name))
	if !ok {
		profile = sizedDocumentProfile(pages)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "PDF analysis: %s\n", displayName(att))
	fmt.Fprintf(&b, "Size: %s, roughly %d page(s)\n", humanSize(att.Size), pages)
	fmt.Fprintf(&b, "Document type: %s\n\n", profile.purpose)
	writeBullets(&b, "Expected structure:", profile.structure)
	b.WriteString("\n")
	b.WriteString(profile.offer)
	return b.String()
}

func sizedDocumentProfile(pages int) documentProfile {
	switch {
	case pages > 50:
		return documentProfile{
			purpose:   "Comprehensive document",
			structure: []string{"Multiple chapters or major parts", "Detailed supporting material and appendices", "Index or extensive references"},
			offer:     "Given its length, I suggest we go chapter by chapter or start from a high-level summary.",
		}
	case pages > 10:
		return documentProfile{
			purpose:   "Substantial document",
			structure: []string{"Several sections with headings", "Mixed narrative and supporting details", "Summary or conclusion"},
			offer:     "I can summarize it section by section or answer targeted questions.",
		}
	default:
		return documentProfile{
			purpose:   "Concise document",
			structure: []string{"A short introduction", "A focused body", "A brief wrap-up"},
			offer:     "It is short enough to summarize in a few sentences.",
		}
	}
}
