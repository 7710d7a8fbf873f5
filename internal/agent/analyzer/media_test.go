package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arudraviharbommana/intelli-nlp/internal/agent/model"
)

func TestAnalyzeImage_KeywordFamilies(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"sales-chart.png", "Type: Chart or graph"},
		{"screenshot_1.png", "Type: Screenshot"},
		{"scan_page3.jpg", "Type: Scanned document"},
		{"architecture-diagram.svg", "Type: Diagram"},
		{"holiday.jpg", "Type: General image"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			att := attachment(tc.name, model.CategoryImage, 50_000, "")
			report := Analyze(att)

			assert.Contains(t, report, tc.want)
			assert.Contains(t, report, "Analysis ID: "+Fingerprint(att))
			assert.Contains(t, report, "Extract any visible text")
		})
	}
}

func TestAnalyzeImage_GeneralSizeAndFormat(t *testing.T) {
	large := Analyze(attachment("holiday.jpg", model.CategoryImage, 2_000_000, ""))
	assert.Contains(t, large, "(large)")
	assert.Contains(t, large, "JPEG format")

	medium := Analyze(attachment("holiday.png", model.CategoryImage, 200_000, ""))
	assert.Contains(t, medium, "(medium)")
	assert.Contains(t, medium, "PNG format")

	small := Analyze(attachment("icon.gif", model.CategoryImage, 100_000, ""))
	assert.Contains(t, small, "(small)")
	assert.Contains(t, small, "Format: GIF")
}

func TestEstimatePages(t *testing.T) {
	assert.Equal(t, 0, EstimatePages(0))
	assert.Equal(t, 1, EstimatePages(1))
	assert.Equal(t, 1, EstimatePages(50_000))
	assert.Equal(t, 2, EstimatePages(50_001))
}

func TestAnalyzePDF(t *testing.T) {
	tests := []struct {
		name string
		size int64
		want string
	}{
		{"annual-report.pdf", 100_000, "Document type: Report"},
		{"user-manual.pdf", 100_000, "Document type: Manual or guide"},
		{"field-study.pdf", 100_000, "Document type: Research paper"},
		{"lease-contract.pdf", 100_000, "Document type: Legal document"},
		{"keynote-slides.pdf", 100_000, "Document type: Exported presentation"},
		{"book.pdf", 3_000_000, "Document type: Comprehensive document"},
		{"notes.pdf", 600_000, "Document type: Substantial document"},
		{"memo.pdf", 100_000, "Document type: Concise document"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Contains(t, Analyze(attachment(tc.name, model.CategoryPDF, tc.size, "")), tc.want)
		})
	}
}

func TestDetectLanguage(t *testing.T) {
	assert.Equal(t, "Python", DetectLanguage("main.py", ""))
	assert.Equal(t, "TypeScript (React)", DetectLanguage("App.TSX", ""))
	assert.Equal(t, "Go", DetectLanguage("snippet", "package main\n\nfunc main() {}"))
	assert.Equal(t, "Python", DetectLanguage("snippet", "import os\n\ndef run():\n    pass"))
	assert.Equal(t, "JavaScript", DetectLanguage("snippet", "const x = 1;\nfunction f() {}"))
	assert.Equal(t, "Unknown", DetectLanguage("snippet", "hello"))
}

func TestCodeComplexity(t *testing.T) {
	assert.Equal(t, "low", CodeComplexity("x := 1"))
	assert.Equal(t, "medium", CodeComplexity("if a {} else {} for {} while switch case"))
	assert.Equal(t, "high", CodeComplexity("if if if if if if if if if if if if if if if"))
	assert.Equal(t, "low", CodeComplexity("elsewhere gift forest"), "keywords match whole words only")
}

func TestAnalyzeCode(t *testing.T) {
	content := "import React, { useState } from 'react';\n\n" +
		"export default function App() {\n" +
		"  const [items, setItems] = useState([]);\n" +
		"  // load items\n" +
		"  fetch('/api/items').then(r => r.json()).then(setItems);\n" +
		"  return items.map(i => i.name);\n" +
		"}\n"

	report := Analyze(attachment("App.jsx", model.CategoryCode, int64(len(content)), content))

	assert.Contains(t, report, "Language: JavaScript (React)")
	assert.Contains(t, report, "Functionality: API calls, UI state hooks")
	assert.Contains(t, report, "Patterns: Modular exports, Functional collection operations")
	assert.Contains(t, report, "Complexity: low")
}

func TestAnalyzeCode_EmptyContent(t *testing.T) {
	assert.Contains(t, Analyze(attachment("main.go", model.CategoryCode, 0, "")), "empty or minimal content")
}

func TestAnalyzeGeneric(t *testing.T) {
	assert.Contains(t, Analyze(attachment("deck.pptx", model.CategoryPresentation, 10, "")), "Type: Presentation")
	assert.Contains(t, Analyze(attachment("budget.xlsx", model.CategoryDocument, 10, "")), "Type: Spreadsheet")
	assert.Contains(t, Analyze(attachment("letter.docx", model.CategoryDocument, 10, "")), "Type: Word processing document")

	csv := Analyze(attachment("data.csv", model.CategoryDocument, 11, "a,b,c\n1,2,3"))
	assert.Contains(t, csv, "Type: Delimited data")
	assert.Contains(t, csv, "Rows: 2, columns: 3")

	assert.Contains(t, Analyze(attachment("config.yaml", model.CategoryDocument, 10, "")), "Type: General file")
}
