package analyzer

import (
	"fmt"
	"strings"

	"github.com/arudraviharbommana/intelli-nlp/internal/agent/model"
)

const (
	largeImageBytes  = 1_000_000
	mediumImageBytes = 100_000
)

type imageProfile struct {
	kind     string
	summary  string
	elements []string
}

var imageRules = []keywordRule[imageProfile]{
	{
		keywords: []string{"chart", "graph", "plot"},
		result: imageProfile{
			kind:    "Chart or graph",
			summary: "The file name suggests a data visualization, so the interesting part is most likely the trend it shows.",
			elements: []string{
				"Axes with labeled scales and units",
				"Data series drawn as bars, lines or points",
				"A legend identifying each series",
				"Title, annotations and highlighted values",
			},
		},
	},
	{
		keywords: []string{"screenshot", "screen", "capture"},
		result: imageProfile{
			kind:    "Screenshot",
			summary: "This looks like a capture of an application or web page, which usually means interface text worth reading.",
			elements: []string{
				"Window chrome, toolbars and navigation",
				"Menus, buttons and form fields",
				"Layout regions such as header, sidebar and content",
				"Status bars, dialogs or error messages",
			},
		},
	},
	{
		keywords: []string{"document", "scan", "page"},
		result: imageProfile{
			kind:    "Scanned document",
			summary: "This appears to be a photographed or scanned page, so most of its value is in the text.",
			elements: []string{
				"Blocks of printed or handwritten text",
				"Headings and paragraph structure",
				"Tables, stamps or signatures",
				"Page margins and orientation",
			},
		},
	},
	{
		keywords: []string{"diagram", "flow", "schema"},
		result: imageProfile{
			kind:    "Diagram",
			summary: "This appears to be a diagram describing a structure or a process.",
			elements: []string{
				"Shapes representing components or steps",
				"Arrows and connectors showing relationships",
				"Labels on nodes and edges",
				"Groupings, layers or swimlanes",
			},
		},
	},
}

var imageCapabilities = []string{
	"Describe the image in detail",
	"Extract any visible text",
	"Read values and trends from charts or graphs",
	"Identify objects and elements in the scene",
}

func analyzeImage(att model.Attachment) string {
	name := strings.ToLower(att.Name)
	profile, ok := matchFirst(imageRules, name)
	if !ok {
		profile = generalImageProfile(att)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Image analysis: %s\n", displayName(att))
	fmt.Fprintf(&b, "Type: %s\n", profile.kind)
	fmt.Fprintf(&b, "Size: %s (%s)\n", humanSize(att.Size), sizeBucket(att.Size))
	b.WriteString(profile.summary)
	b.WriteString("\n\n")
	writeBullets(&b, "Detected elements:", profile.elements)
	b.WriteString("\n")
	writeBullets(&b, "I can also:", imageCapabilities)
	fmt.Fprintf(&b, "\nAnalysis ID: %s", Fingerprint(att))
	return b.String()
}

func sizeBucket(size int64) string {
	switch {
	case size > largeImageBytes:
		return "large"
	case size > mediumImageBytes:
		return "medium"
	default:
		return "small"
	}
}

func generalImageProfile(att model.Attachment) imageProfile {
	var summary string
	switch sizeBucket(att.Size) {
	case "large":
		summary = "A large, high-resolution image, most likely a photograph or a detailed graphic."
	case "medium":
		summary = "A standard-resolution image, typical of photos shared online or illustrations."
	default:
		summary = "A small image such as an icon, a thumbnail or a simple graphic."
	}

	var format string
	switch att.Extension() {
	case ".png":
		format = "PNG format: lossless, common for screenshots, graphics and images with transparency"
	case ".jpg", ".jpeg":
		format = "JPEG format: compressed, typical of photographs and natural scenes"
	case "":
		format = "Format: unknown"
	default:
		format = "Format: " + strings.ToUpper(strings.TrimPrefix(att.Extension(), "."))
	}

	return imageProfile{
		kind:    "General image",
		summary: summary,
		elements: []string{
			format,
			"Overall composition and dominant colors",
			"Foreground subjects and background context",
			"Any embedded text or symbols",
		},
	}
}
