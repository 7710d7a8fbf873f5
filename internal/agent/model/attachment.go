package model

import (
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Category is the declared content category of an attachment.
type Category string

const (
	CategoryText         Category = "text"
	CategoryImage        Category = "image"
	CategoryPDF          Category = "pdf"
	CategoryPresentation Category = "presentation"
	CategoryDocument     Category = "document"
	CategoryCode         Category = "code"
)

// Label returns a human readable name for the category.
func (c Category) Label() string {
	switch c {
	case CategoryText:
		return "text file"
	case CategoryImage:
		return "image"
	case CategoryPDF:
		return "PDF document"
	case CategoryPresentation:
		return "presentation"
	case CategoryDocument:
		return "document"
	case CategoryCode:
		return "source code file"
	default:
		return "file"
	}
}

// Attachment is a single uploaded content item, already resolved by the caller.
// Content is set for text and code; Locator for binary or image content.
type Attachment struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  Category  `json:"category"`
	Size      int64     `json:"size"`
	Content   string    `json:"content,omitempty"`
	Locator   string    `json:"locator,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewAttachment builds an attachment with a fresh id and creation instant.
func NewAttachment(name string, category Category, size int64, content string) Attachment {
	if size < 0 {
		size = 0
	}
	return Attachment{
		ID:        uuid.NewString(),
		Name:      name,
		Category:  category,
		Size:      size,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
}

// Extension returns the lowercase extension including the dot, or "".
func (a Attachment) Extension() string {
	return strings.ToLower(filepath.Ext(a.Name))
}

// HasContent reports whether decoded textual content is present.
func (a Attachment) HasContent() bool {
	return strings.TrimSpace(a.Content) != ""
}

// AttachmentReport is the analysis produced for one attachment in a turn.
type AttachmentReport struct {
	AttachmentID string   `json:"attachment_id"`
	Name         string   `json:"name"`
	Category     Category `json:"category"`
	Report       string   `json:"report"`
}

var extCategory = map[string]Category{
	".txt": CategoryText, ".md": CategoryText, ".markdown": CategoryText, ".rtf": CategoryText, ".log": CategoryText,
	".png": CategoryImage, ".jpg": CategoryImage, ".jpeg": CategoryImage, ".gif": CategoryImage,
	".bmp": CategoryImage, ".webp": CategoryImage, ".svg": CategoryImage,
	".pdf": CategoryPDF,
	".ppt": CategoryPresentation, ".pptx": CategoryPresentation, ".key": CategoryPresentation, ".odp": CategoryPresentation,
	".doc": CategoryDocument, ".docx": CategoryDocument, ".odt": CategoryDocument,
	".xls": CategoryDocument, ".xlsx": CategoryDocument, ".csv": CategoryDocument, ".tsv": CategoryDocument,
	".json": CategoryDocument, ".xml": CategoryDocument, ".yaml": CategoryDocument, ".yml": CategoryDocument,
	".js": CategoryCode, ".jsx": CategoryCode, ".ts": CategoryCode, ".tsx": CategoryCode, ".py": CategoryCode,
	".go": CategoryCode, ".java": CategoryCode, ".c": CategoryCode, ".h": CategoryCode, ".cpp": CategoryCode,
	".cs": CategoryCode, ".rb": CategoryCode, ".php": CategoryCode, ".rs": CategoryCode, ".swift": CategoryCode,
	".kt": CategoryCode, ".html": CategoryCode, ".css": CategoryCode, ".sql": CategoryCode, ".sh": CategoryCode,
}

// DetectCategory resolves a category from the file name, falling back to the
// MIME type. Unknown content is treated as a generic document.
func DetectCategory(name, mimeType string) Category {
	ext := strings.ToLower(filepath.Ext(name))
	if c, ok := extCategory[ext]; ok {
		return c
	}

	mt := strings.ToLower(strings.TrimSpace(mimeType))
	if mt == "" && ext != "" {
		mt = mime.TypeByExtension(ext)
	}
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}
	switch {
	case strings.HasPrefix(mt, "image/"):
		return CategoryImage
	case mt == "application/pdf":
		return CategoryPDF
	case strings.HasPrefix(mt, "text/"):
		return CategoryText
	default:
		return CategoryDocument
	}
}

// IsTextual reports whether the category is expected to carry decoded text.
func (c Category) IsTextual() bool {
	return c == CategoryText || c == CategoryCode
}
