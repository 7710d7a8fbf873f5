package main

import (
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/arudraviharbommana/intelli-nlp/internal/agent/model"
)

// maxInlineContent caps how much of a textual file is decoded into the attachment.
const maxInlineContent = 1 << 20

// loadAttachment resolves a local file into an Attachment: textual files
// carry their decoded content, everything else a file:// locator.
func loadAttachment(path string) (model.Attachment, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return model.Attachment{}, fmt.Errorf("resolve %s: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return model.Attachment{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return model.Attachment{}, fmt.Errorf("%s is a directory", path)
	}

	name := filepath.Base(abs)
	category := model.DetectCategory(name, mime.TypeByExtension(filepath.Ext(name)))

	var content string
	if category.IsTextual() {
		b, err := readPrefix(abs, maxInlineContent)
		if err != nil {
			return model.Attachment{}, err
		}
		b = trimPartialRune(b)
		if utf8.Valid(b) {
			content = string(b)
		}
	}

	att := model.NewAttachment(name, category, info.Size(), content)
	if !category.IsTextual() {
		att.Locator = "file://" + filepath.ToSlash(abs)
	}
	return att, nil
}

func readPrefix(path string, limit int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	b, err := io.ReadAll(io.LimitReader(f, limit))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return b, nil
}

// trimPartialRune drops a multi-byte rune cut off at the end of b.
func trimPartialRune(b []byte) []byte {
	start := len(b) - 1
	for start > 0 && len(b)-start < utf8.UTFMax && !utf8.RuneStart(b[start]) {
		start--
	}
	if start < 0 || utf8.FullRune(b[start:]) {
		return b
	}
	return b[:start]
}
