package analyzer

import (
	"fmt"

	"github.com/arudraviharbommana/intelli-nlp/internal/agent/model"
)

// Fingerprint is a deterministic 32-bit rolling hash over
// "name-size-category-<creation instant ms>", rendered as 8 hex digits.
func Fingerprint(att model.Attachment) string {
	seed := fmt.Sprintf("%s-%d-%s-%d", att.Name, att.Size, att.Category, att.CreatedAt.UnixMilli())
	return fmt.Sprintf("%08x", rollingHash(seed))
}

func rollingHash(s string) uint32 {
	var h uint32
	for _, r := range s {
		h = (h << 5) - h + uint32(r)
	}
	return h
}
