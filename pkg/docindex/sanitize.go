package docindex

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-docschema/pkg/model"
)

var (
	prosePolicyOnce sync.Once
	prosePolicy     *bluemonday.Policy
)

// sanitizeMetadata scrubs every prose attribute. Declaration sources are
// hand written and occasionally carry inline markup in examples; the index
// keeps safe formatting and drops everything else.
func sanitizeMetadata(meta model.Metadata) model.Metadata {
	out := meta
	out.Description = sanitizeProse(meta.Description)
	out.BusinessPurpose = sanitizeProse(meta.BusinessPurpose)
	out.ValidationNotes = sanitizeProse(meta.ValidationNotes)
	out.UsageGuidance = sanitizeProse(meta.UsageGuidance)
	out.AIHints = sanitizeProse(meta.AIHints)
	if len(meta.Examples) > 0 {
		out.Examples = make([]string, 0, len(meta.Examples))
		for _, example := range meta.Examples {
			if cleaned := sanitizeProse(example); cleaned != "" {
				out.Examples = append(out.Examples, cleaned)
			}
		}
	}
	return out
}

func sanitizeProse(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(proseSanitizer().Sanitize(trimmed))
}

func proseSanitizer() *bluemonday.Policy {
	prosePolicyOnce.Do(func() {
		prosePolicy = bluemonday.UGCPolicy()
	})
	return prosePolicy
}
