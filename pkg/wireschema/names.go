package wireschema

import (
	"strings"
	"unicode"
)

// pascalCase turns a display name like "Meta & Governance" into
// "MetaGovernance". Non-alphanumeric runs act as word separators.
func pascalCase(name string) string {
	var b strings.Builder
	upperNext := true
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upperNext = true
			continue
		}
		if upperNext {
			b.WriteRune(unicode.ToUpper(r))
			upperNext = false
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// camelCase is pascalCase with a lowered first rune, used for relationship
// field names ("Meta & Governance" -> "metaGovernance").
func camelCase(name string) string {
	pascal := pascalCase(name)
	if pascal == "" {
		return ""
	}
	runes := []rune(pascal)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}
