package model

// Metadata carries the human- and AI-facing prose attached to a field,
// section, or family. It is populated at construction time and never
// mutated afterwards; validation constraints never live here.
type Metadata struct {
	Description     string   `json:"description,omitempty" yaml:"description,omitempty"`
	BusinessPurpose string   `json:"businessPurpose,omitempty" yaml:"businessPurpose,omitempty"`
	ValidationNotes string   `json:"validationNotes,omitempty" yaml:"validationNotes,omitempty"`
	UsageGuidance   string   `json:"usageGuidance,omitempty" yaml:"usageGuidance,omitempty"`
	Examples        []string `json:"examples,omitempty" yaml:"examples,omitempty"`
	AIHints         string   `json:"aiHints,omitempty" yaml:"aiHints,omitempty"`
}

// IsZero reports whether no metadata was supplied at this level.
func (m Metadata) IsZero() bool {
	return m.Description == "" &&
		m.BusinessPurpose == "" &&
		m.ValidationNotes == "" &&
		m.UsageGuidance == "" &&
		len(m.Examples) == 0 &&
		m.AIHints == ""
}

// MergedOver returns m layered over defaults: empty attributes inherit the
// default value, populated ones win. Examples do not merge element-wise; a
// non-empty slice replaces the inherited one outright.
func (m Metadata) MergedOver(defaults Metadata) Metadata {
	out := defaults
	if m.Description != "" {
		out.Description = m.Description
	}
	if m.BusinessPurpose != "" {
		out.BusinessPurpose = m.BusinessPurpose
	}
	if m.ValidationNotes != "" {
		out.ValidationNotes = m.ValidationNotes
	}
	if m.UsageGuidance != "" {
		out.UsageGuidance = m.UsageGuidance
	}
	if len(m.Examples) > 0 {
		out.Examples = append([]string(nil), m.Examples...)
	}
	if m.AIHints != "" {
		out.AIHints = m.AIHints
	}
	return out
}
