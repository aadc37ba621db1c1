package validator

import (
	"fmt"

	"github.com/goliatone/go-docschema/pkg/model"
	"github.com/goliatone/go-docschema/pkg/registry"
)

// Set holds one assembled validator per document kind. It is built from
// the same composition walk the wire schema generator performs, so its
// requiredness decisions match the emitted nullability exactly. A Set is
// immutable and safe for concurrent use; validation is stateless between
// calls.
type Set struct {
	kinds map[model.DocumentKind][]fieldCheck
}

type fieldCheck struct {
	sectionID     string
	field         model.FieldDefinition
	applicability model.Applicability
}

// Assemble builds the per-kind validators from a validated snapshot.
func Assemble(snap *registry.Snapshot) (*Set, error) {
	if snap == nil {
		return nil, fmt.Errorf("validator: snapshot is required")
	}

	set := &Set{kinds: make(map[model.DocumentKind][]fieldCheck)}
	for _, kind := range model.Kinds() {
		entries := snap.Table().For(kind)
		if len(entries) == 0 {
			continue
		}
		var checks []fieldCheck
		for _, entry := range entries {
			for _, sectionID := range entry.SectionsUsed {
				section, err := snap.EffectiveSection(sectionID)
				if err != nil {
					return nil, err
				}
				for _, field := range section.Fields {
					applicability := field.ApplicabilityFor(kind)
					if applicability == model.ApplicabilityOmitted {
						continue
					}
					checks = append(checks, fieldCheck{
						sectionID:     sectionID,
						field:         field,
						applicability: applicability,
					})
				}
			}
		}
		set.kinds[kind] = checks
	}
	return set, nil
}

// Kinds returns the document kinds the set can validate, in canonical
// order.
func (s *Set) Kinds() []model.DocumentKind {
	var out []model.DocumentKind
	for _, kind := range model.Kinds() {
		if _, ok := s.kinds[kind]; ok {
			out = append(out, kind)
		}
	}
	return out
}

// Requires reports whether the dotted section.field path must be present
// for the kind. This is the validator side of the equivalence law with the
// wire schema's non-nullability.
func (s *Set) Requires(kind model.DocumentKind, path string) bool {
	for _, check := range s.kinds[kind] {
		if check.sectionID+"."+check.field.Name == path {
			return check.applicability == model.ApplicabilityRequired
		}
	}
	return false
}

// Validate checks a candidate record for the given kind. Records are maps
// keyed by section id, each holding a map of field name to value. The
// result is nil on success or a *ValidationError enumerating every failing
// field, so callers can report all problems in one pass. Values for fields
// the kind omits are ignored, never rejected.
func (s *Set) Validate(kind model.DocumentKind, record map[string]any) error {
	checks, ok := s.kinds[kind]
	if !ok {
		return &ValidationError{
			Kind: kind,
			Failures: []FieldFailure{{
				Path:    string(kind),
				Message: "no composition is defined for this document kind",
			}},
		}
	}

	var failures []FieldFailure
	for _, check := range checks {
		path := check.sectionID + "." + check.field.Name
		value, present := fieldValue(record, check.sectionID, check.field.Name)

		if !present || value == nil {
			if check.applicability == model.ApplicabilityRequired {
				failures = append(failures, FieldFailure{Path: path, Message: "required field is missing"})
			}
			continue
		}

		for _, message := range checkConstraint(check.field.Constraint, value) {
			failures = append(failures, FieldFailure{Path: path, Message: message})
		}
	}

	if len(failures) > 0 {
		return &ValidationError{Kind: kind, Failures: failures}
	}
	return nil
}

func fieldValue(record map[string]any, sectionID, name string) (any, bool) {
	raw, ok := record[sectionID]
	if !ok {
		return nil, false
	}
	section, ok := raw.(map[string]any)
	if !ok {
		return nil, false
	}
	value, ok := section[name]
	return value, ok
}
