package registry

import (
	"strconv"

	"github.com/goliatone/go-docschema/pkg/model"
)

// Snapshot is the validated, immutable view of the model handed to the
// generators. It owns deep copies of every declaration, so later registry
// mutation cannot leak into a generation run.
type Snapshot struct {
	families  []model.FamilyDefinition
	table     model.CompositionTable
	familyIx  map[int]int
	sectionIx map[string][2]int
	effective map[string]model.SectionDefinition
}

// Families returns the families in declaration order.
func (s *Snapshot) Families() []model.FamilyDefinition {
	return s.families
}

// Family returns the family registered under the given id.
func (s *Snapshot) Family(id int) (model.FamilyDefinition, error) {
	ix, ok := s.familyIx[id]
	if !ok {
		return model.FamilyDefinition{}, &UnknownIDError{Namespace: "family", ID: strconv.Itoa(id)}
	}
	return s.families[ix], nil
}

// Section returns the section as declared, before specialization merge.
func (s *Snapshot) Section(id string) (model.SectionDefinition, error) {
	ix, ok := s.sectionIx[id]
	if !ok {
		return model.SectionDefinition{}, &UnknownIDError{Namespace: "section", ID: id}
	}
	return s.families[ix[0]].Sections[ix[1]], nil
}

// EffectiveSection returns the section with its specialization chain
// resolved: inherited fields first in their base order (overrides applied
// in place), then fields the specialization added, in declaration order.
func (s *Snapshot) EffectiveSection(id string) (model.SectionDefinition, error) {
	section, ok := s.effective[id]
	if !ok {
		return model.SectionDefinition{}, &UnknownIDError{Namespace: "section", ID: id}
	}
	return section, nil
}

// Table returns the composition table the snapshot was validated against.
func (s *Snapshot) Table() model.CompositionTable {
	return s.table
}

// resolveEffective materializes the specialization merge for every section
// once, at validation time, so generator walks stay pure lookups.
func (s *Snapshot) resolveEffective() error {
	s.effective = make(map[string]model.SectionDefinition, len(s.sectionIx))
	for id := range s.sectionIx {
		if _, err := s.effectiveFor(id, map[string]bool{}); err != nil {
			return err
		}
	}
	return nil
}

func (s *Snapshot) effectiveFor(id string, visiting map[string]bool) (model.SectionDefinition, error) {
	if resolved, ok := s.effective[id]; ok {
		return resolved, nil
	}
	if visiting[id] {
		return model.SectionDefinition{}, &CompositionIntegrityError{
			Subject: "section " + id,
			Reason:  "specialization chain is cyclic",
		}
	}
	visiting[id] = true

	declared, err := s.Section(id)
	if err != nil {
		return model.SectionDefinition{}, err
	}
	if declared.ParentSectionID == "" {
		resolved := cloneSection(declared)
		s.effective[id] = resolved
		return resolved, nil
	}

	base, err := s.effectiveFor(declared.ParentSectionID, visiting)
	if err != nil {
		return model.SectionDefinition{}, err
	}
	resolved := mergeSections(base, cloneSection(declared))
	s.effective[id] = resolved
	return resolved, nil
}

// mergeSections applies the specialization rules: the result keeps every
// base field at its original position, overridden constraint/applicability
// winning, and appends specialization-only fields at the end. Fields are
// never reordered or removed by specialization.
func mergeSections(base, spec model.SectionDefinition) model.SectionDefinition {
	out := spec
	out.Fields = nil

	overrides := make(map[string]model.FieldDefinition, len(spec.Fields))
	for _, f := range spec.Fields {
		overrides[f.Name] = f
	}

	for _, inherited := range base.Fields {
		field := inherited
		if override, ok := overrides[field.Name]; ok {
			field.Wire.Nullable = override.Wire.Nullable
			field.Constraint = override.Constraint
			field.Applicability = override.Applicability
			field.Meta = override.Meta.MergedOver(inherited.Meta)
			delete(overrides, field.Name)
		}
		out.Fields = append(out.Fields, field)
	}

	for _, f := range spec.Fields {
		if _, stillOverride := overrides[f.Name]; stillOverride {
			out.Fields = append(out.Fields, f)
		}
	}
	return out
}

func cloneFamilies(families []model.FamilyDefinition) []model.FamilyDefinition {
	out := make([]model.FamilyDefinition, len(families))
	for i, family := range families {
		cloned := family
		cloned.SupportedKinds = append([]model.DocumentKind(nil), family.SupportedKinds...)
		cloned.Sections = make([]model.SectionDefinition, len(family.Sections))
		for j, section := range family.Sections {
			cloned.Sections[j] = cloneSection(section)
		}
		out[i] = cloned
	}
	return out
}

func cloneSection(section model.SectionDefinition) model.SectionDefinition {
	out := section
	out.Fields = make([]model.FieldDefinition, len(section.Fields))
	for i, field := range section.Fields {
		out.Fields[i] = cloneField(field)
	}
	return out
}

func cloneField(field model.FieldDefinition) model.FieldDefinition {
	out := field
	out.Constraint = field.Constraint.Clone()
	out.Applicability = make(map[model.DocumentKind]model.Applicability, len(field.Applicability))
	for kind, level := range field.Applicability {
		out.Applicability[kind] = level
	}
	out.Meta = field.Meta.MergedOver(model.Metadata{})
	return out
}

func cloneTable(table model.CompositionTable) model.CompositionTable {
	out := model.CompositionTable{Entries: make(map[model.DocumentKind][]model.CompositionEntry, len(table.Entries))}
	for kind, entries := range table.Entries {
		cloned := make([]model.CompositionEntry, len(entries))
		for i, entry := range entries {
			cloned[i] = model.CompositionEntry{
				FamilyID:     entry.FamilyID,
				SectionsUsed: append([]string(nil), entry.SectionsUsed...),
			}
		}
		out.Entries[kind] = cloned
	}
	return out
}
