package registry

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/goliatone/go-docschema/pkg/model"
)

// Registry accumulates family, section, and field declarations, then hands
// out an immutable Snapshot once the full model passes Validate. Generators
// accept only snapshots, so an unvalidated model can never reach them.
type Registry struct {
	mu       sync.RWMutex
	families []model.FamilyDefinition
	familyIx map[int]int
	// sectionIx maps section id to (family index, section index).
	sectionIx map[string][2]int
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		familyIx:  make(map[int]int),
		sectionIx: make(map[string][2]int),
	}
}

// RegisterFamily adds a family declaration along with any inline sections
// and fields. Duplicate family or section ids fail with DuplicateIDError;
// incomplete field applicability fails with MissingApplicabilityError.
func (r *Registry) RegisterFamily(family model.FamilyDefinition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.familyIx[family.ID]; exists {
		return &DuplicateIDError{Namespace: "family", ID: strconv.Itoa(family.ID)}
	}

	sections := family.Sections
	family.Sections = nil
	r.families = append(r.families, family)
	r.familyIx[family.ID] = len(r.families) - 1

	for _, section := range sections {
		if err := r.registerSectionLocked(section); err != nil {
			return err
		}
	}
	return nil
}

// RegisterSection adds a section declaration, attaching it to the family
// named by its dotted id prefix. The family must already be registered.
func (r *Registry) RegisterSection(section model.SectionDefinition) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.registerSectionLocked(section)
}

func (r *Registry) registerSectionLocked(section model.SectionDefinition) error {
	if _, exists := r.sectionIx[section.ID]; exists {
		return &DuplicateIDError{Namespace: "section", ID: section.ID}
	}

	familyID, ok := familyPrefix(section.ID)
	if !ok {
		return &CompositionIntegrityError{
			Subject: "section " + section.ID,
			Reason:  "id is not a dotted numeric key",
		}
	}
	fi, ok := r.familyIx[familyID]
	if !ok {
		return &UnknownIDError{Namespace: "family", ID: strconv.Itoa(familyID)}
	}

	fields := section.Fields
	section.Fields = nil
	r.families[fi].Sections = append(r.families[fi].Sections, section)
	r.sectionIx[section.ID] = [2]int{fi, len(r.families[fi].Sections) - 1}

	for _, field := range fields {
		if err := r.registerFieldLocked(section.ID, field); err != nil {
			return err
		}
	}
	return nil
}

// RegisterField adds a field declaration to an already registered section.
// Field names are unique within their section; the applicability map must
// cover all five document kinds with valid levels.
func (r *Registry) RegisterField(sectionID string, field model.FieldDefinition) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.registerFieldLocked(sectionID, field)
}

func (r *Registry) registerFieldLocked(sectionID string, field model.FieldDefinition) error {
	ix, ok := r.sectionIx[sectionID]
	if !ok {
		return &UnknownIDError{Namespace: "section", ID: sectionID}
	}
	section := &r.families[ix[0]].Sections[ix[1]]

	if _, exists := section.Field(field.Name); exists {
		return &DuplicateIDError{Namespace: "field", ID: sectionID + "." + field.Name}
	}

	var missing []model.DocumentKind
	for _, kind := range model.Kinds() {
		level, ok := field.Applicability[kind]
		if !ok || !level.Valid() {
			missing = append(missing, kind)
		}
	}
	if len(missing) > 0 {
		return &MissingApplicabilityError{SectionID: sectionID, Field: field.Name, Missing: missing}
	}

	section.Fields = append(section.Fields, field)
	return nil
}

// ResolveFamily returns the family registered under the given id.
func (r *Registry) ResolveFamily(id int) (model.FamilyDefinition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ix, ok := r.familyIx[id]
	if !ok {
		return model.FamilyDefinition{}, &UnknownIDError{Namespace: "family", ID: strconv.Itoa(id)}
	}
	return r.families[ix], nil
}

// ResolveSection returns the section registered under the given dotted id.
func (r *Registry) ResolveSection(id string) (model.SectionDefinition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ix, ok := r.sectionIx[id]
	if !ok {
		return model.SectionDefinition{}, &UnknownIDError{Namespace: "section", ID: id}
	}
	return r.families[ix[0]].Sections[ix[1]], nil
}

// Validate checks every structural invariant against the supplied
// composition table and, on success, returns the immutable snapshot the
// generators consume. Checks run in declaration order and stop at the
// first violation so errors are deterministic.
func (r *Registry) Validate(table model.CompositionTable) (*Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if err := r.checkDeclarations(); err != nil {
		return nil, err
	}
	if err := r.checkComposition(table); err != nil {
		return nil, err
	}

	snap := &Snapshot{
		families:  cloneFamilies(r.families),
		table:     cloneTable(table),
		familyIx:  make(map[int]int, len(r.familyIx)),
		sectionIx: make(map[string][2]int, len(r.sectionIx)),
	}
	for id, ix := range r.familyIx {
		snap.familyIx[id] = ix
	}
	for id, ix := range r.sectionIx {
		snap.sectionIx[id] = ix
	}
	if err := snap.resolveEffective(); err != nil {
		return nil, err
	}
	return snap, nil
}

func (r *Registry) checkDeclarations() error {
	for _, family := range r.families {
		for _, section := range family.Sections {
			if prefix, _ := familyPrefix(section.ID); prefix != family.ID {
				return &CompositionIntegrityError{
					Subject: "section " + section.ID,
					Reason:  fmt.Sprintf("id prefix does not match family %d", family.ID),
				}
			}
			if err := r.checkSpecialization(section); err != nil {
				return err
			}
			for _, field := range section.Fields {
				if field.Wire.Nullable == field.RequiredAnywhere() {
					return &CompositionIntegrityError{
						Subject: "field " + section.ID + "." + field.Name,
						Reason:  "declared wire nullability contradicts narrowest applicability",
					}
				}
			}
		}
	}
	return nil
}

func (r *Registry) checkSpecialization(section model.SectionDefinition) error {
	if section.ParentSectionID == "" {
		return nil
	}

	seen := map[string]bool{section.ID: true}
	parentID := section.ParentSectionID
	for parentID != "" {
		if seen[parentID] {
			return &CompositionIntegrityError{
				Subject: "section " + section.ID,
				Reason:  "specialization chain is cyclic",
			}
		}
		seen[parentID] = true
		ix, ok := r.sectionIx[parentID]
		if !ok {
			return &UnknownIDError{Namespace: "section", ID: parentID}
		}
		parent := r.families[ix[0]].Sections[ix[1]]

		for _, override := range section.Fields {
			base, ok := parent.Field(override.Name)
			if !ok {
				continue
			}
			if !base.Wire.Equal(override.Wire) {
				return &CompositionIntegrityError{
					Subject: "field " + section.ID + "." + override.Name,
					Reason:  "specialization retypes inherited field " + parent.ID + "." + override.Name,
				}
			}
		}
		parentID = parent.ParentSectionID
	}
	return nil
}

func (r *Registry) checkComposition(table model.CompositionTable) error {
	for _, kind := range model.Kinds() {
		for _, entry := range table.For(kind) {
			fi, ok := r.familyIx[entry.FamilyID]
			if !ok {
				return &UnknownIDError{Namespace: "family", ID: strconv.Itoa(entry.FamilyID)}
			}
			family := r.families[fi]
			if !family.Supports(kind) {
				return &CompositionIntegrityError{
					Subject: fmt.Sprintf("family %d", entry.FamilyID),
					Reason:  fmt.Sprintf("composed into %s documents but does not support that kind", kind),
				}
			}
			for _, sectionID := range entry.SectionsUsed {
				ix, ok := r.sectionIx[sectionID]
				if !ok {
					return &UnknownIDError{Namespace: "section", ID: sectionID}
				}
				if ix[0] != fi {
					return &CompositionIntegrityError{
						Subject: "section " + sectionID,
						Reason:  fmt.Sprintf("referenced under family %d but registered elsewhere", entry.FamilyID),
					}
				}
			}
		}
	}
	return nil
}

// familyPrefix extracts the numeric family id from a dotted section id.
func familyPrefix(sectionID string) (int, bool) {
	head, _, _ := strings.Cut(sectionID, ".")
	id, err := strconv.Atoi(head)
	if err != nil {
		return 0, false
	}
	return id, true
}
