package model

// DocumentKind identifies one of the recognized document categories a
// composed schema can describe.
type DocumentKind string

const (
	KindPlan    DocumentKind = "plan"
	KindTask    DocumentKind = "task"
	KindProject DocumentKind = "project"
	KindModule  DocumentKind = "module"
	KindFeature DocumentKind = "feature"
)

// Kinds returns every document kind in canonical order. The order is
// stable and drives deterministic artifact emission.
func Kinds() []DocumentKind {
	return []DocumentKind{KindPlan, KindTask, KindProject, KindModule, KindFeature}
}

// TypeName returns the wire-level type name for the kind ("task" -> "Task").
func (k DocumentKind) TypeName() string {
	switch k {
	case KindPlan:
		return "Plan"
	case KindTask:
		return "Task"
	case KindProject:
		return "Project"
	case KindModule:
		return "Module"
	case KindFeature:
		return "Feature"
	default:
		return string(k)
	}
}

// Valid reports whether k is one of the recognized document kinds.
func (k DocumentKind) Valid() bool {
	switch k {
	case KindPlan, KindTask, KindProject, KindModule, KindFeature:
		return true
	default:
		return false
	}
}

// Applicability classifies a field for a single document kind.
type Applicability string

const (
	// ApplicabilityRequired means the field must be present and satisfy its
	// constraint for records of that kind.
	ApplicabilityRequired Applicability = "required"
	// ApplicabilityOptional means the field may be absent; when present it
	// must satisfy its constraint.
	ApplicabilityOptional Applicability = "optional"
	// ApplicabilityOmitted means the field does not exist for that kind:
	// it is skipped in generated output and ignored during validation.
	ApplicabilityOmitted Applicability = "omitted"
)

// Valid reports whether a is one of the three applicability levels.
func (a Applicability) Valid() bool {
	switch a {
	case ApplicabilityRequired, ApplicabilityOptional, ApplicabilityOmitted:
		return true
	default:
		return false
	}
}

// ScalarType enumerates the primitive wire types.
type ScalarType string

const (
	ScalarID       ScalarType = "ID"
	ScalarString   ScalarType = "String"
	ScalarInt      ScalarType = "Int"
	ScalarFloat    ScalarType = "Float"
	ScalarBoolean  ScalarType = "Boolean"
	ScalarDateTime ScalarType = "DateTime"
)

// WireType describes how a field is declared at the wire level. Exactly one
// of Scalar or Ref is set: Scalar for primitives, Ref for references to a
// named type. List wraps the element type in a list declaration.
type WireType struct {
	Scalar   ScalarType `json:"scalar,omitempty" yaml:"scalar,omitempty"`
	Ref      string     `json:"ref,omitempty" yaml:"ref,omitempty"`
	List     bool       `json:"list,omitempty" yaml:"list,omitempty"`
	Nullable bool       `json:"nullable" yaml:"nullable"`
}

// TypeToken returns the bare type token without a nullability marker, e.g.
// "String" or "[Tag]".
func (w WireType) TypeToken() string {
	name := string(w.Scalar)
	if w.Ref != "" {
		name = w.Ref
	}
	if w.List {
		return "[" + name + "]"
	}
	return name
}

// IsReference reports whether the type points at a named wire type rather
// than a primitive.
func (w WireType) IsReference() bool {
	return w.Ref != ""
}

// Equal reports whether two wire types declare the same shape, ignoring
// nullability. Nullability is an applicability concern, not a type one.
func (w WireType) Equal(other WireType) bool {
	return w.Scalar == other.Scalar && w.Ref == other.Ref && w.List == other.List
}

// FieldDefinition is the atomic declaration of one attribute: its wire
// type, structural constraint, per-kind applicability, and human-facing
// metadata. Name is unique within the owning section.
type FieldDefinition struct {
	Name          string                         `json:"name" yaml:"name"`
	Wire          WireType                       `json:"wire" yaml:"wire"`
	Constraint    *Constraint                    `json:"constraint,omitempty" yaml:"constraint,omitempty"`
	Applicability map[DocumentKind]Applicability `json:"applicability" yaml:"applicability"`
	Meta          Metadata                       `json:"meta,omitempty" yaml:"meta,omitempty"`
}

// ApplicabilityFor returns the applicability level for the given kind.
// Missing entries report as omitted; the registry rejects incomplete maps
// before any consumer sees them.
func (f FieldDefinition) ApplicabilityFor(kind DocumentKind) Applicability {
	if a, ok := f.Applicability[kind]; ok {
		return a
	}
	return ApplicabilityOmitted
}

// RequiredAnywhere reports whether at least one document kind requires the
// field. Declared wire nullability must be false exactly when this is true.
func (f FieldDefinition) RequiredAnywhere() bool {
	for _, a := range f.Applicability {
		if a == ApplicabilityRequired {
			return true
		}
	}
	return false
}

// SectionDefinition groups ordered field declarations under a dotted
// numeric id scoped to its family ("5.2" belongs to family 5). A section
// may extend a base section via ParentSectionID; the extension may add
// fields or narrow an inherited field's constraint and applicability, but
// never remove or retype one.
type SectionDefinition struct {
	ID              string            `json:"id" yaml:"id"`
	Name            string            `json:"name" yaml:"name"`
	ParentSectionID string            `json:"parentSectionId,omitempty" yaml:"parentSectionId,omitempty"`
	Fields          []FieldDefinition `json:"fields" yaml:"fields"`
	Meta            Metadata          `json:"meta,omitempty" yaml:"meta,omitempty"`
}

// Field returns the field with the given name and whether it exists.
func (s SectionDefinition) Field(name string) (FieldDefinition, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldDefinition{}, false
}

// FamilyDefinition groups ordered sections under a numeric family id.
// Version follows semver and is bumped on any field or section change.
type FamilyDefinition struct {
	ID             int                 `json:"id" yaml:"id"`
	Name           string              `json:"name" yaml:"name"`
	Version        string              `json:"version" yaml:"version"`
	Sections       []SectionDefinition `json:"sections" yaml:"sections"`
	SupportedKinds []DocumentKind      `json:"supportedKinds" yaml:"supportedKinds"`
	Meta           Metadata            `json:"meta,omitempty" yaml:"meta,omitempty"`
}

// Supports reports whether the family participates in documents of the
// given kind.
func (f FamilyDefinition) Supports(kind DocumentKind) bool {
	for _, k := range f.SupportedKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// Section returns the section with the given id and whether it exists.
func (f FamilyDefinition) Section(id string) (SectionDefinition, bool) {
	for _, s := range f.Sections {
		if s.ID == id {
			return s, true
		}
	}
	return SectionDefinition{}, false
}

// CompositionEntry pairs a family with the ordered section ids a document
// kind draws from it.
type CompositionEntry struct {
	FamilyID     int      `json:"familyId" yaml:"familyId"`
	SectionsUsed []string `json:"sectionsUsed" yaml:"sectionsUsed"`
}

// CompositionTable is the single authoritative recipe mapping each document
// kind to the ordered families and sections that compose it. Generators
// never consult anything else to decide what a kind contains.
type CompositionTable struct {
	Entries map[DocumentKind][]CompositionEntry `json:"entries" yaml:"entries"`
}

// For returns the ordered composition entries for a kind.
func (t CompositionTable) For(kind DocumentKind) []CompositionEntry {
	return t.Entries[kind]
}
