package wireschema

import "github.com/goliatone/go-docschema/pkg/model"

// Schema is the generated wire schema artifact: the SDL text plus the
// per-kind nullability decisions the generator made while emitting it.
// The structural validator's requiredness must agree with these decisions
// field for field.
type Schema struct {
	sdl     []byte
	nonNull map[string]bool
	present map[string]bool
}

func newSchema() *Schema {
	return &Schema{
		nonNull: make(map[string]bool),
		present: make(map[string]bool),
	}
}

func (s *Schema) record(kind model.DocumentKind, path string, nonNull bool) {
	key := string(kind) + "|" + path
	s.present[key] = true
	s.nonNull[key] = nonNull
}

// SDL returns the rendered schema text.
func (s *Schema) SDL() []byte {
	return s.sdl
}

// Includes reports whether the dotted section.field path was emitted for
// the kind. Omitted fields are absent.
func (s *Schema) Includes(kind model.DocumentKind, path string) bool {
	return s.present[string(kind)+"|"+path]
}

// IsNonNullable reports whether the emitted declaration for the path in
// the kind's block carries the non-null marker.
func (s *Schema) IsNonNullable(kind model.DocumentKind, path string) bool {
	return s.nonNull[string(kind)+"|"+path]
}

// Paths returns every emitted kind|path key; test helpers use it to sweep
// the equivalence law across the whole artifact.
func (s *Schema) Paths(kind model.DocumentKind) []string {
	prefix := string(kind) + "|"
	var out []string
	for key := range s.present {
		if len(key) > len(prefix) && key[:len(prefix)] == prefix {
			out = append(out, key[len(prefix):])
		}
	}
	return out
}
