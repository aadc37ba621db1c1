package validator

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-docschema/pkg/model"
)

// FieldFailure describes a single failing field by its dotted
// section.field path.
type FieldFailure struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ValidationError enumerates every failing field of one candidate record.
// It is fully recoverable: the caller can fix the record and retry, and
// the validator keeps no state between calls.
type ValidationError struct {
	Kind     model.DocumentKind `json:"kind"`
	Failures []FieldFailure     `json:"failures"`
}

func (e *ValidationError) Error() string {
	if len(e.Failures) == 0 {
		return fmt.Sprintf("validator: %s record is invalid", e.Kind)
	}
	paths := make([]string, 0, len(e.Failures))
	for _, failure := range e.Failures {
		paths = append(paths, failure.Path)
	}
	return fmt.Sprintf("validator: %s record has %d invalid field(s): %s",
		e.Kind, len(e.Failures), strings.Join(paths, ", "))
}

// Payload renders the failures as a path-keyed message map, the shape the
// ingest surface expects for machine-readable error responses.
func (e *ValidationError) Payload() map[string][]string {
	out := make(map[string][]string, len(e.Failures))
	for _, failure := range e.Failures {
		out[failure.Path] = append(out[failure.Path], failure.Message)
	}
	return out
}
