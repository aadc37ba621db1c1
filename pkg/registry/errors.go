package registry

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-docschema/pkg/model"
)

// DuplicateIDError reports an id collision within one of the registry
// namespaces (family, section, or field-within-section).
type DuplicateIDError struct {
	Namespace string
	ID        string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("registry: duplicate %s id %q", e.Namespace, e.ID)
}

// MissingApplicabilityError reports a field declaration whose applicability
// map does not cover every document kind with a valid level.
type MissingApplicabilityError struct {
	SectionID string
	Field     string
	Missing   []model.DocumentKind
}

func (e *MissingApplicabilityError) Error() string {
	kinds := make([]string, 0, len(e.Missing))
	for _, k := range e.Missing {
		kinds = append(kinds, string(k))
	}
	return fmt.Sprintf("registry: field %s.%s missing applicability for %s",
		e.SectionID, e.Field, strings.Join(kinds, ", "))
}

// UnknownIDError reports a dangling reference to a family or section that
// was never registered.
type UnknownIDError struct {
	Namespace string
	ID        string
}

func (e *UnknownIDError) Error() string {
	return fmt.Sprintf("registry: unknown %s id %q", e.Namespace, e.ID)
}

// CompositionIntegrityError names the first structural invariant violation
// found while validating the model, in declaration order, so failures are
// reproducible across runs.
type CompositionIntegrityError struct {
	Subject string
	Reason  string
}

func (e *CompositionIntegrityError) Error() string {
	return fmt.Sprintf("registry: composition integrity: %s: %s", e.Subject, e.Reason)
}
