package model

import "strings"

const (
	ConstraintNonEmpty = "nonEmpty"
	ConstraintRange    = "range"
	ConstraintEnum     = "enum"
	ConstraintDateTime = "dateTime"
	ConstraintMinItems = "minItems"
)

// Constraint represents a single structural rule applied to a field. Use
// the Constraint* constants for Kind. Numeric bounds encode thresholds in
// Params ("min"/"max"), minItems in Params["value"], and enum membership
// in Values. Parameters stay stringly typed so declaration files and JSON
// snapshots round-trip without float drift.
type Constraint struct {
	Kind   string            `json:"kind" yaml:"kind"`
	Params map[string]string `json:"params,omitempty" yaml:"params,omitempty"`
	Values []string          `json:"values,omitempty" yaml:"values,omitempty"`
}

// NonEmpty builds a required/non-empty constraint.
func NonEmpty() *Constraint {
	return &Constraint{Kind: ConstraintNonEmpty}
}

// Range builds a numeric range constraint. Empty strings leave a bound
// open.
func Range(min, max string) *Constraint {
	params := make(map[string]string, 2)
	if strings.TrimSpace(min) != "" {
		params["min"] = strings.TrimSpace(min)
	}
	if strings.TrimSpace(max) != "" {
		params["max"] = strings.TrimSpace(max)
	}
	return &Constraint{Kind: ConstraintRange, Params: params}
}

// Enum builds an enum-membership constraint over the supplied values.
func Enum(values ...string) *Constraint {
	return &Constraint{Kind: ConstraintEnum, Values: values}
}

// DateTime builds an RFC 3339 date-time format constraint.
func DateTime() *Constraint {
	return &Constraint{Kind: ConstraintDateTime}
}

// MinItems builds an array cardinality constraint.
func MinItems(value string) *Constraint {
	return &Constraint{Kind: ConstraintMinItems, Params: map[string]string{"value": value}}
}

// Param returns the named parameter, or "" when absent.
func (c *Constraint) Param(name string) string {
	if c == nil || c.Params == nil {
		return ""
	}
	return c.Params[name]
}

// Clone returns a deep copy so specializations can override constraints
// without aliasing the base declaration.
func (c *Constraint) Clone() *Constraint {
	if c == nil {
		return nil
	}
	out := &Constraint{Kind: c.Kind}
	if len(c.Params) > 0 {
		out.Params = make(map[string]string, len(c.Params))
		for k, v := range c.Params {
			out.Params[k] = v
		}
	}
	if len(c.Values) > 0 {
		out.Values = append([]string(nil), c.Values...)
	}
	return out
}
