// Package model defines the declarative document model the generators walk:
// fields grouped into sections, sections into families, and a composition
// table mapping each document kind to the ordered families/sections that
// assemble it. Everything here is plain immutable data; registration,
// inheritance resolution, and integrity checks live in pkg/registry, and
// the three generators (wire schema, structural validator, documentation
// index) only ever see a registry snapshot that passed validation.
package model
