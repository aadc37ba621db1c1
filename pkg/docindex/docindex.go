// Package docindex extracts the human- and AI-facing documentation
// attached to families, sections, and fields into a read-only index keyed
// by fully-qualified id. The index is advisory only: nothing here feeds
// the structural validator or the wire schema.
package docindex

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/goliatone/go-docschema/pkg/model"
	"github.com/goliatone/go-docschema/pkg/registry"
)

// Level identifies which tier of the model an entry documents.
type Level string

const (
	LevelFamily  Level = "family"
	LevelSection Level = "section"
	LevelField   Level = "field"
)

// Entry is one documented node. Field entries inherit section defaults,
// which inherit family defaults; attributes set closer to the field win.
type Entry struct {
	ID    string         `json:"id"`
	Level Level          `json:"level"`
	Name  string         `json:"name"`
	Meta  model.Metadata `json:"meta"`
}

// Index is the read-only lookup table handed to documentation tooling and
// AI-authoring surfaces.
type Index struct {
	entries map[string]Entry
}

// Build walks every family in declaration order and produces the index.
// Prose is sanitized before indexing so downstream surfaces never see raw
// markup.
func Build(snap *registry.Snapshot) (*Index, error) {
	if snap == nil {
		return nil, fmt.Errorf("docindex: snapshot is required")
	}

	index := &Index{entries: make(map[string]Entry)}
	for _, family := range snap.Families() {
		familyMeta := sanitizeMetadata(family.Meta)
		index.entries[strconv.Itoa(family.ID)] = Entry{
			ID:    strconv.Itoa(family.ID),
			Level: LevelFamily,
			Name:  family.Name,
			Meta:  familyMeta,
		}

		for _, declared := range family.Sections {
			section, err := snap.EffectiveSection(declared.ID)
			if err != nil {
				return nil, err
			}
			sectionMeta := sanitizeMetadata(section.Meta).MergedOver(familyMeta)
			index.entries[section.ID] = Entry{
				ID:    section.ID,
				Level: LevelSection,
				Name:  section.Name,
				Meta:  sectionMeta,
			}

			for _, field := range section.Fields {
				id := section.ID + "." + field.Name
				index.entries[id] = Entry{
					ID:    id,
					Level: LevelField,
					Name:  field.Name,
					Meta:  sanitizeMetadata(field.Meta).MergedOver(sectionMeta),
				}
			}
		}
	}
	return index, nil
}

// Lookup returns the entry for a fully-qualified id: "1" for a family,
// "1.2" for a section, "1.2.title" for a field.
func (i *Index) Lookup(id string) (Entry, bool) {
	entry, ok := i.entries[id]
	return entry, ok
}

// Len reports the number of indexed entries.
func (i *Index) Len() int {
	return len(i.entries)
}

// JSON renders the whole index as deterministic JSON (keys sorted) for
// external tooling.
func (i *Index) JSON() ([]byte, error) {
	data, err := json.MarshalIndent(i.entries, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("docindex: marshal index: %w", err)
	}
	return data, nil
}
