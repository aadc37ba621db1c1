// Package loader reads declaration sources: YAML files declaring families
// (with their sections and fields) and the composition table. Declarations
// are read once at process start; the loader performs no structural
// validation beyond parsing, that is the registry's job.
package loader

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-docschema/pkg/model"
	"github.com/goliatone/go-docschema/pkg/registry"
)

// Declarations is the parsed content of one or more declaration sources.
type Declarations struct {
	Families    []model.FamilyDefinition
	Composition model.CompositionTable
}

type declarationFile struct {
	Families    []model.FamilyDefinition                        `yaml:"families"`
	Composition map[model.DocumentKind][]model.CompositionEntry `yaml:"composition"`
}

// LoadFS walks the provided filesystem and parses every YAML declaration
// file, merging families and composition entries in walk order (lexical,
// so load order is reproducible). A document kind composed in two files is
// a conflict and fails the load.
func LoadFS(fsys fs.FS) (Declarations, error) {
	decls := Declarations{
		Composition: model.CompositionTable{Entries: make(map[model.DocumentKind][]model.CompositionEntry)},
	}
	if fsys == nil {
		return decls, fmt.Errorf("loader: filesystem is required")
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDeclarationFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("loader: read %s: %w", path, err)
		}
		parsed, err := parseDeclarations(data, path)
		if err != nil {
			return err
		}

		decls.Families = append(decls.Families, parsed.Families...)
		for kind, entries := range parsed.Composition {
			if _, exists := decls.Composition.Entries[kind]; exists {
				return fmt.Errorf("loader: file %s redefines composition for kind %q", path, kind)
			}
			decls.Composition.Entries[kind] = entries
		}
		return nil
	})
	if err != nil {
		return Declarations{}, err
	}
	return decls, nil
}

// LoadDir loads declarations from a directory on disk.
func LoadDir(path string) (Declarations, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Declarations{}, fmt.Errorf("loader: stat %s: %w", path, err)
	}
	if !info.IsDir() {
		return Declarations{}, fmt.Errorf("loader: %s is not a directory", path)
	}
	return LoadFS(os.DirFS(path))
}

// LoadFile parses a single declaration file.
func LoadFile(path string) (Declarations, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Declarations{}, fmt.Errorf("loader: read %s: %w", path, err)
	}
	parsed, err := parseDeclarations(data, path)
	if err != nil {
		return Declarations{}, err
	}
	return Declarations{
		Families:    parsed.Families,
		Composition: model.CompositionTable{Entries: parsed.Composition},
	}, nil
}

// Apply registers every loaded family with the registry, in declaration
// order, and returns the composition table ready for Validate.
func (d Declarations) Apply(reg *registry.Registry) (model.CompositionTable, error) {
	for _, family := range d.Families {
		if err := reg.RegisterFamily(family); err != nil {
			return model.CompositionTable{}, err
		}
	}
	table := d.Composition
	if table.Entries == nil {
		table.Entries = make(map[model.DocumentKind][]model.CompositionEntry)
	}
	return table, nil
}

func parseDeclarations(data []byte, path string) (declarationFile, error) {
	var parsed declarationFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return declarationFile{}, fmt.Errorf("loader: parse %s: %w", path, err)
	}
	for kind := range parsed.Composition {
		if !kind.Valid() {
			return declarationFile{}, fmt.Errorf("loader: file %s composes unknown document kind %q", path, kind)
		}
	}
	return parsed, nil
}

func isDeclarationFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}
