package wireschema

import (
	"fmt"

	"github.com/goliatone/go-docschema/pkg/model"
	"github.com/goliatone/go-docschema/pkg/registry"
)

const schemaTemplateName = "schema"

// Option customises the generator.
type Option func(*Generator)

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer TemplateRenderer) Option {
	return func(g *Generator) {
		if renderer != nil {
			g.templates = renderer
		}
	}
}

// WithTemplatesDir loads emission templates from a directory on disk
// instead of the embedded bundle.
func WithTemplatesDir(path string) Option {
	return func(g *Generator) {
		if path == "" {
			return
		}
		g.templatesDir = path
	}
}

// Generator walks a validated snapshot's composition table and emits the
// wire schema: per document kind, one type per composed family, an
// abstract interface naming the kind's family relationships, and a
// concrete type implementing it with inverse-link directives.
type Generator struct {
	templates    TemplateRenderer
	templatesDir string
}

// New constructs a Generator, defaulting to the embedded template bundle.
func New(options ...Option) (*Generator, error) {
	g := &Generator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(g)
	}

	if g.templates == nil {
		engineOpts := []EngineOption{WithEngineFS(TemplatesFS())}
		if g.templatesDir != "" {
			engineOpts = []EngineOption{WithEngineBaseDir(g.templatesDir)}
		}
		engine, err := NewEngine(engineOpts...)
		if err != nil {
			return nil, err
		}
		g.templates = engine
	}
	return g, nil
}

// Generate produces the schema artifact for every document kind present in
// the snapshot's composition table. Emission order follows the table's
// declaration order, never registration order, so output is deterministic
// and diffable.
func (g *Generator) Generate(snap *registry.Snapshot) (*Schema, error) {
	if snap == nil {
		return nil, fmt.Errorf("wireschema: snapshot is required")
	}

	schema := newSchema()
	blocks := make([]map[string]any, 0, len(model.Kinds()))

	for _, kind := range model.Kinds() {
		entries := snap.Table().For(kind)
		if len(entries) == 0 {
			continue
		}
		block, err := g.buildKindBlock(snap, kind, entries, schema)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, block)
	}

	rendered, err := g.templates.RenderTemplate(schemaTemplateName, map[string]any{"blocks": blocks})
	if err != nil {
		return nil, err
	}
	schema.sdl = []byte(rendered)
	return schema, nil
}

func (g *Generator) buildKindBlock(snap *registry.Snapshot, kind model.DocumentKind, entries []model.CompositionEntry, schema *Schema) (map[string]any, error) {
	kindName := kind.TypeName()
	familyTypes := make([]map[string]any, 0, len(entries))
	relationships := make([]map[string]any, 0, len(entries))

	for _, entry := range entries {
		family, err := snap.Family(entry.FamilyID)
		if err != nil {
			return nil, err
		}

		typeName := kindName + pascalCase(family.Name)
		relName := camelCase(family.Name)

		lines := make([]string, 0, 8)
		for _, sectionID := range entry.SectionsUsed {
			section, err := snap.EffectiveSection(sectionID)
			if err != nil {
				return nil, err
			}
			for _, field := range section.Fields {
				applicability := field.ApplicabilityFor(kind)
				if applicability == model.ApplicabilityOmitted {
					continue
				}
				nonNull := applicability == model.ApplicabilityRequired
				schema.record(kind, sectionID+"."+field.Name, nonNull)
				lines = append(lines, fieldLine(field, nonNull))
			}
		}

		familyTypes = append(familyTypes, map[string]any{
			"name":         typeName,
			"relationship": relName,
			"lines":        lines,
			"inverse":      fmt.Sprintf("document: %s @hasInverse(field: %s)", kindName, relName),
		})
		relationships = append(relationships, map[string]any{
			"decl":        fmt.Sprintf("%s: %s!", relName, typeName),
			"declInverse": fmt.Sprintf("%s: %s! @hasInverse(field: document)", relName, typeName),
		})
	}

	return map[string]any{
		"kind":          kindName,
		"interface":     kindName + "Document",
		"familyTypes":   familyTypes,
		"relationships": relationships,
	}, nil
}

// fieldLine formats a single field declaration: type token plus the
// nullability marker decided by the field's applicability for the kind.
func fieldLine(field model.FieldDefinition, nonNull bool) string {
	token := field.Wire.TypeToken()
	if nonNull {
		token += "!"
	}
	return field.Name + ": " + token
}
