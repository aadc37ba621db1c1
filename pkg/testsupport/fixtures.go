// Package testsupport provides the shared fixture model and comparison
// helpers the package test suites build on.
package testsupport

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-docschema/pkg/model"
	"github.com/goliatone/go-docschema/pkg/registry"
)

// Context returns the context test cases should pass to pipeline calls.
func Context() context.Context {
	return context.Background()
}

// Diff wraps cmp.Diff so test output stays uniform across suites.
func Diff(want, got any) string {
	return cmp.Diff(want, got)
}

func allKinds(level model.Applicability) map[model.DocumentKind]model.Applicability {
	out := make(map[model.DocumentKind]model.Applicability, 5)
	for _, kind := range model.Kinds() {
		out[kind] = level
	}
	return out
}

func kinds(overrides map[model.DocumentKind]model.Applicability) map[model.DocumentKind]model.Applicability {
	out := allKinds(model.ApplicabilityOmitted)
	for kind, level := range overrides {
		out[kind] = level
	}
	return out
}

// Families returns the fixture model: three families exercising base and
// specialized sections, every constraint kind, and the full applicability
// spread.
func Families() []model.FamilyDefinition {
	return []model.FamilyDefinition{
		{
			ID:             1,
			Name:           "Meta & Governance",
			Version:        "1.3.0",
			SupportedKinds: model.Kinds(),
			Meta: model.Metadata{
				Description:     "Identification, status, and change history shared by every document.",
				BusinessPurpose: "Keeps ownership and lifecycle state auditable.",
			},
			Sections: []model.SectionDefinition{
				{
					ID:   "1.1",
					Name: "Identification",
					Meta: model.Metadata{Description: "Who and what this document is."},
					Fields: []model.FieldDefinition{
						{
							Name:          "title",
							Wire:          model.WireType{Scalar: model.ScalarString},
							Constraint:    model.NonEmpty(),
							Applicability: allKinds(model.ApplicabilityRequired),
							Meta: model.Metadata{
								Description: "Human-readable document title.",
								Examples:    []string{"Payment flow rework"},
							},
						},
						{
							Name:          "summary",
							Wire:          model.WireType{Scalar: model.ScalarString, Nullable: true},
							Applicability: allKinds(model.ApplicabilityOptional),
							Meta:          model.Metadata{UsageGuidance: "One paragraph, no headings."},
						},
					},
				},
				{
					ID:   "1.2",
					Name: "Status",
					Fields: []model.FieldDefinition{
						{
							Name:          "phase",
							Wire:          model.WireType{Scalar: model.ScalarString},
							Constraint:    model.Enum("draft", "active", "done"),
							Applicability: allKinds(model.ApplicabilityRequired),
							Meta: model.Metadata{
								Description: "Lifecycle phase.",
								Examples:    []string{"Use <b>active</b> once work starts.<script>alert(1)</script>"},
							},
						},
						{
							Name:       "priority",
							Wire:       model.WireType{Scalar: model.ScalarInt},
							Constraint: model.Range("1", "5"),
							Applicability: kinds(map[model.DocumentKind]model.Applicability{
								model.KindPlan:    model.ApplicabilityRequired,
								model.KindProject: model.ApplicabilityRequired,
								model.KindTask:    model.ApplicabilityRequired,
								model.KindModule:  model.ApplicabilityOptional,
								model.KindFeature: model.ApplicabilityOptional,
							}),
						},
						{
							Name:          "lastUpdated",
							Wire:          model.WireType{Scalar: model.ScalarDateTime},
							Constraint:    model.DateTime(),
							Applicability: allKinds(model.ApplicabilityRequired),
						},
					},
				},
				{
					ID:   "1.3",
					Name: "History",
					Fields: []model.FieldDefinition{
						{
							Name:       "events",
							Wire:       model.WireType{Scalar: model.ScalarString, List: true, Nullable: true},
							Constraint: model.MinItems("1"),
							Applicability: kinds(map[model.DocumentKind]model.Applicability{
								model.KindPlan:    model.ApplicabilityOptional,
								model.KindProject: model.ApplicabilityOptional,
								model.KindTask:    model.ApplicabilityOptional,
							}),
						},
					},
				},
				{
					ID:              "1.4",
					Name:            "Task Status",
					ParentSectionID: "1.2",
					Fields: []model.FieldDefinition{
						{
							Name:       "priority",
							Wire:       model.WireType{Scalar: model.ScalarInt},
							Constraint: model.Range("1", "9"),
							Applicability: kinds(map[model.DocumentKind]model.Applicability{
								model.KindTask: model.ApplicabilityRequired,
							}),
						},
						{
							Name: "blockedBy",
							Wire: model.WireType{Scalar: model.ScalarString, List: true, Nullable: true},
							Applicability: kinds(map[model.DocumentKind]model.Applicability{
								model.KindTask: model.ApplicabilityOptional,
							}),
						},
					},
				},
			},
		},
		{
			ID:             2,
			Name:           "Business & Scope",
			Version:        "2.0.1",
			SupportedKinds: []model.DocumentKind{model.KindPlan, model.KindProject, model.KindFeature},
			Meta:           model.Metadata{Description: "Why the work exists and what it covers."},
			Sections: []model.SectionDefinition{
				{
					ID:   "2.1",
					Name: "Overview",
					Fields: []model.FieldDefinition{
						{
							Name:       "objective",
							Wire:       model.WireType{Scalar: model.ScalarString},
							Constraint: model.NonEmpty(),
							Applicability: kinds(map[model.DocumentKind]model.Applicability{
								model.KindPlan:    model.ApplicabilityRequired,
								model.KindProject: model.ApplicabilityRequired,
								model.KindFeature: model.ApplicabilityRequired,
							}),
							Meta: model.Metadata{BusinessPurpose: "Anchors scope discussions."},
						},
						{
							Name: "stakeholders",
							Wire: model.WireType{Scalar: model.ScalarString, List: true, Nullable: true},
							Applicability: kinds(map[model.DocumentKind]model.Applicability{
								model.KindPlan:    model.ApplicabilityOptional,
								model.KindProject: model.ApplicabilityOptional,
							}),
						},
					},
				},
				{
					ID:   "2.2",
					Name: "Key Objectives",
					Fields: []model.FieldDefinition{
						{
							Name:       "objectives",
							Wire:       model.WireType{Scalar: model.ScalarString, List: true},
							Constraint: model.MinItems("1"),
							Applicability: kinds(map[model.DocumentKind]model.Applicability{
								model.KindPlan:    model.ApplicabilityRequired,
								model.KindProject: model.ApplicabilityOptional,
							}),
						},
					},
				},
			},
		},
		{
			ID:             5,
			Name:           "Maintenance & Monitoring",
			Version:        "0.9.0",
			SupportedKinds: []model.DocumentKind{model.KindTask, model.KindModule, model.KindFeature},
			Sections: []model.SectionDefinition{
				{
					ID:   "5.1",
					Name: "Control Flow",
					Fields: []model.FieldDefinition{
						{
							Name: "entryPoints",
							Wire: model.WireType{Scalar: model.ScalarString, List: true, Nullable: true},
							Applicability: kinds(map[model.DocumentKind]model.Applicability{
								model.KindModule:  model.ApplicabilityOptional,
								model.KindFeature: model.ApplicabilityOptional,
							}),
						},
						{
							Name:       "criticality",
							Wire:       model.WireType{Scalar: model.ScalarString},
							Constraint: model.Enum("low", "medium", "high"),
							Applicability: kinds(map[model.DocumentKind]model.Applicability{
								model.KindModule:  model.ApplicabilityRequired,
								model.KindFeature: model.ApplicabilityOptional,
								model.KindTask:    model.ApplicabilityOptional,
							}),
						},
						{
							Name:       "budgetMinutes",
							Wire:       model.WireType{Scalar: model.ScalarInt, Nullable: true},
							Constraint: model.Range("0", "480"),
							Applicability: kinds(map[model.DocumentKind]model.Applicability{
								model.KindTask: model.ApplicabilityOptional,
							}),
						},
					},
				},
			},
		},
	}
}

// Table returns the fixture composition table covering all five kinds.
func Table() model.CompositionTable {
	return model.CompositionTable{Entries: map[model.DocumentKind][]model.CompositionEntry{
		model.KindPlan: {
			{FamilyID: 1, SectionsUsed: []string{"1.1", "1.2", "1.3"}},
			{FamilyID: 2, SectionsUsed: []string{"2.1", "2.2"}},
		},
		model.KindTask: {
			{FamilyID: 1, SectionsUsed: []string{"1.1", "1.4"}},
			{FamilyID: 5, SectionsUsed: []string{"5.1"}},
		},
		model.KindProject: {
			{FamilyID: 1, SectionsUsed: []string{"1.1", "1.2", "1.3"}},
			{FamilyID: 2, SectionsUsed: []string{"2.1", "2.2"}},
		},
		model.KindModule: {
			{FamilyID: 1, SectionsUsed: []string{"1.1", "1.2"}},
			{FamilyID: 5, SectionsUsed: []string{"5.1"}},
		},
		model.KindFeature: {
			{FamilyID: 1, SectionsUsed: []string{"1.1", "1.2"}},
			{FamilyID: 2, SectionsUsed: []string{"2.1"}},
			{FamilyID: 5, SectionsUsed: []string{"5.1"}},
		},
	}}
}

// Registry builds a registry holding the fixture families.
func Registry(t *testing.T) *registry.Registry {
	t.Helper()

	reg := registry.New()
	for _, family := range Families() {
		if err := reg.RegisterFamily(family); err != nil {
			t.Fatalf("register family %d: %v", family.ID, err)
		}
	}
	return reg
}

// Snapshot builds and validates the fixture model.
func Snapshot(t *testing.T) *registry.Snapshot {
	t.Helper()

	snap, err := Registry(t).Validate(Table())
	if err != nil {
		t.Fatalf("validate fixture model: %v", err)
	}
	return snap
}

// ValidTaskRecord returns a record that passes the Task validator.
func ValidTaskRecord() map[string]any {
	return map[string]any{
		"1.1": map[string]any{
			"title": "Harden retry logic",
		},
		"1.4": map[string]any{
			"phase":       "active",
			"priority":    7,
			"lastUpdated": "2026-03-14T09:30:00Z",
		},
		"5.1": map[string]any{
			"criticality": "medium",
		},
	}
}
