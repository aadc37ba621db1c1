package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-docschema/pkg/model"
	"github.com/goliatone/go-docschema/pkg/registry"
	"github.com/goliatone/go-docschema/pkg/testsupport"
)

func TestRegisterDuplicateSectionID(t *testing.T) {
	reg := registry.New()
	require.NoError(t, reg.RegisterFamily(model.FamilyDefinition{ID: 2, Name: "Business & Scope", SupportedKinds: model.Kinds()}))

	require.NoError(t, reg.RegisterSection(model.SectionDefinition{ID: "2.2", Name: "Key Objectives"}))
	err := reg.RegisterSection(model.SectionDefinition{ID: "2.2", Name: "Key Objectives Again"})

	var dup *registry.DuplicateIDError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "section", dup.Namespace)
	assert.Equal(t, "2.2", dup.ID)
	assert.Contains(t, err.Error(), `"2.2"`)
}

func TestRegisterDuplicateFamilyID(t *testing.T) {
	reg := registry.New()
	require.NoError(t, reg.RegisterFamily(model.FamilyDefinition{ID: 1, Name: "Meta"}))

	err := reg.RegisterFamily(model.FamilyDefinition{ID: 1, Name: "Meta Again"})
	var dup *registry.DuplicateIDError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "family", dup.Namespace)
}

func TestRegisterFieldMissingApplicability(t *testing.T) {
	reg := registry.New()
	require.NoError(t, reg.RegisterFamily(model.FamilyDefinition{ID: 1, Name: "Meta"}))
	require.NoError(t, reg.RegisterSection(model.SectionDefinition{ID: "1.1", Name: "Identification"}))

	err := reg.RegisterField("1.1", model.FieldDefinition{
		Name: "title",
		Wire: model.WireType{Scalar: model.ScalarString},
		Applicability: map[model.DocumentKind]model.Applicability{
			model.KindTask: model.ApplicabilityRequired,
		},
	})

	var missing *registry.MissingApplicabilityError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "1.1", missing.SectionID)
	assert.Equal(t, "title", missing.Field)
	assert.Len(t, missing.Missing, 4)
}

func TestRegisterFieldInvalidLevelCountsAsMissing(t *testing.T) {
	reg := registry.New()
	require.NoError(t, reg.RegisterFamily(model.FamilyDefinition{ID: 1, Name: "Meta"}))
	require.NoError(t, reg.RegisterSection(model.SectionDefinition{ID: "1.1", Name: "Identification"}))

	applicability := map[model.DocumentKind]model.Applicability{}
	for _, kind := range model.Kinds() {
		applicability[kind] = model.ApplicabilityOptional
	}
	applicability[model.KindPlan] = "sometimes"

	err := reg.RegisterField("1.1", model.FieldDefinition{
		Name:          "title",
		Wire:          model.WireType{Scalar: model.ScalarString, Nullable: true},
		Applicability: applicability,
	})

	var missing *registry.MissingApplicabilityError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []model.DocumentKind{model.KindPlan}, missing.Missing)
}

func TestRegisterSectionUnknownFamily(t *testing.T) {
	reg := registry.New()
	err := reg.RegisterSection(model.SectionDefinition{ID: "9.1", Name: "Orphan"})

	var unknown *registry.UnknownIDError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "family", unknown.Namespace)
}

func TestResolve(t *testing.T) {
	reg := testsupport.Registry(t)

	family, err := reg.ResolveFamily(1)
	require.NoError(t, err)
	assert.Equal(t, "Meta & Governance", family.Name)

	section, err := reg.ResolveSection("1.2")
	require.NoError(t, err)
	assert.Equal(t, "Status", section.Name)

	_, err = reg.ResolveSection("9.9")
	var unknown *registry.UnknownIDError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "9.9", unknown.ID)
}

func TestValidateDanglingSectionReference(t *testing.T) {
	reg := testsupport.Registry(t)
	table := testsupport.Table()
	table.Entries[model.KindTask] = []model.CompositionEntry{
		{FamilyID: 1, SectionsUsed: []string{"1.1", "9.9"}},
	}

	snap, err := reg.Validate(table)
	require.Nil(t, snap)

	var unknown *registry.UnknownIDError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "9.9", unknown.ID)
}

func TestValidateUnsupportedKind(t *testing.T) {
	reg := testsupport.Registry(t)
	table := testsupport.Table()
	// Family 2 does not support task documents.
	table.Entries[model.KindTask] = append(table.Entries[model.KindTask],
		model.CompositionEntry{FamilyID: 2, SectionsUsed: []string{"2.1"}})

	_, err := reg.Validate(table)
	var integrity *registry.CompositionIntegrityError
	require.ErrorAs(t, err, &integrity)
	assert.Contains(t, integrity.Reason, "does not support")
}

func TestValidateNullabilityConvention(t *testing.T) {
	reg := registry.New()
	family := model.FamilyDefinition{ID: 1, Name: "Meta", SupportedKinds: model.Kinds()}
	require.NoError(t, reg.RegisterFamily(family))
	require.NoError(t, reg.RegisterSection(model.SectionDefinition{ID: "1.1", Name: "Identification"}))

	applicability := map[model.DocumentKind]model.Applicability{}
	for _, kind := range model.Kinds() {
		applicability[kind] = model.ApplicabilityRequired
	}
	// Required everywhere but declared nullable: the declaration lies.
	require.NoError(t, reg.RegisterField("1.1", model.FieldDefinition{
		Name:          "title",
		Wire:          model.WireType{Scalar: model.ScalarString, Nullable: true},
		Applicability: applicability,
	}))

	_, err := reg.Validate(model.CompositionTable{})
	var integrity *registry.CompositionIntegrityError
	require.ErrorAs(t, err, &integrity)
	assert.Contains(t, integrity.Subject, "1.1.title")
}

func TestValidateSpecializationRetype(t *testing.T) {
	reg := registry.New()
	require.NoError(t, reg.RegisterFamily(model.FamilyDefinition{ID: 1, Name: "Meta", SupportedKinds: model.Kinds()}))

	optional := map[model.DocumentKind]model.Applicability{}
	for _, kind := range model.Kinds() {
		optional[kind] = model.ApplicabilityOptional
	}

	require.NoError(t, reg.RegisterSection(model.SectionDefinition{ID: "1.1", Name: "Status"}))
	require.NoError(t, reg.RegisterField("1.1", model.FieldDefinition{
		Name:          "priority",
		Wire:          model.WireType{Scalar: model.ScalarInt, Nullable: true},
		Applicability: optional,
	}))

	require.NoError(t, reg.RegisterSection(model.SectionDefinition{ID: "1.2", Name: "Task Status", ParentSectionID: "1.1"}))
	require.NoError(t, reg.RegisterField("1.2", model.FieldDefinition{
		Name:          "priority",
		Wire:          model.WireType{Scalar: model.ScalarString, Nullable: true},
		Applicability: optional,
	}))

	_, err := reg.Validate(model.CompositionTable{})
	var integrity *registry.CompositionIntegrityError
	require.ErrorAs(t, err, &integrity)
	assert.Contains(t, integrity.Reason, "retypes")
}

func TestValidateFixtureModel(t *testing.T) {
	snap, err := testsupport.Registry(t).Validate(testsupport.Table())
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Len(t, snap.Families(), 3)
}

func TestValidateErrorsAreDeterministic(t *testing.T) {
	build := func() error {
		reg := testsupport.Registry(t)
		table := testsupport.Table()
		table.Entries[model.KindPlan] = []model.CompositionEntry{
			{FamilyID: 1, SectionsUsed: []string{"9.9"}},
			{FamilyID: 7, SectionsUsed: []string{"7.1"}},
		}
		_, err := reg.Validate(table)
		return err
	}

	first := build()
	require.Error(t, first)
	for range 5 {
		got := build()
		require.Error(t, got)
		assert.Equal(t, first.Error(), got.Error())
	}
}
