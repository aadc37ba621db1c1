package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-docschema/pkg/model"
	"github.com/goliatone/go-docschema/pkg/testsupport"
)

func TestEffectiveSectionMergesSpecialization(t *testing.T) {
	snap := testsupport.Snapshot(t)

	section, err := snap.EffectiveSection("1.4")
	require.NoError(t, err)

	names := make([]string, 0, len(section.Fields))
	for _, field := range section.Fields {
		names = append(names, field.Name)
	}
	// Base order first (phase, priority, lastUpdated), additions appended.
	assert.Equal(t, []string{"phase", "priority", "lastUpdated", "blockedBy"}, names)

	priority, ok := section.Field("priority")
	require.True(t, ok)
	assert.Equal(t, "9", priority.Constraint.Param("max"), "specialized constraint should win")
	assert.Equal(t, model.ApplicabilityRequired, priority.ApplicabilityFor(model.KindTask))
	assert.Equal(t, model.ApplicabilityOmitted, priority.ApplicabilityFor(model.KindPlan),
		"specialized applicability replaces the base map")

	phase, ok := section.Field("phase")
	require.True(t, ok)
	assert.Equal(t, "5", func() string {
		base, err := snap.EffectiveSection("1.2")
		require.NoError(t, err)
		inherited, _ := base.Field("priority")
		return inherited.Constraint.Param("max")
	}(), "base section must keep its own constraint")
	assert.Equal(t, model.ApplicabilityRequired, phase.ApplicabilityFor(model.KindTask),
		"untouched inherited fields keep base applicability")
}

func TestEffectiveSectionIsSupersetOfBase(t *testing.T) {
	snap := testsupport.Snapshot(t)

	base, err := snap.EffectiveSection("1.2")
	require.NoError(t, err)
	specialized, err := snap.EffectiveSection("1.4")
	require.NoError(t, err)

	for i, inherited := range base.Fields {
		field, ok := specialized.Field(inherited.Name)
		require.Truef(t, ok, "specialized section lost inherited field %q", inherited.Name)
		assert.Truef(t, inherited.Wire.Equal(field.Wire), "field %q was retyped", inherited.Name)
		assert.Equal(t, inherited.Name, specialized.Fields[i].Name,
			"inherited fields must keep their base position")
	}
}

func TestSnapshotIsIsolatedFromLaterRegistration(t *testing.T) {
	reg := testsupport.Registry(t)
	snap, err := reg.Validate(testsupport.Table())
	require.NoError(t, err)

	before, err := snap.EffectiveSection("1.1")
	require.NoError(t, err)
	fieldsBefore := len(before.Fields)

	applicability := map[model.DocumentKind]model.Applicability{}
	for _, kind := range model.Kinds() {
		applicability[kind] = model.ApplicabilityOptional
	}
	require.NoError(t, reg.RegisterField("1.1", model.FieldDefinition{
		Name:          "addedLater",
		Wire:          model.WireType{Scalar: model.ScalarString, Nullable: true},
		Applicability: applicability,
	}))

	after, err := snap.EffectiveSection("1.1")
	require.NoError(t, err)
	assert.Len(t, after.Fields, fieldsBefore, "snapshot must not observe post-validate registration")
}

func TestSnapshotUnknownLookups(t *testing.T) {
	snap := testsupport.Snapshot(t)

	_, err := snap.Family(99)
	assert.Error(t, err)

	_, err = snap.EffectiveSection("9.9")
	assert.Error(t, err)
}
