package validator_test

import (
	"testing"

	"github.com/goliatone/go-docschema/pkg/model"
	"github.com/goliatone/go-docschema/pkg/testsupport"
	"github.com/goliatone/go-docschema/pkg/wireschema"
)

// The wire schema's nullability and the validator's requiredness are
// derived independently from the same snapshot; they must agree for every
// emitted (kind, field) pair.
func TestRequirednessMatchesWireNullability(t *testing.T) {
	snap := testsupport.Snapshot(t)

	gen, err := wireschema.New()
	if err != nil {
		t.Fatalf("new generator: %v", err)
	}
	schema, err := gen.Generate(snap)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	set := assemble(t, snap)

	checked := 0
	for _, kind := range model.Kinds() {
		for _, path := range schema.Paths(kind) {
			checked++
			if schema.IsNonNullable(kind, path) != set.Requires(kind, path) {
				t.Errorf("kind %s path %s: wire non-null %v, validator requires %v",
					kind, path, schema.IsNonNullable(kind, path), set.Requires(kind, path))
			}
		}
	}
	if checked == 0 {
		t.Fatal("equivalence sweep covered no fields")
	}

	// Omitted fields are absent from both artifacts.
	if schema.Includes(model.KindTask, "5.1.entryPoints") {
		t.Error("omitted field present in wire schema")
	}
	if set.Requires(model.KindTask, "5.1.entryPoints") {
		t.Error("omitted field required by validator")
	}
}
