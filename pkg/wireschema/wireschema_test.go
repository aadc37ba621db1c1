package wireschema_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/goliatone/go-docschema/pkg/model"
	"github.com/goliatone/go-docschema/pkg/registry"
	"github.com/goliatone/go-docschema/pkg/testsupport"
	"github.com/goliatone/go-docschema/pkg/wireschema"
)

func generate(t *testing.T, snap *registry.Snapshot) *wireschema.Schema {
	t.Helper()

	gen, err := wireschema.New()
	if err != nil {
		t.Fatalf("new generator: %v", err)
	}
	schema, err := gen.Generate(snap)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	return schema
}

// kindBlock extracts the SDL between a kind's banner and the next one.
func kindBlock(t *testing.T, sdl, kind string) string {
	t.Helper()

	banner := "# ----- " + kind + " -----"
	start := strings.Index(sdl, banner)
	if start < 0 {
		t.Fatalf("missing banner for kind %s", kind)
	}
	rest := sdl[start+len(banner):]
	if end := strings.Index(rest, "# ----- "); end >= 0 {
		rest = rest[:end]
	}
	return rest
}

func TestGenerateEmitsInterfaceAndConcreteType(t *testing.T) {
	schema := generate(t, testsupport.Snapshot(t))
	sdl := string(schema.SDL())

	task := kindBlock(t, sdl, "Task")
	for _, want := range []string{
		"interface TaskDocument {",
		"type Task implements TaskDocument {",
		"type TaskMetaGovernance {",
		"type TaskMaintenanceMonitoring {",
		"metaGovernance: TaskMetaGovernance!",
		"metaGovernance: TaskMetaGovernance! @hasInverse(field: document)",
		"document: Task @hasInverse(field: metaGovernance)",
	} {
		if !strings.Contains(task, want) {
			t.Errorf("Task block missing %q\n%s", want, task)
		}
	}
}

func TestGenerateNullabilityFollowsApplicability(t *testing.T) {
	schema := generate(t, testsupport.Snapshot(t))
	sdl := string(schema.SDL())

	task := kindBlock(t, sdl, "Task")
	if !strings.Contains(task, "title: String!") {
		t.Error("required field should carry the non-null marker")
	}
	if !strings.Contains(task, "summary: String\n") {
		t.Error("optional field should stay nullable")
	}
	if !strings.Contains(task, "criticality: String\n") {
		t.Error("criticality is optional for tasks and should stay nullable")
	}

	module := kindBlock(t, sdl, "Module")
	if !strings.Contains(module, "criticality: String!") {
		t.Error("criticality is required for modules and should be non-null")
	}
}

func TestGenerateSkipsOmittedFields(t *testing.T) {
	schema := generate(t, testsupport.Snapshot(t))
	sdl := string(schema.SDL())

	task := kindBlock(t, sdl, "Task")
	if strings.Contains(task, "entryPoints") {
		t.Error("field omitted for tasks leaked into the Task block")
	}
	if schema.Includes(model.KindTask, "5.1.entryPoints") {
		t.Error("omitted field recorded as present")
	}

	module := kindBlock(t, sdl, "Module")
	if !strings.Contains(module, "entryPoints: [String]") {
		t.Error("entryPoints should still appear for modules")
	}
}

func TestGenerateSpecializedSectionKeepsBaseOrder(t *testing.T) {
	schema := generate(t, testsupport.Snapshot(t))
	task := kindBlock(t, string(schema.SDL()), "Task")

	phase := strings.Index(task, "phase:")
	priority := strings.Index(task, "priority:")
	lastUpdated := strings.Index(task, "lastUpdated:")
	blockedBy := strings.Index(task, "blockedBy:")
	if phase < 0 || priority < 0 || lastUpdated < 0 || blockedBy < 0 {
		t.Fatalf("specialized section fields missing from Task block:\n%s", task)
	}
	if !(phase < priority && priority < lastUpdated && lastUpdated < blockedBy) {
		t.Error("specialization reordered inherited fields")
	}
}

func TestGenerateIsIdempotent(t *testing.T) {
	snap := testsupport.Snapshot(t)

	first := generate(t, snap)
	second := generate(t, snap)
	if !bytes.Equal(first.SDL(), second.SDL()) {
		t.Fatal("two runs over an unchanged snapshot must be byte-identical")
	}
}

func TestGenerateIsDeterministicUnderRegistrationOrder(t *testing.T) {
	reference := generate(t, testsupport.Snapshot(t))

	// Same declarations registered in reverse family order.
	reg := registry.New()
	families := testsupport.Families()
	for i := len(families) - 1; i >= 0; i-- {
		if err := reg.RegisterFamily(families[i]); err != nil {
			t.Fatalf("register family: %v", err)
		}
	}
	snap, err := reg.Validate(testsupport.Table())
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	reordered := generate(t, snap)

	for _, kind := range model.Kinds() {
		want := kindBlock(t, string(reference.SDL()), kind.TypeName())
		got := kindBlock(t, string(reordered.SDL()), kind.TypeName())
		if want != got {
			t.Errorf("kind %s block changed under registration order:\nwant:\n%s\ngot:\n%s", kind, want, got)
		}
	}
}

func TestSchemaNullabilityLookup(t *testing.T) {
	schema := generate(t, testsupport.Snapshot(t))

	if !schema.IsNonNullable(model.KindTask, "1.1.title") {
		t.Error("title should be non-nullable for tasks")
	}
	if schema.IsNonNullable(model.KindTask, "1.1.summary") {
		t.Error("summary should be nullable for tasks")
	}
	if schema.IsNonNullable(model.KindModule, "5.1.entryPoints") {
		t.Error("optional module field should be nullable")
	}
	if !schema.IsNonNullable(model.KindModule, "5.1.criticality") {
		t.Error("criticality should be non-nullable for modules")
	}
}
