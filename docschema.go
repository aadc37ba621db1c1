// Package docschema compiles a declarative document model into three
// artifacts that stay consistent by construction: a wire schema for the
// graph store, per-kind structural validators, and a documentation index.
// The heavy lifting lives in pkg/*; this package re-exports the common
// entry points so most callers need a single import.
package docschema

import (
	"context"

	"github.com/goliatone/go-docschema/pkg/artifact"
	"github.com/goliatone/go-docschema/pkg/model"
	"github.com/goliatone/go-docschema/pkg/orchestrator"
)

// DocumentKind re-exports the model document kind enumeration.
type DocumentKind = model.DocumentKind

const (
	KindPlan    = model.KindPlan
	KindTask    = model.KindTask
	KindProject = model.KindProject
	KindModule  = model.KindModule
	KindFeature = model.KindFeature
)

// Applicability re-exports the per-kind field classification.
type Applicability = model.Applicability

// Request describes the declaration sources for a generation run.
type Request = orchestrator.Request

// Result bundles the three generated artifacts.
type Result = orchestrator.Result

// NewOrchestrator exposes the pipeline constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Generate loads declarations from a directory, validates the model, and
// returns the three artifacts without writing anything. It is the simplest
// entry point for callers that consume the artifacts in process.
func Generate(ctx context.Context, dir string, options ...orchestrator.Option) (*Result, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{Dir: dir})
}

// GenerateTo runs the pipeline and persists the file artifacts under
// outDir using atomic writes.
func GenerateTo(ctx context.Context, dir, outDir string, options ...orchestrator.Option) (*Result, error) {
	writer, err := artifact.NewFileWriter(outDir)
	if err != nil {
		return nil, err
	}
	options = append(options, orchestrator.WithWriter(writer))
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{Dir: dir})
}
