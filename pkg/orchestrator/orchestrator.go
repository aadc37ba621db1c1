// Package orchestrator coordinates the full pipeline: load declarations,
// register and validate the model, then run the three generators over the
// validated snapshot. A run either completes with all three artifacts
// consistent or fails before anything is written.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"github.com/goliatone/go-docschema/pkg/artifact"
	"github.com/goliatone/go-docschema/pkg/docindex"
	"github.com/goliatone/go-docschema/pkg/loader"
	"github.com/goliatone/go-docschema/pkg/registry"
	"github.com/goliatone/go-docschema/pkg/validator"
	"github.com/goliatone/go-docschema/pkg/wireschema"
)

const (
	defaultSchemaName = "schema.graphql"
	defaultIndexName  = "docindex.json"
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithSchemaGenerator injects a custom wire schema generator.
func WithSchemaGenerator(gen *wireschema.Generator) Option {
	return func(o *Orchestrator) {
		if gen != nil {
			o.schemaGen = gen
		}
	}
}

// WithWriter injects the artifact sink. Without one, Generate keeps the
// artifacts in memory and writes nothing.
func WithWriter(writer artifact.Writer) Option {
	return func(o *Orchestrator) {
		o.writer = writer
	}
}

// WithSchemaArtifactName overrides the wire schema artifact file name.
func WithSchemaArtifactName(name string) Option {
	return func(o *Orchestrator) {
		if name != "" {
			o.schemaName = name
		}
	}
}

// WithIndexArtifactName overrides the documentation index file name.
func WithIndexArtifactName(name string) Option {
	return func(o *Orchestrator) {
		if name != "" {
			o.indexName = name
		}
	}
}

// Orchestrator runs the load -> validate -> generate sequence. Missing
// dependencies are initialised with the built-in implementations so
// callers can start with a single constructor call.
type Orchestrator struct {
	schemaGen     *wireschema.Generator
	writer        artifact.Writer
	schemaName    string
	indexName     string
	initialiseErr error
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		schemaName: defaultSchemaName,
		indexName:  defaultIndexName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	if o.schemaGen == nil {
		gen, err := wireschema.New()
		if err != nil {
			o.initialiseErr = err
		}
		o.schemaGen = gen
	}
	return o
}

// Request describes where the declaration sources live. Exactly one of
// Dir, FS, or Declarations should be set.
type Request struct {
	// Dir is a directory of YAML declaration files.
	Dir string

	// FS supplies declaration files from an fs.FS.
	FS fs.FS

	// Declarations bypasses the loader when the caller already parsed the
	// sources.
	Declarations *loader.Declarations
}

// Result bundles the three generated artifacts plus the snapshot they were
// derived from. The artifacts are consistent by construction: one
// validated snapshot, three independent walks.
type Result struct {
	Snapshot   *registry.Snapshot
	Schema     *wireschema.Schema
	Validators *validator.Set
	Docs       *docindex.Index
}

// Generate executes the pipeline. Integrity errors abort before any
// generator runs; generator output is only handed to the writer once all
// three artifacts exist, so a failed run writes nothing.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (*Result, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if o.initialiseErr != nil {
		return nil, o.initialiseErr
	}

	decls, err := o.declarations(req)
	if err != nil {
		return nil, err
	}

	reg := registry.New()
	table, err := decls.Apply(reg)
	if err != nil {
		return nil, err
	}
	snap, err := reg.Validate(table)
	if err != nil {
		return nil, err
	}

	// The generators are independent pure functions over the same
	// read-only snapshot, so they run concurrently without locking.
	var (
		wg        sync.WaitGroup
		schema    *wireschema.Schema
		vals      *validator.Set
		docs      *docindex.Index
		schemaErr error
		valsErr   error
		docsErr   error
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		schema, schemaErr = o.schemaGen.Generate(snap)
	}()
	go func() {
		defer wg.Done()
		vals, valsErr = validator.Assemble(snap)
	}()
	go func() {
		defer wg.Done()
		docs, docsErr = docindex.Build(snap)
	}()
	wg.Wait()

	for _, err := range []error{schemaErr, valsErr, docsErr} {
		if err != nil {
			return nil, err
		}
	}

	result := &Result{Snapshot: snap, Schema: schema, Validators: vals, Docs: docs}
	if o.writer != nil {
		if err := o.persist(result); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (o *Orchestrator) persist(result *Result) error {
	indexJSON, err := result.Docs.JSON()
	if err != nil {
		return err
	}
	if err := o.writer.Write(o.schemaName, result.Schema.SDL()); err != nil {
		return err
	}
	if err := o.writer.Write(o.indexName, indexJSON); err != nil {
		return err
	}
	return nil
}

func (o *Orchestrator) declarations(req Request) (loader.Declarations, error) {
	switch {
	case req.Declarations != nil:
		return *req.Declarations, nil
	case req.FS != nil:
		return loader.LoadFS(req.FS)
	case req.Dir != "":
		return loader.LoadDir(req.Dir)
	default:
		return loader.Declarations{}, fmt.Errorf("orchestrator: request needs a Dir, FS, or Declarations")
	}
}
