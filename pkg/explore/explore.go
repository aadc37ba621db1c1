// Package explore provides an interactive walk through a validated model:
// document kind, then family, section, and field, printing the indexed
// documentation at each stop. The CLI's inspect mode drives it; prompts go
// through a driver interface so tests can script the session.
package explore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/goliatone/go-docschema/pkg/docindex"
	"github.com/goliatone/go-docschema/pkg/model"
	"github.com/goliatone/go-docschema/pkg/registry"
)

const backOption = "(back)"
const quitOption = "(quit)"

// Option customises the explorer.
type Option func(*Explorer)

// WithDriver injects a prompt driver. Defaults to the survey driver.
func WithDriver(driver PromptDriver) Option {
	return func(e *Explorer) {
		if driver != nil {
			e.driver = driver
		}
	}
}

// WithOutput redirects printed documentation. Defaults to the writer
// supplied at construction.
func WithOutput(out io.Writer) Option {
	return func(e *Explorer) {
		if out != nil {
			e.out = out
		}
	}
}

// Explorer runs the interactive session.
type Explorer struct {
	driver PromptDriver
	out    io.Writer
}

// New constructs an Explorer writing to out.
func New(out io.Writer, options ...Option) *Explorer {
	e := &Explorer{driver: NewSurveyDriver(), out: out}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	return e
}

// Run loops until the user quits or cancels. Cancellation surfaces as a
// nil error; the session simply ends.
func (e *Explorer) Run(ctx context.Context, snap *registry.Snapshot, docs *docindex.Index) error {
	if snap == nil || docs == nil {
		return fmt.Errorf("explore: snapshot and documentation index are required")
	}

	for {
		kind, done, err := e.pickKind(ctx, snap)
		if err != nil {
			return filterCancel(err)
		}
		if done {
			return nil
		}
		if err := e.walkKind(ctx, snap, docs, kind); err != nil {
			return filterCancel(err)
		}
	}
}

func (e *Explorer) pickKind(ctx context.Context, snap *registry.Snapshot) (model.DocumentKind, bool, error) {
	var kinds []model.DocumentKind
	var options []string
	for _, kind := range model.Kinds() {
		if len(snap.Table().For(kind)) == 0 {
			continue
		}
		kinds = append(kinds, kind)
		options = append(options, kind.TypeName())
	}
	options = append(options, quitOption)

	index, err := e.driver.Select(ctx, SelectConfig{
		Message: "Document kind",
		Options: options,
		Help:    "Pick a document kind to browse its composed families.",
	})
	if err != nil {
		return "", false, err
	}
	if index >= len(kinds) {
		return "", true, nil
	}
	return kinds[index], false, nil
}

func (e *Explorer) walkKind(ctx context.Context, snap *registry.Snapshot, docs *docindex.Index, kind model.DocumentKind) error {
	for {
		entries := snap.Table().For(kind)
		options := make([]string, 0, len(entries)+1)
		for _, entry := range entries {
			family, err := snap.Family(entry.FamilyID)
			if err != nil {
				return err
			}
			options = append(options, fmt.Sprintf("%d %s", family.ID, family.Name))
		}
		options = append(options, backOption)

		index, err := e.driver.Select(ctx, SelectConfig{Message: kind.TypeName() + " family", Options: options})
		if err != nil {
			return err
		}
		if index >= len(entries) {
			return nil
		}

		entry := entries[index]
		e.printEntry(docs, strconv.Itoa(entry.FamilyID))
		if err := e.walkFamily(ctx, snap, docs, kind, entry); err != nil {
			return err
		}
	}
}

func (e *Explorer) walkFamily(ctx context.Context, snap *registry.Snapshot, docs *docindex.Index, kind model.DocumentKind, entry model.CompositionEntry) error {
	for {
		options := append(append([]string(nil), entry.SectionsUsed...), backOption)
		index, err := e.driver.Select(ctx, SelectConfig{Message: "Section", Options: options})
		if err != nil {
			return err
		}
		if index >= len(entry.SectionsUsed) {
			return nil
		}

		sectionID := entry.SectionsUsed[index]
		e.printEntry(docs, sectionID)
		if err := e.walkSection(ctx, snap, docs, kind, sectionID); err != nil {
			return err
		}
	}
}

func (e *Explorer) walkSection(ctx context.Context, snap *registry.Snapshot, docs *docindex.Index, kind model.DocumentKind, sectionID string) error {
	section, err := snap.EffectiveSection(sectionID)
	if err != nil {
		return err
	}

	for {
		var names []string
		for _, field := range section.Fields {
			level := field.ApplicabilityFor(kind)
			if level == model.ApplicabilityOmitted {
				continue
			}
			names = append(names, fmt.Sprintf("%s (%s)", field.Name, level))
		}
		options := append(names, backOption)

		index, err := e.driver.Select(ctx, SelectConfig{Message: "Field", Options: options})
		if err != nil {
			return err
		}
		if index >= len(names) {
			return nil
		}

		// names excludes omitted fields, so re-walk to find the pick.
		seen := 0
		for _, field := range section.Fields {
			if field.ApplicabilityFor(kind) == model.ApplicabilityOmitted {
				continue
			}
			if seen == index {
				e.printEntry(docs, sectionID+"."+field.Name)
				break
			}
			seen++
		}
	}
}

func (e *Explorer) printEntry(docs *docindex.Index, id string) {
	entry, ok := docs.Lookup(id)
	if !ok {
		fmt.Fprintf(e.out, "%s: no documentation\n", id)
		return
	}

	fmt.Fprintf(e.out, "\n%s %s: %s\n", entry.Level, entry.ID, entry.Name)
	if entry.Meta.Description != "" {
		fmt.Fprintf(e.out, "  %s\n", entry.Meta.Description)
	}
	if entry.Meta.BusinessPurpose != "" {
		fmt.Fprintf(e.out, "  purpose: %s\n", entry.Meta.BusinessPurpose)
	}
	if entry.Meta.UsageGuidance != "" {
		fmt.Fprintf(e.out, "  usage: %s\n", entry.Meta.UsageGuidance)
	}
	for _, example := range entry.Meta.Examples {
		fmt.Fprintf(e.out, "  example: %s\n", example)
	}
	fmt.Fprintln(e.out)
}

func filterCancel(err error) error {
	if errors.Is(err, ErrCancelled) {
		return nil
	}
	return err
}
