package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/goliatone/go-docschema/pkg/artifact"
	"github.com/goliatone/go-docschema/pkg/explore"
	"github.com/goliatone/go-docschema/pkg/orchestrator"
)

func main() {
	declDir := flag.String("declarations", "declarations", "directory of YAML declaration files")
	outDir := flag.String("out", "", "output directory for generated artifacts (stdout if empty)")
	check := flag.Bool("check", false, "regenerate and diff against the committed artifacts; exit 1 on drift")
	interactive := flag.Bool("interactive", false, "browse the validated model interactively")
	flag.Parse()

	ctx := context.Background()

	memory := artifact.NewMemoryWriter()
	gen := orchestrator.New(orchestrator.WithWriter(memory))
	result, err := gen.Generate(ctx, orchestrator.Request{Dir: *declDir})
	if err != nil {
		log.Fatalf("Failed to generate artifacts: %v", err)
	}

	if *interactive {
		explorer := explore.New(os.Stdout)
		if err := explorer.Run(ctx, result.Snapshot, result.Docs); err != nil {
			log.Fatalf("Explore session failed: %v", err)
		}
		return
	}

	if *check {
		if *outDir == "" {
			log.Fatal("-check requires -out")
		}
		if drift := checkDrift(memory, *outDir); drift {
			os.Exit(1)
		}
		fmt.Println("Artifacts are up to date")
		return
	}

	if *outDir == "" {
		os.Stdout.Write(result.Schema.SDL())
		return
	}

	writer, err := artifact.NewFileWriter(*outDir)
	if err != nil {
		log.Fatalf("Failed to open output directory: %v", err)
	}
	for _, name := range memory.Names() {
		data, _ := memory.Get(name)
		if err := writer.Write(name, data); err != nil {
			log.Fatalf("Failed to write %s: %v", name, err)
		}
		fmt.Printf("Wrote %s\n", filepath.Join(*outDir, name))
	}
}

// checkDrift compares freshly generated artifacts against the committed
// copies and reports whether anything differs.
func checkDrift(memory *artifact.MemoryWriter, outDir string) bool {
	drift := false
	for _, name := range memory.Names() {
		fresh, _ := memory.Get(name)
		committed, err := os.ReadFile(filepath.Join(outDir, name))
		if err != nil {
			fmt.Printf("%s: missing (%v)\n", name, err)
			drift = true
			continue
		}
		if !bytes.Equal(fresh, committed) {
			fmt.Printf("%s: out of date, regenerate with -out %s\n", name, outDir)
			drift = true
		}
	}
	return drift
}
