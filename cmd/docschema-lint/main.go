package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-docschema/pkg/loader"
	"github.com/goliatone/go-docschema/pkg/registry"
)

// docschema-lint loads and validates a declaration directory without
// running any generator. CI uses it as a cheap gate before the full
// generation step.
func main() {
	declDir := flag.String("declarations", "declarations", "directory of YAML declaration files")
	flag.Parse()

	decls, err := loader.LoadDir(*declDir)
	if err != nil {
		log.Fatalf("Failed to load declarations: %v", err)
	}

	reg := registry.New()
	table, err := decls.Apply(reg)
	if err != nil {
		log.Fatalf("Failed to register declarations: %v", err)
	}

	if _, err := reg.Validate(table); err != nil {
		fmt.Fprintf(os.Stderr, "model is invalid: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("OK: %d families validated\n", len(decls.Families))
}
