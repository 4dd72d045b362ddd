// Package main generates reference documentation: markdown for the spa
// command tree and the OpenAPI document of the HTTP API.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra/doc"

	"github.com/donaldgifford/server-price-alerts/cmd/spa/cmd"
	"github.com/donaldgifford/server-price-alerts/internal/api"
)

func main() {
	output := flag.String("output", "docs/cli", "output directory for generated markdown")
	specOut := flag.String("openapi", "docs/openapi.yaml", "output file for the OpenAPI document")
	flag.Parse()

	if err := genCLI(*output); err != nil {
		log.Fatalf("generating CLI docs: %v", err)
	}
	fmt.Printf("CLI docs generated in %s/\n", *output)

	if err := genOpenAPI(*specOut); err != nil {
		log.Fatalf("generating OpenAPI document: %v", err)
	}
	fmt.Printf("OpenAPI document written to %s\n", *specOut)
}

func genCLI(dir string) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	root := cmd.Root()
	root.DisableAutoGenTag = true

	return doc.GenMarkdownTree(root, dir)
}

// genOpenAPI registers every route against empty dependencies; handlers are
// never invoked, only their schemas are read.
func genOpenAPI(path string) error {
	_, humaAPI := api.NewServer(api.Deps{}, "docs")

	out, err := humaAPI.OpenAPI().YAML()
	if err != nil {
		return fmt.Errorf("encoding spec: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	return os.WriteFile(path, out, 0o600)
}
