// Command schema writes the JSON schema of the quotetok config file. The result is embedded
// into pkg/config and used to verify config.yml before it is loaded.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-pkgz/lgr"
	"github.com/invopop/jsonschema"

	"github.com/umputun/quotetok/pkg/config"
)

func main() {
	outputPath := "pkg/config/schema.json"
	if len(os.Args) > 1 {
		outputPath = os.Args[1]
	}
	if err := generate(outputPath); err != nil {
		lgr.Fatalf("[ERROR] %v", err)
	}
	lgr.Printf("[INFO] config schema written to %s", outputPath)
}

// generate reflects config.Config and writes the indented schema to path
func generate(path string) error {
	schema := jsonschema.Reflect(&config.Config{})
	schema.Title = "quotetok configuration"
	schema.Description = "server, database, feed, corpus sources and optional LLM categorizer"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("write schema to %s: %w", path, err)
	}
	return nil
}
