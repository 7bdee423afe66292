// Command schema-gen writes zlint.schema.json from the closed severity
// set and the compiled-in rule registry, mirroring the reference repo's
// tools/schema-gen pattern (§12). It is a build-time tool, not part of
// the lint path, so it uses only encoding/json: the registry and
// severity set it reflects over are themselves the "source of truth",
// there is nothing a third-party schema library would add here beyond
// what a flat JSON Schema document expresses directly.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/DonIsaac/zlint-sub002/internal/rules"
	_ "github.com/DonIsaac/zlint-sub002/internal/rules/all"
)

const outputPath = "zlint.schema.json"

type schema struct {
	Schema               string         `json:"$schema"`
	ID                   string         `json:"$id"`
	Title                string         `json:"title"`
	Description          string         `json:"description"`
	Type                 string         `json:"type"`
	Properties           map[string]any `json:"properties"`
	AdditionalProperties bool           `json:"additionalProperties"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "schema-gen:", err)
		os.Exit(1)
	}
}

func run() error {
	severities := []string{"off", "allow", "warn", "warning", "error", "err"}

	ruleProps := make(map[string]any, len(rules.Codes())+1)
	for _, code := range rules.Codes() {
		meta := rules.Get(code).Metadata()
		ruleProps[code] = map[string]any{
			"description": meta.Description,
			"oneOf": []any{
				map[string]any{"enum": severities},
				map[string]any{
					"type":     "array",
					"minItems": 1,
					"maxItems": 2,
					"items": []any{
						map[string]any{"enum": severities},
						map[string]any{"type": "object"},
					},
				},
			},
		}
	}

	s := schema{
		Schema:      "http://json-schema.org/draft-07/schema#",
		ID:          "https://raw.githubusercontent.com/DonIsaac/zlint/main/zlint.schema.json",
		Title:       "zlint configuration",
		Description: "Configuration schema for the zlint Zig linter",
		Type:        "object",
		Properties: map[string]any{
			"ignore": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Glob patterns excluded from discovery",
			},
			"rules": map[string]any{
				"type":                 "object",
				"properties":           ruleProps,
				"additionalProperties": false,
			},
		},
		AdditionalProperties: false,
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(outputPath, append(data, '\n'), 0o644)
}
