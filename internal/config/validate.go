package config

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/DonIsaac/zlint-sub002/internal/diagnostic"
	"github.com/DonIsaac/zlint-sub002/internal/rules"
	"github.com/DonIsaac/zlint-sub002/internal/source"
)

// validateRuleKeys re-walks the raw JSON looking for unknown rule names
// under "rules", reporting one invalid-config diagnostic per unknown
// key at that key's source position (§6: "Unknown rule names produce a
// diagnostic at their JSON location pointing to the name token").
// koanf's decoded map loses this position information, so this walks
// the raw bytes independently rather than reusing the koanf-decoded
// Config.
func validateRuleKeys(raw []byte, path string) []diagnostic.Diagnostic {
	var doc struct {
		Rules map[string]json.RawMessage `json:"rules"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil
	}
	if doc.Rules == nil {
		return nil
	}

	var diags []diagnostic.Diagnostic
	cursor := 0
	for name := range doc.Rules {
		if rules.Get(name) != nil {
			continue
		}
		needle := []byte(`"` + name + `"`)
		idx := bytes.Index(raw[cursor:], needle)
		if idx >= 0 {
			idx += cursor
		} else if idx = bytes.Index(raw, needle); idx < 0 {
			continue
		}
		span := source.Span{Start: uint32(idx), End: uint32(idx + len(needle))}
		cursor = idx + len(needle)
		diags = append(diags, diagnostic.New(
			diagnostic.SeverityErr,
			"invalid-config",
			fmt.Sprintf("unknown rule %q", name),
			span,
		).WithHelp("remove this entry or check for a typo in the rule name").WithSourceName(path))
	}
	return diags
}
