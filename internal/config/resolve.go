package config

import (
	"fmt"

	"github.com/DonIsaac/zlint-sub002/internal/diagnostic"
	"github.com/DonIsaac/zlint-sub002/internal/rules"
)

// Resolve maps a rule's registry default onto any override this Config
// carries, returning the effective severity and options every rule in
// the registry should run with. Rules absent from c.Rules keep their
// registry default. --select/--ignore reach this only through c.Rules:
// the CLI writes them into it before Resolve runs.
func Resolve(c *Config, registry *rules.Registry) map[string]RuleConfig {
	out := make(map[string]RuleConfig, len(registry.Codes()))
	for _, rule := range registry.All() {
		meta := rule.Metadata()
		severity := meta.DefaultSeverity
		if !meta.EnabledByDefault {
			severity = diagnostic.SeverityOff
		}
		out[meta.Code] = RuleConfig{Severity: severity}
	}

	for name, raw := range c.Rules {
		rc, err := parseRuleValue(raw)
		if err != nil {
			continue // reported separately via validateRuleKeys
		}
		out[name] = rc
	}
	return out
}

// parseRuleValue accepts either a bare severity string or a
// [severity, options] two-element tuple, matching §6's config schema.
func parseRuleValue(raw any) (RuleConfig, error) {
	switch v := raw.(type) {
	case string:
		sev, err := diagnostic.ParseSeverity(v)
		if err != nil {
			return RuleConfig{}, err
		}
		return RuleConfig{Severity: sev}, nil
	case []any:
		if len(v) == 0 {
			return RuleConfig{}, fmt.Errorf("config: empty rule tuple")
		}
		sevStr, ok := v[0].(string)
		if !ok {
			return RuleConfig{}, fmt.Errorf("config: rule tuple's first element must be a severity string")
		}
		sev, err := diagnostic.ParseSeverity(sevStr)
		if err != nil {
			return RuleConfig{}, err
		}
		rc := RuleConfig{Severity: sev}
		if len(v) > 1 {
			if opts, ok := v[1].(map[string]any); ok {
				rc.Options = opts
			}
		}
		return rc, nil
	default:
		return RuleConfig{}, fmt.Errorf("config: unsupported rule value shape %T", raw)
	}
}
