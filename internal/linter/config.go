package linter

import (
	"encoding/json"

	"edgelint/internal/tokenizer"
)

// RuleConfig is one rule's resolved configuration: a severity plus the
// rule-specific options blob handed to the rule untouched.
type RuleConfig struct {
	Severity Severity
	Options  json.RawMessage
}

// RuleConfigFrom resolves the two accepted config shapes for a rule entry:
// a bare severity, or an array [severity, options...].
func RuleConfigFrom(v any) RuleConfig {
	if arr, ok := v.([]any); ok {
		rc := RuleConfig{}
		if len(arr) > 0 {
			rc.Severity = NormalizeSeverity(arr[0])
		}
		switch {
		case len(arr) == 2:
			rc.Options = marshalOptions(arr[1])
		case len(arr) > 2:
			rc.Options = marshalOptions(arr[1:])
		}
		return rc
	}
	return RuleConfig{Severity: NormalizeSeverity(v)}
}

func marshalOptions(v any) json.RawMessage {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return raw
}

// ParserOptions is passed through to tokenization. Tags merge over the
// default tag set by name.
type ParserOptions struct {
	Tags map[string]tokenizer.TagDef
}

// Config is one configuration layer: rule severities and options, the
// settings bag every rule can read, parser options, and ignore patterns.
type Config struct {
	Rules          map[string]RuleConfig
	Settings       map[string]any
	Parser         ParserOptions
	IgnorePatterns []string
}

// Merge layers over on top of base. Rules and settings merge key-wise with
// over winning; tag definitions merge by tag name; ignore patterns
// concatenate rather than override.
func Merge(base, over Config) Config {
	out := Config{
		Rules:    make(map[string]RuleConfig, len(base.Rules)+len(over.Rules)),
		Settings: make(map[string]any, len(base.Settings)+len(over.Settings)),
	}
	for id, rc := range base.Rules {
		out.Rules[id] = rc
	}
	for id, rc := range over.Rules {
		out.Rules[id] = rc
	}
	for k, v := range base.Settings {
		out.Settings[k] = v
	}
	for k, v := range over.Settings {
		out.Settings[k] = v
	}
	if len(base.Parser.Tags) > 0 || len(over.Parser.Tags) > 0 {
		out.Parser.Tags = make(map[string]tokenizer.TagDef, len(base.Parser.Tags)+len(over.Parser.Tags))
		for name, def := range base.Parser.Tags {
			out.Parser.Tags[name] = def
		}
		for name, def := range over.Parser.Tags {
			out.Parser.Tags[name] = def
		}
	}
	out.IgnorePatterns = append(append([]string(nil), base.IgnorePatterns...), over.IgnorePatterns...)
	return out
}
