package rules

import (
	"edgelint/internal/linter"
	"edgelint/internal/rule"
)

// Builtin returns a registry preloaded with every built-in rule.
func Builtin() *rule.Registry {
	return rule.NewRegistry().MustRegister(
		NoEmptyExpression(),
		MustacheSpacing(),
		NoDuplicateSection(),
		NoUnusedSet(),
		ValidExpression(),
		NoComplexExpression(),
		NoSelfClosedInclude(),
	)
}

// RecommendedConfig enables every built-in rule at its recommended
// severity. Callers layer their own config over it.
func RecommendedConfig() linter.Config {
	return linter.Config{
		Rules: map[string]linter.RuleConfig{
			"no-empty-expression":    {Severity: linter.Error},
			"mustache-spacing":       {Severity: linter.Error},
			"no-duplicate-section":   {Severity: linter.Warn},
			"no-unused-set":          {Severity: linter.Warn},
			"valid-expression":       {Severity: linter.Error},
			"no-complex-expression":  {Severity: linter.Warn},
			"no-self-closed-include": {Severity: linter.Warn},
		},
	}
}
