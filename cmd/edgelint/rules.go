package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"edgelint/internal/rule"
	"edgelint/internal/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the built-in rules",
	RunE:  runRules,
}

func init() {
	rulesCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

type rulePayload struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Recommended bool   `json:"recommended"`
	Fixable     string `json:"fixable"`
	Suggestions bool   `json:"suggestions"`
}

func runRules(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}

	registry := rules.Builtin()
	metas := make([]rule.Meta, 0, len(registry.IDs()))
	for _, id := range registry.IDs() {
		if r, ok := registry.Get(id); ok {
			metas = append(metas, r.Meta())
		}
	}

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		payload := make([]rulePayload, 0, len(metas))
		for _, m := range metas {
			payload = append(payload, rulePayload{
				ID:          m.ID,
				Description: m.Docs.Description,
				Category:    m.Docs.Category,
				Recommended: m.Docs.Recommended,
				Fixable:     m.Fixable.String(),
				Suggestions: m.HasSuggestions,
			})
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	case "pretty":
		for _, m := range metas {
			marker := " "
			if m.Docs.Recommended {
				marker = "*"
			}
			fixable := ""
			if m.Fixable != rule.FixNone {
				fixable = " (fixable)"
			}
			if _, err := fmt.Fprintf(out, "%s %-24s %s%s\n", marker, m.ID, m.Docs.Description, fixable); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintln(out, "\n* enabled by the recommended config")
		return err
	default:
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}
}
