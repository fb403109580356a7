package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"typedlint/internal/config"
	"typedlint/internal/plugin"
)

type ruleRow struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Level       string `json:"level"`
	Fixable     bool   `json:"fixable"`
	Recommended bool   `json:"recommended"`
	Deprecated  bool   `json:"deprecated,omitempty"`
	Description string `json:"description"`
}

func newRulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List available rules and their configured levels",
		Args:  cobra.NoArgs,
		RunE:  runRules,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	cmd.Flags().Bool("enabled", false, "only rules enabled by the configuration")
	addConfigFlags(cmd)
	return cmd
}

func runRules(cmd *cobra.Command, _ []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	enabledOnly, err := cmd.Flags().GetBool("enabled")
	if err != nil {
		return fmt.Errorf("failed to get enabled flag: %w", err)
	}
	format = strings.ToLower(format)
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}
	cf, err := readConfigFlags(cmd)
	if err != nil {
		return err
	}
	catalog, err := newCatalog()
	if err != nil {
		return err
	}
	cfg, _, err := loadConfig(cmd, catalog, cf)
	if err != nil {
		return err
	}

	rows := collectRules(catalog, cfg, enabledOnly)
	out := cmd.OutOrStdout()
	if format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}
	colored, err := useColor(cmd, out)
	if err != nil {
		return err
	}
	return renderRules(out, rows, colored)
}

func collectRules(catalog *plugin.Catalog, cfg *config.Effective, enabledOnly bool) []ruleRow {
	ids := catalog.RuleIDs()
	rows := make([]ruleRow, 0, len(ids))
	for _, id := range ids {
		r, _ := catalog.Rule(id)
		level := config.LevelOff
		if entry, ok := cfg.Rule(id); ok {
			level = entry.Level
		}
		if enabledOnly && level == config.LevelOff {
			continue
		}
		rows = append(rows, ruleRow{
			ID:          id,
			Type:        string(r.Meta.Type),
			Level:       level.String(),
			Fixable:     r.Meta.Fixable,
			Recommended: r.Meta.Recommended,
			Deprecated:  r.Meta.Deprecated,
			Description: r.Meta.Description,
		})
	}
	return rows
}

func renderRules(w io.Writer, rows []ruleRow, colored bool) error {
	levelColor := map[string]*color.Color{
		"error": color.New(color.FgRed),
		"warn":  color.New(color.FgYellow),
		"off":   color.New(color.FgHiBlack),
	}
	for _, c := range levelColor {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RULE\tLEVEL\tTYPE\tFLAGS\tDESCRIPTION")
	for _, r := range rows {
		var flags []string
		if r.Recommended {
			flags = append(flags, "rec")
		}
		if r.Fixable {
			flags = append(flags, "fix")
		}
		if r.Deprecated {
			flags = append(flags, "deprecated")
		}
		flagText := strings.Join(flags, ",")
		if flagText == "" {
			flagText = "-"
		}
		// escape-коды одинаковой длины, tabwriter считает их как обычный текст
		level := levelColor[r.Level].Sprint(fmt.Sprintf("%-5s", r.Level))
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.ID, level, r.Type, flagText, r.Description)
	}
	return tw.Flush()
}
