package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/loggrid/loggrid/internal/record"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var suggestSave string

func newSuggestCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suggest [file]",
		Short: "Ask the parsing collaborator for a best-guess pattern",
		Long: `Request a pattern suggestion for a log file from the parsing collaborator.

Suggestion never fails hard: when the collaborator cannot produce a
pattern, the built-in default is reported instead.

Examples:
  loggrid suggest app.log
  loggrid suggest app.log --save my-pattern.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: runSuggest,
	}

	cmd.Flags().StringVar(&suggestSave, "save", "", "write the suggested pattern to a YAML file")

	return cmd
}

func runSuggest(cmd *cobra.Command, args []string) error {
	p := newPipeline()
	ctx, cancel := p.commandContext()
	defer cancel()

	def := p.coord.SuggestPattern(ctx, args[0])

	fmt.Printf("Description: %s\n", def.Description)
	fmt.Printf("Spec:        %s\n", def.Spec)
	fmt.Printf("Fields:      %s\n", strings.Join(def.FieldNames, ", "))

	if suggestSave != "" {
		if err := savePatternFile(suggestSave, def); err != nil {
			return err
		}
		fmt.Printf("Saved to %s\n", suggestSave)
	}
	return nil
}

// savePatternFile writes a pattern definition as YAML.
func savePatternFile(path string, def *record.PatternDefinition) error {
	data, err := yaml.Marshal(def)
	if err != nil {
		return fmt.Errorf("encoding pattern: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing pattern file: %w", err)
	}
	return nil
}

// loadPatternFile reads a pattern definition from YAML.
func loadPatternFile(path string) (*record.PatternDefinition, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-chosen pattern file
	if err != nil {
		return nil, fmt.Errorf("reading pattern file: %w", err)
	}
	var def record.PatternDefinition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parsing pattern file: %w", err)
	}
	if len(def.FieldNames) == 0 {
		return nil, fmt.Errorf("pattern file %s carries no field names", path)
	}
	return &def, nil
}
