package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var fieldsPatternFile string

func newFieldsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fields [file]",
		Short: "List the fields the active pattern produces for a file",
		Long: `Parse a file best-effort and list the discovered field names in schema
order, including any columns the collaborator auto-named beyond the
pattern's declared fields.`,
		Args: cobra.ExactArgs(1),
		RunE: runFields,
	}

	cmd.Flags().StringVar(&fieldsPatternFile, "pattern-file", "", "YAML pattern file to use instead of a suggestion")

	return cmd
}

func runFields(cmd *cobra.Command, args []string) error {
	filename := args[0]
	p := newPipeline()
	ctx, cancel := p.commandContext()
	defer cancel()

	if fieldsPatternFile != "" {
		def, err := loadPatternFile(fieldsPatternFile)
		if err != nil {
			return err
		}
		p.coord.SetPattern(def)
	} else {
		p.coord.SuggestPattern(ctx, filename)
	}

	if err := p.coord.ParseFile(ctx, filename, true); err != nil {
		return err
	}

	for _, name := range p.view.AvailableFields() {
		fmt.Println(name)
	}
	return nil
}
