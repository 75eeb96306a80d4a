package main

import (
	"github.com/spf13/cobra"

	"github.com/jackzampolin/myprompts/internal/output"
	"github.com/jackzampolin/myprompts/internal/prompts"
)

var actionsDoc docFlags

var actionsCmd = &cobra.Command{
	Use:   "actions",
	Short: "List the code actions offered for a document",
	Long: `List the code-action candidates for a file or language. The first entry always
opens the prompt picker; the rest run a single command by title.

Examples:
  myprompts actions --file main.go`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		languageID, err := actionsDoc.languageID()
		if err != nil {
			return err
		}
		layers, err := actionsDoc.loader(ctx).Layers(ctx, languageID)
		if err != nil {
			return err
		}
		return output.Print(prompts.CodeActions(prompts.Resolve(languageID, layers)))
	},
}

func init() {
	actionsDoc.register(actionsCmd)
}
