package main

import (
	"github.com/spf13/cobra"

	"github.com/jackzampolin/myprompts/internal/output"
	"github.com/jackzampolin/myprompts/internal/svcctx"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the vendor/family pairs the configured providers serve",
	Long: `List every model selector that can be satisfied by an enabled provider.
Providers that need an API key are only listed when the key resolves.

Examples:
  myprompts models
  myprompts models -o json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return output.Print(svcctx.RegistryFrom(cmd.Context()).Available())
	},
}
