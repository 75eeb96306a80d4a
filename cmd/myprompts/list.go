package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/myprompts/internal/config"
	"github.com/jackzampolin/myprompts/internal/output"
	"github.com/jackzampolin/myprompts/internal/prompts"
	"github.com/jackzampolin/myprompts/internal/svcctx"
)

var (
	listDoc   docFlags
	listWatch bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the prompt commands that apply to a document",
	Long: `List the prompt commands resolved for a file or language, in resolution order.

Examples:
  myprompts list --file main.go
  myprompts list --language python -o json
  myprompts list --file main.go --watch   # re-print when the global config changes`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		languageID, err := listDoc.languageID()
		if err != nil {
			return err
		}
		loader := listDoc.loader(ctx)

		if err := printCommands(ctx, loader, languageID); err != nil {
			return err
		}
		if !listWatch {
			return nil
		}

		mgr := svcctx.ConfigFrom(ctx)
		logger := svcctx.LoggerFrom(ctx)
		mgr.OnChange(func(*config.Config) {
			fmt.Println("---")
			if err := printCommands(ctx, loader, languageID); err != nil {
				logger.Error("failed to list prompts", "error", err)
			}
		})
		mgr.WatchConfig()

		<-ctx.Done()
		return nil
	},
}

func printCommands(ctx context.Context, loader *config.Loader, languageID string) error {
	layers, err := loader.Layers(ctx, languageID)
	if err != nil {
		return err
	}
	return output.Print(prompts.Resolve(languageID, layers).Commands())
}

func init() {
	listDoc.register(listCmd)
	listCmd.Flags().BoolVarP(&listWatch, "watch", "w", false, "watch the global config and re-print on change")
}
