package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/myprompts/internal/config"
	"github.com/jackzampolin/myprompts/internal/home"
	"github.com/jackzampolin/myprompts/internal/output"
	"github.com/jackzampolin/myprompts/internal/prompts"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration commands",
}

var configInitForce bool

var configInitCmd = &cobra.Command{
	Use:         "init",
	Short:       "Write the default global config",
	Annotations: map[string]string{skipServices: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := home.New(homeDir)
		if err != nil {
			return err
		}
		path := cfgFile
		if path == "" {
			if err := h.EnsureExists(); err != nil {
				return err
			}
			path = h.ConfigPath()
		}
		if h.ConfigExists() && path == h.ConfigPath() && !configInitForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		if err := config.WriteDefault(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", path)
		return nil
	},
}

var configShowDoc docFlags

// effectiveSettings is what config show prints.
type effectiveSettings struct {
	Language     string                `yaml:"language" json:"language"`
	Model        prompts.ModelSelector `yaml:"model" json:"model"`
	SystemPrompt []string              `yaml:"system_prompt" json:"system_prompt"`
	Commands     []string              `yaml:"commands" json:"commands"`
	Layers       []string              `yaml:"layers" json:"layers"`
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective model, system prompt and commands for a document",
	Long: `Show the settings that apply to a file or language after all layers are merged.

Examples:
  myprompts config show --language go
  myprompts config show --file src/app.py -o json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		languageID, err := configShowDoc.languageID()
		if err != nil {
			return err
		}
		layers, err := configShowDoc.loader(ctx).Layers(ctx, languageID)
		if err != nil {
			return err
		}

		scopes := make([]string, len(layers))
		for i, l := range layers {
			scopes[i] = l.Scope.String()
		}
		return output.Print(effectiveSettings{
			Language:     languageID,
			Model:        layers.Model(),
			SystemPrompt: layers.SystemPrompt(),
			Commands:     prompts.Resolve(languageID, layers).Titles(),
			Layers:       scopes,
		})
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing config")
	configShowDoc.register(configShowCmd)

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}
