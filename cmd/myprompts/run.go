package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/myprompts/internal/document"
	"github.com/jackzampolin/myprompts/internal/runner"
	"github.com/jackzampolin/myprompts/internal/svcctx"
	"github.com/jackzampolin/myprompts/internal/tui"
)

var (
	runDoc   docFlags
	runLines string
	runWrite bool
)

var runCmd = &cobra.Command{
	Use:   "run [title]",
	Short: "Run a prompt command against a file selection",
	Long: `Run a prompt command against a line range of a file.

Without a title, an interactive picker lists the commands that apply to the
file. The model's reply is reduced to its first fenced code block (or used as
is when it has none). With --write the selection is replaced in the file;
otherwise the result is printed to stdout.

Examples:
  myprompts run "Add comments" --file main.go --lines 10:24
  myprompts run --file app.py --write
  myprompts run Simplify -f lib.rs -l rust --log-level debug`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if runDoc.file == "" {
			return errors.New("--file is required")
		}
		rng, err := document.ParseRange(runLines)
		if err != nil {
			return err
		}
		doc, err := document.Load(runDoc.file, rng, runDoc.language)
		if err != nil {
			return err
		}

		var editor runner.Editor = &document.WriterEditor{W: os.Stdout}
		if runWrite {
			editor = &document.FileEditor{Doc: doc}
		}

		var title string
		if len(args) == 1 {
			title = args[0]
		}

		r := &runner.Runner{
			Layers:   runDoc.loader(ctx),
			Models:   svcctx.RegistryFrom(ctx),
			Picker:   &tui.Picker{In: os.Stdin, Out: os.Stderr},
			Notifier: &tui.Notifier{W: os.Stderr},
			Progress: &tui.Progress{W: os.Stderr},
			Logger:   svcctx.LoggerFrom(ctx),
		}
		return r.Run(ctx, runner.Invocation{
			Document: doc,
			Editor:   editor,
			Title:    title,
		})
	},
}

func init() {
	runDoc.register(runCmd)
	runCmd.Flags().StringVar(&runLines, "lines", "", "selected lines as start:end, 1-based inclusive (default: whole file)")
	runCmd.Flags().BoolVar(&runWrite, "write", false, "replace the selection in the file instead of printing")
}
