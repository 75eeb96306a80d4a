package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/myprompts/internal/config"
	"github.com/jackzampolin/myprompts/internal/document"
	"github.com/jackzampolin/myprompts/internal/svcctx"
)

// docFlags identify the document a command works on and where its
// workspace layers live.
type docFlags struct {
	file      string
	language  string
	workspace string
	folder    string
}

func (f *docFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "source file")
	cmd.Flags().StringVarP(&f.language, "language", "l", "", "language id (default: detected from --file)")
	cmd.Flags().StringVar(&f.workspace, "workspace", "", "workspace root (default: nearest ancestor with .myprompts/ or .git)")
	cmd.Flags().StringVar(&f.folder, "folder", "", "workspace folder (default: nearest ancestor with .myprompts.yaml)")
}

// languageID returns the explicit language or the one detected from the file.
func (f *docFlags) languageID() (string, error) {
	switch {
	case f.language != "":
		return f.language, nil
	case f.file != "":
		return document.LanguageFor(f.file), nil
	default:
		return "", errors.New("either --file or --language is required")
	}
}

// loader builds the layer loader for the document's workspace.
func (f *docFlags) loader(ctx context.Context) *config.Loader {
	l := &config.Loader{
		Manager:   svcctx.ConfigFrom(ctx),
		Workspace: f.workspace,
		Folder:    f.folder,
		Default:   config.DefaultLayer(),
	}
	if f.file == "" {
		return l
	}

	if l.Workspace == "" {
		homePath := ""
		if h := svcctx.HomeFrom(ctx); h != nil {
			homePath = h.Path()
		}
		l.Workspace = config.FindWorkspace(f.file, homePath)
	}
	if l.Folder == "" {
		l.Folder = config.FindFolder(f.file, l.Workspace)
	}
	svcctx.LoggerFrom(ctx).Debug("layer sources", "workspace", l.Workspace, "folder", l.Folder)
	return l
}
