package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jackzampolin/myprompts/internal/config"
	"github.com/jackzampolin/myprompts/internal/prompts"
)

func TestDocFlagsLanguageID(t *testing.T) {
	tests := []struct {
		name    string
		flags   docFlags
		want    string
		wantErr bool
	}{
		{name: "explicit wins", flags: docFlags{file: "main.go", language: "python"}, want: "python"},
		{name: "detected from file", flags: docFlags{file: "main.go"}, want: "go"},
		{name: "neither", flags: docFlags{}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.flags.languageID()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("languageID() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDocFlagsLoader(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "pkg")
	if err := os.MkdirAll(filepath.Join(root, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	folderCfg := "commands:\n  - title: Folder only\n    prompt: [\"do it\"]\n"
	if err := os.WriteFile(filepath.Join(sub, config.FolderFileName), []byte(folderCfg), 0o644); err != nil {
		t.Fatal(err)
	}
	file := filepath.Join(sub, "main.go")

	flags := docFlags{file: file}
	l := flags.loader(context.Background())

	if l.Workspace != root {
		t.Errorf("Workspace = %q, want %q", l.Workspace, root)
	}
	if l.Folder != sub {
		t.Errorf("Folder = %q, want %q", l.Folder, sub)
	}

	layers, err := l.Layers(context.Background(), "go")
	if err != nil {
		t.Fatalf("Layers() error: %v", err)
	}
	set := prompts.Resolve("go", layers)
	if _, ok := set.Get("Folder only"); !ok {
		t.Errorf("folder command missing from %v", set.Titles())
	}
	if _, ok := set.Get("Add comments"); !ok {
		t.Errorf("default command missing from %v", set.Titles())
	}
}

func TestDocFlagsLoaderExplicit(t *testing.T) {
	flags := docFlags{file: "/nowhere/main.go", workspace: "/ws", folder: "/ws/a"}
	l := flags.loader(context.Background())
	if l.Workspace != "/ws" || l.Folder != "/ws/a" {
		t.Errorf("loader = %q/%q, want explicit paths kept", l.Workspace, l.Folder)
	}
}
