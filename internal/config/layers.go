package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/jackzampolin/myprompts/internal/prompts"
)

const (
	// WorkspaceDirName marks a workspace root; its config.yaml is the workspace scope.
	WorkspaceDirName = ".myprompts"
	// FolderFileName is the workspace folder scope file.
	FolderFileName = ".myprompts.yaml"
)

// WorkspaceConfigPath returns the workspace scope file for a workspace root.
func WorkspaceConfigPath(workspace string) string {
	return filepath.Join(workspace, WorkspaceDirName, "config.yaml")
}

// FolderConfigPath returns the workspace folder scope file for a folder.
func FolderConfigPath(folder string) string {
	return filepath.Join(folder, FolderFileName)
}

// LoadLayerFile reads and validates a layer file.
// A missing file returns nil without error.
func LoadLayerFile(path string) (*LayerFile, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read layer file: %w", err)
	}
	if err := ValidateLayer(data); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var f LayerFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", path, ErrInvalidLayer, err)
	}
	return &f, nil
}

// FindWorkspace returns the workspace root for file: the nearest ancestor
// directory holding a .myprompts directory or a .git entry. The home
// directory's .myprompts is the global scope and does not mark a workspace.
// Without a marker the file's own directory is used.
func FindWorkspace(file, homeDir string) string {
	start := filepath.Dir(absPath(file))
	homeDir = absPath(homeDir)
	for dir := start; ; {
		marker := filepath.Join(dir, WorkspaceDirName)
		if marker != homeDir && isDir(marker) {
			return dir
		}
		if exists(filepath.Join(dir, ".git")) {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return start
		}
		dir = parent
	}
}

// FindFolder returns the nearest ancestor of file, no higher than workspace,
// that holds a .myprompts.yaml. It returns "" if there is none.
func FindFolder(file, workspace string) string {
	workspace = absPath(workspace)
	for dir := filepath.Dir(absPath(file)); ; {
		if exists(FolderConfigPath(dir)) {
			return dir
		}
		if dir == workspace {
			return ""
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

func absPath(path string) string {
	if path == "" {
		return ""
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// Sources holds the layer file of each scope. Nil scopes contribute nothing.
type Sources struct {
	Folder    *LayerFile
	Workspace *LayerFile
	Global    *LayerFile
	Default   *LayerFile
}

// Layers returns the layer set for a document language.
func (s Sources) Layers(languageID string) prompts.LayerSet {
	var ls prompts.LayerSet
	ls = s.Folder.appendLayers(ls, prompts.ScopeWorkspaceFolder, prompts.ScopeWorkspaceFolderLanguage, languageID)
	ls = s.Workspace.appendLayers(ls, prompts.ScopeWorkspace, prompts.ScopeWorkspaceLanguage, languageID)
	ls = s.Global.appendLayers(ls, prompts.ScopeGlobal, prompts.ScopeGlobalLanguage, languageID)
	ls = s.Default.appendLayers(ls, prompts.ScopeDefault, prompts.ScopeDefaultLanguage, languageID)
	return ls
}

// Loader reads the layer files for one document. Workspace and folder files
// are read from disk on every call.
type Loader struct {
	Manager   *Manager // Global scope; nil skips it
	Workspace string   // Workspace root; "" skips the workspace scope
	Folder    string   // Workspace folder; "" skips the folder scope
	Default   *LayerFile
}

// Sources loads every scope.
func (l *Loader) Sources() (Sources, error) {
	var (
		src Sources
		err error
	)
	if l.Folder != "" {
		if src.Folder, err = LoadLayerFile(FolderConfigPath(l.Folder)); err != nil {
			return Sources{}, fmt.Errorf("workspace folder config: %w", err)
		}
	}
	if l.Workspace != "" {
		if src.Workspace, err = LoadLayerFile(WorkspaceConfigPath(l.Workspace)); err != nil {
			return Sources{}, fmt.Errorf("workspace config: %w", err)
		}
	}
	if l.Manager != nil {
		global := l.Manager.Get().LayerFile
		src.Global = &global
	}
	src.Default = l.Default
	return src, nil
}

// Layers loads every scope and returns the layer set for languageID.
func (l *Loader) Layers(ctx context.Context, languageID string) (prompts.LayerSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	src, err := l.Sources()
	if err != nil {
		return nil, err
	}
	return src.Layers(languageID), nil
}
