// Package prompts resolves the prompt commands that apply to a document.
//
// Prompt commands come from up to eight configuration layers. Each scope
// (workspace folder, workspace, global, default) contributes a base layer and
// a language-specific layer. Resolution visits the layers in ScopeOrder and
// merges commands by title:
//  1. workspace folder (language), workspace folder
//  2. workspace (language), workspace
//  3. global (language), global
//  4. default (language), default
//
// Later merges overwrite earlier ones, so on a title collision the entry from
// the least specific scope is the one that survives.
package prompts

import "strings"

// Wildcard in a command's Languages matches every document language.
const Wildcard = "*"

// CodeAction declares whether and how a command is offered as a code action.
type CodeAction string

const (
	CodeActionQuickFix CodeAction = "quickfix"
	CodeActionRefactor CodeAction = "refactor"
	CodeActionExtract  CodeAction = "extract"
	CodeActionInline   CodeAction = "inline"
	CodeActionMove     CodeAction = "move"
	CodeActionRewrite  CodeAction = "rewrite"
	CodeActionNo       CodeAction = "no"
)

// PromptCommand is a named instruction template.
type PromptCommand struct {
	Title      string     `mapstructure:"title" yaml:"title" json:"title"`
	Prompt     []string   `mapstructure:"prompt" yaml:"prompt" json:"prompt"`
	CodeAction CodeAction `mapstructure:"code_action" yaml:"code_action,omitempty" json:"code_action,omitempty"`
	Languages  []string   `mapstructure:"languages" yaml:"languages,omitempty" json:"languages,omitempty"`
}

// AppliesTo reports whether the command is available for languageID.
// A nil Languages list means every language; an empty non-nil list means none.
func (c PromptCommand) AppliesTo(languageID string) bool {
	if c.Languages == nil {
		return true
	}
	for _, lang := range c.Languages {
		if lang == Wildcard || lang == languageID {
			return true
		}
	}
	return false
}

// ModelSelector identifies the backend model to request.
type ModelSelector struct {
	Vendor string `mapstructure:"vendor" yaml:"vendor,omitempty" json:"vendor,omitempty"`
	Family string `mapstructure:"family" yaml:"family,omitempty" json:"family,omitempty"`
}

// IsZero reports whether neither field is set.
func (s ModelSelector) IsZero() bool {
	return s.Vendor == "" && s.Family == ""
}

// Settings is what a single configuration layer can supply.
// Nil fields contribute nothing.
type Settings struct {
	Commands     []PromptCommand `mapstructure:"commands" yaml:"commands,omitempty" json:"commands,omitempty"`
	Model        *ModelSelector  `mapstructure:"model" yaml:"model,omitempty" json:"model,omitempty"`
	SystemPrompt []string        `mapstructure:"system_prompt" yaml:"system_prompt,omitempty" json:"system_prompt,omitempty"`
}

// Scope names where a layer comes from.
type Scope int

const (
	ScopeWorkspaceFolderLanguage Scope = iota
	ScopeWorkspaceFolder
	ScopeWorkspaceLanguage
	ScopeWorkspace
	ScopeGlobalLanguage
	ScopeGlobal
	ScopeDefaultLanguage
	ScopeDefault
)

// ScopeOrder is the order in which layers are visited, most specific first.
var ScopeOrder = []Scope{
	ScopeWorkspaceFolderLanguage,
	ScopeWorkspaceFolder,
	ScopeWorkspaceLanguage,
	ScopeWorkspace,
	ScopeGlobalLanguage,
	ScopeGlobal,
	ScopeDefaultLanguage,
	ScopeDefault,
}

var scopeNames = map[Scope]string{
	ScopeWorkspaceFolderLanguage: "workspaceFolderLanguage",
	ScopeWorkspaceFolder:         "workspaceFolder",
	ScopeWorkspaceLanguage:       "workspaceLanguage",
	ScopeWorkspace:               "workspace",
	ScopeGlobalLanguage:          "globalLanguage",
	ScopeGlobal:                  "global",
	ScopeDefaultLanguage:         "defaultLanguage",
	ScopeDefault:                 "default",
}

func (s Scope) String() string {
	if name, ok := scopeNames[s]; ok {
		return name
	}
	return "unknown"
}

// IsLanguageSpecific reports whether the scope is the language variant of its base scope.
func (s Scope) IsLanguageSpecific() bool {
	return strings.HasSuffix(s.String(), "Language")
}

// Layer is one scope-tagged configuration snapshot.
type Layer struct {
	Scope    Scope
	Settings Settings
}

// LayerSet is the set of layers consulted for one document.
// Order within the slice does not matter; scopes are visited in ScopeOrder.
type LayerSet []Layer

// inOrder returns the layers sorted by ScopeOrder, keeping the slice order
// for layers that share a scope.
func (ls LayerSet) inOrder() []Layer {
	ordered := make([]Layer, 0, len(ls))
	for _, scope := range ScopeOrder {
		for _, layer := range ls {
			if layer.Scope == scope {
				ordered = append(ordered, layer)
			}
		}
	}
	return ordered
}

// Model returns the effective model selector. Each field is taken from the
// most specific layer that sets it.
func (ls LayerSet) Model() ModelSelector {
	var sel ModelSelector
	for _, layer := range ls.inOrder() {
		m := layer.Settings.Model
		if m == nil {
			continue
		}
		if sel.Vendor == "" {
			sel.Vendor = m.Vendor
		}
		if sel.Family == "" {
			sel.Family = m.Family
		}
		if sel.Vendor != "" && sel.Family != "" {
			break
		}
	}
	return sel
}

// SystemPrompt returns the system prompt of the most specific layer that defines one.
func (ls LayerSet) SystemPrompt() []string {
	for _, layer := range ls.inOrder() {
		if layer.Settings.SystemPrompt != nil {
			return layer.Settings.SystemPrompt
		}
	}
	return nil
}
