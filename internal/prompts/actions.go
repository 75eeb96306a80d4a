package prompts

// ActionKind is the host's code action kind.
type ActionKind string

const (
	KindQuickFix        ActionKind = "quickfix"
	KindRefactor        ActionKind = "refactor"
	KindRefactorExtract ActionKind = "refactor.extract"
	KindRefactorInline  ActionKind = "refactor.inline"
	KindRefactorMove    ActionKind = "refactor.move"
	KindRefactorRewrite ActionKind = "refactor.rewrite"
)

const (
	// EditCommandID is the command every code action invokes.
	EditCommandID = "myprompts.edit"

	// PickerActionTitle is the title of the always-present action that opens the picker.
	PickerActionTitle = "My Prompts: Edit"
)

// actionKinds maps each surfaced CodeAction to its kind. CodeActionNo and the
// empty value are deliberately absent: they mean "not a code action".
var actionKinds = map[CodeAction]ActionKind{
	CodeActionQuickFix: KindQuickFix,
	CodeActionRefactor: KindRefactor,
	CodeActionExtract:  KindRefactorExtract,
	CodeActionInline:   KindRefactorInline,
	CodeActionMove:     KindRefactorMove,
	CodeActionRewrite:  KindRefactorRewrite,
}

// Kind returns the action kind for a, or false if the command is not surfaced.
func (a CodeAction) Kind() (ActionKind, bool) {
	kind, ok := actionKinds[a]
	return kind, ok
}

// Valid reports whether a is one of the recognized values, including "no".
// The empty value is valid and means absent.
func (a CodeAction) Valid() bool {
	if a == "" || a == CodeActionNo {
		return true
	}
	_, ok := actionKinds[a]
	return ok
}

// ActionCandidate is a code action offered for a document.
type ActionCandidate struct {
	Title     string     `yaml:"title" json:"title"`
	Kind      ActionKind `yaml:"kind" json:"kind"`
	Command   string     `yaml:"command" json:"command"`
	Arguments []string   `yaml:"arguments,omitempty" json:"arguments,omitempty"`
}

// CodeActions lists the picker action followed by every resolved command that
// declares a code action, in resolution order.
func CodeActions(set *CommandSet) []ActionCandidate {
	actions := []ActionCandidate{{
		Title:   PickerActionTitle,
		Kind:    KindRefactorRewrite,
		Command: EditCommandID,
	}}
	for _, cmd := range set.Commands() {
		kind, ok := cmd.CodeAction.Kind()
		if !ok {
			continue
		}
		actions = append(actions, ActionCandidate{
			Title:     cmd.Title,
			Kind:      kind,
			Command:   EditCommandID,
			Arguments: []string{cmd.Title},
		})
	}
	return actions
}
