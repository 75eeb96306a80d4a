package prompts

// CommandSet is the title-keyed result of resolving commands for a document.
// Titles keep the position of their first insertion.
type CommandSet struct {
	titles  []string
	byTitle map[string]PromptCommand
}

func newCommandSet() *CommandSet {
	return &CommandSet{byTitle: make(map[string]PromptCommand)}
}

func (s *CommandSet) set(cmd PromptCommand) {
	if _, ok := s.byTitle[cmd.Title]; !ok {
		s.titles = append(s.titles, cmd.Title)
	}
	s.byTitle[cmd.Title] = cmd
}

// Len returns the number of resolved commands.
func (s *CommandSet) Len() int {
	return len(s.titles)
}

// Get returns the command with the given title.
func (s *CommandSet) Get(title string) (PromptCommand, bool) {
	cmd, ok := s.byTitle[title]
	return cmd, ok
}

// Titles returns the resolved titles in order.
func (s *CommandSet) Titles() []string {
	out := make([]string, len(s.titles))
	copy(out, s.titles)
	return out
}

// Commands returns the resolved commands in order.
func (s *CommandSet) Commands() []PromptCommand {
	out := make([]PromptCommand, 0, len(s.titles))
	for _, title := range s.titles {
		out = append(out, s.byTitle[title])
	}
	return out
}

// Resolve merges the commands of every layer that apply to languageID.
//
// Layers are visited in ScopeOrder and each applicable command overwrites any
// earlier command with the same title. The visit runs from most to least
// specific, so the least specific scope wins a collision: a default command
// replaces a workspace folder command of the same title.
//
// Resolve never fails; an empty set means no prompts are configured.
func Resolve(languageID string, layers LayerSet) *CommandSet {
	set := newCommandSet()
	for _, layer := range layers.inOrder() {
		for _, cmd := range layer.Settings.Commands {
			if cmd.AppliesTo(languageID) {
				set.set(cmd)
			}
		}
	}
	return set
}
