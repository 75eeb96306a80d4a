package config

import "github.com/jackzampolin/myprompts/internal/prompts"

// DefaultLayer returns the compiled-in default scope. It is the least
// specific layer, and because command merging lets later layers overwrite
// earlier ones, its commands replace same-titled commands from every other
// scope.
func DefaultLayer() *LayerFile {
	return &LayerFile{
		Settings: prompts.Settings{
			Commands: []prompts.PromptCommand{
				{
					Title:      "Add comments",
					Prompt:     []string{"Add concise comments that explain what the code does.", "Do not change its behavior."},
					CodeAction: prompts.CodeActionRefactor,
				},
				{
					Title:      "Fix bugs",
					Prompt:     []string{"Find and fix any bugs in the code.", "Keep the fix minimal."},
					CodeAction: prompts.CodeActionQuickFix,
				},
				{
					Title:      "Simplify",
					Prompt:     []string{"Rewrite the code to be simpler and easier to read without changing its behavior."},
					CodeAction: prompts.CodeActionRewrite,
				},
				{
					Title:      "Extract function",
					Prompt:     []string{"Extract the code into a well-named function and replace the original with a call to it."},
					CodeAction: prompts.CodeActionExtract,
				},
				{
					Title:  "Write tests",
					Prompt: []string{"Write unit tests for the code."},
				},
			},
			Model: &prompts.ModelSelector{Vendor: "openai", Family: "gpt-4o"},
			SystemPrompt: []string{
				"You are an expert programmer.",
				"Reply with a single fenced code block containing only the resulting code.",
			},
		},
		LanguageOverrides: map[string]prompts.Settings{
			"go": {
				Commands: []prompts.PromptCommand{
					{
						Title:      "Wrap errors",
						Prompt:     []string{"Wrap returned errors with fmt.Errorf and %w, adding context about the failed operation."},
						CodeAction: prompts.CodeActionRefactor,
						Languages:  []string{"go"},
					},
				},
			},
		},
	}
}
