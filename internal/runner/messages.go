package runner

import (
	"fmt"
	"strings"

	"github.com/jackzampolin/myprompts/internal/prompts"
	"github.com/jackzampolin/myprompts/internal/providers"
)

// BuildMessages returns the conversation sent for cmd. Every turn is a user
// message, in order: the system prompt lines joined by newlines, the
// language instruction, each prompt line, and the selected text.
func BuildMessages(systemPrompt []string, languageID string, cmd prompts.PromptCommand, selected string) []providers.Message {
	messages := make([]providers.Message, 0, len(cmd.Prompt)+3)
	messages = append(messages,
		providers.Message{Role: providers.RoleUser, Content: strings.Join(systemPrompt, "\n")},
		providers.Message{Role: providers.RoleUser, Content: fmt.Sprintf("The result should be valid %s code.", languageID)},
	)
	for _, line := range cmd.Prompt {
		messages = append(messages, providers.Message{Role: providers.RoleUser, Content: line})
	}
	return append(messages, providers.Message{Role: providers.RoleUser, Content: selected})
}
