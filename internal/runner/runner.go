// Package runner runs one prompt command against the current selection:
// resolve the commands for the document, pick one, send it to the selected
// model, normalize the reply and apply it.
package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/jackzampolin/myprompts/internal/prompts"
	"github.com/jackzampolin/myprompts/internal/providers"
	"github.com/jackzampolin/myprompts/internal/response"
)

// User notices and progress phases.
const (
	NoticeNoPrompts = "No prompts configured."
	PhaseRunning    = "Running..."
	PhaseApplying   = "Applying..."
)

// NoticePromptNotFound is shown when the requested title is not in the resolved set.
func NoticePromptNotFound(title string) string {
	return fmt.Sprintf("Prompt '%s' not found.", title)
}

// NoticeModelNotFound is shown when no model matches the effective selector.
func NoticeModelNotFound(sel prompts.ModelSelector) string {
	return fmt.Sprintf("Model not found (vendor: %s, family: %s).", sel.Vendor, sel.Family)
}

// NoticeError is shown when the reply cannot be read or applied.
func NoticeError(err error) string {
	return "Error: " + err.Error()
}

// Document is the text the command runs against.
type Document interface {
	LanguageID() string
	SelectedText() string
}

// Editor replaces the document selection with the result.
type Editor interface {
	Apply(ctx context.Context, text string) error
}

// Picker asks the user to choose a title. An empty choice means cancelled.
type Picker interface {
	Pick(ctx context.Context, titles []string) (string, error)
}

// Notifier shows a short one-line notice.
type Notifier interface {
	Notify(message string)
}

// Progress shows the phase of a running command.
type Progress interface {
	Start(title string)
	Report(message string)
}

// LayerLoader supplies a fresh layer set for a document language.
type LayerLoader interface {
	Layers(ctx context.Context, languageID string) (prompts.LayerSet, error)
}

// ModelSelector finds the model for a selector.
type ModelSelector interface {
	Select(sel prompts.ModelSelector) (*providers.Model, bool)
}

// Runner executes prompt commands.
type Runner struct {
	Layers   LayerLoader
	Models   ModelSelector
	Picker   Picker
	Notifier Notifier
	Progress Progress
	Logger   *slog.Logger
}

// Invocation is one request to run a command.
type Invocation struct {
	Document Document
	Editor   Editor
	// Title of the command to run; empty asks the Picker.
	Title string
}

// Run executes one invocation. User-facing failures are reported through the
// Notifier and return nil. Errors are returned for broken configuration, a
// failed picker, and request failures that did not come from the model
// service.
func (r *Runner) Run(ctx context.Context, inv Invocation) error {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}
	requestID := uuid.NewString()
	languageID := inv.Document.LanguageID()
	logger = logger.With("request_id", requestID, "language", languageID)

	layers, err := r.Layers.Layers(ctx, languageID)
	if err != nil {
		return fmt.Errorf("failed to load prompt configuration: %w", err)
	}

	commands := prompts.Resolve(languageID, layers)
	if commands.Len() == 0 {
		r.Notifier.Notify(NoticeNoPrompts)
		return nil
	}

	title := inv.Title
	if title == "" {
		title, err = r.Picker.Pick(ctx, commands.Titles())
		if err != nil {
			return err
		}
		if title == "" {
			logger.Debug("prompt selection cancelled")
			return nil
		}
	}
	logger = logger.With("title", title)

	cmd, ok := commands.Get(title)
	if !ok {
		r.Notifier.Notify(NoticePromptNotFound(title))
		return nil
	}

	sel := layers.Model()
	logger.Debug("model selector", "vendor", sel.Vendor, "family", sel.Family)
	model, ok := r.Models.Select(sel)
	if !ok {
		r.Notifier.Notify(NoticeModelNotFound(sel))
		return nil
	}
	logger = logger.With("vendor", model.Vendor, "family", model.Family)
	logger.Debug("selected model", "model", model.ID())

	messages := BuildMessages(layers.SystemPrompt(), languageID, cmd, inv.Document.SelectedText())
	logger.Debug("messages sent to model", "messages", messages)

	r.Progress.Start(title)
	r.Progress.Report(PhaseRunning)

	stream, err := model.SendRequest(ctx, messages, requestID)
	if err != nil {
		var modelErr *providers.ModelError
		if errors.As(err, &modelErr) {
			logger.Error("language model error",
				"message", modelErr.Message,
				"code", modelErr.Code,
				"cause", modelErr.Cause,
			)
			return nil
		}
		logger.Error("unexpected error", "error", err)
		return err
	}

	r.Progress.Report(PhaseApplying)
	if err := r.apply(ctx, logger, inv.Editor, stream); err != nil {
		notice := NoticeError(err)
		r.Notifier.Notify(notice)
		logger.Error(notice)
	}
	return nil
}

// apply collects the whole reply, normalizes it and hands it to the editor.
func (r *Runner) apply(ctx context.Context, logger *slog.Logger, editor Editor, stream response.Stream) error {
	raw, err := response.Collect(ctx, stream)
	if err != nil {
		return err
	}
	logger.Debug("response from model", "response", raw)

	return editor.Apply(ctx, response.Extract(raw))
}
