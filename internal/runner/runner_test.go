package runner

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"

	"github.com/jackzampolin/myprompts/internal/prompts"
	"github.com/jackzampolin/myprompts/internal/providers"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeDocument struct {
	language string
	selected string
}

func (d fakeDocument) LanguageID() string   { return d.language }
func (d fakeDocument) SelectedText() string { return d.selected }

type fakeEditor struct {
	applied []string
	err     error
}

func (e *fakeEditor) Apply(ctx context.Context, text string) error {
	e.applied = append(e.applied, text)
	return e.err
}

type fakePicker struct {
	choice string
	err    error
	shown  [][]string
}

func (p *fakePicker) Pick(ctx context.Context, titles []string) (string, error) {
	p.shown = append(p.shown, titles)
	return p.choice, p.err
}

type fakeNotifier struct {
	mu      sync.Mutex
	notices []string
}

func (n *fakeNotifier) Notify(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, message)
}

type fakeProgress struct {
	title  string
	phases []string
}

func (p *fakeProgress) Start(title string)     { p.title = title }
func (p *fakeProgress) Report(message string) { p.phases = append(p.phases, message) }

type fakeLoader struct {
	layers    prompts.LayerSet
	err       error
	languages []string
}

func (l *fakeLoader) Layers(ctx context.Context, languageID string) (prompts.LayerSet, error) {
	l.languages = append(l.languages, languageID)
	return l.layers, l.err
}

type fixture struct {
	runner   *Runner
	loader   *fakeLoader
	client   *providers.MockClient
	picker   *fakePicker
	notifier *fakeNotifier
	progress *fakeProgress
	editor   *fakeEditor
	logs     *bytes.Buffer
}

func newFixture() *fixture {
	f := &fixture{
		loader: &fakeLoader{layers: prompts.LayerSet{
			{Scope: prompts.ScopeDefault, Settings: prompts.Settings{
				Commands: []prompts.PromptCommand{
					{Title: "Fix bugs", Prompt: []string{"Fix the bugs.", "Keep it short."}},
					{Title: "Simplify", Prompt: []string{"Simplify."}},
				},
				Model:        &prompts.ModelSelector{Vendor: "mock", Family: "mock-1"},
				SystemPrompt: []string{"You are an expert.", "Be terse."},
			}},
		}},
		client: &providers.MockClient{
			Families:  []string{"mock-1"},
			Fragments: []string{"Here you go:\n```go\n", "x := 1\n", "```\nDone."},
		},
		picker:   &fakePicker{},
		notifier: &fakeNotifier{},
		progress: &fakeProgress{},
		editor:   &fakeEditor{},
		logs:     &bytes.Buffer{},
	}
	registry := providers.NewRegistry()
	registry.Register(f.client)

	f.runner = &Runner{
		Layers:   f.loader,
		Models:   registry,
		Picker:   f.picker,
		Notifier: f.notifier,
		Progress: f.progress,
		Logger:   slog.New(slog.NewTextHandler(f.logs, &slog.HandlerOptions{Level: slog.LevelDebug})),
	}
	return f
}

func (f *fixture) run(t *testing.T, title string) error {
	t.Helper()
	return f.runner.Run(context.Background(), Invocation{
		Document: fakeDocument{language: "go", selected: "x = 1"},
		Editor:   f.editor,
		Title:    title,
	})
}

func TestRunner_Run(t *testing.T) {
	t.Run("applies the fenced block", func(t *testing.T) {
		f := newFixture()
		if err := f.run(t, "Fix bugs"); err != nil {
			t.Fatalf("Run() error = %v", err)
		}

		if diff := cmp.Diff([]string{"x := 1"}, f.editor.applied); diff != "" {
			t.Errorf("applied mismatch (-want +got):\n%s", diff)
		}
		if len(f.notifier.notices) != 0 {
			t.Errorf("unexpected notices: %v", f.notifier.notices)
		}
		if f.progress.title != "Fix bugs" {
			t.Errorf("progress title = %q", f.progress.title)
		}
		if diff := cmp.Diff([]string{PhaseRunning, PhaseApplying}, f.progress.phases); diff != "" {
			t.Errorf("phases mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]string{"go"}, f.loader.languages); diff != "" {
			t.Errorf("loader languages mismatch (-want +got):\n%s", diff)
		}

		reqs := f.client.Requests()
		if len(reqs) != 1 {
			t.Fatalf("got %d requests, want 1", len(reqs))
		}
		wantMessages := []providers.Message{
			{Role: providers.RoleUser, Content: "You are an expert.\nBe terse."},
			{Role: providers.RoleUser, Content: "The result should be valid go code."},
			{Role: providers.RoleUser, Content: "Fix the bugs."},
			{Role: providers.RoleUser, Content: "Keep it short."},
			{Role: providers.RoleUser, Content: "x = 1"},
		}
		if diff := cmp.Diff(wantMessages, reqs[0].Messages); diff != "" {
			t.Errorf("messages mismatch (-want +got):\n%s", diff)
		}
		if reqs[0].Model != "mock-1" {
			t.Errorf("model = %q, want mock-1", reqs[0].Model)
		}
		if reqs[0].RequestID == "" {
			t.Error("expected a request id")
		}
		if !strings.Contains(f.logs.String(), "request_id="+reqs[0].RequestID) {
			t.Error("expected request id in logs")
		}
	})

	t.Run("applies raw reply without a complete fence", func(t *testing.T) {
		f := newFixture()
		f.client.Fragments = []string{"x := ", "2"}
		if err := f.run(t, "Simplify"); err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if diff := cmp.Diff([]string{"x := 2"}, f.editor.applied); diff != "" {
			t.Errorf("applied mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("no prompts configured", func(t *testing.T) {
		f := newFixture()
		f.loader.layers = nil
		if err := f.run(t, ""); err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if diff := cmp.Diff([]string{NoticeNoPrompts}, f.notifier.notices); diff != "" {
			t.Errorf("notices mismatch (-want +got):\n%s", diff)
		}
		if len(f.picker.shown) != 0 {
			t.Error("picker should not be shown")
		}
		if len(f.client.Requests()) != 0 {
			t.Error("no request should be sent")
		}
	})

	t.Run("picker receives titles in order", func(t *testing.T) {
		f := newFixture()
		f.picker.choice = "Simplify"
		if err := f.run(t, ""); err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if diff := cmp.Diff([][]string{{"Fix bugs", "Simplify"}}, f.picker.shown); diff != "" {
			t.Errorf("picker titles mismatch (-want +got):\n%s", diff)
		}
		if len(f.editor.applied) != 1 {
			t.Errorf("expected one edit, got %d", len(f.editor.applied))
		}
	})

	t.Run("cancelled picker ends silently", func(t *testing.T) {
		f := newFixture()
		if err := f.run(t, ""); err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if len(f.notifier.notices) != 0 || len(f.editor.applied) != 0 || len(f.progress.phases) != 0 {
			t.Errorf("expected no side effects, got notices=%v applied=%v phases=%v",
				f.notifier.notices, f.editor.applied, f.progress.phases)
		}
	})

	t.Run("picker failure is returned", func(t *testing.T) {
		f := newFixture()
		f.picker.err = errors.New("no terminal")
		if err := f.run(t, ""); !errors.Is(err, f.picker.err) {
			t.Errorf("Run() error = %v, want %v", err, f.picker.err)
		}
	})

	t.Run("unknown title", func(t *testing.T) {
		f := newFixture()
		if err := f.run(t, "Translate"); err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if diff := cmp.Diff([]string{"Prompt 'Translate' not found."}, f.notifier.notices); diff != "" {
			t.Errorf("notices mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("model not found", func(t *testing.T) {
		f := newFixture()
		f.loader.layers = append(f.loader.layers, prompts.Layer{
			Scope:    prompts.ScopeWorkspace,
			Settings: prompts.Settings{Model: &prompts.ModelSelector{Vendor: "copilot", Family: "gpt-4o"}},
		})
		if err := f.run(t, "Fix bugs"); err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		want := []string{"Model not found (vendor: copilot, family: gpt-4o)."}
		if diff := cmp.Diff(want, f.notifier.notices); diff != "" {
			t.Errorf("notices mismatch (-want +got):\n%s", diff)
		}
		if len(f.progress.phases) != 0 {
			t.Error("progress should not start")
		}
	})

	t.Run("model error is logged, not shown", func(t *testing.T) {
		f := newFixture()
		f.client.RequestErr = &providers.ModelError{
			Message: "quota exceeded",
			Code:    "insufficient_quota",
			Cause:   errors.New("429"),
		}
		if err := f.run(t, "Fix bugs"); err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if len(f.notifier.notices) != 0 {
			t.Errorf("unexpected notices: %v", f.notifier.notices)
		}
		if len(f.editor.applied) != 0 {
			t.Error("editor should not be called")
		}
		if diff := cmp.Diff([]string{PhaseRunning}, f.progress.phases); diff != "" {
			t.Errorf("phases mismatch (-want +got):\n%s", diff)
		}
		logs := f.logs.String()
		for _, want := range []string{"quota exceeded", "insufficient_quota", "cause=429"} {
			if !strings.Contains(logs, want) {
				t.Errorf("logs missing %q:\n%s", want, logs)
			}
		}
	})

	t.Run("unexpected request error propagates", func(t *testing.T) {
		f := newFixture()
		f.client.RequestErr = errors.New("connection refused")
		err := f.run(t, "Fix bugs")
		if !errors.Is(err, f.client.RequestErr) {
			t.Errorf("Run() error = %v, want %v", err, f.client.RequestErr)
		}
		if len(f.notifier.notices) != 0 {
			t.Errorf("unexpected notices: %v", f.notifier.notices)
		}
	})

	t.Run("stream failure becomes a notice", func(t *testing.T) {
		f := newFixture()
		f.client.StreamErr = errors.New("stream reset")
		if err := f.run(t, "Fix bugs"); err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if diff := cmp.Diff([]string{"Error: stream reset"}, f.notifier.notices); diff != "" {
			t.Errorf("notices mismatch (-want +got):\n%s", diff)
		}
		if len(f.editor.applied) != 0 {
			t.Error("editor should not be called")
		}
	})

	t.Run("editor failure becomes a notice", func(t *testing.T) {
		f := newFixture()
		f.editor.err = errors.New("read-only file")
		if err := f.run(t, "Fix bugs"); err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if diff := cmp.Diff([]string{"Error: read-only file"}, f.notifier.notices); diff != "" {
			t.Errorf("notices mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("layer load failure is returned", func(t *testing.T) {
		f := newFixture()
		f.loader.err = errors.New("bad yaml")
		if err := f.run(t, "Fix bugs"); !errors.Is(err, f.loader.err) {
			t.Errorf("Run() error = %v, want %v", err, f.loader.err)
		}
	})

	t.Run("default scope wins title collisions", func(t *testing.T) {
		f := newFixture()
		f.loader.layers = append(f.loader.layers, prompts.Layer{
			Scope: prompts.ScopeWorkspaceFolder,
			Settings: prompts.Settings{Commands: []prompts.PromptCommand{
				{Title: "Fix bugs", Prompt: []string{"folder version"}},
			}},
		})
		if err := f.run(t, "Fix bugs"); err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		msgs := f.client.Requests()[0].Messages
		if msgs[2].Content != "Fix the bugs." {
			t.Errorf("prompt = %q, want default scope's", msgs[2].Content)
		}
	})
}

func TestBuildMessages(t *testing.T) {
	cmd := prompts.PromptCommand{Title: "t", Prompt: []string{"a", "b"}}

	t.Run("no system prompt sends an empty first turn", func(t *testing.T) {
		got := BuildMessages(nil, "python", cmd, "sel")
		want := []providers.Message{
			{Role: providers.RoleUser, Content: ""},
			{Role: providers.RoleUser, Content: "The result should be valid python code."},
			{Role: providers.RoleUser, Content: "a"},
			{Role: providers.RoleUser, Content: "b"},
			{Role: providers.RoleUser, Content: "sel"},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("messages mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("empty prompt list", func(t *testing.T) {
		got := BuildMessages([]string{"s"}, "go", prompts.PromptCommand{Title: "t"}, "")
		if len(got) != 3 {
			t.Errorf("got %d messages, want 3", len(got))
		}
	})
}
