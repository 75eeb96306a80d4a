// Package document loads a source file, tracks the selected line range, and
// splices replacement text back into it.
package document

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ErrInvalidRange is returned when a line range does not fit the document.
var ErrInvalidRange = errors.New("invalid line range")

// Range is an inclusive, 1-based line range. The zero Range selects the whole document.
type Range struct {
	Start int
	End   int
}

// IsZero reports whether r selects the whole document.
func (r Range) IsZero() bool {
	return r.Start == 0 && r.End == 0
}

func (r Range) String() string {
	if r.IsZero() {
		return "all"
	}
	return fmt.Sprintf("%d:%d", r.Start, r.End)
}

// ParseRange parses "a:b", "a" (a single line) or "" (whole document).
func ParseRange(s string) (Range, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Range{}, nil
	}
	startStr, endStr, found := strings.Cut(s, ":")
	if !found {
		endStr = startStr
	}
	start, err := strconv.Atoi(startStr)
	if err != nil {
		return Range{}, fmt.Errorf("%w: %q", ErrInvalidRange, s)
	}
	end, err := strconv.Atoi(endStr)
	if err != nil {
		return Range{}, fmt.Errorf("%w: %q", ErrInvalidRange, s)
	}
	if start < 1 || end < start {
		return Range{}, fmt.Errorf("%w: %q", ErrInvalidRange, s)
	}
	return Range{Start: start, End: end}, nil
}

// Document is a loaded source file with a selection.
type Document struct {
	path            string
	languageID      string
	lines           []string
	trailingNewline bool
	selection       Range
}

// Load reads path and selects rng. An empty languageID is detected from the file name.
func Load(path string, rng Range, languageID string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return New(path, string(data), rng, languageID)
}

// New creates a document from content.
func New(path, content string, rng Range, languageID string) (*Document, error) {
	if languageID == "" {
		languageID = LanguageFor(path)
	}

	d := &Document{
		path:       path,
		languageID: languageID,
	}
	if content != "" {
		d.trailingNewline = strings.HasSuffix(content, "\n")
		d.lines = strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	}

	if rng.IsZero() {
		rng = Range{Start: 1, End: len(d.lines)}
		if len(d.lines) == 0 {
			rng = Range{Start: 1, End: 0}
		}
	} else if rng.Start < 1 || rng.End < rng.Start || rng.End > len(d.lines) {
		return nil, fmt.Errorf("%w: %s outside 1:%d", ErrInvalidRange, rng, len(d.lines))
	}
	d.selection = rng
	return d, nil
}

// Path returns the file path.
func (d *Document) Path() string {
	return d.path
}

// LanguageID returns the document language id.
func (d *Document) LanguageID() string {
	return d.languageID
}

// Selection returns the selected line range.
func (d *Document) Selection() Range {
	return d.selection
}

// SelectedText returns the text of the selected lines.
func (d *Document) SelectedText() string {
	return strings.Join(d.lines[d.selection.Start-1:d.selection.End], "\n")
}

// Replace returns the full document content with the selection replaced by text.
func (d *Document) Replace(text string) string {
	out := make([]string, 0, len(d.lines)+1)
	out = append(out, d.lines[:d.selection.Start-1]...)
	out = append(out, text)
	out = append(out, d.lines[d.selection.End:]...)

	content := strings.Join(out, "\n")
	if d.trailingNewline {
		content += "\n"
	}
	return content
}
