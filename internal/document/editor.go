package document

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/moby/sys/atomicwriter"
)

// FileEditor replaces the document selection in place on disk.
type FileEditor struct {
	Doc *Document
}

// Apply writes the document back with its selection replaced by text.
func (e *FileEditor) Apply(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	perm := os.FileMode(0o644)
	if info, err := os.Stat(e.Doc.Path()); err == nil {
		perm = info.Mode().Perm()
	}
	if err := atomicwriter.WriteFile(e.Doc.Path(), []byte(e.Doc.Replace(text)), perm); err != nil {
		return fmt.Errorf("failed to write %s: %w", e.Doc.Path(), err)
	}
	return nil
}

// WriterEditor prints the replacement text instead of editing the file.
type WriterEditor struct {
	W io.Writer
}

// Apply writes text followed by a newline.
func (e *WriterEditor) Apply(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(e.W, text); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	return nil
}
