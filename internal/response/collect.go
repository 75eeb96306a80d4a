package response

import (
	"context"
	"strings"
)

// Stream is a finite sequence of text fragments from a model.
// Text is closed when the producer is done; Err carries at most one error
// and is closed after Text.
type Stream struct {
	Text <-chan string
	Err  <-chan error
}

// Collect drains s to completion and returns the accumulated text.
// Nothing is normalized until the stream has ended.
func Collect(ctx context.Context, s Stream) (string, error) {
	var b strings.Builder
	text := s.Text
	for text != nil {
		select {
		case <-ctx.Done():
			return b.String(), ctx.Err()
		case fragment, ok := <-text:
			if !ok {
				text = nil
				continue
			}
			b.WriteString(fragment)
		}
	}

	if s.Err == nil {
		return b.String(), nil
	}
	select {
	case <-ctx.Done():
		return b.String(), ctx.Err()
	case err := <-s.Err:
		return b.String(), err
	}
}

// FromFragments returns a Stream that yields fragments and then ends with err.
// The producing goroutine exits once the fragments are consumed or ctx is done.
func FromFragments(ctx context.Context, fragments []string, err error) Stream {
	text := make(chan string)
	errs := make(chan error, 1)
	go func() {
		defer close(errs)
		defer close(text)
		for _, f := range fragments {
			select {
			case text <- f:
			case <-ctx.Done():
				errs <- ctx.Err()
				return
			}
		}
		if err != nil {
			errs <- err
		}
	}()
	return Stream{Text: text, Err: errs}
}
