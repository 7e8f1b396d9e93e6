package submit

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// WriterSubmitter encodes each submission onto an io.Writer followed by a
// newline.
type WriterSubmitter struct {
	mu     sync.Mutex
	out    io.Writer
	format Format
}

// NewWriterSubmitter returns a submitter writing to out in format.
func NewWriterSubmitter(out io.Writer, format Format) *WriterSubmitter {
	if format == "" {
		format = FormatJSON
	}
	return &WriterSubmitter{out: out, format: format}
}

// Submit implements wizard.Submitter.
func (s *WriterSubmitter) Submit(ctx context.Context, record wizard.FormRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.out == nil {
		return fmt.Errorf("submit: writer is nil")
	}
	payload, err := Encode(s.format, record)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.out.Write(append(payload, '\n')); err != nil {
		return fmt.Errorf("submit: write payload: %w", err)
	}
	return nil
}
