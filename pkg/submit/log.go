package submit

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// LogSubmitter writes each submission as a structured log entry.
type LogSubmitter struct {
	logger *log.Logger
	format Format
	stamp  stamper
}

// LogOption configures a LogSubmitter.
type LogOption func(*LogSubmitter)

// WithLogFormat selects the payload encoding embedded in the log entry.
func WithLogFormat(format Format) LogOption {
	return func(s *LogSubmitter) {
		if format != "" {
			s.format = format
		}
	}
}

// WithLogIDGenerator overrides the submission id source.
func WithLogIDGenerator(fn func() uuid.UUID) LogOption {
	return func(s *LogSubmitter) {
		if fn != nil {
			s.stamp.newID = fn
		}
	}
}

// NewLogSubmitter returns a submitter logging through logger. A nil logger
// discards output.
func NewLogSubmitter(logger *log.Logger, options ...LogOption) *LogSubmitter {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &LogSubmitter{logger: logger, format: FormatJSON, stamp: defaultStamper()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// Submit implements wizard.Submitter.
func (s *LogSubmitter) Submit(ctx context.Context, record wizard.FormRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	env := s.stamp.wrap(record)
	payload, err := Encode(s.format, env.Record)
	if err != nil {
		return err
	}
	s.logger.Info("form submitted",
		"id", env.ID.String(),
		"company", record.CompanyName,
		"products", len(record.Products),
		"payload", string(payload),
	)
	return nil
}
