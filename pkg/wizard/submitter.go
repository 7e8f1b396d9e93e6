package wizard

import "context"

// Submitter receives the finished record. The wizard performs no I/O itself;
// whatever happens to the record (logging, POSTing, writing) belongs to the
// integrating application.
type Submitter interface {
	Submit(ctx context.Context, record FormRecord) error
}

// SubmitterFunc adapts a function to the Submitter interface.
type SubmitterFunc func(ctx context.Context, record FormRecord) error

// Submit calls fn.
func (fn SubmitterFunc) Submit(ctx context.Context, record FormRecord) error {
	return fn(ctx, record)
}
