package submit

import (
	"context"
	"errors"

	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// Multi fans a submission out to every submitter in order. All submitters
// run even when one fails; the errors are joined.
type Multi []wizard.Submitter

// Submit implements wizard.Submitter.
func (m Multi) Submit(ctx context.Context, record wizard.FormRecord) error {
	var errs []error
	for _, sub := range m {
		if sub == nil {
			continue
		}
		if err := sub.Submit(ctx, record.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
