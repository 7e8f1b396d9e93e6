package orchestrator

import (
	"context"

	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// Transformer mutates a view before it is rendered, e.g. to mask values or
// prefill display-only defaults. The wizard state is never touched.
type Transformer interface {
	Transform(ctx context.Context, view *wizard.View) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, view *wizard.View) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, view *wizard.View) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, view)
}
