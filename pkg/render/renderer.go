package render

import (
	"context"

	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// Renderer turns a wizard.View into bytes (HTML, plain text). Renderers must
// not mutate the view; they only read it.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, view wizard.View, options RenderOptions) ([]byte, error)
}

// ConfirmationRenderer is implemented by renderers that can show the page
// displayed after a successful submission.
type ConfirmationRenderer interface {
	RenderConfirmation(ctx context.Context, record wizard.FormRecord, options RenderOptions) ([]byte, error)
}
