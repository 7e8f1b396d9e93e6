// Package formwizard is the top-level entry point: it re-exports the wizard
// constructor and the render pipeline so embedding applications can start
// from a single import.
package formwizard

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formwizard/pkg/orchestrator"
	"github.com/goliatone/go-formwizard/pkg/render"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// Wizard is the form state container.
type Wizard = wizard.Wizard

// FormRecord is the aggregate record handed to the submitter.
type FormRecord = wizard.FormRecord

// ProductEntry is one entry of the product list.
type ProductEntry = wizard.ProductEntry

// Submitter receives the record on submit.
type Submitter = wizard.Submitter

// RenderOptions describes per-request data renderers can use.
type RenderOptions = render.RenderOptions

// New returns a wizard positioned on Company Info with one empty product.
func New(options ...wizard.Option) *Wizard {
	return wizard.New(options...)
}

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// RenderHTML renders the wizard's current state with the vanilla renderer.
func RenderHTML(ctx context.Context, w *Wizard, opts RenderOptions, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).Generate(ctx, orchestrator.Request{
		Wizard:        w,
		RenderOptions: opts,
	})
}

// WithThemeSelector passes a go-theme selector through to the default HTML
// renderer.
func WithThemeSelector(selector theme.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}
