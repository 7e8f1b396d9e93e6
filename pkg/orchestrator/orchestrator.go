package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formwizard/pkg/layout"
	"github.com/goliatone/go-formwizard/pkg/render"
	"github.com/goliatone/go-formwizard/pkg/renderers/tui"
	"github.com/goliatone/go-formwizard/pkg/renderers/vanilla"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

const defaultRendererName = vanilla.Name

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithLayout sets the layout used when a request does not carry one.
func WithLayout(l *layout.Layout) Option {
	return func(o *Orchestrator) {
		o.layout = l
	}
}

// WithThemeSelector passes a go-theme selector to the default vanilla
// renderer. Ignored when WithRegistry is used.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themes = selector
	}
}

// WithVanillaOptions forwards options to the default vanilla renderer.
// Ignored when WithRegistry is used.
func WithVanillaOptions(options ...vanilla.Option) Option {
	return func(o *Orchestrator) {
		o.vanillaOptions = append(o.vanillaOptions, options...)
	}
}

// WithTransformers registers transformers applied, in order, to every view
// before rendering.
func WithTransformers(transformers ...Transformer) Option {
	return func(o *Orchestrator) {
		o.transformers = append(o.transformers, transformers...)
	}
}

// Orchestrator resolves renderers and produces output for wizard views.
type Orchestrator struct {
	registry        *render.Registry
	defaultRenderer string
	layout          *layout.Layout
	themes          theme.ThemeSelector
	vanillaOptions  []vanilla.Option
	transformers    []Transformer
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options. Without a
// registry the vanilla HTML and plain-text renderers are registered.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes what to render.
type Request struct {
	// Wizard supplies the state. Ignored when View is set.
	Wizard *wizard.Wizard
	// View renders a pre-captured state.
	View *wizard.View
	// Renderer names the renderer to use, or a media type such as
	// "text/plain". If empty, the orchestrator falls back to the configured
	// default renderer.
	Renderer string
	// RenderOptions carries per-request data such as hidden fields and
	// notices. A nil Layout is filled from the orchestrator.
	RenderOptions render.RenderOptions
}

// Generate renders the requested view and returns the output bytes.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}

	var view wizard.View
	switch {
	case req.View != nil:
		view = *req.View
		view.Record = view.Record.Clone()
	case req.Wizard != nil:
		view = req.Wizard.State()
	default:
		return nil, errors.New("orchestrator: wizard or view is required")
	}

	for _, t := range o.transformers {
		if t == nil {
			continue
		}
		if err := t.Transform(ctx, &view); err != nil {
			return nil, fmt.Errorf("orchestrator: transform view: %w", err)
		}
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	opts := req.RenderOptions
	if opts.Layout == nil {
		opts.Layout = o.layout
	}

	output, err := renderer.Render(ctx, view, opts)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// Renderer returns the renderer Generate would use for name.
func (o *Orchestrator) Renderer(name string) (render.Renderer, error) {
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	return o.rendererFor(name)
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if strings.Contains(target, "/") {
		if renderer, ok := o.registry.ForContentType(target); ok {
			return renderer, nil
		}
		return nil, fmt.Errorf("orchestrator: no renderer for %q: %w", target, render.ErrRendererNotFound)
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.layout == nil {
		o.layout = layout.Default()
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
	if o.registry != nil {
		return
	}

	vanillaOpts := append([]vanilla.Option(nil), o.vanillaOptions...)
	if o.themes != nil {
		vanillaOpts = append(vanillaOpts, vanilla.WithThemeSelector(o.themes))
	}
	html, err := vanilla.New(vanillaOpts...)
	if err != nil {
		o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		return
	}
	registry, err := render.NewRegistry(html, tui.TextRenderer{})
	if err != nil {
		o.initialiseErr = fmt.Errorf("orchestrator: default registry: %w", err)
		return
	}
	o.registry = registry
}
