package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formwizard/pkg/render"
	rendertemplate "github.com/goliatone/go-formwizard/pkg/render/template"
	"github.com/goliatone/go-formwizard/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// Name is the registry name of the HTML renderer.
const Name = "vanilla"

const (
	wizardTemplate       = "templates/wizard.tmpl"
	confirmationTemplate = "templates/confirmation.tmpl"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	themes           theme.ThemeSelector
	assetBase        string
	stylesheets      []string
	inlineStyles     bool
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithThemeSelector resolves RenderOptions.Theme/ThemeVariant into CSS
// variables and an optional theme stylesheet.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(cfg *config) {
		cfg.themes = selector
	}
}

// WithAssetBase sets the URL prefix the bundled stylesheet is served from.
// An empty base omits the bundled stylesheet link.
func WithAssetBase(base string) Option {
	return func(cfg *config) {
		cfg.assetBase = strings.TrimRight(strings.TrimSpace(base), "/")
	}
}

// WithStylesheet appends an extra stylesheet link.
func WithStylesheet(href string) Option {
	return func(cfg *config) {
		if href = strings.TrimSpace(href); href != "" {
			cfg.stylesheets = append(cfg.stylesheets, href)
		}
	}
}

// WithDefaultStyles inlines the bundled stylesheet instead of linking it,
// for standalone HTML output.
func WithDefaultStyles() Option {
	return func(cfg *config) {
		cfg.inlineStyles = true
	}
}

// Renderer produces a complete HTML page for the active wizard step. It needs
// no JavaScript: tabs, Next, Remove and Submit are plain form posts.
type Renderer struct {
	templates    rendertemplate.TemplateRenderer
	themes       theme.ThemeSelector
	assetBase    string
	stylesheets  []string
	inlineStyles bool
}

var (
	_ render.Renderer             = (*Renderer)(nil)
	_ render.ConfirmationRenderer = (*Renderer)(nil)
)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS(), assetBase: "/assets"}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates:    renderer,
		themes:       cfg.themes,
		assetBase:    cfg.assetBase,
		stylesheets:  cfg.stylesheets,
		inlineStyles: cfg.inlineStyles,
	}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render implements render.Renderer.
func (r *Renderer) Render(ctx context.Context, view wizard.View, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := r.chrome(options)
	if err != nil {
		return nil, err
	}
	data["page"] = render.BuildPage(view, options)
	return r.execute(wizardTemplate, data)
}

// RenderConfirmation implements render.ConfirmationRenderer.
func (r *Renderer) RenderConfirmation(ctx context.Context, record wizard.FormRecord, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := r.chrome(options)
	if err != nil {
		return nil, err
	}
	title := "Form Submitted"
	if options.Layout != nil && options.Layout.Title != "" {
		title = options.Layout.Title + ": submitted"
	}
	data["title"] = title
	data["record"] = record
	data["review"] = wizard.ReviewLines(record)
	data["restart"] = "/"
	return r.execute(confirmationTemplate, data)
}

func (r *Renderer) chrome(options render.RenderOptions) (map[string]any, error) {
	var stylesheets []string
	inline := ""
	if r.inlineStyles {
		inline = defaultStylesheet()
	} else if r.assetBase != "" {
		stylesheets = append(stylesheets, r.assetBase+"/"+StylesheetName)
	}

	data := map[string]any{}
	if r.themes != nil {
		selection, err := r.themes.Select(options.Theme, options.ThemeVariant)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: select theme: %w", err)
		}
		cfg := ResolveTheme(selection)
		if cfg != nil {
			if cfg.Stylesheet != "" {
				stylesheets = append(stylesheets, cfg.Stylesheet)
			}
			data["theme"] = cfg
			data["css_vars"] = cfg.sortedVars()
		}
	}
	stylesheets = append(stylesheets, r.stylesheets...)
	data["stylesheets"] = stylesheets
	data["inline_css"] = inline
	return data, nil
}

func (r *Renderer) execute(name string, data map[string]any) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	result, err := r.templates.RenderTemplate(name, data)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}
