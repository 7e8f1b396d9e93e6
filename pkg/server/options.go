package server

import (
	"io/fs"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/goliatone/go-formwizard/pkg/layout"
	"github.com/goliatone/go-formwizard/pkg/render"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// GuardFunc may reject a request before it reaches a handler. Returning an
// HTTPError selects the response status; other errors produce 403.
type GuardFunc func(r *http.Request) error

// Options configure the server.
type Options struct {
	// BasePath prefixes the session routes. Defaults to /wizard.
	BasePath string
	// AssetsPath is where Assets are served. Defaults to /assets.
	AssetsPath string
	// Renderer produces the HTML pages. Defaults to the vanilla renderer.
	Renderer render.Renderer
	// Assets are served under AssetsPath. Defaults to the vanilla assets.
	Assets fs.FS
	Layout *layout.Layout

	Theme        string
	ThemeVariant string

	Submitter wizard.Submitter
	Logger    *log.Logger
	Guard     GuardFunc
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		BasePath:   "/wizard",
		AssetsPath: "/assets",
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	opts.BasePath = cleanPath(opts.BasePath, "/wizard")
	opts.AssetsPath = cleanPath(opts.AssetsPath, "/assets")
	if opts.Layout == nil {
		opts.Layout = layout.Default()
	}
	return opts
}

func WithBasePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.BasePath = path
	}
}

func WithAssetsPath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.AssetsPath = path
	}
}

func WithRenderer(renderer render.Renderer) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Renderer = renderer
	}
}

func WithAssets(assets fs.FS) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Assets = assets
	}
}

func WithLayout(l *layout.Layout) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Layout = l
	}
}

func WithTheme(name, variant string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Theme = name
		o.ThemeVariant = variant
	}
}

func WithSubmitter(submitter wizard.Submitter) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Submitter = submitter
	}
}

func WithLogger(logger *log.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

// cleanPath normalises a mount path to a leading slash and no trailing
// slash.
func cleanPath(path, fallback string) string {
	path = strings.TrimSpace(path)
	path = strings.TrimRight(path, "/")
	if path == "" {
		return fallback
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}
