package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formwizard/internal/config"
	"github.com/goliatone/go-formwizard/internal/logging"
	"github.com/goliatone/go-formwizard/pkg/layout"
	"github.com/goliatone/go-formwizard/pkg/renderers/vanilla"
	"github.com/goliatone/go-formwizard/pkg/submit"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// app carries what every subcommand needs once config is loaded.
type app struct {
	cfg    config.Config
	logger *log.Logger
	out    io.Writer
}

func newApp(cfg config.Config, out, logOut io.Writer) (*app, error) {
	logger, err := logging.New(cfg.Log, logOut)
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, logger: logger, out: out}, nil
}

// submitter builds the configured collaborators. It returns nil when every
// target is "none".
func (a *app) submitter() (wizard.Submitter, error) {
	format, err := submit.ParseFormat(a.cfg.Submit.Format)
	if err != nil {
		return nil, err
	}

	var subs submit.Multi
	for _, target := range a.cfg.Submit.Targets() {
		switch target {
		case config.TargetLog:
			subs = append(subs, submit.NewLogSubmitter(a.logger, submit.WithLogFormat(format)))
		case config.TargetStdout:
			subs = append(subs, submit.NewWriterSubmitter(a.out, format))
		case config.TargetHTTP:
			options := []submit.HTTPOption{
				submit.WithHTTPFormat(format),
				submit.WithHTTPClient(&http.Client{Timeout: a.cfg.Submit.Timeout}),
			}
			for name, value := range a.cfg.Submit.Headers {
				options = append(options, submit.WithHeader(name, value))
			}
			s, err := submit.NewHTTPSubmitter(a.cfg.Submit.URL, options...)
			if err != nil {
				return nil, err
			}
			subs = append(subs, s)
		case config.TargetNone:
		default:
			return nil, fmt.Errorf("formwizard: unknown submit target %q", target)
		}
	}

	switch len(subs) {
	case 0:
		return nil, nil
	case 1:
		return subs[0], nil
	}
	return subs, nil
}

// newWizard returns a wizard wired to the configured submitter and logger.
func (a *app) newWizard() (*wizard.Wizard, error) {
	s, err := a.submitter()
	if err != nil {
		return nil, err
	}
	return wizard.New(wizard.WithSubmitter(s), wizard.WithLogger(a.logger)), nil
}

// layout loads the configured layout file or directory over the defaults.
func (a *app) layout() (*layout.Layout, error) {
	path := strings.TrimSpace(a.cfg.Layout.Path)
	if path == "" {
		return layout.Default(), nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("formwizard: layout: %w", err)
	}
	if info.IsDir() {
		return layout.LoadFS(os.DirFS(path))
	}
	return layout.LoadFile(path)
}

// themes registers the built-in manifest plus the configured one.
func (a *app) themes() (theme.ThemeSelector, error) {
	manifests := []*theme.Manifest{vanilla.DefaultManifest()}
	if path := strings.TrimSpace(a.cfg.Theme.Manifest); path != "" {
		m, err := vanilla.LoadManifest(path)
		if err != nil {
			return nil, err
		}
		manifests = append(manifests, m)
	}
	name := a.cfg.Theme.Name
	if name == "" {
		name = vanilla.DefaultThemeName
	}
	selector, err := vanilla.NewManifestSelector(name, a.cfg.Theme.Variant, manifests...)
	if err != nil {
		return nil, err
	}
	return selector, nil
}
