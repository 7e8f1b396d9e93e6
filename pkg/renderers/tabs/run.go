package tabs

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// RunOption configures the bubbletea program started by Run.
type RunOption func(*runConfig)

type runConfig struct {
	in        io.Reader
	out       io.Writer
	altScreen bool
	model     []Option
}

// WithIO overrides the program's input and output streams.
func WithIO(in io.Reader, out io.Writer) RunOption {
	return func(cfg *runConfig) {
		cfg.in, cfg.out = in, out
	}
}

// WithAltScreen runs the program in the terminal's alternate screen.
func WithAltScreen() RunOption {
	return func(cfg *runConfig) {
		cfg.altScreen = true
	}
}

// WithModelOptions forwards options to New.
func WithModelOptions(options ...Option) RunOption {
	return func(cfg *runConfig) {
		cfg.model = append(cfg.model, options...)
	}
}

// Run starts the tabbed UI and blocks until the wizard is submitted or the
// user quits. Quitting returns ErrAborted.
func Run(ctx context.Context, w *wizard.Wizard, options ...RunOption) error {
	cfg := &runConfig{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.in != nil {
		programOpts = append(programOpts, tea.WithInput(cfg.in))
	}
	if cfg.out != nil {
		programOpts = append(programOpts, tea.WithOutput(cfg.out))
	}
	if cfg.altScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}

	model := New(w, append([]Option{WithContext(ctx)}, cfg.model...)...)
	final, err := tea.NewProgram(model, programOpts...).Run()
	if err != nil {
		return fmt.Errorf("tabs: run program: %w", err)
	}
	if m, ok := final.(Model); ok && m.Submitted() {
		return nil
	}
	return ErrAborted
}
