package tui

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/goliatone/go-formwizard/pkg/layout"
	"github.com/goliatone/go-formwizard/pkg/render"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// Review menu entries, in the order they are offered.
const (
	reviewSubmit = iota
	reviewEdit
	reviewQuit
)

// Session walks a wizard step by step through prompts. Every answer is
// applied through the wizard's operations, so the session holds no form
// state of its own.
type Session struct {
	driver PromptDriver
	layout *layout.Layout
	theme  Theme
	logger *log.Logger
	text   TextRenderer
}

// NewSession constructs a session. Without WithPromptDriver it prompts on the
// terminal through survey.
func NewSession(options ...Option) *Session {
	s := &Session{
		layout: layout.Default(),
		logger: log.New(io.Discard),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver(nil)
	}
	return s
}

// Run prompts until the wizard is submitted. It returns ErrAborted when the
// user quits, or the prompt/context error that stopped it. Submission errors
// are shown and the review step is offered again.
func (s *Session) Run(ctx context.Context, w *wizard.Wizard) error {
	if w == nil {
		return ErrNoWizard
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		step := w.ActiveStep()
		s.logger.Debug("prompt step", "step", step.Key())

		var (
			done bool
			err  error
		)
		switch step.Kind {
		case wizard.KindProduct:
			err = s.productStep(ctx, w, step.Index)
		case wizard.KindReview:
			done, err = s.reviewStep(ctx, w)
		default:
			err = s.recordStep(ctx, w, step)
		}
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

func (s *Session) recordStep(ctx context.Context, w *wizard.Wizard, step wizard.StepID) error {
	if err := s.info(ctx, s.layout.StepTitle(step)); err != nil {
		return err
	}
	record := w.Snapshot()
	for _, field := range s.layout.FieldsFor(step) {
		current, _ := record.Value(field)
		value, err := s.ask(ctx, field, current)
		if err != nil {
			return err
		}
		if err := w.UpdateField(field, value); err != nil {
			return err
		}
	}

	next := wizard.ReviewStep()
	if step.Kind == wizard.KindCompanyInfo {
		next = wizard.ProductStep(0)
	}
	return w.SelectStep(next)
}

func (s *Session) productStep(ctx context.Context, w *wizard.Wizard, index int) error {
	step := wizard.ProductStep(index)
	if err := s.info(ctx, s.layout.StepTitle(step)); err != nil {
		return err
	}
	view := w.State()
	product, _ := view.ActiveProduct()
	for _, field := range s.layout.FieldsFor(step) {
		current, _ := product.Value(field)
		value, err := s.ask(ctx, field, current)
		if err != nil {
			return err
		}
		if err := w.UpdateProductField(index, field, value); err != nil {
			return err
		}
	}

	if w.ProductCount() > 1 {
		remove, err := s.driver.Confirm(ctx, ConfirmConfig{
			Message: fmt.Sprintf("%s (%s)?", s.layout.Actions.Remove, s.layout.StepTitle(step)),
		})
		if err != nil {
			return err
		}
		if remove {
			return w.RemoveProduct(index)
		}
	}

	more, err := s.driver.Confirm(ctx, ConfirmConfig{
		Message: s.layout.Actions.AddAnotherProduct + "?",
		Default: w.PendingAddProduct(),
	})
	if err != nil {
		return err
	}
	w.SetPendingAddProduct(more)
	w.AdvanceFromProduct()
	return nil
}

func (s *Session) reviewStep(ctx context.Context, w *wizard.Wizard) (bool, error) {
	summary, err := s.text.Render(ctx, w.State(), render.RenderOptions{Layout: s.layout})
	if err != nil {
		return false, err
	}
	if err := s.driver.Info(ctx, string(summary)); err != nil {
		return false, err
	}

	choice, err := s.driver.Select(ctx, SelectConfig{
		Message: "What next?",
		Options: []string{s.layout.Actions.Submit, "Edit a step", "Quit"},
	})
	if err != nil {
		return false, err
	}

	switch choice {
	case reviewSubmit:
		err := w.Submit(ctx)
		if err == nil {
			return true, s.info(ctx, "Form submitted.")
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return false, err
		}
		s.logger.Error("submit failed", "err", err)
		return false, s.driver.Info(ctx, s.theme.ErrorPrefix+err.Error())
	case reviewEdit:
		return false, s.chooseStep(ctx, w)
	case reviewQuit:
		return false, ErrAborted
	}
	return false, fmt.Errorf("tui: unexpected review choice %d", choice)
}

func (s *Session) chooseStep(ctx context.Context, w *wizard.Wizard) error {
	steps := w.Steps()
	titles := make([]string, len(steps))
	for i, step := range steps {
		titles[i] = s.layout.StepTitle(step)
	}
	idx, err := s.driver.Select(ctx, SelectConfig{
		Message:      "Go to step",
		Options:      titles,
		DefaultIndex: len(titles) - 1,
		PageSize:     10,
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(steps) {
		return fmt.Errorf("tui: unexpected step choice %d", idx)
	}
	return w.SelectStep(steps[idx])
}

func (s *Session) ask(ctx context.Context, field wizard.Field, current string) (string, error) {
	cfg := s.layout.Field(field)
	return s.driver.Input(ctx, InputConfig{
		Message: cfg.Label,
		Default: current,
		Help:    cfg.Placeholder,
	})
}

func (s *Session) info(ctx context.Context, msg string) error {
	return s.driver.Info(ctx, s.theme.InfoPrefix+msg)
}
