package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-formwizard/pkg/testsupport"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

type stubDriver struct {
	inputs       []string
	confirm      []bool
	selectIdx    []int
	inputPos     int
	confirmPos   int
	selectPos    int
	prompts      []InputConfig
	confirms     []ConfirmConfig
	infoMessages []string
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	s.prompts = append(s.prompts, cfg)
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	s.confirms = append(s.confirms, cfg)
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, _ SelectConfig) (int, error) {
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func (s *stubDriver) exhausted(t *testing.T) {
	t.Helper()
	if s.inputPos != len(s.inputs) || s.confirmPos != len(s.confirm) || s.selectPos != len(s.selectIdx) {
		t.Fatalf("script not fully consumed: inputs %d/%d confirms %d/%d selects %d/%d",
			s.inputPos, len(s.inputs), s.confirmPos, len(s.confirm), s.selectPos, len(s.selectIdx))
	}
}

func TestSession_AcmeScenario(t *testing.T) {
	driver := &stubDriver{
		inputs: []string{
			"Acme", "a@acme.com", "acme.com",
			"Widget", "1.0", "2024-01-01",
			"x86", "Linux",
		},
		confirm:   []bool{false},
		selectIdx: []int{reviewSubmit},
	}
	recorder := &testsupport.RecordingSubmitter{}
	w := wizard.New(wizard.WithSubmitter(recorder))

	if err := NewSession(WithPromptDriver(driver)).Run(context.Background(), w); err != nil {
		t.Fatalf("run: %v", err)
	}
	driver.exhausted(t)
	testsupport.AssertRecord(t, testsupport.AcmeRecord(), recorder.Last(t))

	labels := make([]string, 0, len(driver.prompts))
	for _, p := range driver.prompts {
		labels = append(labels, p.Message)
	}
	want := "Company Name,Email,Website,Product Name,Version,Availability Date,Hardware System,Operating System"
	if got := strings.Join(labels, ","); got != want {
		t.Fatalf("prompt order: want %s, got %s", want, got)
	}
	if driver.confirms[0].Message != "Add Another Product?" {
		t.Fatalf("unexpected confirm message %q", driver.confirms[0].Message)
	}

	var summary string
	for _, msg := range driver.infoMessages {
		if strings.Contains(msg, "Review and Submit") && strings.Contains(msg, "Product 1 Name: Widget") {
			summary = msg
		}
	}
	if summary == "" {
		t.Fatalf("review summary not shown: %q", driver.infoMessages)
	}
}

func TestSession_AddThenRemoveProduct(t *testing.T) {
	driver := &stubDriver{
		inputs: []string{
			"Acme", "a@acme.com", "acme.com",
			"Widget", "1.0", "2024-01-01",
			"Junk", "0", "",
			"Widget", "1.0", "2024-01-01",
			"x86", "Linux",
		},
		// add another, remove product 2, keep single product without adding
		confirm:   []bool{true, true, false},
		selectIdx: []int{reviewQuit},
	}
	w := wizard.New()

	err := NewSession(WithPromptDriver(driver)).Run(context.Background(), w)
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
	driver.exhausted(t)
	testsupport.AssertRecord(t, testsupport.AcmeRecord(), w.Snapshot())
	if got := driver.confirms[1].Message; got != "Remove Product (Product 2)?" {
		t.Fatalf("unexpected remove prompt %q", got)
	}
}

func TestSession_EditFromReview(t *testing.T) {
	driver := &stubDriver{
		inputs: []string{
			"Acme Corp", "ops@acme.com", "acme.com",
		},
		// review: edit, then jump to Company Info; the script runs out on
		// the product pane that follows.
		selectIdx: []int{reviewEdit, 0},
	}
	w := wizard.New(wizard.WithRecord(testsupport.AcmeRecord()))
	if err := w.SelectStep(wizard.ReviewStep()); err != nil {
		t.Fatalf("select: %v", err)
	}

	err := NewSession(WithPromptDriver(driver)).Run(context.Background(), w)
	if err == nil || !strings.Contains(err.Error(), "no input scripted") {
		t.Fatalf("expected script exhaustion on product pane, got %v", err)
	}
	got := w.Snapshot()
	if got.CompanyName != "Acme Corp" || got.Email != "ops@acme.com" {
		t.Fatalf("edits not applied: %+v", got)
	}
	if active := w.ActiveStep(); active != wizard.ProductStep(0) {
		t.Fatalf("expected Product 1 after company pane, got %s", active)
	}
	if driver.prompts[0].Default != "Acme" {
		t.Fatalf("prompt should default to the current value, got %q", driver.prompts[0].Default)
	}
}

func TestSession_SubmitErrorReturnsToReview(t *testing.T) {
	driver := &stubDriver{selectIdx: []int{reviewSubmit, reviewSubmit}}
	recorder := &testsupport.RecordingSubmitter{Err: errors.New("endpoint down")}
	w := wizard.New(wizard.WithRecord(testsupport.AcmeRecord()), wizard.WithSubmitter(recorder))
	if err := w.SelectStep(wizard.ReviewStep()); err != nil {
		t.Fatalf("select: %v", err)
	}

	session := NewSession(WithPromptDriver(driver), WithTheme(Theme{ErrorPrefix: "error: "}))
	err := session.Run(context.Background(), w)
	if err == nil || !strings.Contains(err.Error(), "no select scripted") {
		t.Fatalf("expected the session to keep offering review, got %v", err)
	}
	if len(recorder.Records()) != 2 {
		t.Fatalf("expected two submit attempts, got %d", len(recorder.Records()))
	}
	found := false
	for _, msg := range driver.infoMessages {
		if strings.HasPrefix(msg, "error: ") && strings.Contains(msg, "endpoint down") {
			found = true
		}
	}
	if !found {
		t.Fatalf("submit error not shown: %q", driver.infoMessages)
	}
}

func TestSession_RequiresWizard(t *testing.T) {
	if err := NewSession(WithPromptDriver(&stubDriver{})).Run(context.Background(), nil); !errors.Is(err, ErrNoWizard) {
		t.Fatalf("expected ErrNoWizard, got %v", err)
	}
}

func TestSession_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := NewSession(WithPromptDriver(&stubDriver{})).Run(ctx, wizard.New())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
