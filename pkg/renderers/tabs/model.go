package tabs

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/goliatone/go-formwizard/pkg/layout"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// ErrAborted is returned by Run when the user quits before submitting.
var ErrAborted = errors.New("tabs: aborted")

type controlKind int

const (
	controlInput controlKind = iota
	controlCheckbox
	controlRemove
	controlNext
	controlSubmit
)

type control struct {
	kind  controlKind
	field wizard.Field
	input int // index into Model.inputs for controlInput
}

// submitDoneMsg carries the outcome of the asynchronous submit command.
type submitDoneMsg struct{ err error }

// Model is the bubbletea model. All form state lives in the wizard; the
// model only tracks focus and the text inputs of the visible pane.
type Model struct {
	ctx    context.Context
	wiz    *wizard.Wizard
	layout *layout.Layout
	styles Styles
	keys   keyMap
	help   help.Model

	step     wizard.StepID
	inputs   []textinput.Model
	controls []control
	focus    int

	submitting bool
	submitted  bool
	aborted    bool
	status     string
	width      int
}

// Option configures a Model.
type Option func(*Model)

// WithLayout overrides labels and step contents.
func WithLayout(l *layout.Layout) Option {
	return func(m *Model) {
		if l != nil {
			m.layout = l
		}
	}
}

// WithStyles overrides the palette.
func WithStyles(styles Styles) Option {
	return func(m *Model) {
		m.styles = styles
	}
}

// WithContext sets the context passed to Submit.
func WithContext(ctx context.Context) Option {
	return func(m *Model) {
		if ctx != nil {
			m.ctx = ctx
		}
	}
}

// New builds a model bound to w.
func New(w *wizard.Wizard, options ...Option) Model {
	m := Model{
		ctx:    context.Background(),
		wiz:    w,
		layout: layout.Default(),
		styles: DefaultStyles(),
		keys:   defaultKeyMap(),
		help:   help.New(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&m)
	}
	m.sync()
	return m
}

// Submitted reports whether the wizard was submitted successfully.
func (m Model) Submitted() bool { return m.submitted }

// Aborted reports whether the user quit.
func (m Model) Aborted() bool { return m.aborted }

// Status returns the last status or error line.
func (m Model) Status() string { return m.status }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case submitDoneMsg:
		m.submitting = false
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		m.submitted = true
		m.status = "Form submitted."
		return m, tea.Quit

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m.updateFocusedInput(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.aborted = true
		return m, tea.Quit
	case m.submitting:
		return m, nil
	case key.Matches(msg, m.keys.NextTab):
		return m.moveTab(1)
	case key.Matches(msg, m.keys.PrevTab):
		return m.moveTab(-1)
	case key.Matches(msg, m.keys.Next):
		return m, m.setFocus(m.focus + 1)
	case key.Matches(msg, m.keys.Prev):
		return m, m.setFocus(m.focus - 1)
	}

	current, ok := m.focused()
	if !ok {
		return m, nil
	}
	if current.kind == controlInput {
		if key.Matches(msg, m.keys.Activate) {
			return m, m.setFocus(m.focus + 1)
		}
		return m.updateFocusedInput(msg)
	}
	if key.Matches(msg, m.keys.Activate) || key.Matches(msg, m.keys.Toggle) {
		return m.activate(current)
	}
	return m, nil
}

func (m Model) activate(c control) (tea.Model, tea.Cmd) {
	m.status = ""
	switch c.kind {
	case controlCheckbox:
		m.wiz.SetPendingAddProduct(!m.wiz.PendingAddProduct())
		return m, nil
	case controlRemove:
		if err := m.wiz.RemoveProduct(m.step.Index); err != nil {
			m.status = err.Error()
			return m, nil
		}
		return m, m.sync()
	case controlNext:
		switch m.step.Kind {
		case wizard.KindProduct:
			m.wiz.AdvanceFromProduct()
		case wizard.KindCompanyInfo:
			m.selectStep(wizard.ProductStep(0))
		case wizard.KindHardwareSystem:
			m.selectStep(wizard.ReviewStep())
		}
		return m, m.sync()
	case controlSubmit:
		m.submitting = true
		m.status = "Submitting..."
		ctx, w := m.ctx, m.wiz
		return m, func() tea.Msg {
			return submitDoneMsg{err: w.Submit(ctx)}
		}
	}
	return m, nil
}

func (m Model) moveTab(delta int) (tea.Model, tea.Cmd) {
	steps := m.wiz.Steps()
	current := 0
	for i, step := range steps {
		if step == m.step {
			current = i
			break
		}
	}
	next := (current + delta + len(steps)) % len(steps)
	m.selectStep(steps[next])
	return m, m.sync()
}

func (m *Model) selectStep(step wizard.StepID) {
	if err := m.wiz.SelectStep(step); err != nil {
		m.status = err.Error()
	}
}

// updateFocusedInput forwards msg to the focused text input and writes the
// new value through to the wizard when it changed.
func (m Model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	current, ok := m.focused()
	if !ok || current.kind != controlInput {
		return m, nil
	}
	in := m.inputs[current.input]
	before := in.Value()
	in, cmd := in.Update(msg)
	m.inputs[current.input] = in

	if value := in.Value(); value != before {
		var err error
		if m.step.IsProduct() {
			err = m.wiz.UpdateProductField(m.step.Index, current.field, value)
		} else {
			err = m.wiz.UpdateField(current.field, value)
		}
		if err != nil {
			m.status = err.Error()
		}
	}
	return m, cmd
}

func (m Model) focused() (control, bool) {
	if m.focus < 0 || m.focus >= len(m.controls) {
		return control{}, false
	}
	return m.controls[m.focus], true
}

func (m *Model) setFocus(idx int) tea.Cmd {
	if len(m.controls) == 0 {
		return nil
	}
	idx = (idx + len(m.controls)) % len(m.controls)
	m.focus = idx
	var cmd tea.Cmd
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	if c := m.controls[idx]; c.kind == controlInput {
		cmd = m.inputs[c.input].Focus()
	}
	return cmd
}

// sync rebuilds the pane controls from the wizard's active step.
func (m *Model) sync() tea.Cmd {
	view := m.wiz.State()
	m.step = view.Active
	m.inputs = nil
	m.controls = nil

	switch m.step.Kind {
	case wizard.KindReview:
		m.controls = append(m.controls, control{kind: controlSubmit})
	case wizard.KindProduct:
		product, _ := view.ActiveProduct()
		for _, field := range m.layout.FieldsFor(m.step) {
			value, _ := product.Value(field)
			m.addInput(field, value)
		}
		m.controls = append(m.controls, control{kind: controlCheckbox})
		if len(view.Record.Products) > 1 {
			m.controls = append(m.controls, control{kind: controlRemove})
		}
		m.controls = append(m.controls, control{kind: controlNext})
	default:
		for _, field := range m.layout.FieldsFor(m.step) {
			value, _ := view.Record.Value(field)
			m.addInput(field, value)
		}
		m.controls = append(m.controls, control{kind: controlNext})
	}
	return m.setFocus(0)
}

func (m *Model) addInput(field wizard.Field, value string) {
	cfg := m.layout.Field(field)
	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = cfg.Placeholder
	if cfg.Type == layout.InputDate && in.Placeholder == "" {
		in.Placeholder = "YYYY-MM-DD"
	}
	in.SetValue(value)
	m.inputs = append(m.inputs, in)
	m.controls = append(m.controls, control{kind: controlInput, field: field, input: len(m.inputs) - 1})
}

// View implements tea.Model.
func (m Model) View() string {
	if m.submitted {
		return m.styles.Success.Render(m.status) + "\n"
	}

	var b strings.Builder
	if m.layout.Title != "" {
		b.WriteString(m.styles.Title.Render(m.layout.Title))
		b.WriteString("\n")
	}
	b.WriteString(m.tabBar())
	b.WriteString("\n")
	b.WriteString(m.styles.Pane.Render(m.paneView()))
	b.WriteString("\n")
	if m.status != "" {
		style := m.styles.Error
		if m.submitting {
			style = m.styles.Note
		}
		b.WriteString(style.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) tabBar() string {
	steps := m.wiz.Steps()
	rendered := make([]string, 0, len(steps))
	for _, step := range steps {
		style := m.styles.Tab
		if step == m.step {
			style = m.styles.ActiveTab
		}
		rendered = append(rendered, style.Render(m.layout.StepTitle(step)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, rendered...)
}

func (m Model) paneView() string {
	var b strings.Builder
	b.WriteString(m.styles.PaneTitle.Render(m.layout.StepTitle(m.step)))
	b.WriteString("\n")

	if m.step.Kind == wizard.KindReview {
		record := m.wiz.Snapshot()
		for _, line := range wizard.ReviewLines(record) {
			entry := fmt.Sprintf("%s: %s", line.Label, line.Value)
			if line.Product >= 0 {
				entry = m.styles.Review.Render(entry)
			}
			b.WriteString(entry)
			b.WriteString("\n")
		}
		for _, note := range wizard.ReviewNotes(record) {
			b.WriteString(m.styles.Note.Render("! " + note))
			b.WriteString("\n")
		}
	}

	buttons := make([]string, 0, 2)
	for i, c := range m.controls {
		focused := i == m.focus
		switch c.kind {
		case controlInput:
			label := m.styles.Label.Render(m.layout.Field(c.field).Label)
			b.WriteString(label + m.inputs[c.input].View() + "\n")
		case controlCheckbox:
			mark := "[ ]"
			if m.wiz.PendingAddProduct() {
				mark = "[x]"
			}
			line := mark + " " + m.layout.Actions.AddAnotherProduct
			if focused {
				line = m.styles.Focus.Render(line)
			}
			b.WriteString("\n" + line + "\n\n")
		case controlRemove:
			buttons = append(buttons, m.button(m.layout.Actions.Remove, focused))
		case controlNext:
			buttons = append(buttons, m.button(m.layout.Actions.Next, focused))
		case controlSubmit:
			buttons = append(buttons, m.button(m.layout.Actions.Submit, focused))
		}
	}
	if len(buttons) > 0 {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, buttons...))
	}
	return b.String()
}

func (m Model) button(label string, focused bool) string {
	if focused {
		return m.styles.FocusButton.Render(label)
	}
	return m.styles.Button.Render(label)
}
