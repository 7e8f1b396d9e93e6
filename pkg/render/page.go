package render

import (
	"fmt"

	"github.com/goliatone/go-formwizard/pkg/layout"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// Page is the renderer-neutral description of one wizard screen. Renderers
// build it with BuildPage and then only decide presentation.
type Page struct {
	Title      string         `json:"title"`
	Subtitle   string         `json:"subtitle,omitempty"`
	Tabs       []Tab          `json:"tabs"`
	Pane       Pane           `json:"pane"`
	Actions    layout.Actions `json:"actions"`
	Hidden     []HiddenField  `json:"hidden,omitempty"`
	Notices    []string       `json:"notices,omitempty"`
	ActionBase string         `json:"action_base"`
	Routes     Routes         `json:"routes"`
}

// Tab is one entry of the tab bar.
type Tab struct {
	Key    string `json:"key"`
	Title  string `json:"title"`
	Active bool   `json:"active"`
}

// Pane is the visible step.
type Pane struct {
	Key         string      `json:"key"`
	Kind        string      `json:"kind"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Fields      []FieldView `json:"fields,omitempty"`
	// ProductIndex is the zero-based product for product panes, -1 otherwise.
	ProductIndex      int                 `json:"product_index"`
	PendingAddProduct bool                `json:"pending_add_product"`
	CanRemove         bool                `json:"can_remove"`
	Review            []wizard.ReviewLine `json:"review,omitempty"`
	Notes             []string            `json:"notes,omitempty"`
	// NextStep is the step key the Next button selects on panes that do not
	// advance through AdvanceFromProduct.
	NextStep string `json:"next_step,omitempty"`
}

// FieldView is a single input with its current value.
type FieldView struct {
	Name        string       `json:"name"`
	Field       wizard.Field `json:"field"`
	Label       string       `json:"label"`
	Type        string       `json:"type"`
	Value       string       `json:"value"`
	Placeholder string       `json:"placeholder,omitempty"`
	HelpText    string       `json:"help_text,omitempty"`
}

// Routes are the absolute form actions for the page.
type Routes struct {
	Step   string `json:"step"`
	Fields string `json:"fields"`
	Next   string `json:"next"`
	Remove string `json:"remove,omitempty"`
	Submit string `json:"submit"`
}

// InputName returns the form input name for field, using dotted product
// paths (products.0.productName) for product fields.
func InputName(field wizard.Field, productIndex int) string {
	if field.IsProductField() {
		return fmt.Sprintf("products.%d.%s", productIndex, field)
	}
	return string(field)
}

// BuildPage resolves view against the layout in options.
func BuildPage(view wizard.View, options RenderOptions) Page {
	l := options.layout()

	page := Page{
		Title:      l.Title,
		Subtitle:   l.Subtitle,
		Actions:    l.Actions,
		Hidden:     SortedHiddenFields(options.HiddenFields),
		Notices:    MergeNotices(options.Notices),
		ActionBase: options.Action(""),
		Routes: Routes{
			Step:   options.Action("step"),
			Fields: options.Action("fields"),
			Next:   options.Action("next"),
			Submit: options.Action("submit"),
		},
	}

	page.Tabs = make([]Tab, 0, len(view.Steps))
	for _, step := range view.Steps {
		page.Tabs = append(page.Tabs, Tab{
			Key:    step.Key(),
			Title:  l.StepTitle(step),
			Active: view.IsActive(step),
		})
	}

	active := view.Active
	pane := Pane{
		Key:          active.Key(),
		Kind:         layout.StepKey(active),
		Title:        l.StepTitle(active),
		Description:  l.StepDescription(active),
		ProductIndex: -1,
	}

	switch active.Kind {
	case wizard.KindProduct:
		product, _ := view.ActiveProduct()
		pane.ProductIndex = active.Index
		pane.PendingAddProduct = view.PendingAddProduct
		pane.CanRemove = len(view.Record.Products) > 1
		page.Routes.Remove = options.Action(fmt.Sprintf("products/%d/remove", active.Index))
		for _, field := range l.FieldsFor(active) {
			value, _ := product.Value(field)
			pane.Fields = append(pane.Fields, fieldView(l, field, active.Index, value))
		}
	case wizard.KindReview:
		pane.Review = wizard.ReviewLines(view.Record)
		pane.Notes = wizard.ReviewNotes(view.Record)
	default:
		for _, field := range l.FieldsFor(active) {
			value, _ := view.Record.Value(field)
			pane.Fields = append(pane.Fields, fieldView(l, field, -1, value))
		}
		pane.NextStep = nextStepKey(active)
	}

	page.Pane = pane
	return page
}

func fieldView(l *layout.Layout, field wizard.Field, productIndex int, value string) FieldView {
	cfg := l.Field(field)
	return FieldView{
		Name:        InputName(field, productIndex),
		Field:       field,
		Label:       cfg.Label,
		Type:        cfg.Type,
		Value:       value,
		Placeholder: cfg.Placeholder,
		HelpText:    cfg.HelpText,
	}
}

func nextStepKey(step wizard.StepID) string {
	switch step.Kind {
	case wizard.KindCompanyInfo:
		return wizard.ProductStep(0).Key()
	case wizard.KindHardwareSystem:
		return wizard.ReviewStep().Key()
	}
	return ""
}
