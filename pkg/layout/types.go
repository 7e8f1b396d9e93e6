package layout

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// Input types understood by the renderers.
const (
	InputText  = "text"
	InputEmail = "email"
	InputURL   = "url"
	InputDate  = "date"
)

// Step keys used in layout documents. Product steps share one entry.
const (
	StepCompany  = "company"
	StepProduct  = "product"
	StepHardware = "hardware"
	StepReview   = "review"
)

// Layout is the resolved presentation metadata. Treat it as immutable once
// loaded; it is safe for concurrent readers.
type Layout struct {
	Title    string                       `json:"title" yaml:"title"`
	Subtitle string                       `json:"subtitle" yaml:"subtitle"`
	Steps    map[string]StepConfig        `json:"steps" yaml:"steps"`
	Fields   map[wizard.Field]FieldConfig `json:"fields" yaml:"fields"`
	Actions  Actions                      `json:"actions" yaml:"actions"`
	Source   string                       `json:"-" yaml:"-"`
}

// StepConfig describes one pane. For the product step, "{n}" in Title is
// replaced with the one-based product number.
type StepConfig struct {
	Title       string         `json:"title" yaml:"title"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Fields      []wizard.Field `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// FieldConfig customises a single input.
type FieldConfig struct {
	Label       string `json:"label,omitempty" yaml:"label,omitempty"`
	Type        string `json:"type,omitempty" yaml:"type,omitempty"`
	Placeholder string `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	// HelpText is sanitised HTML.
	HelpText string `json:"helpText,omitempty" yaml:"helpText,omitempty"`
}

// Actions holds button and checkbox captions.
type Actions struct {
	Next              string `json:"next,omitempty" yaml:"next,omitempty"`
	Remove            string `json:"remove,omitempty" yaml:"remove,omitempty"`
	Submit            string `json:"submit,omitempty" yaml:"submit,omitempty"`
	AddAnotherProduct string `json:"addAnotherProduct,omitempty" yaml:"addAnotherProduct,omitempty"`
}

// StepKey maps a step id onto its layout key.
func StepKey(step wizard.StepID) string {
	switch step.Kind {
	case wizard.KindCompanyInfo:
		return StepCompany
	case wizard.KindProduct:
		return StepProduct
	case wizard.KindHardwareSystem:
		return StepHardware
	case wizard.KindReview:
		return StepReview
	}
	return ""
}

// StepTitle returns the tab caption for step.
func (l *Layout) StepTitle(step wizard.StepID) string {
	if l == nil {
		return step.String()
	}
	cfg, ok := l.Steps[StepKey(step)]
	if !ok || strings.TrimSpace(cfg.Title) == "" {
		return step.String()
	}
	if step.IsProduct() {
		return strings.ReplaceAll(cfg.Title, "{n}", strconv.Itoa(step.Index+1))
	}
	return cfg.Title
}

// StepDescription returns the optional intro text for step.
func (l *Layout) StepDescription(step wizard.StepID) string {
	if l == nil {
		return ""
	}
	return l.Steps[StepKey(step)].Description
}

// FieldsFor lists the inputs shown on step in display order.
func (l *Layout) FieldsFor(step wizard.StepID) []wizard.Field {
	if l == nil {
		return nil
	}
	return append([]wizard.Field(nil), l.Steps[StepKey(step)].Fields...)
}

// Field returns the configuration for f, defaulting the label to the field
// name and the type to text.
func (l *Layout) Field(f wizard.Field) FieldConfig {
	var cfg FieldConfig
	if l != nil {
		cfg = l.Fields[f]
	}
	if cfg.Label == "" {
		cfg.Label = string(f)
	}
	if cfg.Type == "" {
		cfg.Type = InputText
	}
	return cfg
}
