package layout_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formwizard/pkg/layout"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

func TestDefault_StepTitlesMatchStepLabels(t *testing.T) {
	l := layout.Default()
	steps := []wizard.StepID{
		wizard.CompanyInfoStep(),
		wizard.ProductStep(0),
		wizard.ProductStep(2),
		wizard.HardwareSystemStep(),
		wizard.ReviewStep(),
	}
	for _, step := range steps {
		if got, want := l.StepTitle(step), step.String(); got != want {
			t.Fatalf("title for %s: want %q, got %q", step.Key(), want, got)
		}
	}
}

func TestDefault_FieldsPerStep(t *testing.T) {
	l := layout.Default()

	want := map[string][]wizard.Field{
		"company":  {wizard.FieldCompanyName, wizard.FieldEmail, wizard.FieldWebsite},
		"product":  {wizard.FieldProductName, wizard.FieldVersion, wizard.FieldAvailabilityDate},
		"hardware": {wizard.FieldHardwareSystem, wizard.FieldOperatingSystem},
		"review":   nil,
	}
	got := map[string][]wizard.Field{
		"company":  l.FieldsFor(wizard.CompanyInfoStep()),
		"product":  l.FieldsFor(wizard.ProductStep(1)),
		"hardware": l.FieldsFor(wizard.HardwareSystemStep()),
		"review":   l.FieldsFor(wizard.ReviewStep()),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestDefault_FieldTypesAndActions(t *testing.T) {
	l := layout.Default()
	if got := l.Field(wizard.FieldEmail).Type; got != layout.InputEmail {
		t.Fatalf("email type: got %q", got)
	}
	if got := l.Field(wizard.FieldAvailabilityDate).Type; got != layout.InputDate {
		t.Fatalf("availability type: got %q", got)
	}
	if got := l.Field(wizard.FieldAvailabilityDate).HelpText; !strings.Contains(got, "<strong>YYYY-MM-DD</strong>") {
		t.Fatalf("help text lost markup: %q", got)
	}
	want := layout.Actions{Next: "Next", Remove: "Remove Product", Submit: "Submit", AddAnotherProduct: "Add Another Product"}
	if diff := cmp.Diff(want, l.Actions); diff != "" {
		t.Fatalf("actions mismatch (-want +got):\n%s", diff)
	}
}

func TestDefault_ReturnsIndependentCopies(t *testing.T) {
	first := layout.Default()
	first.Fields[wizard.FieldEmail] = layout.FieldConfig{Label: "mutated"}
	first.Steps["company"] = layout.StepConfig{Title: "mutated"}

	second := layout.Default()
	if second.Field(wizard.FieldEmail).Label != "Email" {
		t.Fatalf("default layout was mutated through a copy")
	}
	if second.StepTitle(wizard.CompanyInfoStep()) != "Company Info" {
		t.Fatalf("default step title was mutated through a copy")
	}
}

func TestLoadFS_MergesOverridesInOrder(t *testing.T) {
	fsys := fstest.MapFS{
		"10-base.yaml": {Data: []byte(`
title: Partner Intake
steps:
  product:
    title: "Item #{n}"
fields:
  website:
    label: Homepage
`)},
		"20-extra.json": {Data: []byte(`{"fields":{"website":{"placeholder":"https://partner.test"}},"actions":{"submit":"Send"}}`)},
		"README.md":     {Data: []byte("ignored")},
	}

	l, err := layout.LoadFS(fsys)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if l.Title != "Partner Intake" {
		t.Fatalf("title: got %q", l.Title)
	}
	if got := l.StepTitle(wizard.ProductStep(1)); got != "Item #2" {
		t.Fatalf("product title: got %q", got)
	}
	website := l.Field(wizard.FieldWebsite)
	want := layout.FieldConfig{Label: "Homepage", Type: layout.InputURL, Placeholder: "https://partner.test"}
	if diff := cmp.Diff(want, website); diff != "" {
		t.Fatalf("website config mismatch (-want +got):\n%s", diff)
	}
	if l.Actions.Submit != "Send" || l.Actions.Next != "Next" {
		t.Fatalf("actions merge failed: %#v", l.Actions)
	}
	if l.Source != "20-extra.json" {
		t.Fatalf("source: got %q", l.Source)
	}
}

func TestLoadFS_NilReturnsDefault(t *testing.T) {
	l, err := layout.LoadFS(nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(layout.Default(), l); diff != "" {
		t.Fatalf("nil fs should yield default (-want +got):\n%s", diff)
	}
}

func TestParse_SanitisesHelpText(t *testing.T) {
	l, err := layout.Parse([]byte(`
fields:
  email:
    helpText: We reply <em>fast</em><script>alert(1)</script>
`), "inline.yaml")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	got := l.Fields[wizard.FieldEmail].HelpText
	if strings.Contains(got, "script") {
		t.Fatalf("script survived sanitising: %q", got)
	}
	if !strings.Contains(got, "<em>fast</em>") {
		t.Fatalf("allowed markup removed: %q", got)
	}
}

func TestParse_Rejects(t *testing.T) {
	cases := map[string]string{
		"empty":          "   ",
		"unknown step":   "steps:\n  billing:\n    title: Billing\n",
		"product field":  "steps:\n  company:\n    fields: [productName]\n",
		"record field":   "steps:\n  product:\n    fields: [email]\n",
		"review fields":  "steps:\n  review:\n    fields: [email]\n",
		"unknown field":  "fields:\n  fax:\n    label: Fax\n",
		"bad input type": "fields:\n  email:\n    type: checkbox\n",
		"invalid":        "{not: [valid",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := layout.Parse([]byte(doc), name); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "layout.yaml")
	if err := os.WriteFile(path, []byte("steps:\n  hardware:\n    title: Platform\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	l, err := layout.LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := l.StepTitle(wizard.HardwareSystemStep()); got != "Platform" {
		t.Fatalf("hardware title: got %q", got)
	}
	if got := l.FieldsFor(wizard.HardwareSystemStep()); len(got) != 2 {
		t.Fatalf("hardware fields should survive a title-only override, got %v", got)
	}

	if _, err := layout.LoadFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestNilLayoutFallsBack(t *testing.T) {
	var l *layout.Layout
	if got := l.StepTitle(wizard.ProductStep(0)); got != "Product 1" {
		t.Fatalf("nil layout title: got %q", got)
	}
	if got := l.Field(wizard.FieldVersion); got.Label != "version" || got.Type != layout.InputText {
		t.Fatalf("nil layout field: got %#v", got)
	}
}
