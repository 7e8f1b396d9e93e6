package render_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formwizard/pkg/render"
	"github.com/goliatone/go-formwizard/pkg/testsupport"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

type stubRenderer struct{ name string }

func (s stubRenderer) Name() string        { return s.name }
func (s stubRenderer) ContentType() string { return "text/plain" }
func (s stubRenderer) Render(context.Context, wizard.View, render.RenderOptions) ([]byte, error) {
	return []byte(s.name), nil
}

func TestRegistry(t *testing.T) {
	registry, err := render.NewRegistry(stubRenderer{name: "vanilla"}, stubRenderer{name: "text"})
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	if diff := cmp.Diff([]string{"text", "vanilla"}, registry.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
	if _, err := registry.Get("preact"); !errors.Is(err, render.ErrRendererNotFound) {
		t.Fatalf("expected ErrRendererNotFound, got %v", err)
	}
	got, ok := registry.ForContentType("text/plain")
	if !ok || got.Name() != "text" {
		t.Fatalf("ForContentType: got %v, %v", got, ok)
	}
	if _, ok := registry.ForContentType("application/json"); ok {
		t.Fatalf("expected no json renderer")
	}
	if err := registry.Register(stubRenderer{name: "text"}); err == nil {
		t.Fatalf("expected duplicate error")
	}
	if err := registry.Register(stubRenderer{}); err == nil {
		t.Fatalf("expected empty name error")
	}
	if err := registry.Register(nil); err == nil {
		t.Fatalf("expected nil renderer error")
	}
}

func TestMergeAndSortHiddenFields(t *testing.T) {
	base := map[string]string{
		" existing ": "keep",
		"":           "ignored",
	}
	merged := render.MergeHiddenFields(base,
		render.SessionField("abc"),
		render.Hidden(" version ", 4),
		render.Hidden("  ", "skip"),
	)

	want := map[string]string{"existing": "keep", "session": "abc", "version": "4"}
	if diff := cmp.Diff(want, merged); diff != "" {
		t.Fatalf("merged mismatch (-want +got):\n%s", diff)
	}

	wantSorted := []render.HiddenField{
		{Name: "existing", Value: "keep"},
		{Name: "session", Value: "abc"},
		{Name: "version", Value: "4"},
	}
	if diff := cmp.Diff(wantSorted, render.SortedHiddenFields(merged)); diff != "" {
		t.Fatalf("sorted mismatch (-want +got):\n%s", diff)
	}
	if render.MergeHiddenFields(nil) != nil {
		t.Fatalf("expected nil for empty merge")
	}
}

func TestMergeNotices(t *testing.T) {
	got := render.MergeNotices([]string{" First ", "Second"}, "Second", "third", "  ")
	if diff := cmp.Diff([]string{"First", "Second", "third"}, got); diff != "" {
		t.Fatalf("notices mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderOptionsAction(t *testing.T) {
	opts := render.RenderOptions{ActionBase: "/wizard/abc/"}
	if got := opts.Action("next"); got != "/wizard/abc/next" {
		t.Fatalf("action: got %q", got)
	}
	if got := opts.Action(""); got != "/wizard/abc" {
		t.Fatalf("base: got %q", got)
	}
	if got := (render.RenderOptions{}).Action(""); got != "/" {
		t.Fatalf("empty base: got %q", got)
	}
}

func TestBuildPage_CompanyPane(t *testing.T) {
	w := wizard.New(wizard.WithRecord(testsupport.AcmeRecord()))
	page := render.BuildPage(w.State(), render.RenderOptions{ActionBase: "/wizard/x"})

	wantTabs := []render.Tab{
		{Key: "company", Title: "Company Info", Active: true},
		{Key: "product-1", Title: "Product 1"},
		{Key: "hardware", Title: "Hardware System"},
		{Key: "review", Title: "Review and Submit"},
	}
	if diff := cmp.Diff(wantTabs, page.Tabs); diff != "" {
		t.Fatalf("tabs mismatch (-want +got):\n%s", diff)
	}
	if page.Pane.Kind != "company" || page.Pane.ProductIndex != -1 {
		t.Fatalf("unexpected pane: %#v", page.Pane)
	}

	names := make([]string, 0, len(page.Pane.Fields))
	for _, f := range page.Pane.Fields {
		names = append(names, f.Name+"="+f.Value)
	}
	want := []string{"companyName=Acme", "email=a@acme.com", "website=acme.com"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
	if page.Routes.Next != "/wizard/x/next" || page.Routes.Remove != "" {
		t.Fatalf("routes mismatch: %#v", page.Routes)
	}
}

func TestBuildPage_ProductPane(t *testing.T) {
	w := wizard.New(wizard.WithRecord(testsupport.MultiProductRecord()))
	if err := w.SelectStep(wizard.ProductStep(1)); err != nil {
		t.Fatalf("select: %v", err)
	}
	w.SetPendingAddProduct(true)

	page := render.BuildPage(w.State(), render.RenderOptions{ActionBase: "/wizard/x"})
	pane := page.Pane
	if pane.Title != "Product 2" || pane.ProductIndex != 1 || !pane.CanRemove || !pane.PendingAddProduct {
		t.Fatalf("unexpected pane: %#v", pane)
	}
	if pane.Fields[0].Name != "products.1.productName" || pane.Fields[0].Value != "Gadget" {
		t.Fatalf("unexpected first field: %#v", pane.Fields[0])
	}
	if pane.Fields[2].Type != "date" {
		t.Fatalf("availability date should be a date input, got %q", pane.Fields[2].Type)
	}
	if page.Routes.Remove != "/wizard/x/products/1/remove" {
		t.Fatalf("remove route: got %q", page.Routes.Remove)
	}
}

func TestBuildPage_SingleProductCannotRemove(t *testing.T) {
	w := wizard.New()
	if err := w.SelectStep(wizard.ProductStep(0)); err != nil {
		t.Fatalf("select: %v", err)
	}
	if render.BuildPage(w.State(), render.RenderOptions{}).Pane.CanRemove {
		t.Fatalf("single product should not offer removal")
	}
}

func TestBuildPage_ReviewPane(t *testing.T) {
	record := testsupport.AcmeRecord()
	record.Products = append(record.Products, wizard.ProductEntry{ProductName: "Widgets"})
	w := wizard.New(wizard.WithRecord(record))
	if err := w.SelectStep(wizard.ReviewStep()); err != nil {
		t.Fatalf("select: %v", err)
	}

	page := render.BuildPage(w.State(), render.RenderOptions{Notices: []string{"saved", " saved "}})
	if len(page.Pane.Fields) != 0 {
		t.Fatalf("review pane should not carry inputs")
	}
	if diff := cmp.Diff(wizard.ReviewLines(record), page.Pane.Review); diff != "" {
		t.Fatalf("review lines mismatch (-want +got):\n%s", diff)
	}
	if len(page.Pane.Notes) != 1 {
		t.Fatalf("expected duplicate-name note, got %v", page.Pane.Notes)
	}
	if diff := cmp.Diff([]string{"saved"}, page.Notices); diff != "" {
		t.Fatalf("notices mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildPage_NextStepKeys(t *testing.T) {
	w := wizard.New()
	if got := render.BuildPage(w.State(), render.RenderOptions{}).Pane.NextStep; got != "product-1" {
		t.Fatalf("company next step: got %q", got)
	}
	if err := w.SelectStep(wizard.HardwareSystemStep()); err != nil {
		t.Fatalf("select: %v", err)
	}
	if got := render.BuildPage(w.State(), render.RenderOptions{}).Pane.NextStep; got != "review" {
		t.Fatalf("hardware next step: got %q", got)
	}
}
