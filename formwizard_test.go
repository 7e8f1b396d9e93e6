package formwizard

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/goliatone/go-formwizard/pkg/renderers/vanilla"
)

func TestAssetsFS_ContainsStylesheet(t *testing.T) {
	data, err := fs.ReadFile(AssetsFS(), vanilla.StylesheetName)
	if err != nil {
		t.Fatalf("read stylesheet: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("expected stylesheet content")
	}
}

func TestEmbeddedTemplates_ContainsWizard(t *testing.T) {
	if _, err := fs.Stat(EmbeddedTemplates(), "templates/wizard.tmpl"); err != nil {
		t.Fatalf("stat wizard template: %v", err)
	}
}

func TestRenderHTML(t *testing.T) {
	w := New()
	if err := w.UpdateField("companyName", "Acme"); err != nil {
		t.Fatalf("update field: %v", err)
	}
	html, err := RenderHTML(context.Background(), w, RenderOptions{ActionBase: "/wizard/demo"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	out := string(html)
	if !strings.Contains(out, `action="/wizard/demo/fields"`) || !strings.Contains(out, `value="Acme"`) {
		t.Fatalf("unexpected html:\n%s", out)
	}
}
