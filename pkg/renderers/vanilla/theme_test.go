package vanilla_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	theme "github.com/goliatone/go-theme"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formwizard/pkg/renderers/vanilla"
)

func TestResolveTheme_VariantOverridesBase(t *testing.T) {
	selection := &theme.Selection{
		Theme:   "acme",
		Variant: "dark",
		Manifest: &theme.Manifest{
			Name:   "acme",
			Tokens: map[string]string{"brand": "#123456", "text": "#000"},
			Assets: theme.Assets{Prefix: "/assets/themes/acme", Files: map[string]string{vanilla.StylesheetAsset: "theme.css"}},
			Variants: map[string]theme.Variant{
				"dark": {
					Tokens: map[string]string{"brand": "#654321"},
					Assets: theme.Assets{Files: map[string]string{vanilla.StylesheetAsset: "theme.dark.css"}},
				},
			},
		},
	}

	got := vanilla.ResolveTheme(selection)
	want := &vanilla.ThemeConfig{
		Name:       "acme",
		Variant:    "dark",
		Tokens:     map[string]string{"brand": "#654321", "text": "#000"},
		CSSVars:    map[string]string{"--brand": "#654321", "--text": "#000"},
		Stylesheet: "/assets/themes/acme/theme.dark.css",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("theme config mismatch (-want +got):\n%s", diff)
	}
	if vanilla.ResolveTheme(nil) != nil {
		t.Fatalf("nil selection should resolve to nil")
	}
}

func TestManifestSelector(t *testing.T) {
	selector, err := vanilla.NewManifestSelector(vanilla.DefaultThemeName, "dark", vanilla.DefaultManifest())
	if err != nil {
		t.Fatalf("new selector: %v", err)
	}

	selection, err := selector.Select("", "")
	if err != nil {
		t.Fatalf("select default: %v", err)
	}
	if selection.Theme != vanilla.DefaultThemeName || selection.Variant != "dark" {
		t.Fatalf("unexpected default selection: %+v", selection)
	}
	cfg := vanilla.ResolveTheme(selection)
	if cfg.CSSVars["--fw-surface"] != "#111827" {
		t.Fatalf("dark variant tokens not applied: %#v", cfg.CSSVars)
	}

	light, err := selector.Select(vanilla.DefaultThemeName, "")
	if err != nil {
		t.Fatalf("select light: %v", err)
	}
	if light.Variant != "" {
		t.Fatalf("explicit theme should not inherit the default variant, got %q", light.Variant)
	}

	if _, err := selector.Select("missing", ""); !errors.Is(err, vanilla.ErrThemeNotFound) {
		t.Fatalf("expected ErrThemeNotFound, got %v", err)
	}
	if _, err := selector.Select(vanilla.DefaultThemeName, "sepia"); err == nil {
		t.Fatalf("expected error for unknown variant")
	}
	if err := selector.Register(&theme.Manifest{}); err == nil {
		t.Fatalf("expected error for unnamed manifest")
	}
}

func TestLoadManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "acme.yaml")
	doc := `
name: acme
version: 2.0.0
tokens:
  fw-accent: "#ff6600"
assetsPrefix: /static/acme
stylesheet: acme.css
variants:
  dark:
    tokens:
      fw-surface: "#000000"
    stylesheet: acme-dark.css
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	manifest, err := vanilla.LoadManifest(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	selector, err := vanilla.NewManifestSelector("acme", "", manifest)
	if err != nil {
		t.Fatalf("selector: %v", err)
	}
	selection, err := selector.Select("acme", "dark")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	cfg := vanilla.ResolveTheme(selection)
	if cfg.Stylesheet != "/static/acme/acme-dark.css" {
		t.Fatalf("stylesheet: got %q", cfg.Stylesheet)
	}
	if cfg.CSSVars["--fw-accent"] != "#ff6600" || cfg.CSSVars["--fw-surface"] != "#000000" {
		t.Fatalf("css vars: %#v", cfg.CSSVars)
	}

	if _, err := vanilla.ParseManifest([]byte("version: 1"), "nameless"); err == nil {
		t.Fatalf("expected error for nameless manifest")
	}
}
