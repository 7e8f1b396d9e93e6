package vanilla

import (
	"errors"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"
)

// StylesheetAsset is the manifest asset key for a theme stylesheet.
const StylesheetAsset = "vanilla.stylesheet"

// DefaultThemeName names the built-in manifest.
const DefaultThemeName = "formwizard"

// ErrThemeNotFound is returned when a selector has no manifest for a name.
var ErrThemeNotFound = errors.New("vanilla: theme not found")

// ThemeConfig is the resolved theme handed to templates.
type ThemeConfig struct {
	Name    string            `json:"name"`
	Variant string            `json:"variant,omitempty"`
	Tokens  map[string]string `json:"tokens,omitempty"`
	// CSSVars maps tokens to custom properties ("accent" -> "--accent").
	CSSVars    map[string]string `json:"css_vars,omitempty"`
	Stylesheet string            `json:"stylesheet,omitempty"`
}

type cssVar struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ResolveTheme flattens a selection into tokens, CSS variables and the
// stylesheet URL. Variant tokens and asset files override the base manifest.
func ResolveTheme(selection *theme.Selection) *ThemeConfig {
	if selection == nil {
		return nil
	}
	cfg := &ThemeConfig{
		Name:    selection.Theme,
		Variant: selection.Variant,
		Tokens:  map[string]string{},
		CSSVars: map[string]string{},
	}
	manifest := selection.Manifest
	if manifest == nil {
		return cfg
	}
	if cfg.Name == "" {
		cfg.Name = manifest.Name
	}

	prefix := manifest.Assets.Prefix
	files := map[string]string{}
	for k, v := range manifest.Tokens {
		cfg.Tokens[k] = v
	}
	for k, v := range manifest.Assets.Files {
		files[k] = v
	}
	if variant, ok := manifest.Variants[selection.Variant]; ok {
		for k, v := range variant.Tokens {
			cfg.Tokens[k] = v
		}
		for k, v := range variant.Assets.Files {
			files[k] = v
		}
		if variant.Assets.Prefix != "" {
			prefix = variant.Assets.Prefix
		}
	}

	for k, v := range cfg.Tokens {
		cfg.CSSVars["--"+strings.TrimPrefix(k, "--")] = v
	}
	if file := files[StylesheetAsset]; file != "" {
		cfg.Stylesheet = assetURL(prefix, file)
	}
	return cfg
}

func (c *ThemeConfig) sortedVars() []cssVar {
	if c == nil || len(c.CSSVars) == 0 {
		return nil
	}
	out := make([]cssVar, 0, len(c.CSSVars))
	for name, value := range c.CSSVars {
		out = append(out, cssVar{Name: name, Value: value})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func assetURL(prefix, file string) string {
	if strings.HasPrefix(file, "/") || strings.Contains(file, "://") {
		return file
	}
	if prefix == "" {
		return file
	}
	if strings.Contains(prefix, "://") {
		return strings.TrimRight(prefix, "/") + "/" + file
	}
	return path.Join(prefix, file)
}

// ManifestSelector implements theme.ThemeSelector over an in-memory set of
// manifests. Empty names fall back to the configured defaults.
type ManifestSelector struct {
	mu             sync.RWMutex
	manifests      map[string]*theme.Manifest
	defaultTheme   string
	defaultVariant string
}

var _ theme.ThemeSelector = (*ManifestSelector)(nil)

// NewManifestSelector registers manifests and sets the fallback theme and
// variant.
func NewManifestSelector(defaultTheme, defaultVariant string, manifests ...*theme.Manifest) (*ManifestSelector, error) {
	s := &ManifestSelector{
		manifests:      make(map[string]*theme.Manifest, len(manifests)),
		defaultTheme:   strings.TrimSpace(defaultTheme),
		defaultVariant: strings.TrimSpace(defaultVariant),
	}
	for _, m := range manifests {
		if err := s.Register(m); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Register adds a manifest, replacing any with the same name.
func (s *ManifestSelector) Register(manifest *theme.Manifest) error {
	if manifest == nil || strings.TrimSpace(manifest.Name) == "" {
		return errors.New("vanilla: theme manifest name is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.manifests[manifest.Name] = manifest
	return nil
}

// Select implements theme.ThemeSelector.
func (s *ManifestSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	name = strings.TrimSpace(name)
	variant = strings.TrimSpace(variant)
	if name == "" {
		name = s.defaultTheme
		if variant == "" {
			variant = s.defaultVariant
		}
	}

	s.mu.RLock()
	manifest, ok := s.manifests[name]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrThemeNotFound, name)
	}
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("vanilla: theme %q has no variant %q", name, variant)
		}
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}

// DefaultManifest returns the built-in theme with a "dark" variant.
func DefaultManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    DefaultThemeName,
		Version: "1.0.0",
		Tokens: map[string]string{
			"fw-accent":  "#2563eb",
			"fw-surface": "#ffffff",
			"fw-text":    "#111827",
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"fw-accent":  "#60a5fa",
					"fw-surface": "#111827",
					"fw-text":    "#f9fafb",
					"fw-muted":   "#9ca3af",
					"fw-border":  "#374151",
				},
			},
		},
	}
}

type manifestFile struct {
	Name       string                 `yaml:"name"`
	Version    string                 `yaml:"version"`
	Tokens     map[string]string      `yaml:"tokens"`
	Stylesheet string                 `yaml:"stylesheet"`
	AssetsBase string                 `yaml:"assetsPrefix"`
	Variants   map[string]variantFile `yaml:"variants"`
}

type variantFile struct {
	Tokens     map[string]string `yaml:"tokens"`
	Stylesheet string            `yaml:"stylesheet"`
}

// LoadManifest reads a YAML theme description:
//
//	name: acme
//	tokens: {fw-accent: "#ff6600"}
//	assetsPrefix: /static/acme
//	stylesheet: acme.css
//	variants:
//	  dark: {tokens: {fw-surface: "#000"}}
func LoadManifest(filename string) (*theme.Manifest, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("vanilla: read theme %s: %w", filename, err)
	}
	return ParseManifest(data, filename)
}

// ParseManifest decodes the YAML form accepted by LoadManifest.
func ParseManifest(data []byte, source string) (*theme.Manifest, error) {
	var raw manifestFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("vanilla: parse theme %s: %w", source, err)
	}
	if strings.TrimSpace(raw.Name) == "" {
		return nil, fmt.Errorf("vanilla: theme %s has no name", source)
	}

	manifest := &theme.Manifest{
		Name:    raw.Name,
		Version: raw.Version,
		Tokens:  raw.Tokens,
		Assets:  theme.Assets{Prefix: raw.AssetsBase},
	}
	if raw.Stylesheet != "" {
		manifest.Assets.Files = map[string]string{StylesheetAsset: raw.Stylesheet}
	}
	if len(raw.Variants) > 0 {
		manifest.Variants = make(map[string]theme.Variant, len(raw.Variants))
		for name, v := range raw.Variants {
			variant := theme.Variant{Tokens: v.Tokens}
			if v.Stylesheet != "" {
				variant.Assets = theme.Assets{Files: map[string]string{StylesheetAsset: v.Stylesheet}}
			}
			manifest.Variants[name] = variant
		}
	}
	return manifest, nil
}
