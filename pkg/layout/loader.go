package layout

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formwizard/pkg/wizard"
)

//go:embed defaults/layout.yaml
var embeddedDefaults embed.FS

var (
	defaultOnce   sync.Once
	defaultLayout *Layout
	defaultErr    error
)

// Default returns the embedded layout. It panics if the embedded document
// is invalid, which only happens when the bundled file is broken.
func Default() *Layout {
	defaultOnce.Do(func() {
		data, err := embeddedDefaults.ReadFile("defaults/layout.yaml")
		if err != nil {
			defaultErr = err
			return
		}
		defaultLayout, defaultErr = Parse(data, "defaults/layout.yaml")
	})
	if defaultErr != nil {
		panic(fmt.Errorf("layout: embedded default: %w", defaultErr))
	}
	return defaultLayout.clone()
}

// Parse decodes a single JSON or YAML document. The result contains only
// what the document declares; use Merge to apply it over Default.
func Parse(data []byte, source string) (*Layout, error) {
	var doc Layout
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("layout: file %s is empty", source)
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		if yerr := yaml.Unmarshal(data, &doc); yerr != nil {
			return nil, fmt.Errorf("layout: parse %s: invalid JSON or YAML", source)
		}
	}
	doc.Source = source
	if err := doc.normalise(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// LoadFile reads path and merges it over Default. An empty path returns the
// default layout.
func LoadFile(path string) (*Layout, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("layout: read %s: %w", path, err)
	}
	override, err := Parse(data, path)
	if err != nil {
		return nil, err
	}
	return Default().Merge(override), nil
}

// LoadFS walks fsys in lexical order and merges every JSON/YAML document
// over Default. A nil filesystem returns the default layout.
func LoadFS(fsys fs.FS) (*Layout, error) {
	out := Default()
	if fsys == nil {
		return out, nil
	}

	var paths []string
	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isLayoutFile(path) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	for _, path := range paths {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("layout: read %s: %w", path, err)
		}
		override, err := Parse(data, path)
		if err != nil {
			return nil, err
		}
		out = out.Merge(override)
	}
	return out, nil
}

// Merge returns a copy of l with every non-empty value from override
// applied. Step field lists replace rather than append.
func (l *Layout) Merge(override *Layout) *Layout {
	out := l.clone()
	if override == nil {
		return out
	}
	if override.Title != "" {
		out.Title = override.Title
	}
	if override.Subtitle != "" {
		out.Subtitle = override.Subtitle
	}
	for key, step := range override.Steps {
		current := out.Steps[key]
		if step.Title != "" {
			current.Title = step.Title
		}
		if step.Description != "" {
			current.Description = step.Description
		}
		if len(step.Fields) > 0 {
			current.Fields = append([]wizard.Field(nil), step.Fields...)
		}
		out.Steps[key] = current
	}
	for field, cfg := range override.Fields {
		current := out.Fields[field]
		if cfg.Label != "" {
			current.Label = cfg.Label
		}
		if cfg.Type != "" {
			current.Type = cfg.Type
		}
		if cfg.Placeholder != "" {
			current.Placeholder = cfg.Placeholder
		}
		if cfg.HelpText != "" {
			current.HelpText = cfg.HelpText
		}
		out.Fields[field] = current
	}
	if override.Actions.Next != "" {
		out.Actions.Next = override.Actions.Next
	}
	if override.Actions.Remove != "" {
		out.Actions.Remove = override.Actions.Remove
	}
	if override.Actions.Submit != "" {
		out.Actions.Submit = override.Actions.Submit
	}
	if override.Actions.AddAnotherProduct != "" {
		out.Actions.AddAnotherProduct = override.Actions.AddAnotherProduct
	}
	if override.Source != "" {
		out.Source = override.Source
	}
	return out
}

func (l *Layout) normalise() error {
	steps := make(map[string]StepConfig, len(l.Steps))
	for rawKey, step := range l.Steps {
		key := strings.ToLower(strings.TrimSpace(rawKey))
		switch key {
		case StepCompany, StepHardware:
			for _, f := range step.Fields {
				if !f.IsRecordField() {
					return fmt.Errorf("layout: file %s step %q lists %q which is not a record field", l.Source, key, f)
				}
			}
		case StepProduct:
			for _, f := range step.Fields {
				if !f.IsProductField() {
					return fmt.Errorf("layout: file %s step %q lists %q which is not a product field", l.Source, key, f)
				}
			}
		case StepReview:
			if len(step.Fields) > 0 {
				return fmt.Errorf("layout: file %s step %q cannot list fields", l.Source, key)
			}
		default:
			return fmt.Errorf("layout: file %s defines unknown step %q", l.Source, rawKey)
		}
		steps[key] = step
	}
	l.Steps = steps

	fields := make(map[wizard.Field]FieldConfig, len(l.Fields))
	for f, cfg := range l.Fields {
		if !f.IsRecordField() && !f.IsProductField() {
			return fmt.Errorf("layout: file %s configures unknown field %q", l.Source, f)
		}
		switch cfg.Type {
		case "", InputText, InputEmail, InputURL, InputDate:
		default:
			return fmt.Errorf("layout: file %s field %q has unsupported type %q", l.Source, f, cfg.Type)
		}
		cfg.HelpText = sanitizeHelpText(cfg.HelpText)
		fields[f] = cfg
	}
	l.Fields = fields
	return nil
}

func (l *Layout) clone() *Layout {
	if l == nil {
		return &Layout{Steps: map[string]StepConfig{}, Fields: map[wizard.Field]FieldConfig{}}
	}
	out := *l
	out.Steps = make(map[string]StepConfig, len(l.Steps))
	for k, v := range l.Steps {
		v.Fields = append([]wizard.Field(nil), v.Fields...)
		out.Steps[k] = v
	}
	out.Fields = make(map[wizard.Field]FieldConfig, len(l.Fields))
	for k, v := range l.Fields {
		out.Fields[k] = v
	}
	return &out
}

func isLayoutFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
