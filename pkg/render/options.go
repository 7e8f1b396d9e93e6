package render

import (
	"strings"

	"github.com/goliatone/go-formwizard/pkg/layout"
)

// RenderOptions carry per-request data that renderers use without touching
// the wizard state.
type RenderOptions struct {
	// Layout supplies titles, labels and input types. Nil uses
	// layout.Default().
	Layout *layout.Layout
	// ActionBase prefixes form actions and links, e.g. "/wizard/<id>".
	ActionBase string
	// HiddenFields are emitted inside every form.
	HiddenFields map[string]string
	// Theme and ThemeVariant select a go-theme manifest when the renderer
	// is configured with a theme provider.
	Theme        string
	ThemeVariant string
	// Notices are shown above the active pane, e.g. the last rejected
	// operation.
	Notices []string
}

func (o RenderOptions) layout() *layout.Layout {
	if o.Layout != nil {
		return o.Layout
	}
	return layout.Default()
}

// Action joins the action base with a path suffix.
func (o RenderOptions) Action(suffix string) string {
	base := strings.TrimRight(strings.TrimSpace(o.ActionBase), "/")
	suffix = strings.TrimLeft(suffix, "/")
	if suffix == "" {
		if base == "" {
			return "/"
		}
		return base
	}
	return base + "/" + suffix
}

// MergeNotices concatenates notice slices, trimming whitespace and removing
// duplicates while preserving order.
func MergeNotices(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)

	out := make([]string, 0, len(combined))
	seen := make(map[string]struct{}, len(combined))
	for _, message := range combined {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
