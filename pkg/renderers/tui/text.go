package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-formwizard/pkg/render"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// TextRendererName is the registry name of the plain-text renderer.
const TextRendererName = "text"

// TextRenderer prints the current view as plain text: a tab line with the
// active tab in brackets, then the pane contents.
type TextRenderer struct{}

var _ render.Renderer = TextRenderer{}

func (TextRenderer) Name() string        { return TextRendererName }
func (TextRenderer) ContentType() string { return "text/plain; charset=utf-8" }

// Render implements render.Renderer.
func (TextRenderer) Render(ctx context.Context, view wizard.View, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	page := render.BuildPage(view, options)

	var b strings.Builder
	tabs := make([]string, 0, len(page.Tabs))
	for _, tab := range page.Tabs {
		if tab.Active {
			tabs = append(tabs, "["+tab.Title+"]")
			continue
		}
		tabs = append(tabs, tab.Title)
	}
	b.WriteString(strings.Join(tabs, " | "))
	b.WriteString("\n\n")

	for _, notice := range page.Notices {
		fmt.Fprintf(&b, "! %s\n", notice)
	}

	pane := page.Pane
	fmt.Fprintf(&b, "%s\n%s\n", pane.Title, strings.Repeat("=", len(pane.Title)))
	if pane.Description != "" {
		fmt.Fprintf(&b, "%s\n", pane.Description)
	}

	if pane.Kind == "review" {
		writeReview(&b, pane)
		return []byte(b.String()), nil
	}

	for _, field := range pane.Fields {
		fmt.Fprintf(&b, "%s: %s\n", field.Label, field.Value)
	}
	if pane.ProductIndex >= 0 {
		mark := " "
		if pane.PendingAddProduct {
			mark = "x"
		}
		fmt.Fprintf(&b, "[%s] %s\n", mark, page.Actions.AddAnotherProduct)
	}
	return []byte(b.String()), nil
}

func writeReview(b *strings.Builder, pane render.Pane) {
	product := -1
	for _, line := range pane.Review {
		indent := ""
		if line.Product >= 0 {
			if line.Product != product {
				product = line.Product
				b.WriteString("\n")
			}
			indent = "  "
		} else if product >= 0 {
			product = -1
			b.WriteString("\n")
		}
		fmt.Fprintf(b, "%s%s: %s\n", indent, line.Label, line.Value)
	}
	if len(pane.Notes) > 0 {
		b.WriteString("\nNotes:\n")
		for _, note := range pane.Notes {
			fmt.Fprintf(b, "- %s\n", note)
		}
	}
}
