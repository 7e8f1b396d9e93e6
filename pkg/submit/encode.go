package submit

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// Format controls how a record is serialised.
type Format string

const (
	// FormatJSON emits application/json payloads.
	FormatJSON Format = "json"
	// FormatFormURLEncoded emits application/x-www-form-urlencoded payloads
	// using dotted keys (products.0.productName).
	FormatFormURLEncoded Format = "form"
	// FormatPrettyText emits the review summary as text.
	FormatPrettyText Format = "pretty"
)

// ParseFormat maps a config/flag value onto a Format.
func ParseFormat(raw string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(raw))) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatFormURLEncoded, "urlencoded":
		return FormatFormURLEncoded, nil
	case FormatPrettyText, "text":
		return FormatPrettyText, nil
	}
	return "", fmt.Errorf("submit: unknown format %q", raw)
}

// ContentType reports the MIME type produced by Encode for f.
func (f Format) ContentType() string {
	switch f {
	case FormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case FormatPrettyText:
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}

// Encode serialises record in the requested format.
func Encode(format Format, record wizard.FormRecord) ([]byte, error) {
	switch format {
	case FormatFormURLEncoded:
		return []byte(formValues(record).Encode()), nil
	case FormatPrettyText:
		return []byte(prettyText(record)), nil
	case FormatJSON, "":
		if record.Products == nil {
			record.Products = []wizard.ProductEntry{}
		}
		data, err := json.Marshal(record)
		if err != nil {
			return nil, fmt.Errorf("submit: encode json: %w", err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("submit: unknown format %q", format)
}

func formValues(record wizard.FormRecord) url.Values {
	values := url.Values{}
	for _, field := range wizard.RecordFields() {
		value, _ := record.Value(field)
		values.Set(string(field), value)
	}
	for i, product := range record.Products {
		prefix := "products." + strconv.Itoa(i) + "."
		for _, field := range wizard.ProductFields() {
			value, _ := product.Value(field)
			values.Set(prefix+string(field), value)
		}
	}
	return values
}

func prettyText(record wizard.FormRecord) string {
	var b strings.Builder
	for _, line := range wizard.ReviewLines(record) {
		fmt.Fprintf(&b, "%s: %s\n", line.Label, line.Value)
	}
	return b.String()
}
