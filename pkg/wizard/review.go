package wizard

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// ReviewLine is one labelled value on the review pane.
type ReviewLine struct {
	Label string `json:"label"`
	Value string `json:"value"`
	// Product is the zero-based product index, or -1 for record fields.
	Product int `json:"product"`
}

// ReviewLines lists the record in the order the review pane shows it.
func ReviewLines(record FormRecord) []ReviewLine {
	lines := []ReviewLine{
		{Label: "Company Name", Value: record.CompanyName, Product: -1},
		{Label: "Email", Value: record.Email, Product: -1},
		{Label: "Website", Value: record.Website, Product: -1},
	}
	for i, product := range record.Products {
		lines = append(lines,
			ReviewLine{Label: fmt.Sprintf("Product %d Name", i+1), Value: product.ProductName, Product: i},
			ReviewLine{Label: "Version", Value: product.Version, Product: i},
			ReviewLine{Label: "Availability Date", Value: product.AvailabilityDate, Product: i},
		)
	}
	lines = append(lines,
		ReviewLine{Label: "Hardware System", Value: record.HardwareSystem, Product: -1},
		ReviewLine{Label: "Operating System", Value: record.OperatingSystem, Product: -1},
	)
	return lines
}

// nearDuplicateDistance is the largest edit distance at which two product
// names are reported as likely duplicates, provided the edits touch at most a
// quarter of the shorter name. Names shorter than nearDuplicateMinLen only
// match exactly.
const (
	nearDuplicateDistance = 2
	nearDuplicateMinLen   = 5
)

// ReviewNotes returns advisory messages for the review pane. Notes never
// block submission.
func ReviewNotes(record FormRecord) []string {
	var notes []string
	for i := 0; i < len(record.Products); i++ {
		a := normalizeName(record.Products[i].ProductName)
		if a == "" {
			continue
		}
		for j := i + 1; j < len(record.Products); j++ {
			b := normalizeName(record.Products[j].ProductName)
			if b == "" {
				continue
			}
			if !nearDuplicate(a, b) {
				continue
			}
			notes = append(notes, fmt.Sprintf("Product %d (%s) looks like a duplicate of Product %d (%s)",
				j+1, record.Products[j].ProductName, i+1, record.Products[i].ProductName))
		}
	}
	return notes
}

func normalizeName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

func nearDuplicate(a, b string) bool {
	if a == b {
		return true
	}
	shorter := min(len([]rune(a)), len([]rune(b)))
	if shorter < nearDuplicateMinLen {
		return false
	}
	d := levenshtein.ComputeDistance(a, b)
	return d <= nearDuplicateDistance && d*4 <= shorter
}
