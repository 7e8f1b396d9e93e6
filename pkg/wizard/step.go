package wizard

import (
	"fmt"
	"strconv"
	"strings"
)

// StepKind enumerates the panes of the wizard.
type StepKind int

const (
	KindCompanyInfo StepKind = iota
	KindProduct
	KindHardwareSystem
	KindReview
)

// StepID identifies a pane. Index is only meaningful for KindProduct and is
// zero-based; the label shown to users is one-based ("Product 1").
type StepID struct {
	Kind  StepKind `json:"kind"`
	Index int      `json:"index,omitempty"`
}

// CompanyInfoStep returns the id of the first pane.
func CompanyInfoStep() StepID { return StepID{Kind: KindCompanyInfo} }

// ProductStep returns the id of the product pane at index.
func ProductStep(index int) StepID { return StepID{Kind: KindProduct, Index: index} }

// HardwareSystemStep returns the id of the hardware pane.
func HardwareSystemStep() StepID { return StepID{Kind: KindHardwareSystem} }

// ReviewStep returns the id of the review and submit pane.
func ReviewStep() StepID { return StepID{Kind: KindReview} }

// IsProduct reports whether the step is a product pane.
func (s StepID) IsProduct() bool { return s.Kind == KindProduct }

// String returns the tab label.
func (s StepID) String() string {
	switch s.Kind {
	case KindCompanyInfo:
		return "Company Info"
	case KindProduct:
		return "Product " + strconv.Itoa(s.Index+1)
	case KindHardwareSystem:
		return "Hardware System"
	case KindReview:
		return "Review and Submit"
	}
	return fmt.Sprintf("StepID(%d)", int(s.Kind))
}

// Key returns a compact identifier suitable for URLs and form values.
func (s StepID) Key() string {
	switch s.Kind {
	case KindCompanyInfo:
		return "company"
	case KindProduct:
		return "product-" + strconv.Itoa(s.Index+1)
	case KindHardwareSystem:
		return "hardware"
	case KindReview:
		return "review"
	}
	return ""
}

// MarshalText encodes the step using its key.
func (s StepID) MarshalText() ([]byte, error) {
	key := s.Key()
	if key == "" {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStep, int(s.Kind))
	}
	return []byte(key), nil
}

// UnmarshalText accepts either a key or a label.
func (s *StepID) UnmarshalText(text []byte) error {
	parsed, err := ParseStepID(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseStepID accepts both the key form ("product-2") and the label form
// ("Product 2"), case-insensitively.
func ParseStepID(raw string) (StepID, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	switch value {
	case "company", "company info", "company-info":
		return CompanyInfoStep(), nil
	case "hardware", "hardware system", "hardware-system":
		return HardwareSystemStep(), nil
	case "review", "review and submit", "review-and-submit":
		return ReviewStep(), nil
	}

	for _, prefix := range []string{"product-", "product "} {
		if !strings.HasPrefix(value, prefix) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(value, prefix)))
		if err != nil || n < 1 {
			return StepID{}, fmt.Errorf("%w: %q", ErrUnknownStep, raw)
		}
		return ProductStep(n - 1), nil
	}

	return StepID{}, fmt.Errorf("%w: %q", ErrUnknownStep, raw)
}

// stepsFor lists the tabs for a record holding n products.
func stepsFor(n int) []StepID {
	steps := make([]StepID, 0, n+3)
	steps = append(steps, CompanyInfoStep())
	for i := 0; i < n; i++ {
		steps = append(steps, ProductStep(i))
	}
	steps = append(steps, HardwareSystemStep(), ReviewStep())
	return steps
}
