package testsupport

import (
	"context"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// AcmeRecord returns the fully populated single-product record used across
// contract tests.
func AcmeRecord() wizard.FormRecord {
	return wizard.FormRecord{
		CompanyName: "Acme",
		Email:       "a@acme.com",
		Website:     "acme.com",
		Products: []wizard.ProductEntry{
			{ProductName: "Widget", Version: "1.0", AvailabilityDate: "2024-01-01"},
		},
		HardwareSystem:  "x86",
		OperatingSystem: "Linux",
	}
}

// MultiProductRecord returns a record with three products.
func MultiProductRecord() wizard.FormRecord {
	record := AcmeRecord()
	record.Products = append(record.Products,
		wizard.ProductEntry{ProductName: "Gadget", Version: "2.1", AvailabilityDate: "2024-06-30"},
		wizard.ProductEntry{ProductName: "Gizmo", Version: "0.9", AvailabilityDate: "2025-02-14"},
	)
	return record
}

// FillWizard drives w through the public operations until it holds record,
// leaving the Review step active. w must be freshly constructed.
func FillWizard(t *testing.T, w *wizard.Wizard, record wizard.FormRecord) {
	t.Helper()

	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("fill wizard: %v", err)
		}
	}

	must(w.SelectStep(wizard.CompanyInfoStep()))
	must(w.UpdateField(wizard.FieldCompanyName, record.CompanyName))
	must(w.UpdateField(wizard.FieldEmail, record.Email))
	must(w.UpdateField(wizard.FieldWebsite, record.Website))

	must(w.SelectStep(wizard.ProductStep(0)))
	for i, product := range record.Products {
		must(w.UpdateProductField(i, wizard.FieldProductName, product.ProductName))
		must(w.UpdateProductField(i, wizard.FieldVersion, product.Version))
		must(w.UpdateProductField(i, wizard.FieldAvailabilityDate, product.AvailabilityDate))
		w.SetPendingAddProduct(i < len(record.Products)-1)
		w.AdvanceFromProduct()
	}

	must(w.UpdateField(wizard.FieldHardwareSystem, record.HardwareSystem))
	must(w.UpdateField(wizard.FieldOperatingSystem, record.OperatingSystem))
	must(w.SelectStep(wizard.ReviewStep()))
}

// AssertRecord fails the test when got differs from want.
func AssertRecord(t *testing.T, want, got wizard.FormRecord) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}
}

// RecordingSubmitter captures every submitted record. Err, when set, is
// returned from Submit after the record is captured.
type RecordingSubmitter struct {
	mu      sync.Mutex
	records []wizard.FormRecord
	Err     error
}

// Submit implements wizard.Submitter.
func (s *RecordingSubmitter) Submit(_ context.Context, record wizard.FormRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record.Clone())
	return s.Err
}

// Records returns the captured records.
func (s *RecordingSubmitter) Records() []wizard.FormRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]wizard.FormRecord(nil), s.records...)
}

// Last returns the most recent record, failing the test when none exists.
func (s *RecordingSubmitter) Last(t *testing.T) wizard.FormRecord {
	t.Helper()
	records := s.Records()
	if len(records) == 0 {
		t.Fatalf("expected at least one submission")
	}
	return records[len(records)-1]
}
