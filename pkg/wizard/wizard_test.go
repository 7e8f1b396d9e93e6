package wizard_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formwizard/pkg/testsupport"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

func TestNew_InitialState(t *testing.T) {
	w := wizard.New()

	if got := w.ActiveStep(); got != wizard.CompanyInfoStep() {
		t.Fatalf("active step = %s, want Company Info", got)
	}
	if got := w.ProductCount(); got != 1 {
		t.Fatalf("product count = %d, want 1", got)
	}
	if w.PendingAddProduct() {
		t.Fatalf("expected pending add product to start cleared")
	}

	want := wizard.FormRecord{Products: []wizard.ProductEntry{{}}}
	testsupport.AssertRecord(t, want, w.Snapshot())

	wantSteps := []wizard.StepID{
		wizard.CompanyInfoStep(),
		wizard.ProductStep(0),
		wizard.HardwareSystemStep(),
		wizard.ReviewStep(),
	}
	if diff := cmp.Diff(wantSteps, w.Steps()); diff != "" {
		t.Fatalf("steps mismatch (-want +got):\n%s", diff)
	}
}

func TestNew_WithRecordNormalisesEmptyProducts(t *testing.T) {
	w := wizard.New(wizard.WithRecord(wizard.FormRecord{CompanyName: "Acme"}))

	if got := w.ProductCount(); got != 1 {
		t.Fatalf("product count = %d, want 1", got)
	}
	if got := w.Snapshot().CompanyName; got != "Acme" {
		t.Fatalf("company name = %q, want Acme", got)
	}
}

func TestUpdateField_LastWriteWinsOthersUnchanged(t *testing.T) {
	w := wizard.New()

	writes := []struct {
		field wizard.Field
		value string
	}{
		{wizard.FieldCompanyName, "Ac"},
		{wizard.FieldEmail, "a@acme.com"},
		{wizard.FieldCompanyName, "Acme"},
		{wizard.FieldOperatingSystem, "Linux"},
		{wizard.FieldWebsite, "acme.com"},
		{wizard.FieldOperatingSystem, "FreeBSD"},
	}
	for _, write := range writes {
		if err := w.UpdateField(write.field, write.value); err != nil {
			t.Fatalf("update %s: %v", write.field, err)
		}
	}

	want := wizard.FormRecord{
		CompanyName:     "Acme",
		Email:           "a@acme.com",
		Website:         "acme.com",
		Products:        []wizard.ProductEntry{{}},
		OperatingSystem: "FreeBSD",
	}
	testsupport.AssertRecord(t, want, w.Snapshot())
}

func TestUpdateField_RejectsProductField(t *testing.T) {
	w := wizard.New()
	before := w.Snapshot()

	err := w.UpdateField(wizard.FieldVersion, "1.0")
	if !errors.Is(err, wizard.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	testsupport.AssertRecord(t, before, w.Snapshot())
}

func TestUpdateProductField_OnlyTargetChanges(t *testing.T) {
	w := wizard.New(wizard.WithRecord(testsupport.MultiProductRecord()))
	before := w.Snapshot()

	if err := w.UpdateProductField(1, wizard.FieldVersion, "3.0"); err != nil {
		t.Fatalf("update product field: %v", err)
	}

	want := before.Clone()
	want.Products[1].Version = "3.0"
	testsupport.AssertRecord(t, want, w.Snapshot())
}

func TestUpdateProductField_OutOfRangeIsNoOp(t *testing.T) {
	w := wizard.New()
	before := w.Snapshot()

	for _, index := range []int{-1, 1, 7} {
		err := w.UpdateProductField(index, wizard.FieldProductName, "Ghost")
		if !errors.Is(err, wizard.ErrProductIndexOutOfRange) {
			t.Fatalf("index %d: expected ErrProductIndexOutOfRange, got %v", index, err)
		}
	}
	testsupport.AssertRecord(t, before, w.Snapshot())
}

func TestUpdateProductField_RejectsRecordField(t *testing.T) {
	w := wizard.New()
	if err := w.UpdateProductField(0, wizard.FieldEmail, "x"); !errors.Is(err, wizard.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	w := wizard.New()
	snap := w.Snapshot()
	snap.Products[0].ProductName = "mutated"

	if got := w.Snapshot().Products[0].ProductName; got != "" {
		t.Fatalf("snapshot mutation leaked into wizard: %q", got)
	}
}

func TestSelectStep_Unconditional(t *testing.T) {
	w := wizard.New()

	for _, step := range []wizard.StepID{wizard.ReviewStep(), wizard.ProductStep(0), wizard.HardwareSystemStep(), wizard.CompanyInfoStep()} {
		if err := w.SelectStep(step); err != nil {
			t.Fatalf("select %s: %v", step, err)
		}
		if got := w.ActiveStep(); got != step {
			t.Fatalf("active = %s, want %s", got, step)
		}
	}
}

func TestSelectStep_RejectsMissingProductTab(t *testing.T) {
	w := wizard.New()

	err := w.SelectStep(wizard.ProductStep(1))
	if !errors.Is(err, wizard.ErrUnknownStep) {
		t.Fatalf("expected ErrUnknownStep, got %v", err)
	}
	if got := w.ActiveStep(); got != wizard.CompanyInfoStep() {
		t.Fatalf("active step changed to %s", got)
	}
}

func TestAdvanceFromProduct_WithPendingAddsProduct(t *testing.T) {
	w := wizard.New()
	if err := w.SelectStep(wizard.ProductStep(0)); err != nil {
		t.Fatalf("select: %v", err)
	}

	w.SetPendingAddProduct(true)
	got := w.AdvanceFromProduct()

	if got != wizard.ProductStep(1) {
		t.Fatalf("advance returned %s, want Product 2", got)
	}
	if w.ActiveStep() != wizard.ProductStep(1) {
		t.Fatalf("active = %s, want Product 2", w.ActiveStep())
	}
	if n := w.ProductCount(); n != 2 {
		t.Fatalf("product count = %d, want 2", n)
	}
	if w.PendingAddProduct() {
		t.Fatalf("expected pending flag cleared after advance")
	}
	steps := w.Steps()
	if label := steps[2].String(); label != "Product 2" {
		t.Fatalf("appended step label = %q, want Product 2", label)
	}
}

func TestAdvanceFromProduct_WithoutPendingGoesToHardware(t *testing.T) {
	for name, setFlag := range map[string]bool{"never set": false, "explicit false": true} {
		t.Run(name, func(t *testing.T) {
			w := wizard.New()
			_ = w.SelectStep(wizard.ProductStep(0))
			if setFlag {
				w.SetPendingAddProduct(true)
				w.SetPendingAddProduct(false)
			}

			if got := w.AdvanceFromProduct(); got != wizard.HardwareSystemStep() {
				t.Fatalf("advance returned %s, want Hardware System", got)
			}
			if n := w.ProductCount(); n != 1 {
				t.Fatalf("product count = %d, want 1", n)
			}
		})
	}
}

func TestRemoveProduct_ShiftsAndRenumbers(t *testing.T) {
	w := wizard.New()
	_ = w.UpdateProductField(0, wizard.FieldProductName, "First")
	w.SetPendingAddProduct(true)
	w.AdvanceFromProduct()
	_ = w.UpdateProductField(1, wizard.FieldProductName, "Second")

	if err := w.RemoveProduct(0); err != nil {
		t.Fatalf("remove: %v", err)
	}

	snap := w.Snapshot()
	if len(snap.Products) != 1 {
		t.Fatalf("product count = %d, want 1", len(snap.Products))
	}
	if snap.Products[0].ProductName != "Second" {
		t.Fatalf("remaining product = %q, want Second", snap.Products[0].ProductName)
	}
	steps := w.Steps()
	if steps[1] != wizard.ProductStep(0) || steps[1].String() != "Product 1" {
		t.Fatalf("remaining product step = %s, want Product 1", steps[1])
	}
	if len(steps) != 4 {
		t.Fatalf("expected 4 tabs, got %d", len(steps))
	}
}

func TestRemoveProduct_KeepsLastProduct(t *testing.T) {
	w := wizard.New()
	if err := w.RemoveProduct(0); !errors.Is(err, wizard.ErrLastProduct) {
		t.Fatalf("expected ErrLastProduct, got %v", err)
	}
	if n := w.ProductCount(); n != 1 {
		t.Fatalf("product count = %d, want 1", n)
	}
}

func TestRemoveProduct_OutOfRange(t *testing.T) {
	w := wizard.New(wizard.WithRecord(testsupport.MultiProductRecord()))
	if err := w.RemoveProduct(3); !errors.Is(err, wizard.ErrProductIndexOutOfRange) {
		t.Fatalf("expected ErrProductIndexOutOfRange, got %v", err)
	}
}

func TestRemoveProduct_ActiveStepFollowsEntry(t *testing.T) {
	cases := []struct {
		name   string
		active wizard.StepID
		remove int
		want   wizard.StepID
	}{
		{"viewing later product", wizard.ProductStep(2), 0, wizard.ProductStep(1)},
		{"viewing earlier product", wizard.ProductStep(0), 2, wizard.ProductStep(0)},
		{"viewing removed middle product", wizard.ProductStep(1), 1, wizard.ProductStep(1)},
		{"viewing removed last product", wizard.ProductStep(2), 2, wizard.ProductStep(1)},
		{"viewing non product pane", wizard.HardwareSystemStep(), 1, wizard.HardwareSystemStep()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := wizard.New(wizard.WithRecord(testsupport.MultiProductRecord()))
			if err := w.SelectStep(tc.active); err != nil {
				t.Fatalf("select: %v", err)
			}
			if err := w.RemoveProduct(tc.remove); err != nil {
				t.Fatalf("remove: %v", err)
			}
			if got := w.ActiveStep(); got != tc.want {
				t.Fatalf("active = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestSubmit_AcmeScenario(t *testing.T) {
	sub := &testsupport.RecordingSubmitter{}
	w := wizard.New(wizard.WithSubmitter(sub))

	testsupport.FillWizard(t, w, testsupport.AcmeRecord())
	if got := w.ActiveStep(); got != wizard.ReviewStep() {
		t.Fatalf("active = %s, want Review", got)
	}

	if err := w.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	testsupport.AssertRecord(t, testsupport.AcmeRecord(), sub.Last(t))
}

func TestSubmit_MultiProductScenario(t *testing.T) {
	sub := &testsupport.RecordingSubmitter{}
	w := wizard.New(wizard.WithSubmitter(sub))

	testsupport.FillWizard(t, w, testsupport.MultiProductRecord())
	if err := w.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	testsupport.AssertRecord(t, testsupport.MultiProductRecord(), sub.Last(t))
}

func TestSubmit_WithoutSubmitter(t *testing.T) {
	if err := wizard.New().Submit(context.Background()); !errors.Is(err, wizard.ErrNoSubmitter) {
		t.Fatalf("expected ErrNoSubmitter, got %v", err)
	}
}

func TestSubmit_PropagatesSubmitterError(t *testing.T) {
	boom := errors.New("boom")
	w := wizard.New(wizard.WithSubmitter(wizard.SubmitterFunc(func(context.Context, wizard.FormRecord) error {
		return boom
	})))
	_ = w.UpdateField(wizard.FieldCompanyName, "Acme")

	err := w.Submit(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped submitter error, got %v", err)
	}
	if got := w.Snapshot().CompanyName; got != "Acme" {
		t.Fatalf("state changed after failed submit: %q", got)
	}
}

func TestSubmit_AcceptsMalformedInput(t *testing.T) {
	sub := &testsupport.RecordingSubmitter{}
	w := wizard.New(wizard.WithSubmitter(sub))
	_ = w.UpdateField(wizard.FieldEmail, "not-an-email")

	if err := w.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if got := sub.Last(t).Email; got != "not-an-email" {
		t.Fatalf("email = %q, want it passed through unchanged", got)
	}
}

func TestState_ConsistentView(t *testing.T) {
	w := wizard.New(wizard.WithRecord(testsupport.MultiProductRecord()))
	_ = w.SelectStep(wizard.ProductStep(1))
	w.SetPendingAddProduct(true)

	view := w.State()
	if len(view.Steps) != len(view.Record.Products)+3 {
		t.Fatalf("steps (%d) out of sync with products (%d)", len(view.Steps), len(view.Record.Products))
	}
	if !view.PendingAddProduct {
		t.Fatalf("expected pending flag in view")
	}
	product, ok := view.ActiveProduct()
	if !ok || product.ProductName != "Gadget" {
		t.Fatalf("active product = %+v (ok=%v), want Gadget", product, ok)
	}
	if !view.IsActive(wizard.ProductStep(1)) {
		t.Fatalf("expected Product 2 active in view")
	}
}

func TestConcurrentOperations(t *testing.T) {
	w := wizard.New()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_ = w.UpdateField(wizard.FieldCompanyName, "Acme")
				_ = w.UpdateProductField(0, wizard.FieldVersion, "1.0")
				_ = w.State()
			}
		}()
	}
	wg.Wait()

	if got := w.Snapshot().Products[0].Version; got != "1.0" {
		t.Fatalf("version = %q, want 1.0", got)
	}
}
