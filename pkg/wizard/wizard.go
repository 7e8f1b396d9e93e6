package wizard

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
)

// Option configures a Wizard at construction time.
type Option func(*Wizard)

// WithSubmitter sets the collaborator used by Submit.
func WithSubmitter(submitter Submitter) Option {
	return func(w *Wizard) {
		if submitter != nil {
			w.submitter = submitter
		}
	}
}

// WithLogger routes operation logs to logger.
func WithLogger(logger *log.Logger) Option {
	return func(w *Wizard) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithRecord prefills the record. An empty product list is normalised to a
// single empty entry.
func WithRecord(record FormRecord) Option {
	return func(w *Wizard) {
		w.record = record.Clone()
	}
}

// View is an immutable snapshot of the wizard used by renderers.
type View struct {
	Active            StepID     `json:"active"`
	Steps             []StepID   `json:"steps"`
	Record            FormRecord `json:"record"`
	PendingAddProduct bool       `json:"pendingAddProduct"`
}

// IsActive reports whether step is the visible pane.
func (v View) IsActive(step StepID) bool {
	return v.Active == step
}

// ActiveProduct returns the product shown by the active pane, if any.
func (v View) ActiveProduct() (ProductEntry, bool) {
	if !v.Active.IsProduct() || v.Active.Index < 0 || v.Active.Index >= len(v.Record.Products) {
		return ProductEntry{}, false
	}
	return v.Record.Products[v.Active.Index], true
}

// Wizard owns the form state. All methods are safe for concurrent use; each
// operation is applied atomically.
type Wizard struct {
	mu        sync.Mutex
	active    StepID
	record    FormRecord
	pending   bool
	submitter Submitter
	logger    *log.Logger
}

// New returns a wizard positioned on Company Info with one empty product.
func New(options ...Option) *Wizard {
	w := &Wizard{
		active: CompanyInfoStep(),
		logger: log.New(io.Discard),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(w)
	}
	if len(w.record.Products) == 0 {
		w.record.Products = []ProductEntry{{}}
	}
	return w
}

// SelectStep makes step the visible pane. Movement between existing tabs is
// never gated; only ids that do not correspond to a tab are rejected.
func (w *Wizard) SelectStep(step StepID) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.validStepLocked(step) {
		return fmt.Errorf("%w: %s", ErrUnknownStep, step)
	}
	if !step.IsProduct() {
		step.Index = 0
	}
	w.active = step
	w.logger.Debug("step selected", "step", step.String())
	return nil
}

// UpdateField replaces a top-level scalar on the record.
func (w *Wizard) UpdateField(field Field, value string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.record.set(field, value) {
		return fmt.Errorf("%w: %q is not a record field", ErrUnknownField, field)
	}
	w.logger.Debug("field updated", "field", string(field))
	return nil
}

// UpdateProductField replaces one key on the product at index.
func (w *Wizard) UpdateProductField(index int, field Field, value string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if index < 0 || index >= len(w.record.Products) {
		return fmt.Errorf("%w: %d (have %d)", ErrProductIndexOutOfRange, index, len(w.record.Products))
	}
	if !w.record.Products[index].set(field, value) {
		return fmt.Errorf("%w: %q is not a product field", ErrUnknownField, field)
	}
	w.logger.Debug("product field updated", "index", index, "field", string(field))
	return nil
}

// SetPendingAddProduct stores the "add another product" checkbox. It has no
// effect until AdvanceFromProduct runs.
func (w *Wizard) SetPendingAddProduct(checked bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending = checked
}

// AdvanceFromProduct handles "Next" on a product pane. With the checkbox set
// it appends an empty product, clears the checkbox and shows the new pane;
// otherwise it moves to Hardware System. It returns the new active step.
func (w *Wizard) AdvanceFromProduct() StepID {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.pending {
		w.record.Products = append(w.record.Products, ProductEntry{})
		w.pending = false
		w.active = ProductStep(len(w.record.Products) - 1)
		w.logger.Debug("product added", "step", w.active.String())
		return w.active
	}

	w.active = HardwareSystemStep()
	w.logger.Debug("step selected", "step", w.active.String())
	return w.active
}

// RemoveProduct deletes the product at index together with its tab; later
// products shift down one position. The last remaining product cannot be
// removed. When the active pane shows a product, it keeps following the same
// entry; if that entry was removed, the product now at that position (or the
// new last one) becomes active.
func (w *Wizard) RemoveProduct(index int) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	count := len(w.record.Products)
	if index < 0 || index >= count {
		return fmt.Errorf("%w: %d (have %d)", ErrProductIndexOutOfRange, index, count)
	}
	if count == 1 {
		return ErrLastProduct
	}

	products := make([]ProductEntry, 0, count-1)
	products = append(products, w.record.Products[:index]...)
	products = append(products, w.record.Products[index+1:]...)
	w.record.Products = products

	if w.active.IsProduct() {
		switch {
		case w.active.Index > index:
			w.active.Index--
		case w.active.Index == index && index >= len(products):
			w.active.Index = len(products) - 1
		}
	}

	w.logger.Debug("product removed", "index", index, "remaining", len(products))
	return nil
}

// Submit hands a copy of the current record to the submitter. The wizard
// state is left untouched whether or not the hand-off succeeds.
func (w *Wizard) Submit(ctx context.Context) error {
	w.mu.Lock()
	record := w.record.Clone()
	submitter := w.submitter
	logger := w.logger
	w.mu.Unlock()

	if submitter == nil {
		return ErrNoSubmitter
	}
	if err := submitter.Submit(ctx, record); err != nil {
		logger.Error("submit failed", "err", err)
		return fmt.Errorf("wizard: submit: %w", err)
	}
	logger.Info("form submitted", "company", record.CompanyName, "products", len(record.Products))
	return nil
}

// ActiveStep returns the visible pane.
func (w *Wizard) ActiveStep() StepID {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.active
}

// Steps returns the ordered tab list.
func (w *Wizard) Steps() []StepID {
	w.mu.Lock()
	defer w.mu.Unlock()
	return stepsFor(len(w.record.Products))
}

// Snapshot returns a deep copy of the record.
func (w *Wizard) Snapshot() FormRecord {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.record.Clone()
}

// PendingAddProduct reports the checkbox state.
func (w *Wizard) PendingAddProduct() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pending
}

// ProductCount returns the number of products (and product tabs).
func (w *Wizard) ProductCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.record.Products)
}

// State returns a consistent snapshot of everything a renderer needs.
func (w *Wizard) State() View {
	w.mu.Lock()
	defer w.mu.Unlock()
	return View{
		Active:            w.active,
		Steps:             stepsFor(len(w.record.Products)),
		Record:            w.record.Clone(),
		PendingAddProduct: w.pending,
	}
}

func (w *Wizard) validStepLocked(step StepID) bool {
	switch step.Kind {
	case KindCompanyInfo, KindHardwareSystem, KindReview:
		return true
	case KindProduct:
		return step.Index >= 0 && step.Index < len(w.record.Products)
	}
	return false
}
