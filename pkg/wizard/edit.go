package wizard

import "fmt"

// Edit is one field write for ApplyEdits. Product selects the product at
// Index instead of the record.
type Edit struct {
	Field   Field
	Value   string
	Index   int
	Product bool
}

// RecordEdit addresses a top-level scalar.
func RecordEdit(field Field, value string) Edit {
	return Edit{Field: field, Value: value}
}

// ProductEdit addresses one key of the product at index.
func ProductEdit(index int, field Field, value string) Edit {
	return Edit{Field: field, Value: value, Index: index, Product: true}
}

// ApplyEdits writes every edit or none of them. Each edit is checked the way
// UpdateField and UpdateProductField check theirs; the first failure is
// returned and the record is left unchanged.
func (w *Wizard) ApplyEdits(edits ...Edit) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, e := range edits {
		if err := w.checkEditLocked(e); err != nil {
			return err
		}
	}
	for _, e := range edits {
		if e.Product {
			w.record.Products[e.Index].set(e.Field, e.Value)
			continue
		}
		w.record.set(e.Field, e.Value)
	}
	w.logger.Debug("fields updated", "count", len(edits))
	return nil
}

func (w *Wizard) checkEditLocked(e Edit) error {
	if !e.Product {
		if !e.Field.IsRecordField() {
			return fmt.Errorf("%w: %q is not a record field", ErrUnknownField, e.Field)
		}
		return nil
	}
	if e.Index < 0 || e.Index >= len(w.record.Products) {
		return fmt.Errorf("%w: %d (have %d)", ErrProductIndexOutOfRange, e.Index, len(w.record.Products))
	}
	if !e.Field.IsProductField() {
		return fmt.Errorf("%w: %q is not a product field", ErrUnknownField, e.Field)
	}
	return nil
}
