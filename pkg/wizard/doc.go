// Package wizard holds the multi-step application form state: company info,
// an ordered list of products, hardware details and a review step.
//
// A Wizard is the single owner of that state. Front ends (terminal prompts,
// the tabbed terminal UI, the HTML server) never mutate the record directly;
// they call the named operations (SelectStep, UpdateField,
// UpdateProductField, SetPendingAddProduct, AdvanceFromProduct,
// RemoveProduct, Submit) and re-render from State().
//
// Product steps are derived from the product list by position, so the tab
// list and the records cannot drift apart:
//
//	w := wizard.New(wizard.WithSubmitter(sub))
//	_ = w.UpdateField(wizard.FieldCompanyName, "Acme")
//	w.SetPendingAddProduct(true)
//	w.AdvanceFromProduct() // Product 2 is now active
package wizard
