package server

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-formwizard/pkg/render"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

const (
	stepParam     = "step"
	checkboxParam = "addAnotherProduct"
	productPrefix = "products."
)

// controlParams are posted alongside field values but are not fields.
var controlParams = map[string]struct{}{
	stepParam:               {},
	checkboxParam:           {},
	render.SessionFieldName: {},
}

// applyFields writes every posted field value to w. Top-level names address
// record fields; products.N.field addresses a product entry. Keys the wizard
// cannot address make the whole post a bad request and nothing is written.
func applyFields(w *wizard.Wizard, form url.Values) error {
	keys := make([]string, 0, len(form))
	for key := range form {
		if _, skip := controlParams[key]; skip {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	edits := make([]wizard.Edit, 0, len(keys))
	for _, key := range keys {
		values := form[key]
		if len(values) == 0 {
			continue
		}
		value := values[len(values)-1]

		if strings.HasPrefix(key, productPrefix) {
			index, field, err := parseProductKey(key)
			if err != nil {
				return err
			}
			edits = append(edits, wizard.ProductEdit(index, field, value))
			continue
		}
		edits = append(edits, wizard.RecordEdit(wizard.Field(key), value))
	}

	if err := w.ApplyEdits(edits...); err != nil {
		if errors.Is(err, wizard.ErrUnknownField) || errors.Is(err, wizard.ErrProductIndexOutOfRange) {
			return badRequest(err)
		}
		return err
	}
	return nil
}

func parseProductKey(key string) (int, wizard.Field, error) {
	parts := strings.SplitN(strings.TrimPrefix(key, productPrefix), ".", 2)
	if len(parts) != 2 || parts[1] == "" {
		return 0, "", badRequest(fmt.Errorf("server: malformed product field %q", key))
	}
	index, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, "", badRequest(fmt.Errorf("server: malformed product index in %q", key))
	}
	return index, wizard.Field(parts[1]), nil
}

// selectPostedStep selects the posted step when one is present.
func selectPostedStep(w *wizard.Wizard, form url.Values) error {
	raw := strings.TrimSpace(form.Get(stepParam))
	if raw == "" {
		return nil
	}
	step, err := wizard.ParseStepID(raw)
	if err != nil {
		return badRequest(err)
	}
	return w.SelectStep(step)
}
