package wizard

// FormRecord is the aggregate collected across all steps.
type FormRecord struct {
	CompanyName     string         `json:"companyName" yaml:"companyName"`
	Email           string         `json:"email" yaml:"email"`
	Website         string         `json:"website" yaml:"website"`
	Products        []ProductEntry `json:"products" yaml:"products"`
	HardwareSystem  string         `json:"hardwareSystem" yaml:"hardwareSystem"`
	OperatingSystem string         `json:"operatingSystem" yaml:"operatingSystem"`
}

// ProductEntry is one item in the product list. AvailabilityDate is kept as
// the raw date-input value (YYYY-MM-DD) and never parsed.
type ProductEntry struct {
	ProductName      string `json:"productName" yaml:"productName"`
	Version          string `json:"version" yaml:"version"`
	AvailabilityDate string `json:"availabilityDate" yaml:"availabilityDate"`
}

// Clone returns a deep copy of the record.
func (r FormRecord) Clone() FormRecord {
	out := r
	if r.Products != nil {
		out.Products = append([]ProductEntry(nil), r.Products...)
	}
	return out
}

// Field names an editable value. The string form matches the JSON name so
// HTML inputs and dotted paths can use it directly.
type Field string

const (
	FieldCompanyName     Field = "companyName"
	FieldEmail           Field = "email"
	FieldWebsite         Field = "website"
	FieldHardwareSystem  Field = "hardwareSystem"
	FieldOperatingSystem Field = "operatingSystem"

	FieldProductName      Field = "productName"
	FieldVersion          Field = "version"
	FieldAvailabilityDate Field = "availabilityDate"
)

// RecordFields lists the top-level scalar fields in display order.
func RecordFields() []Field {
	return []Field{FieldCompanyName, FieldEmail, FieldWebsite, FieldHardwareSystem, FieldOperatingSystem}
}

// ProductFields lists the per-product fields in display order.
func ProductFields() []Field {
	return []Field{FieldProductName, FieldVersion, FieldAvailabilityDate}
}

// IsProductField reports whether f addresses a ProductEntry key.
func (f Field) IsProductField() bool {
	switch f {
	case FieldProductName, FieldVersion, FieldAvailabilityDate:
		return true
	}
	return false
}

// IsRecordField reports whether f addresses a top-level FormRecord scalar.
func (f Field) IsRecordField() bool {
	switch f {
	case FieldCompanyName, FieldEmail, FieldWebsite, FieldHardwareSystem, FieldOperatingSystem:
		return true
	}
	return false
}

// Value reads the top-level scalar named by f.
func (r FormRecord) Value(f Field) (string, bool) {
	switch f {
	case FieldCompanyName:
		return r.CompanyName, true
	case FieldEmail:
		return r.Email, true
	case FieldWebsite:
		return r.Website, true
	case FieldHardwareSystem:
		return r.HardwareSystem, true
	case FieldOperatingSystem:
		return r.OperatingSystem, true
	}
	return "", false
}

func (r *FormRecord) set(f Field, value string) bool {
	switch f {
	case FieldCompanyName:
		r.CompanyName = value
	case FieldEmail:
		r.Email = value
	case FieldWebsite:
		r.Website = value
	case FieldHardwareSystem:
		r.HardwareSystem = value
	case FieldOperatingSystem:
		r.OperatingSystem = value
	default:
		return false
	}
	return true
}

// Value reads the product key named by f.
func (p ProductEntry) Value(f Field) (string, bool) {
	switch f {
	case FieldProductName:
		return p.ProductName, true
	case FieldVersion:
		return p.Version, true
	case FieldAvailabilityDate:
		return p.AvailabilityDate, true
	}
	return "", false
}

func (p *ProductEntry) set(f Field, value string) bool {
	switch f {
	case FieldProductName:
		p.ProductName = value
	case FieldVersion:
		p.Version = value
	case FieldAvailabilityDate:
		p.AvailabilityDate = value
	default:
		return false
	}
	return true
}
