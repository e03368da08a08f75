package form

import "snackshop/pkg/entity"

// ProductForm is the product dialog's draft buffer. The price field is a raw
// string so partially typed numbers survive between keystrokes; each write
// goes through the clear-on-invalid coercion rule.
type ProductForm struct {
	open     bool
	mode     Mode
	buffer   entity.ProductDraft
	pinnedID int64
}

func defaultProductDraft() entity.ProductDraft {
	return entity.ProductDraft{Available: true}
}

// OpenCreate resets the buffer to the empty template (available by default).
func (f *ProductForm) OpenCreate() {
	f.open = true
	f.mode = ModeCreate
	f.buffer = defaultProductDraft()
	f.pinnedID = 0
}

// OpenEdit seeds the buffer from a copy of the given product and pins its id.
func (f *ProductForm) OpenEdit(p entity.Product) {
	f.open = true
	f.mode = ModeEdit
	f.buffer = entity.ProductDraftOf(p)
	f.pinnedID = p.ID
}

// Close discards the buffer and pinned id. Idempotent.
func (f *ProductForm) Close() {
	*f = ProductForm{}
}

// Open reports whether the dialog is open.
func (f *ProductForm) Open() bool { return f.open }

// Mode returns the current dialog mode.
func (f *ProductForm) Mode() Mode { return f.mode }

// PinnedID returns the id of the product under edit, 0 in create mode.
func (f *ProductForm) PinnedID() int64 { return f.pinnedID }

// SetField updates a field by name. Price writes are coerced: an input that
// does not parse as a non-negative number clears the field.
func (f *ProductForm) SetField(name, value string) {
	switch name {
	case "name":
		f.buffer.Name = value
	case "price":
		f.buffer.Price = entity.CoercePrice(value)
	}
}

// SetAvailable records the availability choice from the selection control.
func (f *ProductForm) SetAvailable(v bool) {
	f.buffer.Available = v
}

// Snapshot returns a full copy of the buffer as it stands right now.
func (f *ProductForm) Snapshot() entity.ProductDraft {
	return f.buffer
}
