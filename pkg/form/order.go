package form

import "snackshop/pkg/entity"

// OrderForm is the order dialog's draft buffer. OpenEdit copies the entity by
// value, so typing never leaks into the displayed list before the server
// confirms the change.
type OrderForm struct {
	open     bool
	mode     Mode
	buffer   entity.OrderDraft
	pinnedID int64
}

// defaultOrderDraft mirrors the dialog's empty template.
func defaultOrderDraft() entity.OrderDraft {
	return entity.OrderDraft{Status: entity.StatusPreparing}
}

// OpenCreate resets the buffer to the empty template.
func (f *OrderForm) OpenCreate() {
	f.open = true
	f.mode = ModeCreate
	f.buffer = defaultOrderDraft()
	f.pinnedID = 0
}

// OpenEdit seeds the buffer from a copy of the given order and pins its id.
func (f *OrderForm) OpenEdit(o entity.Order) {
	f.open = true
	f.mode = ModeEdit
	f.buffer = entity.DraftOf(o)
	f.pinnedID = o.ID
}

// Close discards the buffer and pinned id. Idempotent.
func (f *OrderForm) Close() {
	*f = OrderForm{}
}

// Open reports whether the dialog is open.
func (f *OrderForm) Open() bool { return f.open }

// Mode returns the current dialog mode.
func (f *OrderForm) Mode() Mode { return f.mode }

// PinnedID returns the id of the order under edit, 0 in create mode.
func (f *OrderForm) PinnedID() int64 { return f.pinnedID }

// SetField updates a free-text field by name. Unknown names are ignored;
// product and status go through their structured setters.
func (f *OrderForm) SetField(name, value string) {
	switch name {
	case "customer":
		f.buffer.Customer = value
	case "address":
		f.buffer.Address = value
	}
}

// SetProduct records the chosen product name from the selection control.
func (f *OrderForm) SetProduct(name string) {
	f.buffer.Product = name
}

// SetStatus records the chosen status from the selection control.
func (f *OrderForm) SetStatus(s entity.Status) {
	f.buffer.Status = s
}

// Snapshot returns a full copy of the buffer as it stands right now.
// Submission always reads a snapshot, never the live buffer.
func (f *OrderForm) Snapshot() entity.OrderDraft {
	return f.buffer
}
