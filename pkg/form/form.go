// Package form holds the in-progress edit buffers for the order and product
// dialogs. A form only ever touches its own buffer; applying a confirmed
// result to the visible lists is the workspace's job.
package form

// Mode tells a dialog whether it is creating a new record or editing an
// existing one.
type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)
