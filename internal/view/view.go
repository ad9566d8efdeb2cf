// Package view drives which sub-view a management page renders: the record
// list, the create form, or the edit form for one record. It is pure
// selection state; transitioning never performs the operation itself, and
// callers decide whether an operation's outcome warrants returning to the
// list.
package view

type Mode int

const (
	ModeList Mode = iota
	ModeCreate
	ModeEdit
)

func (m Mode) String() string {
	switch m {
	case ModeList:
		return "list"
	case ModeCreate:
		return "create"
	case ModeEdit:
		return "edit"
	default:
		return "unknown"
	}
}

// Controller is a per-page three-state switch. EditTarget is non-nil
// exactly when Mode() == ModeEdit.
type Controller[T any] struct {
	mode   Mode
	target *T
}

func NewController[T any]() *Controller[T] {
	return &Controller[T]{mode: ModeList}
}

func (c *Controller[T]) Mode() Mode {
	return c.mode
}

// EditTarget returns the record being edited, nil outside edit mode.
func (c *Controller[T]) EditTarget() *T {
	return c.target
}

// ShowList switches to the list and drops any edit target.
func (c *Controller[T]) ShowList() {
	c.mode = ModeList
	c.target = nil
}

// ShowCreate switches to the create form. No edit target is involved.
func (c *Controller[T]) ShowCreate() {
	c.mode = ModeCreate
	c.target = nil
}

// ShowEdit switches to the edit form for record.
func (c *Controller[T]) ShowEdit(record *T) {
	c.mode = ModeEdit
	c.target = record
}
