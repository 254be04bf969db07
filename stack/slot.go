package stack

// Slot is a bounds checked view of one live stack word, returned by PeekAt.
// It goes stale after any push, pop, drop, clear or release on its stack.
type Slot struct {
	stack *Stack
	index int
	epoch uint64
}

// Index of the slot from the base of the stack.
func (sl Slot) Index() int {
	return sl.index
}

// Valid returns true if the slot still refers to a live word.
func (sl Slot) Valid() bool {
	return sl.stack != nil && sl.stack.epoch == sl.epoch
}

// Load the word in the slot.
func (sl Slot) Load() (value Word, err error) {
	if !sl.Valid() {
		err = ErrStaleSlot
		return
	}

	value = sl.stack.data[sl.index]
	return
}

// Store overwrites the word in the slot. Stores do not invalidate slots.
func (sl Slot) Store(value Word) (err error) {
	if !sl.Valid() {
		err = ErrStaleSlot
		return
	}

	sl.stack.data[sl.index] = value
	return
}
