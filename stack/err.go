package stack

import (
	"errors"

	"github.com/ezrec/wordstack/translate"
)

var f = translate.From

var (
	// Stack errors
	ErrCapacityExceeded = errors.New(f("stack full"))
	ErrUnderflow        = errors.New(f("stack underflow"))
	ErrAllocationFailed = errors.New(f("stack allocation failed"))
	ErrReleased         = errors.New(f("stack released"))
	ErrInvalidCount     = errors.New(f("invalid count"))
	ErrStaleSlot        = errors.New(f("stale slot"))
)

// ErrNeed reports a failed multi-word operation: how many words were needed
// against how many were available.
type ErrNeed struct {
	Need  int
	Avail int
	Err   error
}

func (err ErrNeed) Error() string {
	return f("%v: need %d, have %d", err.Err, err.Need, err.Avail)
}

func (err ErrNeed) Unwrap() error {
	return err.Err
}
