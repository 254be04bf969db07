package script

import (
	"github.com/ezrec/wordstack/translate"
)

var f = translate.From

// ErrScript is a failed script run. Cause is the stack error that aborted
// it, if any.
type ErrScript struct {
	Filename string
	Err      error
	Cause    error
}

func (err *ErrScript) Error() string {
	return f("%v: %v", err.Filename, err.Err)
}

func (err *ErrScript) Unwrap() []error {
	if err.Cause == nil {
		return []error{err.Err}
	}
	return []error{err.Err, err.Cause}
}

type ErrWordRange string

func (err ErrWordRange) Error() string {
	return f("%v is not a 32-bit word", string(err))
}

type ErrKeywords string

func (err ErrKeywords) Error() string {
	return f("%v: unexpected keyword arguments", string(err))
}
