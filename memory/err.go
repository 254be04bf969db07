package memory

import (
	"errors"

	"github.com/ezrec/wordstack/translate"
)

var f = translate.From

var (
	// Pool errors
	ErrPoolExhausted = errors.New(f("pool exhausted"))
	ErrInvalidFree   = errors.New(f("invalid free"))
	ErrInvalidSize   = errors.New(f("invalid size"))
)
