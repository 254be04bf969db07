package config

import (
	"errors"

	"github.com/ezrec/wordstack/translate"
)

var f = translate.From

var (
	ErrParse      = errors.New(f("parse error"))
	ErrUnknownKey = errors.New(f("unknown key"))
	ErrInvalid    = errors.New(f("invalid configuration"))
)
