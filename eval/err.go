package eval

import (
	"errors"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/ezrec/wordstack/translate"
)

var f = translate.From

var (
	ErrSyntax       = errors.New(f("syntax"))
	ErrOutOfStack   = errors.New(f("out of evaluator stack"))
	ErrDivideByZero = errors.New(f("divide by zero"))
	ErrArity        = errors.New(f("missing arguments"))
	ErrBadFrame     = errors.New(f("bad continuation frame"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Pos lexer.Position
	Err error
}

func (err *ErrRuntime) Error() string {
	return f("%v:%d:%d %v", err.Pos.Filename, err.Pos.Line, err.Pos.Column, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
