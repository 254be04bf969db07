// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package script drives a stack from Starlark scripts, for replaying
// workloads and tuning capacity.
package script

import (
	"iter"
	"math"
	"strconv"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
	"go.uber.org/zap"

	"github.com/ezrec/wordstack/internal"
	"github.com/ezrec/wordstack/stack"
)

// Script runs Starlark programs against a stack.
type Script struct {
	Stack   *stack.Stack
	Logger  *zap.Logger                 // Optional; receives print() output.
	Defines []iter.Seq2[string, string] // Predeclared constants.

	cause error // Last stack error raised by a builtin.
}

func (sc *Script) log() *zap.Logger {
	if sc.Logger == nil {
		return zap.NewNop()
	}
	return sc.Logger
}

// Run executes src (a string, []byte or io.Reader; or nil to read filename)
// and returns its globals.
func (sc *Script) Run(filename string, src any) (globals starlark.StringDict, err error) {
	sc.cause = nil

	thread := &starlark.Thread{
		Name: filename,
		Print: func(_ *starlark.Thread, msg string) {
			sc.log().Info(msg, zap.String("script", filename))
		},
	}
	opts := syntax.FileOptions{}

	globals, err = starlark.ExecFileOptions(&opts, thread, filename, src, sc.predeclared())
	if err != nil {
		err = &ErrScript{Filename: filename, Err: err, Cause: sc.cause}
		return
	}

	sc.log().Debug("script done",
		zap.String("script", filename),
		zap.Int("depth", sc.Stack.Len()),
		zap.Int("high_water", sc.Stack.HighWater()))

	return
}

func (sc *Script) predeclared() starlark.StringDict {
	pred := starlark.StringDict{}
	for key, str := range internal.IterSeq2Concat(sc.Defines...) {
		value, err := strconv.ParseInt(str, 0, 64)
		if err != nil {
			pred[key] = starlark.String(str)
			continue
		}
		pred[key] = starlark.MakeInt64(value)
	}

	builtins := map[string]func(*starlark.Thread, *starlark.Builtin, starlark.Tuple, []starlark.Tuple) (starlark.Value, error){
		"push":       sc.push,
		"pop":        sc.pop,
		"drop":       sc.drop,
		"peek":       sc.peek,
		"poke":       sc.poke,
		"clear":      sc.clear,
		"depth":      sc.depth,
		"capacity":   sc.capacity,
		"high_water": sc.highWater,
		"is_empty":   sc.isEmpty,
	}
	for name, fn := range builtins {
		pred[name] = starlark.NewBuiltin(name, fn)
	}

	return pred
}

func (sc *Script) fail(err error) error {
	sc.cause = err
	return err
}

func toWord(v starlark.Value) (word stack.Word, err error) {
	i, ok := v.(starlark.Int)
	if !ok {
		err = ErrWordRange(v.String())
		return
	}

	i64, ok := i.Int64()
	if !ok || i64 < math.MinInt32 || i64 > math.MaxUint32 {
		err = ErrWordRange(v.String())
		return
	}

	word = stack.Word(uint32(i64))
	return
}

func fromWord(word stack.Word) starlark.Value {
	return starlark.MakeUint64(uint64(word))
}

// push(*words): pushes all words, or none.
func (sc *Script) push(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if len(kwargs) != 0 {
		return nil, ErrKeywords(b.Name())
	}

	words := make([]stack.Word, len(args))
	for n, arg := range args {
		word, err := toWord(arg)
		if err != nil {
			return nil, err
		}
		words[n] = word
	}

	if err := sc.Stack.PushN(words...); err != nil {
		return nil, sc.fail(err)
	}

	return starlark.None, nil
}

// pop(n=1): one word as an int, or n words as a tuple, top first.
func (sc *Script) pop(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	n := 1
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "n?", &n); err != nil {
		return nil, err
	}

	if n == 1 {
		word, err := sc.Stack.Pop()
		if err != nil {
			return nil, sc.fail(err)
		}
		return fromWord(word), nil
	}

	if n < 0 {
		return nil, sc.fail(stack.ErrInvalidCount)
	}

	words := make([]stack.Word, n)
	if err := sc.Stack.PopN(words); err != nil {
		return nil, sc.fail(err)
	}

	tuple := make(starlark.Tuple, n)
	for i, word := range words {
		tuple[i] = fromWord(word)
	}

	return tuple, nil
}

// drop(n)
func (sc *Script) drop(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var n int
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "n", &n); err != nil {
		return nil, err
	}

	if err := sc.Stack.Drop(n); err != nil {
		return nil, sc.fail(err)
	}

	return starlark.None, nil
}

// peek(depth=0)
func (sc *Script) peek(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	depth := 0
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "depth?", &depth); err != nil {
		return nil, err
	}

	word, err := sc.Stack.Peek(depth)
	if err != nil {
		return nil, sc.fail(err)
	}

	return fromWord(word), nil
}

// poke(depth, word)
func (sc *Script) poke(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var depth int
	var value starlark.Value
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "depth", &depth, "word", &value); err != nil {
		return nil, err
	}

	word, err := toWord(value)
	if err != nil {
		return nil, err
	}

	slot, err := sc.Stack.PeekAt(depth)
	if err != nil {
		return nil, sc.fail(err)
	}

	if err := slot.Store(word); err != nil {
		return nil, sc.fail(err)
	}

	return starlark.None, nil
}

func (sc *Script) clear(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs(b.Name(), args, kwargs); err != nil {
		return nil, err
	}

	sc.Stack.Clear()

	return starlark.None, nil
}

func (sc *Script) depth(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs(b.Name(), args, kwargs); err != nil {
		return nil, err
	}

	return starlark.MakeInt(sc.Stack.Len()), nil
}

func (sc *Script) capacity(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs(b.Name(), args, kwargs); err != nil {
		return nil, err
	}

	return starlark.MakeInt(sc.Stack.Cap()), nil
}

func (sc *Script) highWater(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs(b.Name(), args, kwargs); err != nil {
		return nil, err
	}

	return starlark.MakeInt(sc.Stack.HighWater()), nil
}

func (sc *Script) isEmpty(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs(b.Name(), args, kwargs); err != nil {
		return nil, err
	}

	return starlark.Bool(sc.Stack.IsEmpty()), nil
}
