package script

import (
	"errors"
	"iter"
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.starlark.net/starlark"

	"github.com/ezrec/wordstack/stack"
)

func asInt(t *testing.T, v starlark.Value) int {
	i, err := starlark.AsInt32(v)
	assert.NoError(t, err, "%v", v)
	return i
}

func TestScript_Run(t *testing.T) {
	assert := assert.New(t)

	s := stack.Attach(make([]stack.Word, 8))
	sc := &Script{Stack: s, Defines: []iter.Seq2[string, string]{s.Defines(), maps.All(map[string]string{"NAME": "eval"})}}

	globals, err := sc.Run("test.star", `
push(1, 2, 3)
a = pop()
b = pop(2)
push(STACK_CAPACITY, 0xffffffff)
top = peek()
under = peek(1)
poke(0, 7)
p = peek()
d = depth()
hw = high_water()
c = capacity()
name = NAME
e = is_empty()
`)
	assert.NoError(err)

	assert.Equal(3, asInt(t, globals["a"]))
	b := globals["b"].(starlark.Tuple)
	assert.Len(b, 2)
	assert.Equal(2, asInt(t, b[0]))
	assert.Equal(1, asInt(t, b[1]))
	assert.Equal("4294967295", globals["top"].String())
	assert.Equal(8, asInt(t, globals["under"]))
	assert.Equal(7, asInt(t, globals["p"]))
	assert.Equal(2, asInt(t, globals["d"]))
	assert.Equal(3, asInt(t, globals["hw"]))
	assert.Equal(8, asInt(t, globals["c"]))
	assert.Equal(starlark.String("eval"), globals["name"])
	assert.Equal(starlark.False, globals["e"])

	assert.Equal(2, s.Len())
	val, err := s.Peek(0)
	assert.NoError(err)
	assert.Equal(stack.Word(7), val)
}

func TestScript_Clear(t *testing.T) {
	assert := assert.New(t)

	s := stack.Attach(make([]stack.Word, 4))
	sc := &Script{Stack: s}

	globals, err := sc.Run("clear.star", `
push(1, 2, 3, 4)
drop(2)
clear()
e = is_empty()
hw = high_water()
`)
	assert.NoError(err)
	assert.Equal(starlark.True, globals["e"])
	assert.Equal(0, asInt(t, globals["hw"]))
}

func TestScript_Overflow(t *testing.T) {
	assert := assert.New(t)

	s := stack.Attach(make([]stack.Word, 4))
	sc := &Script{Stack: s}

	_, err := sc.Run("overflow.star", `
push(1, 2, 3)
push(4, 5)
`)
	assert.ErrorIs(err, stack.ErrCapacityExceeded)

	var es *ErrScript
	assert.True(errors.As(err, &es))
	assert.Equal("overflow.star", es.Filename)

	// The failed push left nothing behind.
	assert.Equal(3, s.Len())
	assert.Equal(3, s.HighWater())
}

func TestScript_Underflow(t *testing.T) {
	assert := assert.New(t)

	s := stack.Attach(make([]stack.Word, 4))
	sc := &Script{Stack: s}

	for _, src := range []string{
		"push(1, 2)\npop(3)\n",
		"push(1, 2)\ndrop(3)\n",
		"push(1, 2)\npeek(2)\n",
		"push(1, 2)\npoke(5, 1)\n",
	} {
		s.Clear()
		_, err := sc.Run("underflow.star", src)
		assert.ErrorIs(err, stack.ErrUnderflow, src)
		assert.Equal(2, s.Len(), src)
	}
}

func TestScript_BadArgs(t *testing.T) {
	assert := assert.New(t)

	s := stack.Attach(make([]stack.Word, 4))
	sc := &Script{Stack: s}

	_, err := sc.Run("range.star", "push(1, 0x100000000)\n")
	var wr ErrWordRange
	assert.ErrorAs(err, &wr)
	assert.True(s.IsEmpty())

	_, err = sc.Run("type.star", "push('x')\n")
	assert.ErrorAs(err, &wr)

	_, err = sc.Run("kw.star", "push(word=1)\n")
	var kw ErrKeywords
	assert.ErrorAs(err, &kw)

	_, err = sc.Run("syntax.star", "push(\n")
	assert.Error(err)
	assert.False(errors.Is(err, stack.ErrUnderflow))
}

func TestScript_Frames(t *testing.T) {
	assert := assert.New(t)

	s := stack.Attach(make([]stack.Word, 32))
	sc := &Script{Stack: s, Defines: []iter.Seq2[string, string]{s.Defines()}}

	globals, err := sc.Run("testdata/frames.star", nil)
	assert.NoError(err)

	// (32 - 1) / 5 frames
	assert.Equal(30, asInt(t, globals["deepest"]))
	assert.Equal(30, s.HighWater())
	assert.True(s.IsEmpty())

	order := globals["order"].(*starlark.List)
	assert.Equal(6, order.Len())
	assert.Equal(5, asInt(t, order.Index(0)))
	assert.Equal(0, asInt(t, order.Index(5)))
}
