// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package eval

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ezrec/wordstack/stack"
)

// Continuation tags, on top of every frame.
const (
	TAG_DONE = stack.Word(0xd0e_0000) // End of evaluation; single word frame.
	TAG_ARGS = stack.Word(0xa55_0000) // Argument fold: acc, op, node, next, tag.

	FRAME_ARGS = 5 // Words in a TAG_ARGS frame.
)

// Evaluator evaluates programs without native recursion. Each pending
// operator application is a continuation frame on Stack.
type Evaluator struct {
	Stack  *stack.Stack
	Logger *zap.Logger // Optional; nil disables logging.

	Steps int // Nodes visited by the last Eval.
}

// NewEvaluator creates an evaluator on top of s.
func NewEvaluator(s *stack.Stack) *Evaluator {
	return &Evaluator{Stack: s}
}

func (ev *Evaluator) log() *zap.Logger {
	if ev.Logger == nil {
		return zap.NewNop()
	}
	return ev.Logger
}

// Depth returns the stack words needed to evaluate prog.
func Depth(prog *Program) int {
	depth := make([]int, len(prog.nodes))
	deepest := 0
	for index, n := range prog.nodes {
		if n.Op == OP_NUM || len(n.Args) == 0 {
			continue
		}
		// Children always follow their parent in the node table.
		for _, arg := range n.Args {
			depth[arg] = depth[index] + FRAME_ARGS
		}
		deepest = max(deepest, depth[index]+FRAME_ARGS)
	}

	return deepest + 1
}

// Eval runs prog to completion. On error the stack is dropped back to the
// depth it had on entry.
func (ev *Evaluator) Eval(prog *Program) (value int32, err error) {
	s := ev.Stack
	base := s.Len()
	ev.Steps = 0

	defer func() {
		if err != nil {
			err = ev.unwind(base, err)
			ev.log().Debug("eval failed", zap.Error(err), zap.Int("high_water", s.HighWater()))
			return
		}
		ev.log().Debug("eval",
			zap.Int32("value", value),
			zap.Int("steps", ev.Steps),
			zap.Int("high_water", s.HighWater()))
	}()

	cur := 0
	err = s.Push(TAG_DONE)
	if err != nil {
		err = ev.fail(prog, cur, fmt.Errorf("%w: %w", ErrOutOfStack, err))
		return
	}

	var val stack.Word

eval:
	for {
		ev.Steps++
		n := &prog.nodes[cur]
		switch {
		case n.Op == OP_NUM:
			val = n.Value
		case len(n.Args) == 0:
			val, err = identity(n.Op)
			if err != nil {
				err = ev.fail(prog, cur, err)
				return
			}
		default:
			err = s.Push5(0, stack.Word(n.Op), stack.Word(cur), 1, TAG_ARGS)
			if err != nil {
				err = ev.fail(prog, cur, fmt.Errorf("%w: %w", ErrOutOfStack, err))
				return
			}
			cur = n.Args[0]
			continue eval
		}

		// Hand val to the innermost continuation.
		for {
			var tag stack.Word
			tag, err = s.Pop()
			if err != nil {
				err = ev.fail(prog, cur, fmt.Errorf("%w: %w", ErrBadFrame, err))
				return
			}

			switch tag {
			case TAG_DONE:
				value = int32(val)
				return
			case TAG_ARGS:
				var next, index, op, acc stack.Word
				next, index, op, acc, err = s.Pop4()
				if err != nil || int(index) >= len(prog.nodes) {
					err = ev.fail(prog, cur, errors.Join(ErrBadFrame, err))
					return
				}
				parent := &prog.nodes[index]

				if next == 1 {
					acc = val
				} else {
					acc, err = apply(Op(op), acc, val)
					if err != nil {
						err = ev.fail(prog, int(index), err)
						return
					}
				}

				if int(next) < len(parent.Args) {
					err = s.Push5(acc, op, index, next+1, TAG_ARGS)
					if err != nil {
						err = ev.fail(prog, int(index), fmt.Errorf("%w: %w", ErrOutOfStack, err))
						return
					}
					cur = parent.Args[next]
					continue eval
				}

				val = acc
				if Op(op) == OP_SUB && len(parent.Args) == 1 {
					val = -val
				}
			default:
				err = ev.fail(prog, cur, fmt.Errorf("%w: tag 0x%08x", ErrBadFrame, uint32(tag)))
				return
			}
		}
	}
}

// unwind drops the stack back to base after err. A stack already below
// base means a frame was popped that Eval never pushed.
func (ev *Evaluator) unwind(base int, err error) error {
	s := ev.Stack
	if s.Len() < base {
		return errors.Join(err, fmt.Errorf("%w: %v", ErrBadFrame, f("stack depth %d below entry depth %d", s.Len(), base)))
	}

	if derr := s.Drop(s.Len() - base); derr != nil {
		return errors.Join(err, derr)
	}

	return err
}

func (ev *Evaluator) fail(prog *Program, index int, err error) error {
	return &ErrRuntime{Pos: prog.nodes[index].Pos, Err: err}
}

func identity(op Op) (val stack.Word, err error) {
	switch op {
	case OP_ADD, OP_SUB:
		val = 0
	case OP_MUL:
		val = 1
	default:
		err = fmt.Errorf("%w: (%v)", ErrArity, op)
	}
	return
}

func apply(op Op, acc stack.Word, val stack.Word) (result stack.Word, err error) {
	switch op {
	case OP_ADD:
		result = acc + val
	case OP_SUB:
		result = acc - val
	case OP_MUL:
		result = acc * val
	case OP_DIV:
		if val == 0 {
			err = ErrDivideByZero
			return
		}
		result = stack.Word(int32(acc) / int32(val))
	default:
		err = fmt.Errorf("%w: op %d", ErrBadFrame, op)
	}
	return
}
