// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package stack

import (
	"fmt"
	"iter"
	"maps"
	"strings"

	"github.com/ezrec/wordstack/memory"
)

const (
	FRAME_MAX = 5 // Largest frame moved by the fixed arity helpers.
)

// Word is an opaque stack element.
type Word = memory.Word

// Stack is a bounded word stack.
//
// Indices [0, Len()) of the backing buffer are live; words above Len() are
// stale and never read.
type Stack struct {
	storage Storage
	data    []Word
	sp      int    // Occupied slots.
	maxSp   int    // High water mark since creation or Clear.
	epoch   uint64 // Bumped by every mutation; invalidates slots.
}

// Allocate creates a stack of capacity words from pool. On failure the
// returned stack has zero capacity and err wraps ErrAllocationFailed.
func Allocate(pool Allocator, capacity int) (s *Stack, err error) {
	s = &Stack{}

	if capacity < 0 {
		err = fmt.Errorf("%w: %w", ErrAllocationFailed, ErrInvalidCount)
		return
	}

	if pool == nil {
		err = fmt.Errorf("%w: %v", ErrAllocationFailed, f("no pool"))
		return
	}

	region, err := pool.Allocate(capacity)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrAllocationFailed, err)
		return
	}

	s.storage = &Owned{Region: region, Pool: pool}
	s.data = s.storage.Words()

	return
}

// Attach creates a stack on top of buffer. The capacity is len(buffer), and
// the stack never frees the buffer.
func Attach(buffer []Word) (s *Stack) {
	s = &Stack{
		storage: &Borrowed{Data: buffer},
		data:    buffer,
	}

	return
}

// Release gives owned storage back to its pool. Borrowed storage is left
// alone. After Release the stack has zero capacity; a second Release
// returns ErrReleased.
func (s *Stack) Release() (err error) {
	if s.storage == nil {
		err = ErrReleased
		return
	}

	err = s.storage.release()
	if err != nil {
		return
	}

	s.storage = nil
	s.data = nil
	s.sp = 0
	s.maxSp = 0
	s.epoch++

	return
}

// Storage returns the backing storage, or nil once released.
func (s *Stack) Storage() Storage {
	return s.storage
}

// Clear empties the stack and resets the high water mark. Buffer contents
// are not erased.
func (s *Stack) Clear() {
	s.sp = 0
	s.maxSp = 0
	s.epoch++
}

// IsEmpty returns true if no words are on the stack.
func (s *Stack) IsEmpty() bool {
	return s.sp == 0
}

// Len returns the number of words on the stack.
func (s *Stack) Len() int {
	return s.sp
}

// Cap returns the capacity in words.
func (s *Stack) Cap() int {
	return len(s.data)
}

// Available returns the number of words that can still be pushed.
func (s *Stack) Available() int {
	return len(s.data) - s.sp
}

// HighWater returns the deepest the stack has been since creation or the
// last Clear.
func (s *Stack) HighWater() int {
	return s.maxSp
}

// Push a word.
func (s *Stack) Push(value Word) (err error) {
	if s.sp == len(s.data) {
		err = ErrCapacityExceeded
		return
	}

	s.data[s.sp] = value
	s.sp++
	s.touch()

	return
}

// Pop a word.
func (s *Stack) Pop() (value Word, err error) {
	if s.sp == 0 {
		err = ErrUnderflow
		return
	}

	s.sp--
	value = s.data[s.sp]
	s.epoch++

	return
}

// Drop discards the top n words.
func (s *Stack) Drop(n int) (err error) {
	switch {
	case n < 0:
		err = ErrInvalidCount
		return
	case n > s.sp:
		err = ErrNeed{Need: n, Avail: s.sp, Err: ErrUnderflow}
		return
	}

	s.sp -= n
	s.epoch++

	return
}

// PeekAt returns a slot for the word depth places below the top; depth 0
// is the top word.
func (s *Stack) PeekAt(depth int) (slot Slot, err error) {
	if depth < 0 || depth >= s.sp {
		err = ErrNeed{Need: depth + 1, Avail: s.sp, Err: ErrUnderflow}
		return
	}

	slot = Slot{stack: s, index: s.sp - 1 - depth, epoch: s.epoch}

	return
}

// Peek returns the word depth places below the top.
func (s *Stack) Peek(depth int) (value Word, err error) {
	slot, err := s.PeekAt(depth)
	if err != nil {
		return
	}

	value = s.data[slot.index]

	return
}

// All iterates from the top of the stack down, yielding depth and word.
func (s *Stack) All() iter.Seq2[int, Word] {
	return func(yield func(int, Word) bool) {
		for depth := range s.sp {
			if !yield(depth, s.data[s.sp-1-depth]) {
				return
			}
		}
	}
}

// Defines for the stack.
func (s *Stack) Defines() iter.Seq2[string, string] {
	return maps.All(map[string]string{
		"STACK_CAPACITY":  fmt.Sprintf("%v", s.Cap()),
		"STACK_FRAME_MAX": fmt.Sprintf("%v", FRAME_MAX),
	})
}

// String returns the stack contents, top first.
func (s *Stack) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "stack: %d/%d (high %d)\n", s.sp, len(s.data), s.maxSp)
	if s.sp == 0 {
		sb.WriteString("  ----_----\n")
	}
	for depth, val := range s.All() {
		fmt.Fprintf(&sb, "% 5d: %04X_%04X\n", depth, val>>16, val&0xffff)
	}

	return sb.String()
}

func (s *Stack) touch() {
	s.epoch++
	s.maxSp = max(s.maxSp, s.sp)
}
