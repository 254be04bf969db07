// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package stack

import (
	"github.com/ezrec/wordstack/memory"
)

// Allocator is the memory pool a stack draws owned storage from.
type Allocator interface {
	Allocate(words int) (region memory.Region, err error)
	Free(region memory.Region) (err error)
}

// Storage is the backing buffer of a stack: either Owned or Borrowed.
type Storage interface {
	// Words returns the backing buffer.
	Words() []Word

	release() error
}

// Owned storage was allocated from a pool, and goes back to it on release.
type Owned struct {
	Region memory.Region
	Pool   Allocator
}

func (o *Owned) Words() []Word {
	return o.Region.Words
}

func (o *Owned) release() error {
	return o.Pool.Free(o.Region)
}

// Borrowed storage belongs to the caller. Releasing it does nothing.
type Borrowed struct {
	Data []Word
}

func (b *Borrowed) Words() []Word {
	return b.Data
}

func (b *Borrowed) release() error {
	return nil
}
