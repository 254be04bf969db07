// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package memory

import (
	"fmt"
	"iter"
	"maps"

	"github.com/kelindar/bitmap"
	"go.uber.org/zap"
)

// Word is the fixed width cell handed out by a Pool.
type Word uint32

// Region is a contiguous run of words allocated from a Pool.
type Region struct {
	Offset int    // Offset of the first word in the pool arena.
	Words  []Word // View of the allocated words.

	pool *Pool
	gen  uint64
}

// Len returns the number of words in the region.
func (r Region) Len() int {
	return len(r.Words)
}

// allocation is the pool's record of a live region.
type allocation struct {
	words int
	gen   uint64
}

// Pool is a first-fit word arena. Allocated words are tracked in a bitmap,
// live regions by their starting offset. Every allocation gets a new
// generation, so a stale copy of a freed region is never mistaken for a
// later one at the same offset.
type Pool struct {
	Logger *zap.Logger // Optional; nil disables logging.

	arena   []Word
	used    bitmap.Bitmap
	regions map[int]allocation
	gen     uint64
}

// NewPool creates a pool of the given number of words.
func NewPool(words int) (p *Pool) {
	if words < 0 {
		words = 0
	}

	p = &Pool{
		arena:   make([]Word, words),
		regions: map[int]allocation{},
	}
	if words > 0 {
		p.used.Grow(uint32(words - 1))
	}

	return
}

func (p *Pool) log() *zap.Logger {
	if p.Logger == nil {
		return zap.NewNop()
	}
	return p.Logger
}

// Defines for the pool.
func (p *Pool) Defines() iter.Seq2[string, string] {
	return maps.All(map[string]string{
		"POOL_WORDS": fmt.Sprintf("%v", p.Size()),
	})
}

// Size of the pool arena in words.
func (p *Pool) Size() int {
	return len(p.arena)
}

// Used returns the number of allocated words.
func (p *Pool) Used() int {
	return p.used.Count()
}

// Available returns the number of free words, contiguous or not.
func (p *Pool) Available() int {
	return p.Size() - p.Used()
}

// Largest returns the length of the longest free run.
func (p *Pool) Largest() (largest int) {
	run := 0
	for n := range p.arena {
		if p.used.Contains(uint32(n)) {
			run = 0
			continue
		}
		run++
		largest = max(largest, run)
	}

	return
}

// Allocate reserves a zeroed run of words. A zero length request always
// succeeds with an empty region.
func (p *Pool) Allocate(words int) (region Region, err error) {
	switch {
	case words < 0:
		err = fmt.Errorf("%w: %v", ErrInvalidSize, words)
		return
	case words == 0:
		region = Region{pool: p}
		return
	}

	offset, ok := p.firstFit(words)
	if !ok {
		p.log().Debug("pool exhausted",
			zap.Int("words", words),
			zap.Int("available", p.Available()),
			zap.Int("largest", p.Largest()))
		err = fmt.Errorf("%w: %v", ErrPoolExhausted, f("need %d words, largest free run %d", words, p.Largest()))
		return
	}

	for n := offset; n < offset+words; n++ {
		p.used.Set(uint32(n))
	}
	p.gen++
	p.regions[offset] = allocation{words: words, gen: p.gen}

	region = Region{
		Offset: offset,
		Words:  p.arena[offset : offset+words : offset+words],
		pool:   p,
		gen:    p.gen,
	}
	clear(region.Words)

	p.log().Debug("pool allocate", zap.Int("offset", offset), zap.Int("words", words))

	return
}

// Free returns a region to the pool.
func (p *Pool) Free(region Region) (err error) {
	if region.pool != p {
		err = ErrInvalidFree
		return
	}

	if region.Len() == 0 {
		return
	}

	live, ok := p.regions[region.Offset]
	if !ok || live.words != region.Len() || live.gen != region.gen {
		err = ErrInvalidFree
		return
	}
	words := live.words

	for n := region.Offset; n < region.Offset+words; n++ {
		p.used.Remove(uint32(n))
	}
	delete(p.regions, region.Offset)

	p.log().Debug("pool free", zap.Int("offset", region.Offset), zap.Int("words", words))

	return
}

func (p *Pool) firstFit(words int) (offset int, ok bool) {
	run := 0
	for n := range p.arena {
		if p.used.Contains(uint32(n)) {
			run = 0
			continue
		}
		run++
		if run == words {
			offset = n - words + 1
			ok = true
			return
		}
	}

	return
}
