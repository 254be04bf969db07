// Package memory implements the word pool that backs owned stacks.
//
// A Pool is a fixed arena of 32-bit words. Allocations are contiguous,
// first-fit, and must be returned with Free exactly once.
package memory
