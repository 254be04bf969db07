// Package stack implements a bounded LIFO stack of 32-bit words.
//
// An interpreter with a small native call stack uses it to hold its own
// continuation frames, so that evaluation of nested expressions can proceed
// in an iterative loop. The stack never interprets the words it holds.
//
// Capacity is fixed when the stack is created, either from a memory pool
// (Allocate) or on top of a caller supplied buffer (Attach). Every mutating
// operation reports failure through its error return and leaves the stack
// untouched when it fails; the multi-word operations (PushN, PopN, Push2
// through Pop5) are all-or-nothing.
//
// A Stack is not safe for concurrent use.
package stack
