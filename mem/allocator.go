// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mem

import "errors"

// ErrAllocFailed is returned when an allocator cannot satisfy a request.
var ErrAllocFailed = errors.New("allocation failed")

// Allocator provides raw element storage and element lifecycle management for
// the containers in this module.
//
// Allocate and Deallocate manage storage. Construct and Destroy manage the
// lifetime of individual elements inside that storage; in Go this amounts to
// assigning and zeroing slots, but routing every lifecycle event through the
// allocator lets callers instrument or restrict allocation behavior.
//
// A failed Allocate must not corrupt any state; it reports the failure and
// leaves previously allocated storage untouched.
type Allocator[T any] interface {
	// Allocate returns zeroed storage for [n] elements.
	Allocate(n int) ([]T, error)

	// Deallocate returns storage previously obtained from Allocate. The
	// caller must have already destroyed every live element in [s].
	Deallocate(s []T)

	// Construct starts the lifetime of the element at [p] with value [v].
	Construct(p *T, v T)

	// Destroy ends the lifetime of the element at [p].
	Destroy(p *T)

	// Compatible reports whether storage allocated by [o] may be adopted
	// and later deallocated by this allocator. Containers use this to
	// decide between stealing storage and deep-copying on move.
	Compatible(o Allocator[T]) bool
}

// Heap is the default allocator. It is stateless: storage comes from the Go
// runtime and Destroy zeroes the slot so the garbage collector doesn't hold
// references to values that are no longer live.
type Heap[T any] struct{}

func (Heap[T]) Allocate(n int) ([]T, error) {
	return make([]T, n), nil
}

func (Heap[T]) Deallocate(s []T) {
	ZeroSlice(s)
}

func (Heap[T]) Construct(p *T, v T) {
	*p = v
}

func (Heap[T]) Destroy(p *T) {
	*p = Zero[T]()
}

// All Heap allocators are interchangeable.
func (Heap[T]) Compatible(o Allocator[T]) bool {
	_, ok := o.(Heap[T])
	return ok
}
