// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mem

// Counting wraps an allocator and counts every storage and lifecycle event
// that passes through it. Containers built on a Counting allocator can be
// audited for leaks: once a container has released its storage,
// [Constructs] == [Destroys] and [Allocs] == [Deallocs].
type Counting[T any] struct {
	Inner Allocator[T]

	Allocs     int
	Deallocs   int
	Constructs int
	Destroys   int
}

func NewCounting[T any](inner Allocator[T]) *Counting[T] {
	return &Counting[T]{Inner: inner}
}

func (c *Counting[T]) Allocate(n int) ([]T, error) {
	s, err := c.Inner.Allocate(n)
	if err != nil {
		return nil, err
	}
	c.Allocs++
	return s, nil
}

func (c *Counting[T]) Deallocate(s []T) {
	c.Deallocs++
	c.Inner.Deallocate(s)
}

func (c *Counting[T]) Construct(p *T, v T) {
	c.Constructs++
	c.Inner.Construct(p, v)
}

func (c *Counting[T]) Destroy(p *T) {
	c.Destroys++
	c.Inner.Destroy(p)
}

// Two Counting allocators are only compatible when they are the same
// instance; otherwise the counters of the adopting side would drift.
func (c *Counting[T]) Compatible(o Allocator[T]) bool {
	oc, ok := o.(*Counting[T])
	return ok && oc == c
}

// Live returns the number of elements currently constructed and not yet
// destroyed.
func (c *Counting[T]) Live() int {
	return c.Constructs - c.Destroys
}
