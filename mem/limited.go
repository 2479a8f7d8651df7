// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mem

import "fmt"

// Limited wraps an allocator with a budget on the number of Allocate calls it
// will serve. Once the budget is exhausted every Allocate fails with
// [ErrAllocFailed]. This is primarily useful for exercising the failure paths
// of container growth.
type Limited[T any] struct {
	Inner Allocator[T]

	// Remaining Allocate calls that will still be served.
	Remaining int
}

func NewLimited[T any](inner Allocator[T], budget int) *Limited[T] {
	return &Limited[T]{
		Inner:     inner,
		Remaining: budget,
	}
}

func (l *Limited[T]) Allocate(n int) ([]T, error) {
	if l.Remaining <= 0 {
		return nil, fmt.Errorf("%w: allocation budget exhausted", ErrAllocFailed)
	}
	l.Remaining--
	return l.Inner.Allocate(n)
}

func (l *Limited[T]) Deallocate(s []T) {
	l.Inner.Deallocate(s)
}

func (l *Limited[T]) Construct(p *T, v T) {
	l.Inner.Construct(p, v)
}

func (l *Limited[T]) Destroy(p *T) {
	l.Inner.Destroy(p)
}

// A Limited allocator hands out storage accounted against its own budget, so
// it only adopts storage from itself.
func (l *Limited[T]) Compatible(o Allocator[T]) bool {
	ol, ok := o.(*Limited[T])
	return ok && ol == l
}
