// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package iterator

// FromSlice returns an iterator over [elts].
func FromSlice[T any](elts ...T) Iterator[T] {
	return &slice[T]{
		elts:  elts,
		index: -1,
	}
}

type slice[T any] struct {
	elts  []T
	index int
}

func (i *slice[T]) Next() bool {
	i.index++
	return i.index < len(i.elts)
}

func (i *slice[T]) Value() T {
	return i.elts[i.index]
}

func (i *slice[T]) Release() {
	i.elts = nil
}
