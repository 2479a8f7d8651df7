// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package iterator

// Iterator defines an interface for consuming a sequence of elements exactly
// once, in order. It is the single-pass source accepted by the container
// constructors in this module: the consumer has no way to learn the length of
// the sequence upfront and may only walk it forward.
type Iterator[T any] interface {
	// Next attempts to move the iterator to the next element in the
	// sequence. It returns false once there are no more elements.
	Next() bool

	// Value returns the element the iterator is currently at. Value should
	// only be called after a call to Next which returned true.
	Value() T

	// Release any resources associated with the iterator. Must be called
	// after the iterator is no longer needed.
	Release()
}
