// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package deque

import "github.com/ava-labs/collections/iterator"

// Iterator is a random-access cursor into a deque. It names an element slot
// by its directory index and in-block offset, resolved against the owning
// deque at dereference time; navigation is pure integer arithmetic and only
// Get, Ref and Set consult the directory.
//
// Iterators are invalidated by any operation that grows the directory or
// releases the block they point into. Mid-sequence insertion and removal
// invalidate iterators on the shifted side; pushes at the ends leave interior
// iterators valid. Dereferencing an invalidated iterator panics or yields
// the wrong element, it never corrupts the deque.
type Iterator[T any] struct {
	d    *Deque[T]
	node int
	cur  int
}

// Begin returns an iterator at the first element. For an empty deque,
// Begin() equals End().
func (d *Deque[T]) Begin() Iterator[T] {
	return Iterator[T]{d: d, node: d.start.node, cur: d.start.cur}
}

// End returns the iterator one past the last element.
func (d *Deque[T]) End() Iterator[T] {
	return Iterator[T]{d: d, node: d.finish.node, cur: d.finish.cur}
}

// Get returns the element the iterator points at.
func (it Iterator[T]) Get() T {
	return *it.Ref()
}

// Ref returns a pointer to the element the iterator points at. The pointer
// stays valid until the element's block is released, even across directory
// growth.
func (it Iterator[T]) Ref() *T {
	return it.d.ref(position{node: it.node, cur: it.cur})
}

// Set overwrites the element the iterator points at.
func (it Iterator[T]) Set(v T) {
	*it.Ref() = v
}

// Next returns the iterator advanced by one element, stepping to the start
// of the next block when the current block is exhausted.
func (it Iterator[T]) Next() Iterator[T] {
	it.cur++
	if it.cur == it.d.blockCap {
		it.node++
		it.cur = 0
	}
	return it
}

// Prev returns the iterator moved back one element, landing on the last slot
// of the previous block when the current slot is the block's first.
func (it Iterator[T]) Prev() Iterator[T] {
	if it.cur == 0 {
		it.node--
		it.cur = it.d.blockCap
	}
	it.cur--
	return it
}

// Add returns the iterator advanced by [n] elements ([n] may be negative).
// O(1): the target block is found by floored division of the combined
// offset, borrowing a block when the remainder is negative.
func (it Iterator[T]) Add(n int) Iterator[T] {
	p := it.d.seek(position{node: it.node, cur: it.cur}, n)
	it.node = p.node
	it.cur = p.cur
	return it
}

// Sub returns the iterator moved back by [n] elements.
func (it Iterator[T]) Sub(n int) Iterator[T] {
	return it.Add(-n)
}

// Distance returns the number of elements from [o] to [it]: positive when
// [it] is further along the sequence.
func (it Iterator[T]) Distance(o Iterator[T]) int {
	return it.d.dist(
		position{node: it.node, cur: it.cur},
		position{node: o.node, cur: o.cur},
	)
}

// Index returns the element offset of the iterator from the front of the
// deque.
func (it Iterator[T]) Index() int {
	return it.Distance(it.d.Begin())
}

// Equal reports whether both iterators name the same position.
func (it Iterator[T]) Equal(o Iterator[T]) bool {
	return it.node == o.node && it.cur == o.cur
}

// Less reports whether [it] precedes [o] in sequence order. Positions are
// ordered by block first and in-block offset second, which agrees with
// element order even though blocks are scattered in memory.
func (it Iterator[T]) Less(o Iterator[T]) bool {
	if it.node != o.node {
		return it.node < o.node
	}
	return it.cur < o.cur
}

// ReverseIterator walks a deque back to front. It stores the position one
// past the element it denotes, so RBegin holds End and REnd holds Begin.
type ReverseIterator[T any] struct {
	base Iterator[T]
}

// RBegin returns a reverse iterator at the last element.
func (d *Deque[T]) RBegin() ReverseIterator[T] {
	return ReverseIterator[T]{base: d.End()}
}

// REnd returns the reverse iterator one past the first element.
func (d *Deque[T]) REnd() ReverseIterator[T] {
	return ReverseIterator[T]{base: d.Begin()}
}

// Base returns the forward iterator one past the element this reverse
// iterator denotes.
func (r ReverseIterator[T]) Base() Iterator[T] {
	return r.base
}

func (r ReverseIterator[T]) Get() T {
	return r.base.Prev().Get()
}

func (r ReverseIterator[T]) Ref() *T {
	return r.base.Prev().Ref()
}

func (r ReverseIterator[T]) Set(v T) {
	*r.Ref() = v
}

func (r ReverseIterator[T]) Next() ReverseIterator[T] {
	r.base = r.base.Prev()
	return r
}

func (r ReverseIterator[T]) Prev() ReverseIterator[T] {
	r.base = r.base.Next()
	return r
}

func (r ReverseIterator[T]) Add(n int) ReverseIterator[T] {
	r.base = r.base.Sub(n)
	return r
}

func (r ReverseIterator[T]) Sub(n int) ReverseIterator[T] {
	r.base = r.base.Add(n)
	return r
}

// Distance returns the number of elements from [o] to [r] in reverse order.
func (r ReverseIterator[T]) Distance(o ReverseIterator[T]) int {
	return o.base.Distance(r.base)
}

func (r ReverseIterator[T]) Equal(o ReverseIterator[T]) bool {
	return r.base.Equal(o.base)
}

// Iter returns a single-pass view over the deque's elements. The deque must
// not be mutated while the view is in use.
func (d *Deque[T]) Iter() iterator.Iterator[T] {
	return &dequeIterator[T]{d: d, index: -1}
}

type dequeIterator[T any] struct {
	d     *Deque[T]
	index int
}

func (i *dequeIterator[T]) Next() bool {
	if i.d == nil {
		return false
	}
	i.index++
	return i.index < i.d.Len()
}

func (i *dequeIterator[T]) Value() T {
	return i.d.Get(i.index)
}

func (i *dequeIterator[T]) Release() {
	i.d = nil
}
