// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package vector implements a growable sequence stored contiguously, with
// amortized O(1) append and O(1) random access.
//
// Unlike a plain slice, a Vector routes all storage and element lifecycle
// through an allocation policy, so growth, shrinking and destruction can be
// budgeted and audited. Relocation on growth copies every element into the
// new storage before the old storage is released.
//
// A Vector is a single-owner value: concurrent use from multiple goroutines
// must be serialized by the caller.
package vector

import (
	"errors"

	"github.com/ava-labs/collections/iterator"
	"github.com/ava-labs/collections/mem"
)

// ErrOutOfRange is returned by checked accessors and position-taking
// modifiers when the index is outside the live range.
var ErrOutOfRange = errors.New("index out of range")

// Vector is a contiguous growable sequence of T.
//
// The zero value is an empty vector on the default heap allocator.
type Vector[T any] struct {
	// data is the allocated storage; the live elements are the prefix
	// [0, size).
	data []T
	size int

	alloc mem.Allocator[T]
}

// New returns an empty vector backed by the default heap allocator. No
// storage is allocated until the first element arrives.
func New[T any]() *Vector[T] {
	return &Vector[T]{alloc: mem.Heap[T]{}}
}

// NewWithAllocator returns an empty vector that obtains all storage from
// [alloc].
func NewWithAllocator[T any](alloc mem.Allocator[T]) *Vector[T] {
	return &Vector[T]{alloc: alloc}
}

// NewCount returns a vector of [n] zero-value elements.
func NewCount[T any](n int) *Vector[T] {
	v, _ := NewCountWithAllocator[T](n, mem.Heap[T]{})
	return v
}

// NewCountWithAllocator returns a vector of [n] zero-value elements backed
// by [alloc].
func NewCountWithAllocator[T any](n int, alloc mem.Allocator[T]) (*Vector[T], error) {
	return newFilled(n, alloc, func(int) T { return mem.Zero[T]() })
}

// NewRepeat returns a vector of [n] copies of [v].
func NewRepeat[T any](n int, v T) *Vector[T] {
	out, _ := newFilled(n, mem.Heap[T]{}, func(int) T { return v })
	return out
}

// FromSlice returns a vector holding the elements of [vs] in order.
func FromSlice[T any](vs []T) *Vector[T] {
	out, _ := newFilled(len(vs), mem.Heap[T]{}, func(i int) T { return vs[i] })
	return out
}

// Of returns a vector holding the given elements in order.
func Of[T any](vs ...T) *Vector[T] {
	return FromSlice(vs)
}

// NewFromIterator returns a vector holding the elements yielded by [it], in
// order. The source is consumed in a single pass and released.
func NewFromIterator[T any](it iterator.Iterator[T]) *Vector[T] {
	defer it.Release()

	v := New[T]()
	for it.Next() {
		_ = v.PushBack(it.Value())
	}
	return v
}

func newFilled[T any](n int, alloc mem.Allocator[T], value func(int) T) (*Vector[T], error) {
	v := &Vector[T]{alloc: alloc}
	if n == 0 {
		return v, nil
	}
	data, err := alloc.Allocate(n)
	if err != nil {
		return nil, err
	}
	v.data = data
	for i := 0; i < n; i++ {
		alloc.Construct(&v.data[i], value(i))
	}
	v.size = n
	return v, nil
}

// Clone returns a deep copy of the vector sharing its allocator. The copy's
// capacity is trimmed to its length.
func (v *Vector[T]) Clone() (*Vector[T], error) {
	return v.CloneWithAllocator(v.alloc)
}

// CloneWithAllocator returns a deep copy of the vector backed by [alloc].
func (v *Vector[T]) CloneWithAllocator(alloc mem.Allocator[T]) (*Vector[T], error) {
	return newFilled(v.size, alloc, v.Get)
}

// Move transfers the contents of [src] into a new vector in O(1) by stealing
// its storage. [src] is left valid and empty.
func Move[T any](src *Vector[T]) *Vector[T] {
	dst := &Vector[T]{
		data:  src.data,
		size:  src.size,
		alloc: src.alloc,
	}
	src.data = nil
	src.size = 0
	return dst
}

// MoveWithAllocator transfers the contents of [src] into a new vector backed
// by [alloc]. Storage is stolen when [alloc] is compatible with the source's
// allocator and copied element-wise otherwise. Either way [src] is left
// valid and empty.
func MoveWithAllocator[T any](src *Vector[T], alloc mem.Allocator[T]) (*Vector[T], error) {
	if alloc.Compatible(src.alloc) {
		dst := Move(src)
		dst.alloc = alloc
		return dst, nil
	}

	dst, err := newFilled(src.size, alloc, src.Get)
	if err != nil {
		return nil, err
	}
	src.Release()
	return dst, nil
}

// Release destroys every live element and returns the storage to the
// allocator. The vector remains usable and empty.
func (v *Vector[T]) Release() {
	for i := 0; i < v.size; i++ {
		v.alloc.Destroy(&v.data[i])
	}
	if v.data != nil {
		v.alloc.Deallocate(v.data)
	}
	v.data = nil
	v.size = 0
}

// CopyFrom replaces the contents of the vector with a copy of [other],
// reusing existing capacity where possible. Copying a vector onto itself is
// a no-op.
func (v *Vector[T]) CopyFrom(other *Vector[T]) error {
	if v == other {
		return nil
	}
	return v.assign(other.size, other.Get)
}

// MoveFrom replaces the contents of the vector with the contents of [other],
// which is left valid and empty. Storage is stolen when the allocators are
// compatible. Moving a vector onto itself is a no-op.
func (v *Vector[T]) MoveFrom(other *Vector[T]) error {
	if v == other {
		return nil
	}
	v.init()
	if v.alloc.Compatible(other.alloc) {
		v.Release()
		v.data = other.data
		v.size = other.size
		other.data = nil
		other.size = 0
		return nil
	}

	if err := v.assign(other.size, other.Get); err != nil {
		return err
	}
	other.Release()
	return nil
}

// Assign replaces the contents of the vector with [n] copies of [val].
func (v *Vector[T]) Assign(n int, val T) error {
	return v.assign(n, func(int) T { return val })
}

// AssignSlice replaces the contents of the vector with the elements of [vs].
func (v *Vector[T]) AssignSlice(vs []T) error {
	return v.assign(len(vs), func(i int) T { return vs[i] })
}

// AssignIterator replaces the contents of the vector with the elements
// yielded by [it], consumed in a single pass.
func (v *Vector[T]) AssignIterator(it iterator.Iterator[T]) error {
	defer it.Release()

	v.Clear()
	for it.Next() {
		if err := v.PushBack(it.Value()); err != nil {
			return err
		}
	}
	return nil
}

func (v *Vector[T]) assign(n int, value func(int) T) error {
	v.init()
	if n > v.Cap() {
		// Fresh storage: build the new contents before touching the old.
		data, err := v.alloc.Allocate(n)
		if err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			v.alloc.Construct(&data[i], value(i))
		}
		v.Release()
		v.data = data
		v.size = n
		return nil
	}

	overlap := v.size
	if n < overlap {
		overlap = n
	}
	for i := 0; i < overlap; i++ {
		v.data[i] = value(i)
	}
	for i := overlap; i < n; i++ {
		v.alloc.Construct(&v.data[i], value(i))
	}
	for i := n; i < v.size; i++ {
		v.alloc.Destroy(&v.data[i])
	}
	v.size = n
	return nil
}

// Len returns the number of live elements.
func (v *Vector[T]) Len() int {
	return v.size
}

// Cap returns the number of elements the vector can hold without
// reallocating.
func (v *Vector[T]) Cap() int {
	return len(v.data)
}

// Empty returns whether the vector holds no elements.
func (v *Vector[T]) Empty() bool {
	return v.size == 0
}

// Allocator returns the allocation policy backing the vector.
func (v *Vector[T]) Allocator() mem.Allocator[T] {
	return v.alloc
}

// Get returns the element at offset [i]. Like slice indexing, it panics when
// [i] is out of range.
func (v *Vector[T]) Get(i int) T {
	v.check(i)
	return v.data[i]
}

// Set overwrites the element at offset [i]. Like slice indexing, it panics
// when [i] is out of range.
func (v *Vector[T]) Set(i int, val T) {
	v.check(i)
	v.data[i] = val
}

// At returns the element at offset [i], or ErrOutOfRange when [i] is not a
// valid offset.
func (v *Vector[T]) At(i int) (T, error) {
	if i < 0 || i >= v.size {
		return mem.Zero[T](), ErrOutOfRange
	}
	return v.data[i], nil
}

// SetAt overwrites the element at offset [i], or returns ErrOutOfRange when
// [i] is not a valid offset.
func (v *Vector[T]) SetAt(i int, val T) error {
	if i < 0 || i >= v.size {
		return ErrOutOfRange
	}
	v.data[i] = val
	return nil
}

// Front returns the first element. Returns false if the vector is empty.
func (v *Vector[T]) Front() (T, bool) {
	if v.size == 0 {
		return mem.Zero[T](), false
	}
	return v.data[0], true
}

// Back returns the last element. Returns false if the vector is empty.
func (v *Vector[T]) Back() (T, bool) {
	if v.size == 0 {
		return mem.Zero[T](), false
	}
	return v.data[v.size-1], true
}

// Reserve grows the capacity to at least [n] elements. Shrinking requests
// are ignored. Strong guarantee: on allocation failure the vector is
// unchanged; on success every element has been relocated and outstanding
// element pointers are stale.
func (v *Vector[T]) Reserve(n int) error {
	if n <= v.Cap() {
		return nil
	}
	return v.relocate(n)
}

// ShrinkToFit trims the capacity to the current length, releasing the spare
// storage. A vector shrunk while empty ends up with no storage at all.
func (v *Vector[T]) ShrinkToFit() error {
	if v.size == v.Cap() {
		return nil
	}
	if v.size == 0 {
		if v.data != nil {
			v.alloc.Deallocate(v.data)
			v.data = nil
		}
		return nil
	}
	return v.relocate(v.size)
}

// init gives a zero-value vector its default allocator.
func (v *Vector[T]) init() {
	if v.alloc == nil {
		v.alloc = mem.Heap[T]{}
	}
}

// relocate moves every live element into fresh storage of capacity [n].
func (v *Vector[T]) relocate(n int) error {
	v.init()
	data, err := v.alloc.Allocate(n)
	if err != nil {
		return err
	}
	for i := 0; i < v.size; i++ {
		v.alloc.Construct(&data[i], v.data[i])
		v.alloc.Destroy(&v.data[i])
	}
	if v.data != nil {
		v.alloc.Deallocate(v.data)
	}
	v.data = data
	return nil
}

// grownCap returns the capacity to relocate to when room for [need] more
// elements is required: double the current capacity, or exactly enough when
// doubling falls short.
func (v *Vector[T]) grownCap(need int) int {
	newCap := 2 * v.Cap()
	if newCap < v.size+need {
		newCap = v.size + need
	}
	if newCap == 0 {
		newCap = 1
	}
	return newCap
}

// PushBack appends [val]. Amortized O(1): the vector doubles its capacity
// when full. On allocation failure the vector is unchanged.
func (v *Vector[T]) PushBack(val T) error {
	if v.size == v.Cap() {
		if err := v.relocate(v.grownCap(1)); err != nil {
			return err
		}
	}
	v.alloc.Construct(&v.data[v.size], val)
	v.size++
	return nil
}

// PopBack removes and returns the last element. Returns false if the vector
// is empty. Capacity is retained.
func (v *Vector[T]) PopBack() (T, bool) {
	if v.size == 0 {
		return mem.Zero[T](), false
	}
	v.size--
	out := v.data[v.size]
	v.alloc.Destroy(&v.data[v.size])
	return out, true
}

// Insert places [val] at offset [i], shifting the tail one slot toward the
// back. Inserting at Len() appends.
func (v *Vector[T]) Insert(i int, val T) error {
	return v.insert(i, 1, func(int) T { return val })
}

// InsertN places [n] copies of [val] at offset [i].
func (v *Vector[T]) InsertN(i, n int, val T) error {
	return v.insert(i, n, func(int) T { return val })
}

// InsertSlice places the elements of [vs] at offset [i], in order.
func (v *Vector[T]) InsertSlice(i int, vs []T) error {
	return v.insert(i, len(vs), func(k int) T { return vs[k] })
}

func (v *Vector[T]) insert(i, count int, value func(int) T) error {
	if i < 0 || i > v.size {
		return ErrOutOfRange
	}
	if count == 0 {
		return nil
	}
	if v.size+count > v.Cap() {
		if err := v.relocate(v.grownCap(count)); err != nil {
			return err
		}
	}

	// Shift the tail back to front. Slots past the old size are fresh
	// storage and constructed; the rest are plain overwrites.
	for k := v.size - 1; k >= i; k-- {
		dst := k + count
		if dst >= v.size {
			v.alloc.Construct(&v.data[dst], v.data[k])
		} else {
			v.data[dst] = v.data[k]
		}
	}
	for k := 0; k < count; k++ {
		dst := i + k
		if dst >= v.size {
			v.alloc.Construct(&v.data[dst], value(k))
		} else {
			v.data[dst] = value(k)
		}
	}
	v.size += count
	return nil
}

// Erase removes the element at offset [i], shifting the tail one slot
// toward the front.
func (v *Vector[T]) Erase(i int) error {
	return v.EraseRange(i, i+1)
}

// EraseRange removes the elements in the half-open offset range [i, j). The
// tail shifts over the gap and the vacated slots are destroyed. Capacity is
// retained.
func (v *Vector[T]) EraseRange(i, j int) error {
	if i < 0 || j < i || j > v.size {
		return ErrOutOfRange
	}
	m := j - i
	if m == 0 {
		return nil
	}
	copy(v.data[i:], v.data[j:v.size])
	for k := v.size - m; k < v.size; k++ {
		v.alloc.Destroy(&v.data[k])
	}
	v.size -= m
	return nil
}

// Clear destroys every element. Capacity is retained.
func (v *Vector[T]) Clear() {
	for i := 0; i < v.size; i++ {
		v.alloc.Destroy(&v.data[i])
	}
	v.size = 0
}

// List returns the elements of the vector as a freshly allocated slice.
func (v *Vector[T]) List() []T {
	out := make([]T, v.size)
	copy(out, v.data[:v.size])
	return out
}

// Iter returns a single-pass view over the vector's elements. The vector
// must not be mutated while the view is in use.
func (v *Vector[T]) Iter() iterator.Iterator[T] {
	return &vectorIterator[T]{v: v, index: -1}
}

type vectorIterator[T any] struct {
	v     *Vector[T]
	index int
}

func (i *vectorIterator[T]) Next() bool {
	if i.v == nil {
		return false
	}
	i.index++
	return i.index < i.v.size
}

func (i *vectorIterator[T]) Value() T {
	return i.v.data[i.index]
}

func (i *vectorIterator[T]) Release() {
	i.v = nil
}

func (v *Vector[T]) check(i int) {
	if i < 0 || i >= v.size {
		panic("vector: index out of range")
	}
}
