// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package deque implements a double-ended sequence with amortized O(1)
// insertion and removal at both ends and O(1) random access.
//
// Storage is segmented: elements live in fixed-capacity blocks that are
// allocated independently and addressed through a resizable directory of
// block handles. Growing the deque never moves existing elements, only the
// directory of handles, so pushes at either end leave interior elements in
// place. Mid-sequence insertion and removal shift whichever half of the
// sequence is cheaper to move.
//
// A Deque is a single-owner value: concurrent use from multiple goroutines
// must be serialized by the caller.
package deque

import (
	"errors"
	"unsafe"

	"github.com/ava-labs/collections/iterator"
	"github.com/ava-labs/collections/mem"
)

// ErrOutOfRange is returned by checked accessors and position-taking
// modifiers when the index is outside the live range.
var ErrOutOfRange = errors.New("index out of range")

// Each block holds roughly this many bytes of elements.
const blockBytes = 512

// blockCapacity returns the number of element slots per block: at least one,
// and as many as fit in blockBytes. Zero-size types get a full block's worth
// of slots.
func blockCapacity[T any]() int {
	var v T
	size := int(unsafe.Sizeof(v))
	switch {
	case size == 0:
		return blockBytes
	case size >= blockBytes:
		return 1
	default:
		return blockBytes / size
	}
}

// position names an element slot as a (directory index, in-block offset)
// pair. Offsets are normalized to [0, blockCap); the one-past-end position of
// a deque whose last block is full names the next directory slot with offset
// zero. Position arithmetic is pure integer math and never touches the
// directory, so positions stay meaningful for slots that have no block yet.
type position struct {
	node int
	cur  int
}

// Deque is a double-ended sequence of T.
//
// The zero value is an empty deque on the default heap allocator. Like a
// deque that has been moved from or released, it holds a nil directory and
// allocates its storage on the first mutation.
type Deque[T any] struct {
	// dir is the block directory. Entries in [start.node, lastNode] hold
	// the live blocks; the entry at finish.node may hold a spare block
	// trailing the live range when finish sits on a block boundary. Every
	// other entry is nil headroom.
	dir [][]T

	// Live elements occupy the half-open range [start, finish).
	start  position
	finish position

	blockCap int
	alloc    mem.Allocator[T]
}

// New returns an empty deque backed by the default heap allocator.
func New[T any]() *Deque[T] {
	d, _ := NewWithAllocator[T](mem.Heap[T]{})
	return d
}

// NewWithAllocator returns an empty deque that obtains all storage from
// [alloc]. The deque pre-allocates a single empty block.
func NewWithAllocator[T any](alloc mem.Allocator[T]) (*Deque[T], error) {
	d := &Deque[T]{
		blockCap: blockCapacity[T](),
		alloc:    alloc,
	}
	if err := d.initialize(0); err != nil {
		return nil, err
	}
	return d, nil
}

// NewCount returns a deque of [n] zero-value elements.
func NewCount[T any](n int) *Deque[T] {
	d, _ := NewCountWithAllocator[T](n, mem.Heap[T]{})
	return d
}

// NewCountWithAllocator returns a deque of [n] zero-value elements backed by
// [alloc]. Exactly the blocks needed for [n] elements are allocated.
func NewCountWithAllocator[T any](n int, alloc mem.Allocator[T]) (*Deque[T], error) {
	return newFilled(n, alloc, func(int) T { return mem.Zero[T]() })
}

// NewRepeat returns a deque of [n] copies of [v].
func NewRepeat[T any](n int, v T) *Deque[T] {
	d, _ := NewRepeatWithAllocator(n, v, mem.Heap[T]{})
	return d
}

// NewRepeatWithAllocator returns a deque of [n] copies of [v] backed by
// [alloc].
func NewRepeatWithAllocator[T any](n int, v T, alloc mem.Allocator[T]) (*Deque[T], error) {
	return newFilled(n, alloc, func(int) T { return v })
}

// FromSlice returns a deque holding the elements of [vs] in order.
func FromSlice[T any](vs []T) *Deque[T] {
	d, _ := newFilled(len(vs), mem.Heap[T]{}, func(i int) T { return vs[i] })
	return d
}

// Of returns a deque holding the given elements in order.
func Of[T any](vs ...T) *Deque[T] {
	return FromSlice(vs)
}

// NewFromIterator returns a deque holding the elements yielded by [it], in
// order. The source is consumed in a single pass and released; since its
// length is unknown upfront the deque grows by pushing at the back, accepting
// some block over-allocation.
func NewFromIterator[T any](it iterator.Iterator[T]) *Deque[T] {
	defer it.Release()

	d := New[T]()
	for it.Next() {
		_ = d.PushBack(it.Value())
	}
	return d
}

// newFilled builds a deque of exactly [n] elements produced by [value]. The
// element count is known upfront, so exactly ceil(n/blockCap) blocks are
// allocated. On allocation failure nothing is leaked and no deque is
// returned.
func newFilled[T any](n int, alloc mem.Allocator[T], value func(int) T) (*Deque[T], error) {
	d := &Deque[T]{
		blockCap: blockCapacity[T](),
		alloc:    alloc,
	}
	nblocks := (n + d.blockCap - 1) / d.blockCap
	if err := d.initialize(nblocks); err != nil {
		return nil, err
	}
	d.finish = d.start
	for i := 0; i < n; i++ {
		d.alloc.Construct(d.ref(d.finish), value(i))
		d.finish = d.seek(d.finish, 1)
	}
	return d, nil
}

// Clone returns a deep copy of the deque sharing its allocator.
func (d *Deque[T]) Clone() (*Deque[T], error) {
	return d.CloneWithAllocator(d.alloc)
}

// CloneWithAllocator returns a deep copy of the deque backed by [alloc].
func (d *Deque[T]) CloneWithAllocator(alloc mem.Allocator[T]) (*Deque[T], error) {
	return newFilled(d.Len(), alloc, d.Get)
}

// Move transfers the contents of [src] into a new deque in O(1) by stealing
// its storage. [src] is left valid and empty with a nil directory; its next
// mutation re-initializes it.
func Move[T any](src *Deque[T]) *Deque[T] {
	dst := &Deque[T]{
		dir:      src.dir,
		start:    src.start,
		finish:   src.finish,
		blockCap: src.blockCap,
		alloc:    src.alloc,
	}
	src.forget()
	return dst
}

// MoveWithAllocator transfers the contents of [src] into a new deque backed
// by [alloc]. When [alloc] is compatible with the source's allocator the
// storage is stolen in O(1); otherwise every element is copied into fresh
// storage and the source's storage is released. Either way [src] is left
// valid and empty.
func MoveWithAllocator[T any](src *Deque[T], alloc mem.Allocator[T]) (*Deque[T], error) {
	if alloc.Compatible(src.alloc) {
		dst := Move(src)
		dst.alloc = alloc
		return dst, nil
	}

	dst, err := newFilled(src.Len(), alloc, src.Get)
	if err != nil {
		return nil, err
	}
	src.Release()
	return dst, nil
}

// forget drops the deque's storage without destroying it, leaving the deque
// in the valid empty moved-from state.
func (d *Deque[T]) forget() {
	d.dir = nil
	d.start = position{}
	d.finish = position{}
}

// Release destroys every live element and returns all blocks and the
// directory to the allocator. The deque remains usable: its next mutation
// allocates a fresh directory.
func (d *Deque[T]) Release() {
	if d.dir == nil {
		return
	}
	for p := d.start; p != d.finish; p = d.seek(p, 1) {
		d.alloc.Destroy(d.ref(p))
	}
	// Spare blocks can trail the live range, so every directory entry is
	// checked, not just the live run.
	for _, b := range d.dir {
		if b != nil {
			d.alloc.Deallocate(b)
		}
	}
	d.forget()
}

// CopyFrom replaces the contents of the deque with a copy of [other].
// Existing storage is reused: when the deque already holds at least
// other.Len() elements the prefix is overwritten in place and the surplus
// tail destroyed, otherwise the overwritten prefix is extended with pushes.
// Copying a deque onto itself is a no-op.
func (d *Deque[T]) CopyFrom(other *Deque[T]) error {
	if d == other {
		return nil
	}
	return d.assign(other.Len(), other.Get)
}

// MoveFrom replaces the contents of the deque with the contents of [other],
// which is left valid and empty. Storage is stolen when the allocators are
// compatible and copied element-wise otherwise. Moving a deque onto itself
// is a no-op.
func (d *Deque[T]) MoveFrom(other *Deque[T]) error {
	if d == other {
		return nil
	}
	if d.alloc.Compatible(other.alloc) {
		d.Release()
		d.dir = other.dir
		d.start = other.start
		d.finish = other.finish
		d.blockCap = other.blockCap
		other.forget()
		return nil
	}

	if err := d.assign(other.Len(), other.Get); err != nil {
		return err
	}
	other.Release()
	return nil
}

// Assign replaces the contents of the deque with [n] copies of [v].
func (d *Deque[T]) Assign(n int, v T) error {
	return d.assign(n, func(int) T { return v })
}

// AssignSlice replaces the contents of the deque with the elements of [vs].
func (d *Deque[T]) AssignSlice(vs []T) error {
	return d.assign(len(vs), func(i int) T { return vs[i] })
}

// AssignIterator replaces the contents of the deque with the elements
// yielded by [it], consumed in a single pass.
func (d *Deque[T]) AssignIterator(it iterator.Iterator[T]) error {
	defer it.Release()

	d.Clear()
	for it.Next() {
		if err := d.PushBack(it.Value()); err != nil {
			return err
		}
	}
	return nil
}

func (d *Deque[T]) assign(n int, value func(int) T) error {
	if err := d.init(); err != nil {
		return err
	}

	have := d.Len()
	if have >= n {
		p := d.start
		for i := 0; i < n; i++ {
			*d.ref(p) = value(i)
			p = d.seek(p, 1)
		}
		d.truncateTo(p)
		return nil
	}

	p := d.start
	for i := 0; i < have; i++ {
		*d.ref(p) = value(i)
		p = d.seek(p, 1)
	}
	for i := have; i < n; i++ {
		if err := d.PushBack(value(i)); err != nil {
			return err
		}
	}
	return nil
}

// Len returns the number of live elements.
func (d *Deque[T]) Len() int {
	return d.dist(d.finish, d.start)
}

// Empty returns whether the deque holds no elements.
func (d *Deque[T]) Empty() bool {
	return d.Len() == 0
}

// Allocator returns the allocation policy backing the deque.
func (d *Deque[T]) Allocator() mem.Allocator[T] {
	return d.alloc
}

// Get returns the element at offset [i] from the front. Like slice indexing,
// it panics when [i] is out of range.
func (d *Deque[T]) Get(i int) T {
	return *d.ref(d.checkedPos(i))
}

// Set overwrites the element at offset [i]. Like slice indexing, it panics
// when [i] is out of range.
func (d *Deque[T]) Set(i int, v T) {
	*d.ref(d.checkedPos(i)) = v
}

// At returns the element at offset [i], or ErrOutOfRange when [i] is not a
// valid offset.
func (d *Deque[T]) At(i int) (T, error) {
	if i < 0 || i >= d.Len() {
		return mem.Zero[T](), ErrOutOfRange
	}
	return d.Get(i), nil
}

// SetAt overwrites the element at offset [i], or returns ErrOutOfRange when
// [i] is not a valid offset.
func (d *Deque[T]) SetAt(i int, v T) error {
	if i < 0 || i >= d.Len() {
		return ErrOutOfRange
	}
	d.Set(i, v)
	return nil
}

// Front returns the first element. Returns false if the deque is empty.
func (d *Deque[T]) Front() (T, bool) {
	if d.Empty() {
		return mem.Zero[T](), false
	}
	return *d.ref(d.start), true
}

// Back returns the last element. Returns false if the deque is empty.
func (d *Deque[T]) Back() (T, bool) {
	if d.Empty() {
		return mem.Zero[T](), false
	}
	return *d.ref(d.seek(d.finish, -1)), true
}

// PushBack appends [v]. Amortized O(1): the fast path constructs into spare
// room in the last block; the slow path allocates one block, growing the
// directory first if its back headroom is gone. On allocation failure the
// deque is unchanged. Pushes never invalidate interior iterators, only
// end-boundary ones.
func (d *Deque[T]) PushBack(v T) error {
	if err := d.init(); err != nil {
		return err
	}
	if d.finish.cur == 0 {
		// The element opens a new block.
		if d.finish.node >= len(d.dir)-1 {
			d.growDirectory(0, 1)
		}
		if d.dir[d.finish.node] == nil {
			b, err := d.alloc.Allocate(d.blockCap)
			if err != nil {
				return err
			}
			d.dir[d.finish.node] = b
		}
	}
	d.alloc.Construct(d.ref(d.finish), v)
	d.finish = d.seek(d.finish, 1)
	return nil
}

// PushFront prepends [v]. Amortized O(1), mirroring PushBack.
func (d *Deque[T]) PushFront(v T) error {
	if err := d.init(); err != nil {
		return err
	}
	if d.start.cur == 0 {
		// The element opens the block before start.
		if d.start.node == 0 {
			d.growDirectory(1, 0)
		}
		if d.dir[d.start.node-1] == nil {
			b, err := d.alloc.Allocate(d.blockCap)
			if err != nil {
				return err
			}
			d.dir[d.start.node-1] = b
		}
	}
	p := d.seek(d.start, -1)
	d.alloc.Construct(d.ref(p), v)
	d.start = p
	return nil
}

// PopBack removes and returns the last element. Returns false if the deque
// is empty. A block left wholly behind the live range is returned to the
// allocator.
func (d *Deque[T]) PopBack() (T, bool) {
	if d.Empty() {
		return mem.Zero[T](), false
	}
	p := d.seek(d.finish, -1)
	v := *d.ref(p)
	d.alloc.Destroy(d.ref(p))

	oldLast := d.lastNode(d.finish)
	d.finish = p
	for j := d.lastNode(d.finish) + 1; j <= oldLast; j++ {
		d.alloc.Deallocate(d.dir[j])
		d.dir[j] = nil
	}
	return v, true
}

// PopFront removes and returns the first element. Returns false if the deque
// is empty.
func (d *Deque[T]) PopFront() (T, bool) {
	if d.Empty() {
		return mem.Zero[T](), false
	}
	v := *d.ref(d.start)
	d.alloc.Destroy(d.ref(d.start))

	old := d.start
	d.start = d.seek(d.start, 1)
	if d.start.node != old.node {
		if d.start == d.finish && d.dir[d.start.node] == nil {
			// The pop emptied the deque with the boundary resting on
			// a headroom slot. Fall back onto the vacated block so
			// the deque always keeps one block.
			d.start = position{node: old.node}
			d.finish = d.start
		} else {
			d.alloc.Deallocate(d.dir[old.node])
			d.dir[old.node] = nil
		}
	}
	return v, true
}

// Clear destroys every element. All blocks but one are returned to the
// allocator; the directory is kept.
func (d *Deque[T]) Clear() {
	if d.dir == nil {
		return
	}
	for p := d.start; p != d.finish; p = d.seek(p, 1) {
		d.alloc.Destroy(d.ref(p))
	}
	for j := range d.dir {
		if j != d.start.node && d.dir[j] != nil {
			d.alloc.Deallocate(d.dir[j])
			d.dir[j] = nil
		}
	}
	d.finish = d.start
}

// List returns the elements of the deque as a slice, in order.
func (d *Deque[T]) List() []T {
	out := make([]T, 0, d.Len())
	for p := d.start; p != d.finish; p = d.seek(p, 1) {
		out = append(out, *d.ref(p))
	}
	return out
}

// init prepares a zero-value or moved-from deque for use.
func (d *Deque[T]) init() error {
	if d.alloc == nil {
		d.alloc = mem.Heap[T]{}
	}
	if d.blockCap == 0 {
		d.blockCap = blockCapacity[T]()
	}
	if d.dir == nil {
		return d.initialize(0)
	}
	return nil
}

// initialize allocates a directory of [nblocks]+2 handle slots with one slot
// of headroom on each side, allocates [nblocks] blocks (or one, so the deque
// never has zero blocks), and points start at the first slot of the first
// block with finish advanced past the allocated capacity. Strong guarantee:
// on allocation failure everything allocated so far is returned and the
// deque is untouched.
func (d *Deque[T]) initialize(nblocks int) error {
	num := nblocks
	if num == 0 {
		num = 1
	}
	dir := make([][]T, num+2)
	for i := 0; i < num; i++ {
		b, err := d.alloc.Allocate(d.blockCap)
		if err != nil {
			for j := 0; j < i; j++ {
				d.alloc.Deallocate(dir[1+j])
			}
			return err
		}
		dir[1+i] = b
	}
	d.dir = dir
	d.start = position{node: 1}
	d.finish = d.seek(d.start, nblocks*d.blockCap)
	return nil
}

// growDirectory replaces the directory with one of size
// old + max(old, addFront+addBack), recentring the live handle run so that
// at least [addFront] free slots precede it and [addBack] follow it. Blocks
// are not touched; start and finish keep their in-block offsets and only
// their directory indices shift. Outstanding iterators are invalidated.
func (d *Deque[T]) growDirectory(addFront, addBack int) {
	oldLen := len(d.dir)
	first := d.start.node
	last := d.lastNode(d.finish)
	if d.finish.node > last {
		// finish rests on the headroom slot after the last block; the
		// run of slots to carry over ends there.
		last = d.finish.node
	}
	nodes := last - first + 1

	growth := oldLen
	if addFront+addBack > growth {
		growth = addFront + addBack
	}
	newLen := oldLen + growth

	// Centre the free slots that remain after reserving the requested
	// headroom on each side.
	newFirst := addFront + (newLen-nodes-addFront-addBack)/2

	newDir := make([][]T, newLen)
	copy(newDir[newFirst:], d.dir[first:last+1])
	shift := newFirst - first
	d.dir = newDir
	d.start.node += shift
	d.finish.node += shift
}

// truncateTo destroys the elements in [newFinish, finish) and returns the
// blocks left wholly past the new live range to the allocator.
func (d *Deque[T]) truncateTo(newFinish position) {
	for p := newFinish; p != d.finish; p = d.seek(p, 1) {
		d.alloc.Destroy(d.ref(p))
	}
	oldLast := d.lastNode(d.finish)
	d.finish = newFinish
	for j := d.lastNode(d.finish) + 1; j <= oldLast; j++ {
		d.alloc.Deallocate(d.dir[j])
		d.dir[j] = nil
	}
}

// lastNode returns the directory index of the block holding the last live
// element, or the start block when the range [start, finish) is empty.
func (d *Deque[T]) lastNode(finish position) int {
	if finish == d.start {
		return d.start.node
	}
	return d.seek(finish, -1).node
}

// seek returns the position [n] elements past [p]. The in-block offset is
// reduced by floored division so negative offsets borrow whole blocks and
// land on the correct slot.
func (d *Deque[T]) seek(p position, n int) position {
	off := p.cur + n
	node := off / d.blockCap
	cur := off % d.blockCap
	if cur < 0 {
		cur += d.blockCap
		node--
	}
	return position{node: p.node + node, cur: cur}
}

// dist returns the number of elements from [b] to [a].
func (d *Deque[T]) dist(a, b position) int {
	return (a.node-b.node)*d.blockCap + (a.cur - b.cur)
}

// before reports whether [a] precedes [b] in sequence order: block index
// first, in-block offset as tie-break.
func (d *Deque[T]) before(a, b position) bool {
	if a.node != b.node {
		return a.node < b.node
	}
	return a.cur < b.cur
}

func (d *Deque[T]) ref(p position) *T {
	return &d.dir[p.node][p.cur]
}

func (d *Deque[T]) checkedPos(i int) position {
	if i < 0 || i >= d.Len() {
		panic("deque: index out of range")
	}
	return d.seek(d.start, i)
}
