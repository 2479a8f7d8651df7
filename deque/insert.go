// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package deque

// Insert places [v] at offset [i], shifting whichever half of the sequence
// is cheaper to move: at most min(i, n-i) elements. Offsets 0 and Len()
// extend the corresponding end without shifting anything. Strong guarantee:
// on allocation failure the deque is unchanged.
func (d *Deque[T]) Insert(i int, v T) error {
	return d.insert(i, 1, func(int) T { return v })
}

// InsertN places [n] copies of [v] at offset [i]. All blocks needed on the
// chosen side are allocated before any element moves, then a single bulk
// shift makes room.
func (d *Deque[T]) InsertN(i, n int, v T) error {
	return d.insert(i, n, func(int) T { return v })
}

// InsertSlice places the elements of [vs] at offset [i], in order.
func (d *Deque[T]) InsertSlice(i int, vs []T) error {
	return d.insert(i, len(vs), func(k int) T { return vs[k] })
}

// Erase removes the element at offset [i].
func (d *Deque[T]) Erase(i int) error {
	return d.EraseRange(i, i+1)
}

// EraseRange removes the elements in the half-open offset range [i, j). The
// smaller half of the remaining sequence is shifted over the gap, vacated
// slots are destroyed, and blocks left wholly outside the live range are
// returned to the allocator.
func (d *Deque[T]) EraseRange(i, j int) error {
	n := d.Len()
	if i < 0 || j < i || j > n {
		return ErrOutOfRange
	}
	m := j - i
	if m == 0 {
		return nil
	}

	if i < n-j {
		// Shift the front [0, i) onto the gap, back to front.
		src := d.seek(d.start, i-1)
		dst := d.seek(d.start, j-1)
		for k := 0; k < i; k++ {
			*d.ref(dst) = *d.ref(src)
			src = d.seek(src, -1)
			dst = d.seek(dst, -1)
		}
		newStart := d.seek(d.start, m)
		for p := d.start; p != newStart; p = d.seek(p, 1) {
			d.alloc.Destroy(d.ref(p))
		}
		oldFirst := d.start.node
		d.start = newStart
		for q := oldFirst; q < d.start.node; q++ {
			d.alloc.Deallocate(d.dir[q])
			d.dir[q] = nil
		}
		return nil
	}

	// Shift the tail [j, n) onto the gap, front to back.
	src := d.seek(d.start, j)
	dst := d.seek(d.start, i)
	for k := 0; k < n-j; k++ {
		*d.ref(dst) = *d.ref(src)
		src = d.seek(src, 1)
		dst = d.seek(dst, 1)
	}
	d.truncateTo(d.seek(d.start, n-m))
	return nil
}

// Emplace places [v] at offset [i] by constructing at whichever boundary is
// closer and rotating the new element into place. For positions near the
// middle this trades a rotation for the bulk shift Insert would do.
func (d *Deque[T]) Emplace(i int, v T) error {
	n := d.Len()
	if i < 0 || i > n {
		return ErrOutOfRange
	}
	switch {
	case i == 0:
		return d.PushFront(v)
	case i == n:
		return d.PushBack(v)
	case i*2 < n:
		if err := d.PushFront(v); err != nil {
			return err
		}
		d.rotate(0, 1, i+1)
	default:
		if err := d.PushBack(v); err != nil {
			return err
		}
		d.rotate(i, n, n+1)
	}
	return nil
}

func (d *Deque[T]) insert(i, count int, value func(int) T) error {
	if err := d.init(); err != nil {
		return err
	}
	n := d.Len()
	if i < 0 || i > n {
		return ErrOutOfRange
	}
	if count == 0 {
		return nil
	}

	// Boundary insertions extend that end directly: nothing shifts, and
	// the block pre-allocation keeps them all-or-nothing too.
	if i == 0 {
		return d.insertShiftFront(0, count, value)
	}
	if i == n {
		return d.insertShiftBack(n, count, value)
	}

	// Pick a side to shift: prefer the side whose boundary block already
	// has the spare room, otherwise move the smaller half.
	frontRoom := d.start.cur
	backRoom := (d.blockCap - d.finish.cur) % d.blockCap
	var shiftFront bool
	switch {
	case frontRoom >= count && backRoom < count:
		shiftFront = true
	case frontRoom < count && backRoom >= count:
		shiftFront = false
	default:
		shiftFront = i*2 < n
	}

	if shiftFront {
		return d.insertShiftFront(i, count, value)
	}
	return d.insertShiftBack(i, count, value)
}

// insertShiftFront makes room by extending the front: the first [i] elements
// move [count] slots toward the front and the new elements fill the gap.
func (d *Deque[T]) insertShiftFront(i, count int, value func(int) T) error {
	if err := d.reserveFront(count); err != nil {
		return err
	}
	oldStart := d.start
	newStart := d.seek(d.start, -count)

	dst := newStart
	src := oldStart
	for k := 0; k < i; k++ {
		d.place(dst, *d.ref(src), oldStart)
		src = d.seek(src, 1)
		dst = d.seek(dst, 1)
	}
	for k := 0; k < count; k++ {
		d.place(dst, value(k), oldStart)
		dst = d.seek(dst, 1)
	}
	d.start = newStart
	return nil
}

// insertShiftBack makes room by extending the back: the elements at offsets
// [i, n) move [count] slots toward the back and the new elements fill the
// gap.
func (d *Deque[T]) insertShiftBack(i, count int, value func(int) T) error {
	if err := d.reserveBack(count); err != nil {
		return err
	}
	n := d.Len()
	oldFinish := d.finish
	newFinish := d.seek(d.finish, count)

	dst := d.seek(newFinish, -1)
	src := d.seek(oldFinish, -1)
	for k := 0; k < n-i; k++ {
		d.placeBack(dst, *d.ref(src), oldFinish)
		src = d.seek(src, -1)
		dst = d.seek(dst, -1)
	}
	p := d.seek(d.start, i)
	for k := 0; k < count; k++ {
		d.placeBack(p, value(k), oldFinish)
		p = d.seek(p, 1)
	}
	d.finish = newFinish
	return nil
}

// place writes [v] to [p], constructing when the slot lies before the old
// front boundary (fresh storage) and assigning when it was already live.
func (d *Deque[T]) place(p position, v T, oldStart position) {
	if d.before(p, oldStart) {
		d.alloc.Construct(d.ref(p), v)
	} else {
		*d.ref(p) = v
	}
}

// placeBack is place for the back side: slots at or past the old finish
// boundary are fresh.
func (d *Deque[T]) placeBack(p position, v T, oldFinish position) {
	if d.before(p, oldFinish) {
		*d.ref(p) = v
	} else {
		d.alloc.Construct(d.ref(p), v)
	}
}

// reserveFront ensures [count] dereferenceable slots exist before start,
// growing the directory when the front headroom is short and allocating
// every missing block. All-or-nothing: on allocation failure the blocks
// acquired so far are returned and the live range is unchanged.
func (d *Deque[T]) reserveFront(count int) error {
	first := d.seek(d.start, -count)
	for first.node < 0 {
		// The new front range spans this many block slots below start;
		// recentring guarantees at least that much front headroom.
		d.growDirectory(d.start.node-first.node, 0)
		first = d.seek(d.start, -count)
	}
	var added []int
	for j := first.node; j < d.start.node; j++ {
		if d.dir[j] != nil {
			continue
		}
		b, err := d.alloc.Allocate(d.blockCap)
		if err != nil {
			for _, k := range added {
				d.alloc.Deallocate(d.dir[k])
				d.dir[k] = nil
			}
			return err
		}
		d.dir[j] = b
		added = append(added, j)
	}
	return nil
}

// reserveBack ensures [count] dereferenceable slots exist at finish and
// beyond, keeping the directory's final slot spare.
func (d *Deque[T]) reserveBack(count int) error {
	lastNeeded := d.seek(d.finish, count-1).node
	for lastNeeded > len(d.dir)-2 {
		// Request room for every block slot the new back range spans,
		// plus the spare slot kept at the directory's end.
		d.growDirectory(0, lastNeeded-d.finish.node+1)
		lastNeeded = d.seek(d.finish, count-1).node
	}
	var added []int
	for j := d.finish.node; j <= lastNeeded; j++ {
		if d.dir[j] != nil {
			continue
		}
		b, err := d.alloc.Allocate(d.blockCap)
		if err != nil {
			for _, k := range added {
				d.alloc.Deallocate(d.dir[k])
				d.dir[k] = nil
			}
			return err
		}
		d.dir[j] = b
		added = append(added, j)
	}
	return nil
}

// rotate left-rotates the offset range [a, c) so the element at offset [b]
// becomes the element at offset [a], using three reversals.
func (d *Deque[T]) rotate(a, b, c int) {
	d.reverse(a, b)
	d.reverse(b, c)
	d.reverse(a, c)
}

// reverse reverses the elements in the offset range [a, b).
func (d *Deque[T]) reverse(a, b int) {
	x := d.seek(d.start, a)
	y := d.seek(d.start, b-1)
	for a < b-1 {
		px, py := d.ref(x), d.ref(y)
		*px, *py = *py, *px
		x = d.seek(x, 1)
		y = d.seek(y, -1)
		a++
		b--
	}
}
