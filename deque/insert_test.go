// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package deque

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/collections/mem"
)

func TestInsertMiddle(t *testing.T) {
	require := require.New(t)

	d := Of(1, 2, 4, 5)
	require.NoError(d.Insert(2, 3))
	require.Equal([]int{1, 2, 3, 4, 5}, d.List())
}

func TestInsertAtEnds(t *testing.T) {
	require := require.New(t)

	d := Of(2, 3)
	require.NoError(d.Insert(0, 1))
	require.NoError(d.Insert(3, 4))
	require.Equal([]int{1, 2, 3, 4}, d.List())
}

func TestInsertN(t *testing.T) {
	require := require.New(t)

	d := Of(1, 4)
	require.NoError(d.InsertN(1, 2, 2))
	require.Equal([]int{1, 2, 2, 4}, d.List())
}

func TestInsertSlice(t *testing.T) {
	require := require.New(t)

	d := Of(1, 5)
	require.NoError(d.InsertSlice(1, []int{2, 3, 4}))
	require.Equal([]int{1, 2, 3, 4, 5}, d.List())

	require.NoError(d.InsertSlice(2, nil))
	require.Equal([]int{1, 2, 3, 4, 5}, d.List())
}

func TestInsertSliceSpanningBlocks(t *testing.T) {
	require := require.New(t)

	d := New[chunky]()
	blockCap := blockCapacity[chunky]()
	for i := 0; i < blockCap; i++ {
		require.NoError(d.PushBack(chunky{v: i}))
	}

	ins := make([]chunky, 2*blockCap)
	for i := range ins {
		ins[i] = chunky{v: 1000 + i}
	}
	require.NoError(d.InsertSlice(blockCap/2, ins))
	require.Equal(3*blockCap, d.Len())

	for i := 0; i < blockCap/2; i++ {
		require.Equal(i, d.Get(i).v)
	}
	for i := 0; i < 2*blockCap; i++ {
		require.Equal(1000+i, d.Get(blockCap/2+i).v)
	}
	for i := blockCap / 2; i < blockCap; i++ {
		require.Equal(i, d.Get(2*blockCap+i).v)
	}
}

func TestInsertShiftsFrontWhenOnlyFrontHasRoom(t *testing.T) {
	require := require.New(t)

	d := New[chunky]()
	blockCap := blockCapacity[chunky]()
	for i := 0; i < blockCap; i++ {
		require.NoError(d.PushBack(chunky{v: i}))
	}
	require.NoError(d.PushFront(chunky{v: -1}))
	// front block has spare room, back block is full
	require.Positive(d.start.cur)
	require.Zero(d.finish.cur)

	finishBefore := d.finish
	// a back-half position would normally shift the back
	i := d.Len() - 2
	require.NoError(d.Insert(i, chunky{v: 99}))
	require.Equal(finishBefore, d.finish)
	require.Equal(99, d.Get(i).v)
}

func TestInsertShiftsBackWhenOnlyBackHasRoom(t *testing.T) {
	require := require.New(t)

	d := New[chunky]()
	for i := 0; i < 5; i++ {
		require.NoError(d.PushBack(chunky{v: i}))
	}
	// fresh deque: no front room, spare room in the back block
	require.Zero(d.start.cur)
	require.Positive((d.blockCap - d.finish.cur) % d.blockCap)

	startBefore := d.start
	// a front-half position would normally shift the front
	require.NoError(d.Insert(1, chunky{v: 99}))
	require.Equal(startBefore, d.start)
	require.Equal(99, d.Get(1).v)
	require.Equal(0, d.Get(0).v)
	require.Equal(1, d.Get(2).v)
}

func TestInsertTieMovesSmallerHalf(t *testing.T) {
	require := require.New(t)

	d := New[chunky]()
	blockCap := blockCapacity[chunky]()
	// both boundary blocks full, so neither side has spare room
	for i := 0; i < blockCap; i++ {
		require.NoError(d.PushBack(chunky{v: i}))
	}

	finishBefore := d.finish
	require.NoError(d.Insert(2, chunky{v: 99}))
	// front half is smaller: the back boundary stays put
	require.Equal(finishBefore, d.finish)

	d2 := New[chunky]()
	for i := 0; i < blockCap; i++ {
		require.NoError(d2.PushBack(chunky{v: i}))
	}
	startBefore := d2.start
	require.NoError(d2.Insert(blockCap-2, chunky{v: 99}))
	require.Equal(startBefore, d2.start)
}

func TestInsertOutOfRange(t *testing.T) {
	require := require.New(t)

	d := Of(1, 2, 3)
	require.ErrorIs(d.Insert(-1, 0), ErrOutOfRange)
	require.ErrorIs(d.Insert(4, 0), ErrOutOfRange)
	require.ErrorIs(d.InsertN(4, 2, 0), ErrOutOfRange)
	require.ErrorIs(d.Emplace(4, 0), ErrOutOfRange)
}

func TestInsertAllocationFailureLeavesDequeUnchanged(t *testing.T) {
	require := require.New(t)

	blockCap := blockCapacity[chunky]()
	l := mem.NewLimited[chunky](mem.Heap[chunky]{}, 1)
	d, err := NewWithAllocator[chunky](l)
	require.NoError(err)
	for i := 0; i < 4; i++ {
		require.NoError(d.PushBack(chunky{v: i}))
	}
	before := d.List()

	require.ErrorIs(d.InsertN(2, 2*blockCap, chunky{v: 99}), mem.ErrAllocFailed)
	require.Equal(before, d.List())
}

// elementRefs snapshots the address of every element's slot. Blocks never
// move, so an element whose address changed after a mutation was moved by it.
func elementRefs(d *Deque[chunky]) []*chunky {
	refs := make([]*chunky, d.Len())
	it := d.Begin()
	for i := range refs {
		refs[i] = it.Ref()
		it = it.Next()
	}
	return refs
}

func TestInsertMovesAtMostSmallerHalf(t *testing.T) {
	require := require.New(t)

	blockCap := blockCapacity[chunky]()
	n := 4 * blockCap
	for _, i := range []int{1, blockCap, n / 2, n - blockCap, n - 1} {
		d := New[chunky]()
		for k := 0; k < n; k++ {
			require.NoError(d.PushBack(chunky{v: k}))
		}
		before := elementRefs(d)

		require.NoError(d.Insert(i, chunky{v: -1}))

		moved := 0
		for k := 0; k < n; k++ {
			after := k
			if k >= i {
				after = k + 1
			}
			if d.Begin().Add(after).Ref() != before[k] {
				moved++
			}
		}
		bound := i
		if n-i < bound {
			bound = n - i
		}
		require.LessOrEqual(moved, bound)
	}
}

func TestEraseMovesAtMostSmallerHalf(t *testing.T) {
	require := require.New(t)

	blockCap := blockCapacity[chunky]()
	n := 4 * blockCap
	for _, span := range [][2]int{{1, 3}, {blockCap, 2 * blockCap}, {n - 3, n - 1}} {
		i, j := span[0], span[1]
		d := New[chunky]()
		for k := 0; k < n; k++ {
			require.NoError(d.PushBack(chunky{v: k}))
		}
		before := elementRefs(d)

		require.NoError(d.EraseRange(i, j))

		moved := 0
		for k := 0; k < n; k++ {
			if k >= i && k < j {
				continue
			}
			after := k
			if k >= j {
				after = k - (j - i)
			}
			if d.Begin().Add(after).Ref() != before[k] {
				moved++
			}
		}
		bound := i
		if n-j < bound {
			bound = n - j
		}
		require.LessOrEqual(moved, bound)
	}
}

func TestBoundaryInsertAllocationFailureLeavesDequeUnchanged(t *testing.T) {
	require := require.New(t)

	blockCap := blockCapacity[chunky]()
	l := mem.NewLimited[chunky](mem.Heap[chunky]{}, 1)
	d, err := NewWithAllocator[chunky](l)
	require.NoError(err)
	for i := 0; i < 3; i++ {
		require.NoError(d.PushBack(chunky{v: i}))
	}
	before := d.List()

	require.ErrorIs(d.InsertN(0, 2*blockCap, chunky{v: 9}), mem.ErrAllocFailed)
	require.Equal(before, d.List())

	require.ErrorIs(d.InsertN(d.Len(), 2*blockCap, chunky{v: 9}), mem.ErrAllocFailed)
	require.Equal(before, d.List())
}

func TestErase(t *testing.T) {
	require := require.New(t)

	d := Of(1, 2, 3, 4)
	require.NoError(d.Erase(1))
	require.Equal([]int{1, 3, 4}, d.List())

	require.NoError(d.Erase(0))
	require.Equal([]int{3, 4}, d.List())

	require.NoError(d.Erase(1))
	require.Equal([]int{3}, d.List())

	require.ErrorIs(d.Erase(1), ErrOutOfRange)
}

func TestEraseRange(t *testing.T) {
	require := require.New(t)

	d := Of(1, 2, 3, 4, 5)
	require.NoError(d.EraseRange(1, 4))
	require.Equal([]int{1, 5}, d.List())
}

func TestEraseRangeEmptyAndFull(t *testing.T) {
	require := require.New(t)

	d := Of(1, 2, 3)
	require.NoError(d.EraseRange(1, 1))
	require.Equal([]int{1, 2, 3}, d.List())

	require.NoError(d.EraseRange(0, 3))
	require.Zero(d.Len())
}

func TestEraseRangeOutOfRange(t *testing.T) {
	require := require.New(t)

	d := Of(1, 2, 3)
	require.ErrorIs(d.EraseRange(-1, 2), ErrOutOfRange)
	require.ErrorIs(d.EraseRange(2, 1), ErrOutOfRange)
	require.ErrorIs(d.EraseRange(1, 4), ErrOutOfRange)
}

func TestEraseRangeShiftsSmallerHalf(t *testing.T) {
	require := require.New(t)

	// erasing near the front shifts the front: finish stays put
	d := FromSlice([]int{0, 1, 2, 3, 4, 5, 6, 7})
	finishBefore := d.finish
	require.NoError(d.EraseRange(1, 3))
	require.Equal(finishBefore, d.finish)
	require.Equal([]int{0, 3, 4, 5, 6, 7}, d.List())

	// erasing near the back shifts the tail: start stays put
	d = FromSlice([]int{0, 1, 2, 3, 4, 5, 6, 7})
	startBefore := d.start
	require.NoError(d.EraseRange(5, 7))
	require.Equal(startBefore, d.start)
	require.Equal([]int{0, 1, 2, 3, 4, 7}, d.List())
}

func TestEraseRangeReleasesVacatedBlocks(t *testing.T) {
	require := require.New(t)

	c := mem.NewCounting[chunky](mem.Heap[chunky]{})
	d, err := NewWithAllocator[chunky](c)
	require.NoError(err)

	blockCap := blockCapacity[chunky]()
	n := 4 * blockCap
	for i := 0; i < n; i++ {
		require.NoError(d.PushBack(chunky{v: i}))
	}

	// erase the first two blocks' worth; the vacated front blocks are freed
	require.NoError(d.EraseRange(0, 2*blockCap))
	require.Equal(2, c.Deallocs)
	require.Equal(2*blockCap, d.Len())
	require.Equal(2*blockCap, d.Get(0).v)
	require.Equal(c.Constructs-c.Destroys, d.Len())
}

func TestEmplace(t *testing.T) {
	require := require.New(t)

	d := Of(1, 2, 3, 4, 5, 6, 7, 8, 9, 10)

	// front half: rotated in from the front
	require.NoError(d.Emplace(3, 99))
	require.Equal([]int{1, 2, 3, 99, 4, 5, 6, 7, 8, 9, 10}, d.List())

	// back half: rotated in from the back
	require.NoError(d.Emplace(9, 77))
	require.Equal([]int{1, 2, 3, 99, 4, 5, 6, 7, 8, 77, 9, 10}, d.List())
}

func TestEmplaceAtEnds(t *testing.T) {
	require := require.New(t)

	d := Of(2)
	require.NoError(d.Emplace(0, 1))
	require.NoError(d.Emplace(2, 3))
	require.Equal([]int{1, 2, 3}, d.List())
}

func TestEmplaceAcrossBlocks(t *testing.T) {
	require := require.New(t)

	d := New[chunky]()
	blockCap := blockCapacity[chunky]()
	n := 3 * blockCap
	for i := 0; i < n; i++ {
		require.NoError(d.PushBack(chunky{v: i}))
	}

	require.NoError(d.Emplace(blockCap+1, chunky{v: -1}))
	require.Equal(n+1, d.Len())
	require.Equal(-1, d.Get(blockCap+1).v)
	require.Equal(blockCap, d.Get(blockCap).v)
	require.Equal(blockCap+1, d.Get(blockCap+2).v)
}
