// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package deque

import "testing"

func BenchmarkPushBack(b *testing.B) {
	d := New[int]()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = d.PushBack(i)
	}
}

func BenchmarkPushFront(b *testing.B) {
	d := New[int]()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = d.PushFront(i)
	}
}

func BenchmarkPushPopEnds(b *testing.B) {
	d := New[int]()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = d.PushBack(i)
		_ = d.PushFront(i)
		d.PopBack()
		d.PopFront()
	}
}

func BenchmarkGet(b *testing.B) {
	const size = 1 << 16
	d := NewCount[int](size)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = d.Get(i & (size - 1))
	}
}

func BenchmarkIterate(b *testing.B) {
	const size = 1 << 12
	d := NewCount[int](size)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for it := d.Begin(); !it.Equal(d.End()); it = it.Next() {
			_ = it.Get()
		}
	}
}

func BenchmarkInsertMiddle(b *testing.B) {
	d := NewCount[int](1 << 10)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = d.Insert(d.Len()/2, i)
	}
}
