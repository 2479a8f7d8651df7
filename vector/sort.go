// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vector

import (
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

// Sorts the elements of [v] in ascending order, in place.
func Sort[T constraints.Ordered](v *Vector[T]) {
	slices.Sort(v.data[:v.size])
}

// Sorts the elements of [v] in place with [less] as the ordering.
func SortFunc[T any](v *Vector[T], less func(a, b T) bool) {
	slices.SortFunc(v.data[:v.size], less)
}

// Returns true iff the elements of [v] are in ascending order.
func IsSorted[T constraints.Ordered](v *Vector[T]) bool {
	return slices.IsSorted(v.data[:v.size])
}

// Returns whether [v] holds [val].
func Contains[T comparable](v *Vector[T], val T) bool {
	return slices.Contains(v.data[:v.size], val)
}

// Returns the offset of the first occurrence of [val] in [v], or -1.
func Index[T comparable](v *Vector[T], val T) int {
	return slices.Index(v.data[:v.size], val)
}

// Searches a sorted vector for [val], returning the offset where it was
// found, or the offset where it would be inserted and false.
func BinarySearch[T constraints.Ordered](v *Vector[T], val T) (int, bool) {
	return slices.BinarySearch(v.data[:v.size], val)
}
