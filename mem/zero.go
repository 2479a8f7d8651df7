// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mem

// Zero returns the zero value of T.
func Zero[T any]() T {
	var v T
	return v
}

// ZeroSlice resets every slot of [s] to the zero value.
//
// Storage handed back to an allocator is zeroed this way so the garbage
// collector doesn't keep alive whatever the slots referenced.
func ZeroSlice[T any](s []T) {
	var v T
	for i := range s {
		s[i] = v
	}
}
