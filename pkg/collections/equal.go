package collections

import (
	"errors"
	"iter"
	"slices"

	"golang.org/x/exp/constraints"
)

// ErrNilSequence is returned when an iterator that should be compared is nil.
var ErrNilSequence = errors.New("sequence must not be nil")

// ContainsExactlyInAnyOrder returns true if a and b contain the same elements with the same
// number of occurrences, regardless of their order.
//
// Arrays can be compared by slicing them, e.g. ContainsExactlyInAnyOrder(arr[:], list).
// A nil slice is treated like an empty slice.
//
// Elements are matched with ==, so a floating point NaN never matches, not even itself.
// Slices containing NaN are never equal. Use ContainsExactlyInAnyOrderFunc with math.Float64bits
// as key to compare them bitwise.
func ContainsExactlyInAnyOrder[S1 ~[]T, S2 ~[]T, T comparable](a S1, b S2) bool {
	if len(a) != len(b) {
		return false
	}

	counts := make(map[T]int, len(a))
	for _, e := range a {
		counts[e]++
	}

	for _, e := range b {
		if counts[e] == 0 {
			return false
		}
		counts[e]--
	}

	return true
}

// ContainsExactlyInAnyOrderFunc works like ContainsExactlyInAnyOrder but compares elements by the key
// returned from the given function. This allows comparing elements that are not comparable themselves.
func ContainsExactlyInAnyOrderFunc[S1 ~[]T, S2 ~[]T, T any, K comparable](a S1, b S2, key func(T) K) bool {
	if len(a) != len(b) {
		return false
	}

	counts := make(map[K]int, len(a))
	for _, e := range a {
		counts[key(e)]++
	}

	for _, e := range b {
		k := key(e)
		if counts[k] == 0 {
			return false
		}
		counts[k]--
	}

	return true
}

// ContainsExactlyInAnyOrderSorted compares sorted copies of a and b element by element.
// The given slices are not modified. Like ContainsExactlyInAnyOrder it reports false for slices
// containing NaN.
func ContainsExactlyInAnyOrderSorted[S1 ~[]T, S2 ~[]T, T constraints.Ordered](a S1, b S2) bool {
	if len(a) != len(b) {
		return false
	}

	as := slices.Clone(a)
	bs := slices.Clone(b)

	slices.Sort(as)
	slices.Sort(bs)

	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}

	return true
}

// ContainsExactlyInAnyOrderSeq compares the elements yielded by two iterators.
// It returns ErrNilSequence if one of the iterators is nil.
func ContainsExactlyInAnyOrderSeq[T comparable](a, b iter.Seq[T]) (bool, error) {
	if a == nil || b == nil {
		return false, ErrNilSequence
	}

	ac := CountsOfSeq(a)
	bc := CountsOfSeq(b)

	return ac.Equal(bc), nil
}

// ContainsExactlyInAnyOrderSliceSeq compares a slice against the elements yielded by an iterator.
func ContainsExactlyInAnyOrderSliceSeq[S ~[]T, T comparable](a S, b iter.Seq[T]) (bool, error) {
	return ContainsExactlyInAnyOrderSeq(slices.Values(a), b)
}

// ContainsExactlyInAnyOrderSeqSlice compares the elements yielded by an iterator against a slice.
func ContainsExactlyInAnyOrderSeqSlice[S ~[]T, T comparable](a iter.Seq[T], b S) (bool, error) {
	return ContainsExactlyInAnyOrderSeq(a, slices.Values(b))
}
