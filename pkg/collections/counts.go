package collections

import (
	"iter"
	"maps"
)

// Counts maps distinct elements to the number of their occurrences.
type Counts[T comparable] map[T]int

// CountsOf returns the frequency count of the given elements.
func CountsOf[S ~[]T, T comparable](s S) Counts[T] {
	c := make(Counts[T], len(s))
	for _, e := range s {
		c[e]++
	}
	return c
}

// CountsOfSeq returns the frequency count of the elements yielded by seq.
func CountsOfSeq[T comparable](seq iter.Seq[T]) Counts[T] {
	c := Counts[T]{}
	if seq == nil {
		return c
	}
	for e := range seq {
		c[e]++
	}
	return c
}

func (c Counts[T]) Add(elems ...T) {
	for _, e := range elems {
		c[e]++
	}
}

// Len returns the total number of elements, including duplicates.
func (c Counts[T]) Len() int {
	n := 0
	for _, v := range c {
		n += v
	}
	return n
}

func (c Counts[T]) Equal(other Counts[T]) bool {
	return maps.Equal(c, other)
}
