package sequence

import "iter"

// Map applies fn to every element of in.
func Map[T, R any](in []T, fn func(T) R) []R {
	if in == nil {
		return nil
	}
	out := make([]R, len(in))
	for i, v := range in {
		out[i] = fn(v)
	}
	return out
}

// Filter returns the elements of seq matching pred, in order.
func Filter[T any](seq iter.Seq[T], pred func(T) bool) iter.Seq[T] {
	return func(yield func(T) bool) {
		for v := range seq {
			if pred(v) && !yield(v) {
				return
			}
		}
	}
}

// CountBy counts the elements of seq per key.
func CountBy[T any, K comparable](seq iter.Seq[T], key func(T) K) map[K]int {
	out := make(map[K]int)
	for v := range seq {
		out[key(v)]++
	}
	return out
}
