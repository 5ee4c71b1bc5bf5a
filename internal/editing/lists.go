// Package editing implements pure state transitions over resume documents.
//
// Every operation returns a new document. Only the mutated branch and its
// ancestors are copied; sibling lists keep their backing arrays, so callers
// comparing slices by identity see exactly which branch changed. Out-of-range
// indices leave the document unchanged.
package editing

// inRange reports whether i indexes into a list of length n.
func inRange(i, n int) bool {
	return i >= 0 && i < n
}

// setAt returns a copy of list with element i replaced.
func setAt[T any](list []T, i int, v T) ([]T, bool) {
	if !inRange(i, len(list)) {
		return list, false
	}
	out := make([]T, len(list))
	copy(out, list)
	out[i] = v
	return out, true
}

// updateAt returns a copy of list with element i replaced by fn(list[i]).
func updateAt[T any](list []T, i int, fn func(T) T) ([]T, bool) {
	if !inRange(i, len(list)) {
		return list, false
	}
	return setAt(list, i, fn(list[i]))
}

// appendItem returns a copy of list with v appended.
func appendItem[T any](list []T, v T) []T {
	out := make([]T, len(list), len(list)+1)
	copy(out, list)
	return append(out, v)
}

// removeAt returns a copy of list without element i.
func removeAt[T any](list []T, i int) ([]T, bool) {
	if !inRange(i, len(list)) {
		return list, false
	}
	out := make([]T, 0, len(list)-1)
	out = append(out, list[:i]...)
	return append(out, list[i+1:]...), true
}

// moveItem returns a copy of list where the element at from is removed and
// reinserted at to, shifting the elements in between by one.
func moveItem[T any](list []T, from, to int) ([]T, bool) {
	if !inRange(from, len(list)) || !inRange(to, len(list)) {
		return list, false
	}
	if from == to {
		return list, true
	}
	item := list[from]
	rest, _ := removeAt(list, from)
	out := make([]T, 0, len(list))
	out = append(out, rest[:to]...)
	out = append(out, item)
	return append(out, rest[to:]...), true
}
