package suffixgram

import "cmp"

// findPosition locates where a query belongs in the sorted window [lo, hi].
// compare(k) orders the query against the element at k.
//
// The window is halved until hi-lo <= 1, moving hi only when the query is
// strictly smaller. The tie-break afterwards returns hi when the query is
// greater than hi, or lies in (lo, hi]; otherwise lo.
func findPosition(lo, hi int, compare func(k int) int) int {
	m := lo + (hi-lo)/2
	for hi-lo > 1 {
		if compare(m) < 0 {
			hi = m
		} else {
			lo = m
		}
		m = lo + (hi-lo)/2
	}
	if compare(hi) > 0 {
		return hi
	}
	if compare(lo) > 0 && compare(hi) <= 0 {
		return hi
	}
	return lo
}

// insertionSorter is the bucket-seeded binary-insertion sort shared by the
// suffix array and by plain integer keys.
type insertionSorter[T any] struct {
	// lower returns the lowest position the item may be placed at. It must
	// not exceed the item's current position.
	lower   func(item T) int
	compare func(a, b T) int
	// progress, when set, is called with the number of items placed so far.
	progress      func(placed int)
	progressEvery int
}

// sort reorders items in place. Each item is searched for within
// [lower(item), i] of the already placed prefix, which includes the item
// itself at i; the prefix is shifted right by one to make room.
func (s insertionSorter[T]) sort(items []T) {
	every := s.progressEvery
	if every <= 0 {
		every = 1 << 16
	}
	for i := 1; i < len(items); i++ {
		x := items[i]
		lo := 0
		if s.lower != nil {
			lo = s.lower(x)
		}
		p := findPosition(lo, i, func(k int) int { return s.compare(x, items[k]) })
		if p < i {
			copy(items[p+1:i+1], items[p:i])
			items[p] = x
		}
		if s.progress != nil && i%every == 0 {
			s.progress(i)
		}
	}
	if s.progress != nil {
		s.progress(len(items))
	}
}

// SortIndices returns the permutation that orders values ascending, built
// with the same insertion sort as the suffix array.
func SortIndices[T cmp.Ordered](values []T) []int {
	perm := make([]int, len(values))
	for i := range perm {
		perm[i] = i
	}
	insertionSorter[int]{
		compare: func(a, b int) int { return cmp.Compare(values[a], values[b]) },
	}.sort(perm)
	return perm
}
