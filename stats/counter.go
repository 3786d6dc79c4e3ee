package stats

import "sort"

// counter counts occurrences of values while remembering the order in which
// distinct values were first encountered. All "most popular" statistics
// break count ties the same way: the value encountered first in the table
// wins, so results are deterministic for a given source row order.
type counter[T comparable] struct {
	counts map[T]int
	order  []T
}

func newCounter[T comparable]() *counter[T] {
	return &counter[T]{counts: make(map[T]int)}
}

func (counter *counter[T]) Add(value T) {
	if _, seen := counter.counts[value]; !seen {
		counter.order = append(counter.order, value)
	}
	counter.counts[value]++
}

// Top returns the value with the strictly highest count, or the
// first-encountered value among those tied for highest. ok is false if
// nothing was counted.
func (counter *counter[T]) Top() (value T, count int, ok bool) {
	for _, candidate := range counter.order {
		if counter.counts[candidate] > count {
			value = candidate
			count = counter.counts[candidate]
			ok = true
		}
	}
	return value, count, ok
}

type valueCount[T comparable] struct {
	Value T
	Count int
}

// Sorted returns all counted values in descending order of count, with tied
// values kept in first-encountered order.
func (counter *counter[T]) Sorted() []valueCount[T] {
	sorted := make([]valueCount[T], 0, len(counter.order))
	for _, value := range counter.order {
		sorted = append(sorted, valueCount[T]{Value: value, Count: counter.counts[value]})
	}

	sort.SliceStable(sorted, func(i int, j int) bool {
		return sorted[i].Count > sorted[j].Count
	})
	return sorted
}
