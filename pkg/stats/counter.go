// Package stats computes the frequency distributions and top-N
// rankings consumed by the dashboard summary.
package stats

import "sort"

// Entry is one counted key with its frequency.
type Entry[K comparable] struct {
	Key   K
	Count int
}

// Counter is an insertion-ordered frequency counter. MostCommon breaks
// count ties by first-seen order, which keeps every ranking in the
// pipeline deterministic for a given input order.
type Counter[K comparable] struct {
	counts map[K]int
	order  []K
}

// NewCounter creates an empty counter.
func NewCounter[K comparable]() *Counter[K] {
	return &Counter[K]{counts: make(map[K]int)}
}

// Add increments the count for a key by one.
func (c *Counter[K]) Add(key K) {
	c.AddN(key, 1)
}

// AddN increments the count for a key by n.
func (c *Counter[K]) AddN(key K, n int) {
	if _, seen := c.counts[key]; !seen {
		c.order = append(c.order, key)
	}
	c.counts[key] += n
}

// Get returns the count for a key, zero when unseen.
func (c *Counter[K]) Get(key K) int {
	return c.counts[key]
}

// Len returns the number of distinct keys.
func (c *Counter[K]) Len() int {
	return len(c.order)
}

// MostCommon returns up to n entries ordered by descending count, ties
// in first-seen order. n <= 0 returns all entries.
func (c *Counter[K]) MostCommon(n int) []Entry[K] {
	entries := make([]Entry[K], 0, len(c.order))
	for _, key := range c.order {
		entries = append(entries, Entry[K]{Key: key, Count: c.counts[key]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
