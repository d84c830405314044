package mapreduce

import (
	"sort"

	"github.com/dtnitsch/chat-profiler/models"
)

// Tally counts string keys and remembers the order keys were first seen in.
// Keys are compared exactly; no normalization happens here.
type Tally struct {
	counts map[string]int
	order  []string
}

func NewTally() *Tally {
	return &Tally{counts: make(map[string]int)}
}

// Add increments key by one.
func (t *Tally) Add(key string) {
	t.AddN(key, 1)
}

// AddN increments key by n.
func (t *Tally) AddN(key string, n int) {
	if _, seen := t.counts[key]; !seen {
		t.order = append(t.order, key)
	}
	t.counts[key] += n
}

// Count returns the count for key.
func (t *Tally) Count(key string) int {
	return t.counts[key]
}

// Len is the number of distinct keys.
func (t *Tally) Len() int {
	return len(t.order)
}

// Sum is the total of all counts.
func (t *Tally) Sum() int {
	total := 0
	for _, c := range t.counts {
		total += c
	}
	return total
}

// Sorted returns every entry by descending count. Equal counts keep
// first-seen order, which matters for short transcripts where most phrases
// occur once.
func (t *Tally) Sorted() []models.PhraseCount {
	out := make([]models.PhraseCount, len(t.order))
	for i, key := range t.order {
		out[i] = models.PhraseCount{Phrase: key, Count: t.counts[key]}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

// Top returns the first n sorted entries; n <= 0 returns all of them.
func (t *Tally) Top(n int) []models.PhraseCount {
	sorted := t.Sorted()
	if n <= 0 || n >= len(sorted) {
		return sorted
	}
	return sorted[:n]
}
