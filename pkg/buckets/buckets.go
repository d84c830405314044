// Package buckets collects truncated excerpts per category in arrival order.
package buckets

import (
	"unicode/utf8"

	"github.com/dtnitsch/chat-profiler/models"
	"github.com/dtnitsch/chat-profiler/pkg/taxonomy"
)

// Aggregator owns one bucket per category. Buckets grow without bound;
// display limits are applied when the report is assembled.
type Aggregator struct {
	tax     *taxonomy.Taxonomy
	buckets map[string][]string
}

func New(t *taxonomy.Taxonomy) *Aggregator {
	return &Aggregator{tax: t, buckets: make(map[string][]string)}
}

// Add appends an excerpt of msg to every matched category's bucket.
// Unknown category names are ignored.
func (a *Aggregator) Add(msg models.Message, matched []string) {
	for _, name := range matched {
		cat, ok := a.tax.Lookup(name)
		if !ok {
			continue
		}
		a.buckets[name] = append(a.buckets[name], Truncate(msg.Content, cat.ExcerptLength))
	}
}

// Bucket returns the excerpts stored for a category, oldest first.
func (a *Aggregator) Bucket(name string) []string {
	return a.buckets[name]
}

// Total is the number of messages matched to a category.
func (a *Aggregator) Total(name string) int {
	return len(a.buckets[name])
}

// Truncate returns at most n characters of s. Invalid UTF-8 sequences are
// dropped instead of being counted or replaced.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}

	// Fast path: valid and short enough in bytes.
	if len(s) <= n && utf8.ValidString(s) {
		return s
	}

	out := make([]byte, 0, min(len(s), n*utf8.UTFMax))
	count := 0
	for i := 0; i < len(s) && count < n; {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size <= 1 {
			i++
			continue
		}
		out = append(out, s[i:i+size]...)
		i += size
		count++
	}
	return string(out)
}
