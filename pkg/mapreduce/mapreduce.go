package mapreduce

import (
	"github.com/dtnitsch/chat-profiler/models"
	"github.com/dtnitsch/chat-profiler/pkg/analytics"
)

// Map tallies the opening phrase of every message long enough to have one.
func Map(messages []models.Message, window int) *Tally {
	t := NewTally()
	for _, msg := range messages {
		if phrase, ok := analytics.OpeningPhrase(msg.Content, window); ok {
			t.Add(phrase)
		}
	}
	return t
}

// Reduce merges tallies in order. A key's first-seen position is the
// position it first appeared at across the inputs.
func Reduce(intermediate []*Tally) *Tally {
	final := NewTally()
	for _, t := range intermediate {
		if t == nil {
			continue
		}
		for _, key := range t.order {
			final.AddN(key, t.counts[key])
		}
	}
	return final
}
