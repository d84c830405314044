// Package classifier evaluates every taxonomy category against a message.
package classifier

import (
	"github.com/dtnitsch/chat-profiler/models"
	"github.com/dtnitsch/chat-profiler/pkg/taxonomy"
)

// Classifier is multi-label: a message may match any number of categories.
type Classifier struct {
	categories []*taxonomy.Category
}

func New(t *taxonomy.Taxonomy) *Classifier {
	return &Classifier{categories: t.Categories()}
}

// Classify returns the names of all matching categories in taxonomy order.
func (c *Classifier) Classify(msg models.Message) []string {
	return c.ClassifyText(msg.Content)
}

// ClassifyText is Classify for bare content.
func (c *Classifier) ClassifyText(content string) []string {
	text := taxonomy.NewText(content)

	var matched []string
	for _, cat := range c.categories {
		if cat.Match(text) {
			matched = append(matched, cat.Name)
		}
	}
	return matched
}
