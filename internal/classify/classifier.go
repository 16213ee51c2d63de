// Package classify assigns a topic label and a LOCAL/GLOBAL scope to article
// text. Both passes are pure functions over the immutable registry.
package classify

import (
	"strings"

	"github.com/story-radar/backend/internal/models"
	"github.com/story-radar/backend/internal/taxonomy"
)

// tally accumulates per-topic match counts while preserving first-seen
// order, which is the documented tie-break for classification.
type tally struct {
	order  []string
	counts map[string]int
}

func newTally() *tally {
	return &tally{counts: map[string]int{}}
}

func (t *tally) add(topic string, n int) {
	if _, ok := t.counts[topic]; !ok {
		t.order = append(t.order, topic)
	}
	t.counts[topic] += n
}

// best returns the first topic with the strictly highest count.
func (t *tally) best() (string, int) {
	name, count := "", -1
	for _, topic := range t.order {
		if t.counts[topic] > count {
			name, count = topic, t.counts[topic]
		}
	}
	return name, count
}

func countMatches(text string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			n++
		}
	}
	return n
}

// Topic classifies article text against three taxonomy layers: global
// topics, the country's local topics, and the viral-topic categories (each
// category scored as the sum over its subcategory leaves).
//
// Selection runs in two phases. Phase one picks the highest-count topic with
// the fallback category excluded entirely; subcategories under the fallback
// category are tracked in a separate tally and never reach the main one.
// Phase two runs only when phase one finds no positive match: it picks the
// best fallback subcategory with at least one hit, else the fallback
// category name itself. Empty text therefore yields the fallback category.
func Topic(text string, country models.Country, reg *taxonomy.Registry) string {
	lower := strings.ToLower(text)

	main := newTally()
	fallback := newTally()

	for _, t := range reg.GlobalTopics {
		main.add(t.Name, countMatches(lower, t.Keywords))
	}

	if cfg, ok := reg.Country(country); ok {
		for _, t := range cfg.LocalTopics {
			main.add(t.Name, countMatches(lower, t.Keywords))
		}
	}

	for _, cat := range reg.ViralTopics {
		if cat.Name == taxonomy.FallbackCategory {
			for _, sub := range cat.Children {
				fallback.add(sub.Name, countMatches(lower, sub.Keywords))
			}
			continue
		}
		for _, sub := range cat.Children {
			main.add(cat.Name, countMatches(lower, sub.Keywords))
		}
	}

	if topic, count := main.best(); count > 0 {
		return topic
	}

	if topic, count := fallback.best(); count >= 1 {
		return topic
	}
	return taxonomy.FallbackCategory
}

// Scope decides audience relevance independently of Topic: an article is
// GLOBAL when at least two distinct global topics have a keyword hit.
// A single matched global topic is not enough.
func Scope(text string, reg *taxonomy.Registry) models.Scope {
	lower := strings.ToLower(text)

	matched := 0
	for _, t := range reg.GlobalTopics {
		if countMatches(lower, t.Keywords) >= 1 {
			matched++
			if matched >= 2 {
				return models.ScopeGlobal
			}
		}
	}
	return models.ScopeLocal
}
