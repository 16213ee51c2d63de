// Package taxonomy holds the static keyword and entity registry the engine
// classifies against. The registry is built once at startup, validated, and
// treated as immutable for the duration of a run.
package taxonomy

import (
	"fmt"

	"github.com/story-radar/backend/internal/models"
)

// FallbackCategory is the viral-topic category consulted only when no other
// topic matches. Its subcategories never contribute to the main tally.
const FallbackCategory = "Other"

// GlobalFlag marks cross-country story headlines.
const GlobalFlag = "🌍"

// Topic is a taxonomy node: either a keyword leaf or a named category of
// child leaves. Exactly one of Keywords/Children is populated; Validate
// enforces the variant.
type Topic struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords,omitempty"`
	Children []Topic  `yaml:"children,omitempty"`
}

// Leaf reports whether the node is a flat keyword set.
func (t Topic) Leaf() bool {
	return len(t.Children) == 0
}

// Entity is a tracked public figure with lowercase alias substrings.
type Entity struct {
	Name    string   `yaml:"name"`
	Aliases []string `yaml:"aliases"`
}

// EntityGroup is a named set of tracked entities (e.g. "Royal Drama").
type EntityGroup struct {
	Name     string   `yaml:"name"`
	Entities []Entity `yaml:"entities"`
}

// CountryConfig carries everything country-specific: display data, the
// country-local topic leaves and the tracked politicians.
type CountryConfig struct {
	Code        models.Country `yaml:"code"`
	Name        string         `yaml:"name"`
	Flag        string         `yaml:"flag"`
	Timezone    string         `yaml:"timezone"`
	LocalTopics []Topic        `yaml:"local_topics"`
	Politicians []Entity       `yaml:"politicians"`
}

// Registry is the full immutable configuration object injected into the
// classifier and every detector. All topic slices are ordered; that order is
// the documented tie-break for classification.
type Registry struct {
	Active       []models.Country `yaml:"active"`
	Countries    []CountryConfig  `yaml:"countries"`
	GlobalTopics []Topic          `yaml:"global_topics"`
	ViralTopics  []Topic          `yaml:"viral_topics"`
	ViralPeople  []EntityGroup    `yaml:"viral_people"`
	Weights      map[string]int   `yaml:"weights"`
}

// Country looks up the typed configuration for a country code.
func (r *Registry) Country(code models.Country) (CountryConfig, bool) {
	for _, c := range r.Countries {
		if c.Code == code {
			return c, true
		}
	}
	return CountryConfig{}, false
}

// Flag returns the headline indicator for a country, or the global marker
// when country is empty or unknown.
func (r *Registry) Flag(code models.Country) string {
	if c, ok := r.Country(code); ok {
		return c.Flag
	}
	return GlobalFlag
}

// CountryName returns the display name for a country, "Global" otherwise.
func (r *Registry) CountryName(code models.Country) string {
	if c, ok := r.Country(code); ok {
		return c.Name
	}
	return "Global"
}

// Weight returns the priority weight for a topic, defaulting to 1.
// No detector currently consults weights; the table is carried as
// configuration for the renderer.
func (r *Registry) Weight(topic string) int {
	if w, ok := r.Weights[topic]; ok {
		return w
	}
	return 1
}

// TrackedEntities combines a country's politicians with every global
// viral-people group into one ordered entity list. With an empty country
// only the global groups are returned. Later entries do not override
// earlier ones with the same name.
func (r *Registry) TrackedEntities(country models.Country) []Entity {
	var out []Entity
	seen := map[string]bool{}

	add := func(e Entity) {
		if seen[e.Name] {
			return
		}
		seen[e.Name] = true
		out = append(out, e)
	}

	if c, ok := r.Country(country); ok {
		for _, e := range c.Politicians {
			add(e)
		}
	}
	for _, g := range r.ViralPeople {
		for _, e := range g.Entities {
			add(e)
		}
	}
	return out
}

// Validate checks the registry for structural errors. A malformed registry
// is a fatal startup error, never a per-article failure.
func (r *Registry) Validate() error {
	if len(r.Active) == 0 {
		return fmt.Errorf("no active countries configured")
	}
	for _, code := range r.Active {
		if _, ok := r.Country(code); !ok {
			return fmt.Errorf("active country %q has no configuration", code)
		}
	}

	for _, c := range r.Countries {
		if c.Name == "" {
			return fmt.Errorf("country %q: empty name", c.Code)
		}
		if err := validateLeaves(string(c.Code)+" local topics", c.LocalTopics); err != nil {
			return err
		}
		if err := validateEntities(string(c.Code)+" politicians", c.Politicians); err != nil {
			return err
		}
	}

	if err := validateLeaves("global topics", r.GlobalTopics); err != nil {
		return err
	}

	fallback := false
	seen := map[string]bool{}
	for _, cat := range r.ViralTopics {
		if cat.Name == "" {
			return fmt.Errorf("viral topics: category with empty name")
		}
		if seen[cat.Name] {
			return fmt.Errorf("viral topics: duplicate category %q", cat.Name)
		}
		seen[cat.Name] = true
		if cat.Leaf() {
			return fmt.Errorf("viral topic %q: categories must have subcategories", cat.Name)
		}
		if len(cat.Keywords) > 0 {
			return fmt.Errorf("viral topic %q: node cannot carry both keywords and children", cat.Name)
		}
		if err := validateLeaves("viral topic "+cat.Name, cat.Children); err != nil {
			return err
		}
		if cat.Name == FallbackCategory {
			fallback = true
		}
	}
	if !fallback {
		return fmt.Errorf("viral topics: missing fallback category %q", FallbackCategory)
	}

	for _, g := range r.ViralPeople {
		if err := validateEntities("viral people "+g.Name, g.Entities); err != nil {
			return err
		}
	}

	return nil
}

func validateLeaves(where string, topics []Topic) error {
	seen := map[string]bool{}
	for _, t := range topics {
		if t.Name == "" {
			return fmt.Errorf("%s: topic with empty name", where)
		}
		if seen[t.Name] {
			return fmt.Errorf("%s: duplicate topic %q", where, t.Name)
		}
		seen[t.Name] = true
		if !t.Leaf() {
			return fmt.Errorf("%s: %q must be a keyword leaf", where, t.Name)
		}
		if len(t.Keywords) == 0 {
			return fmt.Errorf("%s: %q has no keywords", where, t.Name)
		}
	}
	return nil
}

func validateEntities(where string, entities []Entity) error {
	for _, e := range entities {
		if e.Name == "" {
			return fmt.Errorf("%s: entity with empty name", where)
		}
		if len(e.Aliases) == 0 {
			return fmt.Errorf("%s: %q has no aliases", where, e.Name)
		}
	}
	return nil
}
