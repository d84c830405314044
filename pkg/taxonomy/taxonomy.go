// Package taxonomy compiles category definitions into pure match rules.
//
// Categories are data: a taxonomy is built from models.FacetDefinition values,
// either the built-in Default set or one loaded from a config file, so adding
// or removing a category never touches the classifier.
package taxonomy

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dtnitsch/chat-profiler/models"
)

// Rule kinds accepted in CategoryDefinition.Kind.
const (
	KindKeywords = "keywords"
	KindPrefix   = "prefix"
	KindMarkers  = "markers"
	KindCompound = "compound"
	KindNever    = "never"
)

// AllKinds returns every valid rule kind.
func AllKinds() []string {
	return []string{KindKeywords, KindPrefix, KindMarkers, KindCompound, KindNever}
}

// Text is a message prepared once for rule evaluation.
type Text struct {
	Raw   string
	Lower string
}

// NewText lowercases raw for case-insensitive keyword tests.
func NewText(raw string) Text {
	return Text{Raw: raw, Lower: Lower(raw)}
}

// Lower case-folds s the same way keywords are folded at compile time.
func Lower(s string) string {
	// Casers keep state and are not safe to share, so build one per call.
	return cases.Lower(language.Und).String(s)
}

// Predicate reports whether a message belongs to a category.
type Predicate func(Text) bool

// Category is a compiled classification rule.
type Category struct {
	Name          string
	Facet         string
	Kind          string
	DisplayLimit  int
	ExcerptLength int
	Match         Predicate
}

// Facet is an ordered group of categories.
type Facet struct {
	Name       string
	Categories []*Category
}

// Taxonomy is the ordered set of facets used for one run.
type Taxonomy struct {
	Facets []*Facet
	byName map[string]*Category
}

// Compile validates definitions and builds their predicates.
func Compile(defs []models.FacetDefinition) (*Taxonomy, error) {
	if len(defs) == 0 {
		return nil, fmt.Errorf("taxonomy has no facets")
	}

	t := &Taxonomy{byName: make(map[string]*Category)}
	facetNames := make(map[string]bool, len(defs))

	for _, fd := range defs {
		name := strings.TrimSpace(fd.Name)
		if name == "" {
			return nil, fmt.Errorf("facet with empty name")
		}
		if facetNames[name] {
			return nil, fmt.Errorf("duplicate facet %q", name)
		}
		facetNames[name] = true

		facet := &Facet{Name: name}
		for _, cd := range fd.Categories {
			cat, err := compileCategory(name, cd)
			if err != nil {
				return nil, fmt.Errorf("facet %q: %w", name, err)
			}
			if _, dup := t.byName[cat.Name]; dup {
				return nil, fmt.Errorf("facet %q: duplicate category %q", name, cat.Name)
			}
			t.byName[cat.Name] = cat
			facet.Categories = append(facet.Categories, cat)
		}
		t.Facets = append(t.Facets, facet)
	}

	return t, nil
}

// Categories returns every category in facet order.
func (t *Taxonomy) Categories() []*Category {
	cats := make([]*Category, 0, len(t.byName))
	for _, f := range t.Facets {
		cats = append(cats, f.Categories...)
	}
	return cats
}

// Lookup returns the named category.
func (t *Taxonomy) Lookup(name string) (*Category, bool) {
	c, ok := t.byName[name]
	return c, ok
}

func compileCategory(facet string, cd models.CategoryDefinition) (*Category, error) {
	name := strings.TrimSpace(cd.Name)
	if name == "" {
		return nil, fmt.Errorf("category with empty name")
	}
	if cd.DisplayLimit <= 0 {
		return nil, fmt.Errorf("category %q: display_limit must be positive, got %d", name, cd.DisplayLimit)
	}
	if cd.ExcerptLength <= 0 {
		return nil, fmt.Errorf("category %q: excerpt_length must be positive, got %d", name, cd.ExcerptLength)
	}

	match, err := buildPredicate(cd)
	if err != nil {
		return nil, fmt.Errorf("category %q: %w", name, err)
	}

	return &Category{
		Name:          name,
		Facet:         facet,
		Kind:          cd.Kind,
		DisplayLimit:  cd.DisplayLimit,
		ExcerptLength: cd.ExcerptLength,
		Match:         match,
	}, nil
}

func buildPredicate(cd models.CategoryDefinition) (Predicate, error) {
	switch cd.Kind {
	case KindKeywords:
		if len(cd.Keywords) == 0 {
			return nil, fmt.Errorf("kind %q needs keywords", cd.Kind)
		}
		return ContainsAny(cd.Keywords), nil
	case KindPrefix:
		if len(cd.Prefixes) == 0 {
			return nil, fmt.Errorf("kind %q needs prefixes", cd.Kind)
		}
		return HasAnyPrefix(cd.Prefixes), nil
	case KindMarkers:
		if len(cd.Markers) == 0 {
			return nil, fmt.Errorf("kind %q needs markers", cd.Kind)
		}
		return HasAnyMarker(cd.Markers), nil
	case KindCompound:
		if len(cd.Markers) == 0 || len(cd.Keywords) == 0 {
			return nil, fmt.Errorf("kind %q needs markers and keywords", cd.Kind)
		}
		return All(HasAnyMarker(cd.Markers), ContainsAny(cd.Keywords)), nil
	case KindNever:
		return Never, nil
	default:
		return nil, fmt.Errorf("unknown rule kind %q (valid: %s)", cd.Kind, strings.Join(AllKinds(), ", "))
	}
}
