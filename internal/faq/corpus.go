// Package faq holds the static FAQ corpus shared read-only by the assistant and the UI.
package faq

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"care-intake-be/internal/entity"

	"gopkg.in/yaml.v3"
)

// CategoryAll is the synthetic category that counts every entry.
const CategoryAll = "All"

//go:embed faq_data.yaml
var embeddedCorpus []byte

type corpusFile struct {
	Categories []string          `yaml:"categories"`
	Entries    []entity.FAQEntry `yaml:"entries"`
}

// CategoryCount is one row of the category filter.
type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Corpus is immutable after construction and safe for concurrent reads.
type Corpus struct {
	entries    []entity.FAQEntry
	byId       map[int]int
	categories []string
}

// Load returns the embedded corpus, or the YAML file at path when path is non-empty.
func Load(path string) (*Corpus, error) {
	data := embeddedCorpus
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read faq corpus: %w", err)
		}
		data = b
	}
	return Parse(data)
}

// Parse decodes and validates a YAML corpus document.
func Parse(data []byte) (*Corpus, error) {
	var file corpusFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode faq corpus: %w", err)
	}
	return New(file.Entries, file.Categories)
}

// New validates entries and builds the id index.
// Categories keep their declared order; categories used by entries but not declared are appended.
func New(entries []entity.FAQEntry, categories []string) (*Corpus, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("faq corpus is empty")
	}

	c := &Corpus{
		entries: make([]entity.FAQEntry, len(entries)),
		byId:    make(map[int]int, len(entries)),
	}
	copy(c.entries, entries)

	seenCategory := make(map[string]bool)
	for _, cat := range categories {
		if cat == "" || cat == CategoryAll || seenCategory[cat] {
			continue
		}
		seenCategory[cat] = true
		c.categories = append(c.categories, cat)
	}

	for i, e := range c.entries {
		if e.Id <= 0 {
			return nil, fmt.Errorf("faq entry %d: id must be positive", i)
		}
		if _, dup := c.byId[e.Id]; dup {
			return nil, fmt.Errorf("faq entry %d: duplicate id %d", i, e.Id)
		}
		if strings.TrimSpace(e.Question) == "" || strings.TrimSpace(e.Answer) == "" {
			return nil, fmt.Errorf("faq entry #%d: question and answer are required", e.Id)
		}
		c.byId[e.Id] = i
		if e.Category != "" && !seenCategory[e.Category] {
			seenCategory[e.Category] = true
			c.categories = append(c.categories, e.Category)
		}
	}

	return c, nil
}

// Entries returns a copy of all entries in corpus order.
func (c *Corpus) Entries() []entity.FAQEntry {
	out := make([]entity.FAQEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

// ByCategory returns entries of one category; "" or "All" returns everything.
func (c *Corpus) ByCategory(category string) []entity.FAQEntry {
	if category == "" || category == CategoryAll {
		return c.Entries()
	}
	out := []entity.FAQEntry{}
	for _, e := range c.entries {
		if e.Category == category {
			out = append(out, e)
		}
	}
	return out
}

func (c *Corpus) Get(id int) (entity.FAQEntry, bool) {
	i, ok := c.byId[id]
	if !ok {
		return entity.FAQEntry{}, false
	}
	return c.entries[i], true
}

func (c *Corpus) Has(id int) bool {
	_, ok := c.byId[id]
	return ok
}

// ValidId returns id when it names an entry, nil otherwise.
func (c *Corpus) ValidId(id *int) *int {
	if id == nil || !c.Has(*id) {
		return nil
	}
	v := *id
	return &v
}

// CategoryCounts lists "All" first, then each category in declared order.
func (c *Corpus) CategoryCounts() []CategoryCount {
	counts := make(map[string]int)
	for _, e := range c.entries {
		counts[e.Category]++
	}
	out := make([]CategoryCount, 0, len(c.categories)+1)
	out = append(out, CategoryCount{Name: CategoryAll, Count: len(c.entries)})
	for _, cat := range c.categories {
		out = append(out, CategoryCount{Name: cat, Count: counts[cat]})
	}
	return out
}

func (c *Corpus) Len() int {
	return len(c.entries)
}
