package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// LanguageCount is the number of bytes written in a single language.
type LanguageCount struct {
	Language string
	Bytes    int64
}

// LanguageBytes is the language breakdown of one repository, in the order
// the API returned it.
type LanguageBytes []LanguageCount

// UnmarshalJSON decodes a {"Language": bytes} object keeping key order.
func (lb *LanguageBytes) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("languages: expected object, got %v", tok)
	}

	var out LanguageBytes
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("languages: expected string key, got %v", keyTok)
		}
		var n json.Number
		if err := dec.Decode(&n); err != nil {
			return fmt.Errorf("languages: value for %q: %w", key, err)
		}
		v, err := n.Int64()
		if err != nil {
			return fmt.Errorf("languages: value for %q: %w", key, err)
		}
		out = append(out, LanguageCount{Language: key, Bytes: v})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*lb = out
	return nil
}

// LanguageAggregate sums language bytes across repositories. It remembers
// the order in which languages were first seen.
type LanguageAggregate struct {
	order []string
	bytes map[string]int64
}

// NewLanguageAggregate returns an empty aggregate.
func NewLanguageAggregate() *LanguageAggregate {
	return &LanguageAggregate{bytes: make(map[string]int64)}
}

// Add adds n bytes to language.
func (a *LanguageAggregate) Add(language string, n int64) {
	if _, ok := a.bytes[language]; !ok {
		a.order = append(a.order, language)
	}
	a.bytes[language] += n
}

// AddAll adds every entry of a repository breakdown.
func (a *LanguageAggregate) AddAll(lb LanguageBytes) {
	for _, lc := range lb {
		a.Add(lc.Language, lc.Bytes)
	}
}

// Bytes returns the total for language and whether it was seen.
func (a *LanguageAggregate) Bytes(language string) (int64, bool) {
	n, ok := a.bytes[language]
	return n, ok
}

// Len returns the number of distinct languages.
func (a *LanguageAggregate) Len() int {
	return len(a.order)
}

// Entries returns the totals in first-seen order.
func (a *LanguageAggregate) Entries() []LanguageCount {
	out := make([]LanguageCount, 0, len(a.order))
	for _, name := range a.order {
		out = append(out, LanguageCount{Language: name, Bytes: a.bytes[name]})
	}
	return out
}

// Profile is the subset of the GitHub user profile used for the chart title.
type Profile struct {
	Login string `json:"login"`
	Name  string `json:"name"`
}

// DisplayName returns the profile name, or fallback when the profile has none.
func (p *Profile) DisplayName(fallback string) string {
	if p == nil || p.Name == "" {
		return fallback
	}
	return p.Name
}

// CrawlResult is everything fetched from GitHub for a single run.
type CrawlResult struct {
	User         string
	Profile      *Profile
	LinguistYAML string
	Aggregate    *LanguageAggregate
}
