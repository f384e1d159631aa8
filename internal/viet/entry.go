package viet

import (
	"errors"
	"fmt"
	"strings"
)

// Separator divides a dictionary line into headword and gloss.
const Separator = " : "

var (
	// ErrMissingSeparator is returned for dictionary lines without Separator.
	ErrMissingSeparator = errors.New("missing word/gloss separator")
	// ErrNoSyllables is returned for headwords in which no token segments.
	ErrNoSyllables = errors.New("no parseable syllable")
)

// Entry is a dictionary headword of one or more syllables.
type Entry struct {
	raw   string
	table *Table
}

// NewEntry validates a headword. Every entry has at least one syllable and
// every vowel-bearing token in it segments without error.
func (t *Table) NewEntry(word string) (Entry, error) {
	word = strings.TrimSpace(word)
	count := 0
	for _, token := range strings.FieldsFunc(word, isSpace) {
		_, ok, err := t.Segment(token)
		if err != nil {
			return Entry{}, fmt.Errorf("entry %q: %w", word, err)
		}
		if ok {
			count++
		}
	}
	if count == 0 {
		return Entry{}, fmt.Errorf("entry %q: %w", word, ErrNoSyllables)
	}
	return Entry{raw: word, table: t}, nil
}

// ParseLine splits a "<word> : <gloss>" line and builds the entry.
func (t *Table) ParseLine(line string) (Entry, string, error) {
	word, gloss, ok := strings.Cut(line, Separator)
	if !ok {
		return Entry{}, "", fmt.Errorf("%w: %q", ErrMissingSeparator, line)
	}
	e, err := t.NewEntry(word)
	if err != nil {
		return Entry{}, "", err
	}
	return e, gloss, nil
}

// Raw returns the headword text.
func (e Entry) Raw() string {
	return e.raw
}

func (e Entry) String() string {
	return e.raw
}

// Syllables segments the headword. Each call returns a new slice; tokens
// without a vowel letter are skipped.
func (e Entry) Syllables() []Syllable {
	tokens := strings.FieldsFunc(e.raw, isSpace)
	out := make([]Syllable, 0, len(tokens))
	for _, token := range tokens {
		syl, ok, err := e.table.Segment(token)
		if err != nil {
			// NewEntry already segmented every token.
			panic(fmt.Sprintf("viet: entry %q changed segmentation: %v", e.raw, err))
		}
		if ok {
			out = append(out, syl)
		}
	}
	return out
}
