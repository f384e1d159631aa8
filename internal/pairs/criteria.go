// Package pairs selects dictionary entries by feature constraints and finds
// minimal pairs among them.
package pairs

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/f3rmion/minpair/internal/delta"
	"github.com/f3rmion/minpair/internal/viet"
)

// ErrInvalidQuery is wrapped by every validation failure of a Query.
var ErrInvalidQuery = errors.New("invalid query")

// Query is the caller-facing, unvalidated form of Criteria.
type Query struct {
	Vowels   []string `yaml:"vowels,omitempty" json:"vowels,omitempty"`
	Initials []string `yaml:"initials,omitempty" json:"initials,omitempty"`
	Finals   []string `yaml:"finals,omitempty" json:"finals,omitempty"`
	Tones    []string `yaml:"tones,omitempty" json:"tones,omitempty"`
	Mode     string   `yaml:"mode,omitempty" json:"mode,omitempty"` // Target feature kind
}

// Criteria holds validated feature constraints and the feature a minimal
// pair must differ on. Empty sets do not constrain.
type Criteria struct {
	Vowels   map[string]struct{}
	Initials map[string]struct{}
	Finals   map[string]struct{}
	Tones    map[viet.Tone]struct{}
	Target   delta.Kind
}

// Compile validates q against the table. Vowels may be given with or without
// tone marks; they are stored as canonical clusters. Values are NFC-normalized
// first, like dictionary lines.
func (q Query) Compile(table *viet.Table) (Criteria, error) {
	c := Criteria{
		Vowels:   make(map[string]struct{}),
		Initials: make(map[string]struct{}),
		Finals:   make(map[string]struct{}),
		Tones:    make(map[viet.Tone]struct{}),
	}

	if q.Mode == "" {
		return Criteria{}, fmt.Errorf("%w: a target kind is required; available kinds: %s", ErrInvalidQuery, delta.KindUsage())
	}
	target, err := delta.ParseKind(q.Mode)
	if err != nil {
		return Criteria{}, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}
	c.Target = target

	for _, v := range q.Vowels {
		v = norm.NFC.String(v)
		normal, err := table.Normalize(v)
		if err != nil {
			return Criteria{}, fmt.Errorf("%w: unrecognized vowel %q; use a cluster of one to three of: %s",
				ErrInvalidQuery, v, baseVowelList())
		}
		c.Vowels[normal] = struct{}{}
	}

	for _, set := range []struct {
		name   string
		values []string
		into   map[string]struct{}
	}{
		{"initial consonant", q.Initials, c.Initials},
		{"final consonant", q.Finals, c.Finals},
	} {
		for _, v := range set.values {
			v = norm.NFC.String(v)
			if v == "" || table.ContainsVowel(v) {
				return Criteria{}, fmt.Errorf("%w: unrecognized %s %q; consonants are non-empty and contain none of: %s",
					ErrInvalidQuery, set.name, v, baseVowelList())
			}
			set.into[v] = struct{}{}
		}
	}

	for _, name := range q.Tones {
		tone, err := viet.ParseTone(name)
		if err != nil {
			return Criteria{}, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
		}
		c.Tones[tone] = struct{}{}
	}

	return c, nil
}

func baseVowelList() string {
	letters := make([]string, len(viet.BaseVowels))
	for i, r := range viet.BaseVowels {
		letters[i] = string(r)
	}
	return strings.Join(letters, " ")
}

type predicate func(viet.Syllable) bool

// predicates returns one test per non-empty constraint set, in a fixed order.
func (c Criteria) predicates() []predicate {
	var preds []predicate
	if len(c.Vowels) > 0 {
		preds = append(preds, func(s viet.Syllable) bool {
			_, ok := c.Vowels[s.Vowel.Normal]
			return ok
		})
	}
	if len(c.Initials) > 0 {
		preds = append(preds, func(s viet.Syllable) bool {
			_, ok := c.Initials[s.Initial]
			return ok
		})
	}
	if len(c.Finals) > 0 {
		preds = append(preds, func(s viet.Syllable) bool {
			_, ok := c.Finals[s.Final]
			return ok
		})
	}
	if len(c.Tones) > 0 {
		preds = append(preds, func(s viet.Syllable) bool {
			_, ok := c.Tones[s.Vowel.Tone]
			return ok
		})
	}
	return preds
}

// Position finds, for each constraint independently, the first syllable
// satisfying it, and passes only when all those indices agree. Later
// syllables that happen to satisfy every constraint are not considered.
// Without constraints every word passes at position 0.
func (c Criteria) Position(syllables []viet.Syllable) (int, bool) {
	pos := -1
	for _, pred := range c.predicates() {
		idx := -1
		for i, s := range syllables {
			if pred(s) {
				idx = i
				break
			}
		}
		if idx < 0 || (pos >= 0 && idx != pos) {
			return 0, false
		}
		pos = idx
	}
	if pos < 0 {
		return 0, true
	}
	return pos, true
}

// Matches reports whether an entry passes the filter.
func (c Criteria) Matches(e viet.Entry) bool {
	_, ok := c.Position(e.Syllables())
	return ok
}

// SyllablePosition returns the first syllable that passes the filter on its
// own.
func (c Criteria) SyllablePosition(syllables []viet.Syllable) (int, bool) {
	for i := range syllables {
		if _, ok := c.Position(syllables[i : i+1]); ok {
			return i, true
		}
	}
	return 0, false
}
