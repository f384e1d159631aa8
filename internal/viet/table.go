package viet

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

var (
	// ErrNotVowel is returned when a rune outside the diacritic table is
	// treated as a vowel letter.
	ErrNotVowel = errors.New("not a vowel letter")
	// ErrUnknownCluster is returned when a diacritic-free cluster is not a
	// Vietnamese vowel cluster.
	ErrUnknownCluster = errors.New("unknown vowel cluster")
	// ErrEmptyCluster is returned when the tone of an empty cluster is requested.
	ErrEmptyCluster = errors.New("empty vowel cluster")
)

// BaseVowels are the twelve diacritic-free vowel letters.
var BaseVowels = []rune{'a', 'ă', 'â', 'e', 'ê', 'i', 'o', 'ô', 'ơ', 'u', 'ư', 'y'}

// maxClusterLen is the longest vowel cluster in the canonical set.
const maxClusterLen = 3

// toneForms lists each base vowel's lowercase and uppercase forms, one per
// tone in dominance order.
var toneForms = []struct {
	base  rune
	lower string
	upper string
}{
	{'a', "aáàảãạ", "AÁÀẢÃẠ"},
	{'ă', "ăắằẳẵặ", "ĂẮẰẲẴẶ"},
	{'â', "âấầẩẫậ", "ÂẤẦẨẪẬ"},
	{'e', "eéèẻẽẹ", "EÉÈẺẼẸ"},
	{'ê', "êếềểễệ", "ÊẾỀỂỄỆ"},
	{'i', "iíìỉĩị", "IÍÌỈĨỊ"},
	{'o', "oóòỏõọ", "OÓÒỎÕỌ"},
	{'ô', "ôốồổỗộ", "ÔỐỒỔỖỘ"},
	{'ơ', "ơớờởỡợ", "ƠỚỜỞỠỢ"},
	{'u', "uúùủũụ", "UÚÙỦŨỤ"},
	{'ư', "ưứừửữự", "ƯỨỪỬỮỰ"},
	{'y', "yýỳỷỹỵ", "YÝỲỶỸỴ"},
}

type letter struct {
	tone Tone
	base rune
}

// Table is the precomposed vowel table together with the set of canonical
// vowel clusters. It is immutable once built and safe for concurrent use.
type Table struct {
	letters  map[rune]letter
	clusters map[string]struct{}
}

// NewTable builds the diacritic table and derives every canonical cluster of
// one to three base vowels.
func NewTable() *Table {
	t := &Table{
		letters:  make(map[rune]letter, len(toneForms)*12),
		clusters: make(map[string]struct{}),
	}

	for _, form := range toneForms {
		for _, variant := range []string{form.lower, form.upper} {
			for i, r := range []rune(variant) {
				t.letters[r] = letter{tone: Tone(i), base: form.base}
			}
		}
	}

	prefixes := []string{""}
	for n := 0; n < maxClusterLen; n++ {
		var next []string
		for _, p := range prefixes {
			for _, v := range BaseVowels {
				c := p + string(v)
				t.clusters[c] = struct{}{}
				next = append(next, c)
			}
		}
		prefixes = next
	}

	return t
}

// IsVowel reports whether r is a Vietnamese vowel letter in any tone or case.
func (t *Table) IsVowel(r rune) bool {
	_, ok := t.letters[r]
	return ok
}

// ToneAndBase returns the tone carried by r and its diacritic-free base letter.
func (t *Table) ToneAndBase(r rune) (Tone, rune, error) {
	l, ok := t.letters[r]
	if !ok {
		return Flat, 0, fmt.Errorf("%w: %q", ErrNotVowel, r)
	}
	return l.tone, l.base, nil
}

// Normalize strips tone diacritics letter by letter and returns the canonical
// cluster the result names.
func (t *Table) Normalize(cluster string) (string, error) {
	var sb strings.Builder
	for _, r := range cluster {
		_, base, err := t.ToneAndBase(r)
		if err != nil {
			return "", fmt.Errorf("normalizing %q: %w", cluster, err)
		}
		sb.WriteRune(base)
	}

	normal := sb.String()
	if _, ok := t.clusters[normal]; !ok {
		return "", fmt.Errorf("%w: %q (from %q)", ErrUnknownCluster, normal, cluster)
	}
	return normal, nil
}

// ClusterTone returns the most dominant tone among the cluster's letters.
func (t *Table) ClusterTone(cluster string) (Tone, error) {
	if cluster == "" {
		return Flat, ErrEmptyCluster
	}

	tone := Flat
	for _, r := range cluster {
		lt, _, err := t.ToneAndBase(r)
		if err != nil {
			return Flat, fmt.Errorf("toning %q: %w", cluster, err)
		}
		if lt > tone {
			tone = lt
		}
	}
	return tone, nil
}

// IsCanonical reports whether s is a canonical (diacritic-free) vowel cluster.
func (t *Table) IsCanonical(s string) bool {
	_, ok := t.clusters[s]
	return ok
}

// ContainsVowel reports whether s has at least one vowel letter.
func (t *Table) ContainsVowel(s string) bool {
	return strings.IndexFunc(s, t.IsVowel) >= 0
}

// isSpace matches the separators between syllable tokens.
func isSpace(r rune) bool {
	return unicode.IsSpace(r)
}
