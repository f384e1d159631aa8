package viet

import (
	"fmt"
	"strings"
)

// Vowel is the nucleus of a syllable.
type Vowel struct {
	Raw    string // Cluster as written, diacritics included (e.g. "ướ")
	Normal string // Canonical cluster without tone marks (e.g. "ươ")
	Tone   Tone   // Most dominant tone among the cluster's letters
}

// NewVowel normalizes a raw cluster and derives its tone.
func (t *Table) NewVowel(raw string) (Vowel, error) {
	normal, err := t.Normalize(raw)
	if err != nil {
		return Vowel{}, err
	}
	tone, err := t.ClusterTone(raw)
	if err != nil {
		return Vowel{}, err
	}
	return Vowel{Raw: raw, Normal: normal, Tone: tone}, nil
}

// Syllable is one orthographic Vietnamese syllable.
// Absent consonants are represented by the empty string.
type Syllable struct {
	Raw     string
	Initial string
	Vowel   Vowel
	Final   string
}

// String reassembles the syllable from its parts.
func (s Syllable) String() string {
	return s.Initial + s.Vowel.Raw + s.Final
}

// run is a maximal span of either vowel or non-vowel runes.
type run struct {
	text  string
	vowel bool
}

func (t *Table) runs(token string) []run {
	var out []run
	start := 0
	prev := false
	for i, r := range token {
		v := t.IsVowel(r)
		if i > 0 && v != prev {
			out = append(out, run{text: token[start:i], vowel: prev})
			start = i
		}
		prev = v
	}
	if start < len(token) {
		out = append(out, run{text: token[start:], vowel: prev})
	}
	return out
}

// Segment splits a single whitespace-free token into initial consonant,
// vowel nucleus and final consonant.
//
// The first vowel run is the nucleus. With two consonant runs the first is
// the initial and the second the final. A lone consonant run is the initial
// only when the token starts with it. ok is false when the token has no
// vowel letter; err is reserved for clusters the table cannot normalize.
func (t *Table) Segment(token string) (syl Syllable, ok bool, err error) {
	var (
		nucleus    string
		found      bool
		consonants []string
	)
	for _, r := range t.runs(token) {
		switch {
		case r.vowel && !found:
			nucleus, found = r.text, true
		case !r.vowel:
			consonants = append(consonants, r.text)
		}
	}
	if !found {
		return Syllable{}, false, nil
	}

	vowel, err := t.NewVowel(nucleus)
	if err != nil {
		return Syllable{}, false, fmt.Errorf("segmenting %q: %w", token, err)
	}

	syl = Syllable{Raw: token, Vowel: vowel}
	switch {
	case len(consonants) >= 2:
		syl.Initial, syl.Final = consonants[0], consonants[1]
	case len(consonants) == 1:
		if strings.HasPrefix(token, consonants[0]) {
			syl.Initial = consonants[0]
		} else {
			syl.Final = consonants[0]
		}
	}

	return syl, true, nil
}
