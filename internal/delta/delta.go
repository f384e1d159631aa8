// Package delta compares syllables and words feature by feature.
package delta

import (
	"errors"
	"fmt"
	"strings"

	"github.com/f3rmion/minpair/internal/viet"
)

// Kind is one of the four syllable features a pair can differ on.
type Kind int

const (
	InitialConsonant Kind = iota
	Tone
	Vowel
	FinalConsonant
)

var kindNames = [...]string{
	InitialConsonant: "initial_consonant",
	Tone:             "tone",
	Vowel:            "vowel",
	FinalConsonant:   "final_consonant",
}

// ErrLengthMismatch is returned when two words have different syllable counts.
var ErrLengthMismatch = errors.New("syllable count mismatch")

// AllKinds returns every kind in comparison order.
func AllKinds() []Kind {
	return []Kind{InitialConsonant, Tone, Vowel, FinalConsonant}
}

func (k Kind) String() string {
	if k < InitialConsonant || k > FinalConsonant {
		return "unknown"
	}
	return kindNames[k]
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseKind resolves a kind name. The error lists every accepted name.
func ParseKind(name string) (Kind, error) {
	for _, k := range AllKinds() {
		if k.String() == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unrecognized feature kind %q; available kinds: %s", name, KindUsage())
}

// KindUsage lists the accepted kind names.
func KindUsage() string {
	names := make([]string, 0, len(kindNames))
	for _, k := range AllKinds() {
		names = append(names, "'"+k.String()+"'")
	}
	return strings.Join(names, ", ")
}

// Isolate returns the text of a single feature of s. Absent consonants are
// empty, vowels use their canonical identity and tones their name.
func Isolate(s viet.Syllable, k Kind) string {
	switch k {
	case InitialConsonant:
		return s.Initial
	case Tone:
		return s.Vowel.Tone.Name()
	case Vowel:
		return s.Vowel.Normal
	case FinalConsonant:
		return s.Final
	}
	return ""
}

// Delta is a disagreement between two sides on one feature.
type Delta struct {
	Kind      Kind   `json:"kind"`
	Left      string `json:"isolated_left"`  // Left side's feature text
	Right     string `json:"isolated_right"` // Right side's feature text
	LeftWord  string `json:"left"`           // Text the left feature was taken from
	RightWord string `json:"right"`
}

// Indexed is a word-level delta tagged with its syllable position.
type Indexed struct {
	Index int `json:"index"`
	Delta
}

// Syllables compares two syllables on every feature, in AllKinds order.
func Syllables(left, right viet.Syllable) []Delta {
	var out []Delta
	for _, k := range AllKinds() {
		l, r := Isolate(left, k), Isolate(right, k)
		if l == r {
			continue
		}
		out = append(out, Delta{
			Kind:      k,
			Left:      l,
			Right:     r,
			LeftWord:  left.Raw,
			RightWord: right.Raw,
		})
	}
	return out
}

// Words compares two entries position by position. Entries with different
// syllable counts cannot be aligned and yield ErrLengthMismatch.
func Words(left, right viet.Entry) ([]Indexed, error) {
	ls, rs := left.Syllables(), right.Syllables()
	if len(ls) != len(rs) {
		return nil, fmt.Errorf("%w: %q has %d, %q has %d",
			ErrLengthMismatch, left.Raw(), len(ls), right.Raw(), len(rs))
	}

	var out []Indexed
	for i := range ls {
		for _, d := range Syllables(ls[i], rs[i]) {
			d.LeftWord, d.RightWord = left.Raw(), right.Raw()
			out = append(out, Indexed{Index: i, Delta: d})
		}
	}
	return out, nil
}
