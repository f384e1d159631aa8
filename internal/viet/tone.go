// Package viet models Vietnamese orthographic syllables: the diacritic table,
// vowel cluster normalization, syllable segmentation and dictionary entries.
package viet

import (
	"fmt"
	"strings"
)

// Tone represents one of the six Vietnamese tones.
//
// The ordering follows diacritic dominance and is only used to pick a single
// tone for a cluster whose letters disagree.
type Tone int

const (
	Flat      Tone = iota // ngang - a
	Rising                // sắc - á
	Falling               // huyền - à
	Question              // hỏi - ả
	Broken                // ngã - ã
	LowBroken             // nặng - ạ
)

var toneNames = [...]string{
	Flat:      "flat",
	Rising:    "rising",
	Falling:   "falling",
	Question:  "question",
	Broken:    "broken",
	LowBroken: "low_broken",
}

var toneExamples = [...]string{
	Flat:      "a",
	Rising:    "á",
	Falling:   "à",
	Question:  "ả",
	Broken:    "ã",
	LowBroken: "ạ",
}

// AllTones returns every tone in dominance order.
func AllTones() []Tone {
	return []Tone{Flat, Rising, Falling, Question, Broken, LowBroken}
}

// Name returns the tone's configuration name (e.g. "low_broken").
func (t Tone) Name() string {
	if t < Flat || t > LowBroken {
		return "unknown"
	}
	return toneNames[t]
}

func (t Tone) String() string {
	return t.Name()
}

// Example returns the letter "a" carrying this tone's diacritic.
func (t Tone) Example() string {
	if t < Flat || t > LowBroken {
		return ""
	}
	return toneExamples[t]
}

// ParseTone resolves a tone name. The error lists every accepted name.
func ParseTone(name string) (Tone, error) {
	for _, t := range AllTones() {
		if t.Name() == name {
			return t, nil
		}
	}
	return Flat, fmt.Errorf("unrecognized tone %q; available tones: %s", name, ToneUsage())
}

// ToneUsage describes the accepted tone names with their diacritics.
func ToneUsage() string {
	parts := make([]string, 0, len(toneNames))
	for _, t := range AllTones() {
		parts = append(parts, fmt.Sprintf("'%s' (%s)", t.Name(), t.Example()))
	}
	return strings.Join(parts, ", ")
}
