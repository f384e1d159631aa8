package pairs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/unicode/norm"

	"github.com/f3rmion/minpair/internal/delta"
	"github.com/f3rmion/minpair/internal/viet"
)

func corpus(t *testing.T, table *viet.Table, lines ...string) []viet.Entry {
	t.Helper()
	entries := make([]viet.Entry, 0, len(lines))
	for _, line := range lines {
		e, _, err := table.ParseLine(line)
		require.NoError(t, err)
		entries = append(entries, e)
	}
	return entries
}

func compile(t *testing.T, table *viet.Table, q Query) Criteria {
	t.Helper()
	c, err := q.Compile(table)
	require.NoError(t, err)
	return c
}

func rows(found []Pair) [][]string {
	out := make([][]string, len(found))
	for i, p := range found {
		out[i] = p.Row()
	}
	return out
}

func TestFilterWorks(t *testing.T) {
	table := viet.NewTable()
	entries := corpus(t, table, "phức tạp : complicated")

	c := compile(t, table, Query{Vowels: []string{"e"}, Mode: "tone"})
	got, err := Filter(context.Background(), entries, c, Options{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFilterPreserves(t *testing.T) {
	table := viet.NewTable()
	entries := corpus(t, table, "phức tạp : complicated")

	c := compile(t, table, Query{Vowels: []string{"a"}, Mode: "tone"})
	got, err := Filter(context.Background(), entries, c, Options{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "phức tạp", got[0].Raw())
}

func TestPosition(t *testing.T) {
	table := viet.NewTable()

	tests := []struct {
		name    string
		word    string
		query   Query
		wantPos int
		wantOK  bool
	}{
		{"no constraints", "phức tạp", Query{Mode: "tone"}, 0, true},
		{"single vowel", "phức tạp", Query{Vowels: []string{"a"}, Mode: "tone"}, 1, true},
		{"agreeing sets", "phức tạp", Query{Vowels: []string{"a"}, Initials: []string{"t"}, Finals: []string{"p"}, Mode: "tone"}, 1, true},
		{"disagreeing sets", "phức tạp", Query{Vowels: []string{"a"}, Initials: []string{"ph"}, Mode: "tone"}, 0, false},
		{"missing value", "phức tạp", Query{Tones: []string{"falling"}, Mode: "tone"}, 0, false},
		// The vowel first matches syllable 0 and the tone syllable 1, so the
		// word fails even though syllable 1 satisfies both.
		{"first match only", "ba bà", Query{Vowels: []string{"a"}, Tones: []string{"falling"}, Mode: "tone"}, 0, false},
		{"either set value", "con mèo", Query{Vowels: []string{"a", "eo"}, Mode: "tone"}, 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := table.NewEntry(tt.word)
			require.NoError(t, err)
			c := compile(t, table, tt.query)

			pos, ok := c.Position(e.Syllables())
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantPos, pos)
			}
			assert.Equal(t, tt.wantOK, c.Matches(e))
		})
	}
}

func TestSyllablePosition(t *testing.T) {
	table := viet.NewTable()
	e, err := table.NewEntry("bà ba bá")
	require.NoError(t, err)

	c := compile(t, table, Query{Tones: []string{"rising"}, Mode: "tone"})
	pos, ok := c.SyllablePosition(e.Syllables())
	require.True(t, ok)
	assert.Equal(t, 2, pos)

	c = compile(t, table, Query{Tones: []string{"question"}, Mode: "tone"})
	_, ok = c.SyllablePosition(e.Syllables())
	assert.False(t, ok)
}

func TestFindTone(t *testing.T) {
	table := viet.NewTable()
	entries := corpus(t, table,
		"ma : ghost",
		"má : mother",
		"mèo : cat",
		"mà : but",
		"ba ba : turtle",
	)

	c := compile(t, table, Query{Vowels: []string{"a"}, Mode: "tone"})
	got, err := Find(context.Background(), entries, c, Options{})
	require.NoError(t, err)

	assert.Equal(t, [][]string{
		{"ma", "má"},
		{"ma", "mà"},
		{"má", "ma"},
		{"má", "mà"},
		{"mà", "ma"},
		{"mà", "má"},
	}, rows(got))

	for _, p := range got {
		assert.Equal(t, delta.Tone, p.Kind)
		assert.Equal(t, 0, p.Index)
	}
}

func TestFindRespectsTargetKind(t *testing.T) {
	table := viet.NewTable()
	entries := corpus(t, table,
		"phức tạp : complicated",
		"phúc tạp : happiness",
	)

	// The pair differs in the vowel of the first syllable, not the tone.
	c := compile(t, table, Query{Vowels: []string{"a"}, Mode: "tone"})
	got, err := Find(context.Background(), entries, c, Options{})
	require.NoError(t, err)
	assert.Empty(t, got)

	// Both words satisfy the filter at syllable 1, the delta is at 0.
	c = compile(t, table, Query{Vowels: []string{"a"}, Mode: "vowel"})
	got, err = Find(context.Background(), entries, c, Options{})
	require.NoError(t, err)
	assert.Empty(t, got)

	c = compile(t, table, Query{Mode: "vowel"})
	got, err = Find(context.Background(), entries, c, Options{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, []string{"phức tạp", "phúc tạp"}, got[0].Row())
	assert.Equal(t, []string{"phúc tạp", "phức tạp"}, got[1].Row())
	assert.Equal(t, "ư", got[0].Left)
	assert.Equal(t, "u", got[0].Right)
}

func TestFindPositionalConsistency(t *testing.T) {
	table := viet.NewTable()
	entries := corpus(t, table,
		"con mèo : cat",
		"con mẹo : trick",
	)

	// Without constraints the filter position is the first syllable, which
	// is not where the words differ.
	c := compile(t, table, Query{Mode: "tone"})
	got, err := Find(context.Background(), entries, c, Options{})
	require.NoError(t, err)
	assert.Empty(t, got)

	c = compile(t, table, Query{Vowels: []string{"eo"}, Mode: "tone"})
	got, err = Find(context.Background(), entries, c, Options{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].Index)
	assert.Equal(t, "falling", got[0].Left)
	assert.Equal(t, "low_broken", got[0].Right)
}

func TestFindExcludesNonMinimal(t *testing.T) {
	table := viet.NewTable()
	entries := corpus(t, table,
		"ba : three",
		"ba : father",
		"bà : grandmother",
		"mà : but",
		"ba ba : turtle",
	)

	c := compile(t, table, Query{Mode: "tone"})
	got, err := Find(context.Background(), entries, c, Options{})
	require.NoError(t, err)

	// Identical words produce no delta, bà/mà and ba/mà differ twice or on the
	// wrong kind, and ba ba never aligns with a single syllable.
	assert.Equal(t, [][]string{
		{"ba", "bà"},
		{"ba", "bà"},
		{"bà", "ba"},
		{"bà", "ba"},
	}, rows(got))
}

func TestFindDeterministic(t *testing.T) {
	table := viet.NewTable()
	entries := corpus(t, table,
		"ma : ghost",
		"má : mother",
		"mạ : seedling",
		"mả : grave",
		"mã : horse",
		"mà : but",
		"ba : three",
		"bà : grandmother",
		"cá : fish",
		"cà : eggplant",
	)
	c := compile(t, table, Query{Vowels: []string{"a"}, Mode: "tone"})

	first, err := Find(context.Background(), entries, c, Options{Workers: 1})
	require.NoError(t, err)
	second, err := Find(context.Background(), entries, c, Options{Workers: 7})
	require.NoError(t, err)

	assert.Equal(t, rows(first), rows(second))
	assert.Len(t, first, 6*5+2+2)
}

func TestFindCancelled(t *testing.T) {
	table := viet.NewTable()
	entries := corpus(t, table, "ma : ghost", "má : mother")
	c := compile(t, table, Query{Mode: "tone"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Find(ctx, entries, c, Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCompile(t *testing.T) {
	table := viet.NewTable()

	c, err := Query{Vowels: []string{"á", "ươ"}, Tones: []string{"broken"}, Initials: []string{"ngh"}, Mode: "final_consonant"}.Compile(table)
	require.NoError(t, err)
	assert.Contains(t, c.Vowels, "a")
	assert.Contains(t, c.Vowels, "ươ")
	assert.Contains(t, c.Tones, viet.Broken)
	assert.Contains(t, c.Initials, "ngh")
	assert.Equal(t, delta.FinalConsonant, c.Target)

	tests := []struct {
		name  string
		query Query
		want  string
	}{
		{"missing mode", Query{}, "'initial_consonant'"},
		{"bad mode", Query{Mode: "rhyme"}, "'vowel'"},
		{"bad tone", Query{Tones: []string{"sharp"}, Mode: "tone"}, "'low_broken' (ạ)"},
		{"bad vowel", Query{Vowels: []string{"x"}, Mode: "tone"}, "ă â e"},
		{"long vowel", Query{Vowels: []string{"uyêu"}, Mode: "tone"}, "unrecognized vowel"},
		{"vowel in initial", Query{Initials: []string{"qu"}, Mode: "tone"}, "initial consonant"},
		{"empty final", Query{Finals: []string{""}, Mode: "tone"}, "final consonant"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.query.Compile(table)
			require.ErrorIs(t, err, ErrInvalidQuery)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestCompileDecomposedInput(t *testing.T) {
	table := viet.NewTable()

	decomposed := norm.NFD.String("ườ")
	require.NotEqual(t, "ườ", decomposed)

	c, err := Query{Vowels: []string{norm.NFD.String("à"), decomposed}, Mode: "tone"}.Compile(table)
	require.NoError(t, err)
	assert.Contains(t, c.Vowels, "a")
	assert.Contains(t, c.Vowels, "ươ")

	entries := corpus(t, table, "ma : ghost", "mà : but", "me : cut")
	found, err := Find(context.Background(), entries, c, Options{})
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, []string{"ma", "mà"}, found[0].Row())
}
