package delta

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f3rmion/minpair/internal/viet"
)

func segment(t *testing.T, table *viet.Table, token string) viet.Syllable {
	t.Helper()
	syl, ok, err := table.Segment(token)
	require.NoError(t, err)
	require.True(t, ok, token)
	return syl
}

func entry(t *testing.T, table *viet.Table, word string) viet.Entry {
	t.Helper()
	e, err := table.NewEntry(word)
	require.NoError(t, err)
	return e
}

func TestParseKind(t *testing.T) {
	for _, k := range AllKinds() {
		got, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}

	_, err := ParseKind("rhyme")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'final_consonant'")
}

func TestSyllables(t *testing.T) {
	table := viet.NewTable()

	tests := []struct {
		name  string
		left  string
		right string
		want  []Delta
	}{
		{
			name:  "identical",
			left:  "tạp",
			right: "tạp",
		},
		{
			name:  "vowel",
			left:  "phức",
			right: "phúc",
			want:  []Delta{{Kind: Vowel, Left: "ư", Right: "u", LeftWord: "phức", RightWord: "phúc"}},
		},
		{
			name:  "tone",
			left:  "ma",
			right: "mà",
			want:  []Delta{{Kind: Tone, Left: "flat", Right: "falling", LeftWord: "ma", RightWord: "mà"}},
		},
		{
			name:  "initial absent",
			left:  "an",
			right: "ban",
			want:  []Delta{{Kind: InitialConsonant, Left: "", Right: "b", LeftWord: "an", RightWord: "ban"}},
		},
		{
			name:  "canonical order",
			left:  "bán",
			right: "mèo",
			want: []Delta{
				{Kind: InitialConsonant, Left: "b", Right: "m", LeftWord: "bán", RightWord: "mèo"},
				{Kind: Tone, Left: "rising", Right: "falling", LeftWord: "bán", RightWord: "mèo"},
				{Kind: Vowel, Left: "a", Right: "eo", LeftWord: "bán", RightWord: "mèo"},
				{Kind: FinalConsonant, Left: "n", Right: "", LeftWord: "bán", RightWord: "mèo"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Syllables(segment(t, table, tt.left), segment(t, table, tt.right))
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWords(t *testing.T) {
	table := viet.NewTable()

	got, err := Words(entry(t, table, "con mèo"), entry(t, table, "con mẹo"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].Index)
	assert.Equal(t, Tone, got[0].Kind)
	assert.Equal(t, "falling", got[0].Left)
	assert.Equal(t, "low_broken", got[0].Right)
	assert.Equal(t, "con mèo", got[0].LeftWord)
	assert.Equal(t, "con mẹo", got[0].RightWord)

	got, err = Words(entry(t, table, "phức tạp"), entry(t, table, "phức tạp"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestWordsLengthMismatch(t *testing.T) {
	table := viet.NewTable()

	for _, pair := range [][2]string{
		{"ba", "ba ba"},
		{"phức tạp", "phức"},
		{"a b", "a ba"},
	} {
		_, err := Words(entry(t, table, pair[0]), entry(t, table, pair[1]))
		assert.ErrorIs(t, err, ErrLengthMismatch, "%v", pair)
	}
}

func TestWordsSymmetric(t *testing.T) {
	table := viet.NewTable()
	pairs := [][2]string{
		{"bán hàng", "mèo hàng"},
		{"con mèo", "con mẹo"},
		{"đường phố", "đương phổ"},
	}

	for _, pair := range pairs {
		l, r := entry(t, table, pair[0]), entry(t, table, pair[1])
		forward, err := Words(l, r)
		require.NoError(t, err)
		backward, err := Words(r, l)
		require.NoError(t, err)

		require.Len(t, backward, len(forward))
		for i := range forward {
			assert.Equal(t, forward[i].Kind, backward[i].Kind)
			assert.Equal(t, forward[i].Index, backward[i].Index)
			assert.Equal(t, forward[i].Left, backward[i].Right)
			assert.Equal(t, forward[i].Right, backward[i].Left)
			assert.Equal(t, forward[i].LeftWord, backward[i].RightWord)
		}
	}
}

func TestKindJSON(t *testing.T) {
	out, err := json.Marshal(Indexed{Index: 2, Delta: Delta{Kind: FinalConsonant, Left: "n", Right: "ng"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"index":2,"kind":"final_consonant","isolated_left":"n","isolated_right":"ng","left":"","right":""}`, string(out))

	var k Kind
	require.NoError(t, json.Unmarshal([]byte(`"vowel"`), &k))
	assert.Equal(t, Vowel, k)
	assert.Error(t, json.Unmarshal([]byte(`"rhyme"`), &k))
}
