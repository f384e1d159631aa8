package corpus

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f3rmion/minpair/internal/viet"
)

const sample = `vnedict header line
phức tạp : complicated
ma : ghost
má : mother; cheek
`

func TestLoad(t *testing.T) {
	d := NewDictionary(viet.NewTable())
	require.NoError(t, d.Load(strings.NewReader(sample), Options{SkipLines: 1}))

	require.Equal(t, 3, d.Size())
	entries := d.Entries()
	assert.Equal(t, "phức tạp", entries[0].Raw())
	assert.Equal(t, "ma", entries[1].Raw())

	recs := d.Lookup("má")
	require.Len(t, recs, 1)
	assert.Equal(t, "mother; cheek", recs[0].Gloss)
	assert.Equal(t, 4, recs[0].Line)

	assert.Empty(t, d.Lookup("mà"))
}

func TestLoadRejectsHeaderWithoutSkip(t *testing.T) {
	d := NewDictionary(viet.NewTable())
	err := d.Load(strings.NewReader(sample), Options{})
	require.ErrorIs(t, err, viet.ErrMissingSeparator)
	assert.Contains(t, err.Error(), "line 1")
}

func TestLoadRejectsUnparseableWord(t *testing.T) {
	d := NewDictionary(viet.NewTable())
	err := d.Load(strings.NewReader("ma : ghost\n42 : forty-two\n"), Options{})
	require.ErrorIs(t, err, viet.ErrNoSyllables)
	assert.Contains(t, err.Error(), "line 2")
}

func TestLoadNormalizesDecomposedText(t *testing.T) {
	// "má" written as m + a + U+0301 COMBINING ACUTE ACCENT.
	decomposed := "ma\u0301 : mother\r\n"

	d := NewDictionary(viet.NewTable())
	require.NoError(t, d.Load(strings.NewReader(decomposed), Options{}))

	syllables := d.Entries()[0].Syllables()
	require.Len(t, syllables, 1)
	assert.Equal(t, viet.Rising, syllables[0].Vowel.Tone)
	assert.Equal(t, "mother", d.Records()[0].Gloss)
	assert.Len(t, d.Lookup("má"), 1)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vnedict.txt")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0644))

	d := NewDictionary(viet.NewTable())
	require.NoError(t, d.LoadFromFile(path, Options{SkipLines: 1}))
	assert.Equal(t, 3, d.Size())

	err := d.LoadFromFile(filepath.Join(t.TempDir(), "missing.txt"), Options{})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "má", Normalize("  má\t"))
	assert.Equal(t, "\u00e1", Normalize("a\u0301"))
}
