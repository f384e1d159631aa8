package anki

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteDeckRoundTrip(t *testing.T) {
	out := filepath.Join(t.TempDir(), "pairs.apkg")
	rows := [][2]string{{"ma", "má"}, {"con mèo", "con mẹo"}}

	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, WriteDeck(out, DeckOptions{Name: DeckName("pairs.csv"), Created: created}, rows))

	pkg, err := OpenPackage(out)
	require.NoError(t, err)
	defer pkg.Close()

	require.Contains(t, pkg.Decks, DefaultDeckID)
	assert.Equal(t, "Minimal Pair Training pairs.csv", pkg.Decks[DefaultDeckID].Name)

	require.Contains(t, pkg.Models, DefaultModelID)
	model := pkg.Models[DefaultModelID]
	assert.Equal(t, ModelName, model.Name)
	require.Len(t, model.Templates, 1)
	assert.Equal(t, "[sound:{{Audio}}]<hr>{{Word_Left}} VS {{Word_Right}}", model.Templates[0].Front)

	require.Len(t, pkg.Notes, 4)
	require.Len(t, pkg.Cards, 4)
	assert.Equal(t, PairFields, pkg.GetFieldNames(pkg.Notes[0]))

	var correct []string
	for _, n := range pkg.Notes {
		correct = append(correct, pkg.GetFieldValue(n, "correct_word"))
	}
	assert.Equal(t, []string{"ma", "má", "con mèo", "con mẹo"}, correct)

	assert.Equal(t, "con mèo", pkg.GetFieldValue(pkg.Notes[3], "Word_Left"))
	assert.Equal(t, "con mẹo", pkg.GetFieldValue(pkg.Notes[3], "Word_Right"))
	assert.Empty(t, pkg.GetFieldValue(pkg.Notes[3], "Audio"))

	// Notes sort on the left word, not the often empty audio field
	assert.Equal(t, "ma", pkg.Notes[0].SFLD)
	assert.Equal(t, "con mèo", pkg.Notes[3].SFLD)
	assert.Equal(t, checksum("con mèo"), pkg.Notes[3].CSum)
	assert.NotEqual(t, pkg.Notes[0].CSum, pkg.Notes[3].CSum)

	for _, c := range pkg.Cards {
		assert.Equal(t, DefaultDeckID, c.DeckID)
	}
	assert.Empty(t, pkg.Media)
	assert.Contains(t, pkg.Summary(), "Notes: 4")
}

func TestWriteDeckStableGUIDs(t *testing.T) {
	dir := t.TempDir()
	rows := [][2]string{{"ma", "má"}}

	first, second := filepath.Join(dir, "a.apkg"), filepath.Join(dir, "b.apkg")
	require.NoError(t, WriteDeck(first, DeckOptions{}, rows))
	require.NoError(t, WriteDeck(second, DeckOptions{}, rows))

	a, err := OpenPackage(first)
	require.NoError(t, err)
	defer a.Close()
	b, err := OpenPackage(second)
	require.NoError(t, err)
	defer b.Close()

	require.Len(t, a.Notes, 2)
	assert.Equal(t, a.Notes[0].GUID, b.Notes[0].GUID)
	assert.NotEqual(t, a.Notes[0].GUID, a.Notes[1].GUID)
}

func TestWriteDeckAttachesAudio(t *testing.T) {
	audioDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(audioDir, AudioFileName("má")), []byte("ID3"), 0644))

	out := filepath.Join(t.TempDir(), "pairs.apkg")
	require.NoError(t, WriteDeck(out, DeckOptions{AudioDir: audioDir}, [][2]string{{"ma", "má"}}))

	pkg, err := OpenPackage(out)
	require.NoError(t, err)
	defer pkg.Close()

	require.Len(t, pkg.Notes, 2)
	assert.Empty(t, pkg.GetFieldValue(pkg.Notes[0], "Audio"))
	assert.Equal(t, AudioFileName("má"), pkg.GetFieldValue(pkg.Notes[1], "Audio"))
	assert.Equal(t, map[string]string{"0": AudioFileName("má")}, pkg.Media)
}

func TestWriteDeckRejectsEmpty(t *testing.T) {
	err := WriteDeck(filepath.Join(t.TempDir(), "x.apkg"), DeckOptions{}, nil)
	assert.ErrorIs(t, err, ErrNoPairs)
}

func TestOpenPackageRejectsZipSlip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "evil.apkg")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	w, err := zw.Create("../escape.txt")
	require.NoError(t, err)
	_, err = w.Write([]byte("x"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	_, err = OpenPackage(path)
	assert.ErrorContains(t, err, "illegal file path")
}

func TestAudioFileName(t *testing.T) {
	name := AudioFileName("ma")
	assert.Regexp(t, `^audio_[0-9a-f]{64}\.mp3$`, name)
	assert.NotEqual(t, name, AudioFileName("má"))
}
