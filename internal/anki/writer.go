package anki

import (
	"archive/zip"
	"crypto/sha1"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Identifiers of the minimal-pair note type and deck. Keeping them fixed
// lets Anki merge re-imported decks instead of duplicating them.
const (
	DefaultDeckID  int64 = 2059400110
	DefaultModelID int64 = 1607392319

	ModelName = "Minimal Pair Training"
)

// PairFields are the fields of a minimal-pair note, in order.
var PairFields = []string{"Audio", "Word_Left", "Word_Right", "Correct_Word"}

// sortField is the index of Word_Left, which the browser sorts and checks
// duplicates on. Audio is often empty.
const sortField = 1

const (
	frontTemplate = "[sound:{{Audio}}]<hr>{{Word_Left}} VS {{Word_Right}}"
	backTemplate  = `{{FrontSide}}<hr id="answer">{{Correct_Word}}`
	cardCSS       = ".card {\n font-family: arial;\n font-size: 20px;\n text-align: center;\n color: black;\n background-color: white;\n}\n"
)

// ErrNoPairs is returned when a deck would contain no notes.
var ErrNoPairs = errors.New("no pairs to write")

// DeckOptions configures WriteDeck.
type DeckOptions struct {
	Name     string
	DeckID   int64
	ModelID  int64
	AudioDir string    // Directory searched for pre-rendered word audio
	Created  time.Time // Base for note and card ids; zero means now
}

// DeckName returns the default deck name for a pair list file.
func DeckName(source string) string {
	return ModelName + " " + filepath.Base(source)
}

// AudioFileName is the file name under which audio for word is expected.
func AudioFileName(word string) string {
	sum := sha256.Sum256([]byte(word))
	return "audio_" + hex.EncodeToString(sum[:]) + ".mp3"
}

// noteRow is a note about to be inserted.
type noteRow struct {
	guid   string
	fields []string
}

// WriteDeck builds an .apkg at outputPath with two notes per pair: one
// where the left word is correct and one where the right word is.
func WriteDeck(outputPath string, opts DeckOptions, rows [][2]string) error {
	if len(rows) == 0 {
		return ErrNoPairs
	}
	if opts.DeckID == 0 {
		opts.DeckID = DefaultDeckID
	}
	if opts.ModelID == 0 {
		opts.ModelID = DefaultModelID
	}
	if opts.Name == "" {
		opts.Name = ModelName
	}
	if opts.Created.IsZero() {
		opts.Created = time.Now()
	}

	tempDir, err := os.MkdirTemp("", "anki-build-*")
	if err != nil {
		return fmt.Errorf("creating temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	media := newMediaSet(opts.AudioDir)
	var notes []noteRow
	for _, r := range rows {
		for _, correct := range r {
			audio, err := media.add(correct)
			if err != nil {
				return err
			}
			notes = append(notes, noteRow{
				guid:   noteGUID(opts.DeckID, r[0], r[1], correct),
				fields: []string{audio, r[0], r[1], correct},
			})
		}
	}

	dbPath := filepath.Join(tempDir, "collection.anki2")
	if err := writeCollection(dbPath, opts, notes); err != nil {
		return err
	}

	if err := writePackage(outputPath, dbPath, media); err != nil {
		return fmt.Errorf("creating package: %w", err)
	}
	return nil
}

func noteGUID(deckID int64, left, right, correct string) string {
	name := fmt.Sprintf("minpair/%d/%s/%s/%s", deckID, left, right, correct)
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(name)).String()
}

// checksum is Anki's duplicate-detection hash: the first 8 hex digits of
// the SHA-1 of the sort field.
func checksum(field string) int64 {
	sum := sha1.Sum([]byte(field))
	csum, _ := strconv.ParseInt(hex.EncodeToString(sum[:4]), 16, 64)
	return csum
}

const schema = `
CREATE TABLE col (
	id integer primary key, crt integer not null, mod integer not null,
	scm integer not null, ver integer not null, dty integer not null,
	usn integer not null, ls integer not null, conf text not null,
	models text not null, decks text not null, dconf text not null,
	tags text not null
);
CREATE TABLE notes (
	id integer primary key, guid text not null, mid integer not null,
	mod integer not null, usn integer not null, tags text not null,
	flds text not null, sfld text not null, csum integer not null,
	flags integer not null, data text not null
);
CREATE TABLE cards (
	id integer primary key, nid integer not null, did integer not null,
	ord integer not null, mod integer not null, usn integer not null,
	type integer not null, queue integer not null, due integer not null,
	ivl integer not null, factor integer not null, reps integer not null,
	lapses integer not null, left integer not null, odue integer not null,
	odid integer not null, flags integer not null, data text not null
);
CREATE TABLE revlog (
	id integer primary key, cid integer not null, usn integer not null,
	ease integer not null, ivl integer not null, lastIvl integer not null,
	factor integer not null, time integer not null, type integer not null
);
CREATE TABLE graves (usn integer not null, oid integer not null, type integer not null);
CREATE INDEX ix_notes_usn on notes (usn);
CREATE INDEX ix_cards_usn on cards (usn);
CREATE INDEX ix_revlog_usn on revlog (usn);
CREATE INDEX ix_cards_nid on cards (nid);
CREATE INDEX ix_cards_sched on cards (did, queue, due);
CREATE INDEX ix_revlog_cid on revlog (cid);
CREATE INDEX ix_notes_csum on notes (csum);
`

func writeCollection(dbPath string, opts DeckOptions, notes []noteRow) error {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	models, decks, dconf, conf, err := collectionJSON(opts)
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	now := opts.Created.Unix()
	if _, err := tx.Exec(`INSERT INTO col VALUES (1, ?, ?, ?, 11, 0, 0, 0, ?, ?, ?, ?, '{}')`,
		now, opts.Created.UnixMilli(), opts.Created.UnixMilli(), conf, models, decks, dconf); err != nil {
		return fmt.Errorf("writing collection: %w", err)
	}

	base := opts.Created.UnixMilli()
	for i, n := range notes {
		id := base + int64(i)
		sfld := n.fields[sortField]
		if _, err := tx.Exec(`INSERT INTO notes VALUES (?, ?, ?, ?, -1, '', ?, ?, ?, 0, '')`,
			id, n.guid, opts.ModelID, now, strings.Join(n.fields, fieldSep), sfld, checksum(sfld)); err != nil {
			return fmt.Errorf("writing note %d: %w", i, err)
		}
		if _, err := tx.Exec(`INSERT INTO cards VALUES (?, ?, ?, 0, ?, -1, 0, 0, ?, 0, 0, 0, 0, 0, 0, 0, 0, '')`,
			id, id, opts.DeckID, now, i+1); err != nil {
			return fmt.Errorf("writing card %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing collection: %w", err)
	}
	return nil
}

// collectionJSON renders the col table's JSON columns.
func collectionJSON(opts DeckOptions) (models, decks, dconf, conf string, err error) {
	mod := opts.Created.Unix()

	flds := make([]map[string]any, len(PairFields))
	req := make([]int, len(PairFields))
	for i, name := range PairFields {
		flds[i] = map[string]any{
			"name": name, "ord": i, "sticky": false, "rtl": false,
			"font": "Arial", "size": 20, "media": []string{},
		}
		req[i] = i
	}

	modelMap := map[string]any{
		strconv.FormatInt(opts.ModelID, 10): map[string]any{
			"id":        opts.ModelID,
			"name":      ModelName,
			"type":      0,
			"mod":       mod,
			"usn":       -1,
			"sortf":     sortField,
			"did":       opts.DeckID,
			"css":       cardCSS,
			"latexPre":  "\\documentclass[12pt]{article}\n\\special{papersize=3in,5in}\n\\usepackage{amssymb,amsmath}\n\\pagestyle{empty}\n\\setlength{\\parindent}{0in}\n\\begin{document}\n",
			"latexPost": "\\end{document}",
			"tags":      []string{},
			"vers":      []int{},
			"flds":      flds,
			"tmpls": []map[string]any{{
				"name": "Card 1", "ord": 0,
				"qfmt": frontTemplate, "afmt": backTemplate,
				"did": nil, "bqfmt": "", "bafmt": "",
			}},
			"req": []any{[]any{0, "any", req}},
		},
	}

	deck := func(id int64, name string) map[string]any {
		return map[string]any{
			"id": id, "name": name, "desc": "", "mod": mod, "usn": -1,
			"collapsed": false, "dyn": 0, "conf": 1,
			"extendNew": 10, "extendRev": 50,
			"newToday": []int{0, 0}, "revToday": []int{0, 0},
			"lrnToday": []int{0, 0}, "timeToday": []int{0, 0},
		}
	}
	deckMap := map[string]any{
		"1": deck(1, "Default"),
		strconv.FormatInt(opts.DeckID, 10): deck(opts.DeckID, opts.Name),
	}

	dconfMap := map[string]any{
		"1": map[string]any{
			"id": 1, "name": "Default", "mod": 0, "usn": 0,
			"maxTaken": 60, "autoplay": true, "timer": 0, "replayq": true, "dyn": false,
			"new": map[string]any{
				"delays": []int{1, 10}, "ints": []int{1, 4, 7}, "initialFactor": 2500,
				"order": 1, "perDay": 20, "bury": true, "separate": true,
			},
			"rev": map[string]any{
				"perDay": 100, "ease4": 1.3, "fuzz": 0.05, "maxIvl": 36500,
				"bury": true, "minSpace": 1,
			},
			"lapse": map[string]any{
				"delays": []int{10}, "mult": 0, "minInt": 1,
				"leechFails": 8, "leechAction": 0,
			},
		},
	}

	confMap := map[string]any{
		"activeDecks": []int64{1}, "curDeck": 1, "newSpread": 0, "collapseTime": 1200,
		"timeLim": 0, "estTimes": true, "dueCounts": true, "curModel": opts.ModelID,
		"nextPos": 1, "sortType": "noteFld", "sortBackwards": false, "addToCur": true,
	}

	out := make([]string, 4)
	for i, v := range []any{modelMap, deckMap, dconfMap, confMap} {
		data, err := json.Marshal(v)
		if err != nil {
			return "", "", "", "", fmt.Errorf("marshaling collection: %w", err)
		}
		out[i] = string(data)
	}
	return out[0], out[1], out[2], out[3], nil
}

// mediaSet collects audio files found for the deck's words.
type mediaSet struct {
	dir   string
	files []string          // Paths in archive order
	names map[string]string // File name -> archive entry
}

func newMediaSet(dir string) *mediaSet {
	return &mediaSet{dir: dir, names: make(map[string]string)}
}

// add returns the Audio field value for word: the audio file name if a
// file exists in the media directory, otherwise empty.
func (m *mediaSet) add(word string) (string, error) {
	if m.dir == "" {
		return "", nil
	}
	name := AudioFileName(word)
	if _, ok := m.names[name]; ok {
		return name, nil
	}

	path := filepath.Join(m.dir, name)
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("checking audio for %q: %w", word, err)
	}
	if info.IsDir() {
		return "", nil
	}

	m.names[name] = strconv.Itoa(len(m.files))
	m.files = append(m.files, path)
	return name, nil
}

// index is the package's media JSON: archive entry -> file name.
func (m *mediaSet) index() map[string]string {
	idx := make(map[string]string, len(m.names))
	for name, entry := range m.names {
		idx[entry] = name
	}
	return idx
}

func writePackage(outputPath, dbPath string, media *mediaSet) error {
	outFile, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer outFile.Close()

	zw := zip.NewWriter(outFile)

	if err := addFile(zw, "collection.anki2", dbPath); err != nil {
		return err
	}
	for i, path := range media.files {
		if err := addFile(zw, strconv.Itoa(i), path); err != nil {
			return err
		}
	}

	idx, err := json.Marshal(media.index())
	if err != nil {
		return fmt.Errorf("marshaling media index: %w", err)
	}
	w, err := zw.Create("media")
	if err != nil {
		return err
	}
	if _, err := w.Write(idx); err != nil {
		return err
	}

	if err := zw.Close(); err != nil {
		return err
	}
	return outFile.Close()
}

func addFile(zw *zip.Writer, entry, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w, err := zw.Create(entry)
	if err != nil {
		return err
	}
	_, err = io.Copy(w, f)
	return err
}
