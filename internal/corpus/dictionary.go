// Package corpus loads "<word> : <gloss>" dictionary files into entries.
package corpus

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/f3rmion/minpair/internal/viet"
)

// maxLineBytes bounds a single dictionary line.
const maxLineBytes = 1 << 20

// Options controls how a dictionary file is read.
type Options struct {
	SkipLines int // Leading lines to ignore (the vnedict header is one line)
}

// Record is one dictionary line.
type Record struct {
	Entry viet.Entry
	Gloss string
	Line  int // 1-based line number in the source file
}

// Dictionary holds the entries of a loaded word list.
type Dictionary struct {
	table   *viet.Table
	records []Record
	byWord  map[string][]int
}

// NewDictionary creates an empty dictionary segmenting with table.
func NewDictionary(table *viet.Table) *Dictionary {
	return &Dictionary{
		table:  table,
		byWord: make(map[string][]int),
	}
}

// LoadFromFile loads a dictionary file.
func (d *Dictionary) LoadFromFile(path string, opts Options) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening dictionary file: %w", err)
	}
	defer file.Close()

	if err := d.Load(file, opts); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// Load reads dictionary lines from r. Lines are NFC-normalized so that
// decomposed diacritics match the precomposed vowel table. Any line without
// the separator or without a parseable syllable aborts the load.
func (d *Dictionary) Load(r io.Reader, opts Options) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		if lineNum <= opts.SkipLines {
			continue
		}

		line := norm.NFC.String(strings.TrimSuffix(scanner.Text(), "\r"))
		entry, gloss, err := d.table.ParseLine(line)
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNum, err)
		}

		d.byWord[entry.Raw()] = append(d.byWord[entry.Raw()], len(d.records))
		d.records = append(d.records, Record{Entry: entry, Gloss: gloss, Line: lineNum})
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading dictionary file: %w", err)
	}

	return nil
}

// Entries returns every entry in file order.
func (d *Dictionary) Entries() []viet.Entry {
	out := make([]viet.Entry, len(d.records))
	for i, rec := range d.records {
		out[i] = rec.Entry
	}
	return out
}

// Records returns every record in file order.
func (d *Dictionary) Records() []Record {
	return d.records
}

// Lookup returns the records whose headword is exactly word.
func (d *Dictionary) Lookup(word string) []Record {
	word = Normalize(word)
	var out []Record
	for _, i := range d.byWord[word] {
		out = append(out, d.records[i])
	}
	return out
}

// Size returns the number of entries in the dictionary.
func (d *Dictionary) Size() int {
	return len(d.records)
}

// Normalize trims s and composes its diacritics (NFC), the form entries are
// stored in.
func Normalize(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
