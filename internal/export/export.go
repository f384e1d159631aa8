// Package export serializes minimal pairs and reads pair lists back.
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/f3rmion/minpair/internal/pairs"
)

// Format is an output encoding for pair rows.
type Format string

const (
	CSV  Format = "csv"
	TSV  Format = "tsv"
	JSON Format = "json"
)

// Formats lists the encodings Write understands.
var Formats = []Format{CSV, TSV, JSON}

// ParseFormat resolves a format name.
func ParseFormat(name string) (Format, error) {
	for _, f := range Formats {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format: %s (available: csv, tsv, json)", name)
}

// row is the JSON shape of a pair.
type row struct {
	Left          string `json:"left"`
	Right         string `json:"right"`
	Kind          string `json:"kind"`
	Index         int    `json:"index"`
	IsolatedLeft  string `json:"isolated_left"`
	IsolatedRight string `json:"isolated_right"`
}

// Write encodes found pairs. CSV and TSV carry two columns, left and right
// word, without a header.
func Write(w io.Writer, format Format, found []pairs.Pair) error {
	switch format {
	case CSV, TSV:
		cw := csv.NewWriter(w)
		if format == TSV {
			cw.Comma = '\t'
		}
		for _, p := range found {
			if err := cw.Write(p.Row()); err != nil {
				return fmt.Errorf("writing row: %w", err)
			}
		}
		cw.Flush()
		return cw.Error()
	case JSON:
		rows := make([]row, len(found))
		for i, p := range found {
			rows[i] = row{
				Left:          p.LeftWord,
				Right:         p.RightWord,
				Kind:          p.Kind.String(),
				Index:         p.Index,
				IsolatedLeft:  p.Left,
				IsolatedRight: p.Right,
			}
		}
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(rows); err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// ReadRows reads (left, right) rows from a pair CSV. Rows that do not have
// exactly two columns are skipped.
func ReadRows(r io.Reader) ([][2]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	var out [][2]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading pairs: %w", err)
		}
		if len(rec) != 2 {
			continue
		}
		out = append(out, [2]string{rec[0], rec[1]})
	}
	return out, nil
}
