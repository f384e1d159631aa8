// Package report renders word breakdowns and word comparisons for the
// terminal or as Markdown.
package report

import (
	"errors"
	"fmt"
	"io"
	"text/template"

	"github.com/mattn/go-runewidth"

	"github.com/f3rmion/minpair/internal/delta"
	"github.com/f3rmion/minpair/internal/viet"
)

// Format selects a template set.
type Format string

const (
	Text     Format = "text"
	Markdown Format = "markdown"
)

// Null marks an absent consonant.
const Null = "Ø"

// SyllableRow is one syllable of a breakdown.
type SyllableRow struct {
	Index       int
	Raw         string
	Initial     string
	VowelRaw    string
	VowelNormal string
	Tone        string
	Final       string
}

// LookupData is a word's syllable breakdown.
type LookupData struct {
	Word      string
	Glosses   []string
	Syllables []SyllableRow
}

// CompareData is the delta listing of two words.
type CompareData struct {
	Left     string
	Right    string
	Deltas   []delta.Indexed
	Mismatch string // Set when the words cannot be aligned
}

// Minimal reports whether the words differ on exactly one feature.
func (c CompareData) Minimal() bool {
	return c.Mismatch == "" && len(c.Deltas) == 1
}

// NewLookup builds the breakdown of an entry.
func NewLookup(e viet.Entry, glosses []string) LookupData {
	data := LookupData{Word: e.Raw(), Glosses: glosses}
	for i, s := range e.Syllables() {
		data.Syllables = append(data.Syllables, SyllableRow{
			Index:       i,
			Raw:         s.Raw,
			Initial:     s.Initial,
			VowelRaw:    s.Vowel.Raw,
			VowelNormal: s.Vowel.Normal,
			Tone:        s.Vowel.Tone.Name(),
			Final:       s.Final,
		})
	}
	return data
}

// NewCompare compares two entries. A syllable count mismatch is recorded
// rather than returned.
func NewCompare(left, right viet.Entry) CompareData {
	data := CompareData{Left: left.Raw(), Right: right.Raw()}
	deltas, err := delta.Words(left, right)
	if errors.Is(err, delta.ErrLengthMismatch) {
		data.Mismatch = err.Error()
		return data
	}
	data.Deltas = deltas
	return data
}

// Generator renders report data through a template set.
type Generator struct {
	lookup  *template.Template
	compare *template.Template
}

var funcs = template.FuncMap{
	"pad": func(s string, width int) string {
		return runewidth.FillRight(s, width)
	},
	"orNull": func(s string) string {
		if s == "" {
			return Null
		}
		return s
	},
	"inc": func(i int) int { return i + 1 },
}

// NewGenerator returns a generator for format.
func NewGenerator(format Format) (*Generator, error) {
	var lookupSrc, compareSrc string
	switch format {
	case Text, "":
		lookupSrc, compareSrc = textLookup, textCompare
	case Markdown:
		lookupSrc, compareSrc = markdownLookup, markdownCompare
	default:
		return nil, fmt.Errorf("unknown report format: %s (available: text, markdown)", format)
	}

	return &Generator{
		lookup:  template.Must(template.New("lookup").Funcs(funcs).Parse(lookupSrc)),
		compare: template.Must(template.New("compare").Funcs(funcs).Parse(compareSrc)),
	}, nil
}

// SetTemplates replaces the templates. Either may be empty to keep the
// current one.
func (g *Generator) SetTemplates(lookup, compare string) error {
	if lookup != "" {
		t, err := template.New("lookup").Funcs(funcs).Parse(lookup)
		if err != nil {
			return fmt.Errorf("parsing lookup template: %w", err)
		}
		g.lookup = t
	}
	if compare != "" {
		t, err := template.New("compare").Funcs(funcs).Parse(compare)
		if err != nil {
			return fmt.Errorf("parsing compare template: %w", err)
		}
		g.compare = t
	}
	return nil
}

// Lookup renders a breakdown.
func (g *Generator) Lookup(w io.Writer, data LookupData) error {
	if err := g.lookup.Execute(w, data); err != nil {
		return fmt.Errorf("executing template: %w", err)
	}
	return nil
}

// Compare renders a comparison.
func (g *Generator) Compare(w io.Writer, data CompareData) error {
	if err := g.compare.Execute(w, data); err != nil {
		return fmt.Errorf("executing template: %w", err)
	}
	return nil
}

const textLookup = `Word: {{.Word}}
{{- range .Glosses}}
  Meaning: {{.}}
{{- end}}
{{- range .Syllables}}
  ---
  Syllable {{inc .Index}}: {{.Raw}}
    Initial: {{orNull .Initial}}
    Vowel:   {{pad .VowelRaw 4}} → {{.VowelNormal}}
    Tone:    {{.Tone}}
    Final:   {{orNull .Final}}
{{- end}}
`

const textCompare = `{{.Left}} / {{.Right}}
{{- if .Mismatch}}
  Cannot align: {{.Mismatch}}
{{- else if not .Deltas}}
  Identical
{{- else}}
{{- range .Deltas}}
  [{{.Index}}] {{pad .Kind.String 18}} {{pad (orNull .Left) 10}} → {{orNull .Right}}
{{- end}}
  Minimal pair: {{if .Minimal}}yes{{else}}no{{end}}
{{- end}}
`

const markdownLookup = `## {{.Word}}
{{range .Glosses}}
> {{.}}
{{end}}
| # | Syllable | Initial | Vowel | Normal | Tone | Final |
|---|---|---|---|---|---|---|
{{- range .Syllables}}
| {{inc .Index}} | {{.Raw}} | {{orNull .Initial}} | {{.VowelRaw}} | {{.VowelNormal}} | {{.Tone}} | {{orNull .Final}} |
{{- end}}
`

const markdownCompare = `## {{.Left}} / {{.Right}}
{{if .Mismatch}}
Cannot align: {{.Mismatch}}
{{- else if not .Deltas}}
Identical
{{- else}}
| Syllable | Feature | Left | Right |
|---|---|---|---|
{{- range .Deltas}}
| {{inc .Index}} | {{.Kind}} | {{orNull .Left}} | {{orNull .Right}} |
{{- end}}

Minimal pair: {{if .Minimal}}yes{{else}}no{{end}}
{{- end}}
`
