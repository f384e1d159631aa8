package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// SettingsTemplate is written to config.yaml by `minpair init`.
const SettingsTemplate = `# minpair settings
# Every key can also be set with a flag or a MINPAIR_* environment variable.

# Dictionary file with one "word : gloss" entry per line.
dict: ""

# Header lines skipped at the top of the dictionary.
skip_lines: 1

# Worker goroutines for filtering and pairing (0 = one per CPU).
workers: 0

# Default output file and format (csv, tsv, json, apkg).
output: minimal_pairs.csv
format: csv

# Directory searched for pre-rendered word audio when building Anki decks.
audio_dir: ""

log:
  level: info   # debug, info, warn, error
  format: text  # text or json
`

// PresetsTemplate is written to presets.yaml by `minpair init`.
const PresetsTemplate = `# minpair filter presets
# Use with: minpair find --preset <name>
#
# vowels:   vowel clusters, with or without tone marks (a, ươ, uyê)
# initials: initial consonants (b, ch, ngh, ...)
# finals:   final consonants (c, ch, m, n, ng, nh, p, t)
# tones:    flat, rising, falling, question, broken, low_broken
# mode:     initial_consonant, tone, vowel or final_consonant

presets:
  - name: tones-a
    description: Tone contrasts on syllables with the vowel a
    vowels: [a]
    mode: tone

  - name: rising-falling
    description: Rising against falling tone
    tones: [rising, falling]
    mode: tone

  - name: finals-n-ng
    description: Final n against final ng
    finals: ["n", "ng"]
    mode: final_consonant

  - name: initials-tr-ch
    description: Initial tr against initial ch
    initials: [tr, ch]
    mode: initial_consonant

  - name: vowels-short-long
    description: Short and long open vowels
    vowels: [a, ă]
    mode: vowel
`

// WriteTemplates writes the settings and presets templates into dir. Existing
// files are kept unless force is set. It returns the files written.
func WriteTemplates(dir string, force bool) ([]string, error) {
	if err := EnsureDir(dir); err != nil {
		return nil, err
	}

	var written []string
	for _, f := range []struct {
		name    string
		content string
	}{
		{SettingsFile, SettingsTemplate},
		{PresetsFile, PresetsTemplate},
	} {
		path := filepath.Join(dir, f.name)
		if _, err := os.Stat(path); err == nil && !force {
			continue
		}
		if err := os.WriteFile(path, []byte(f.content), 0644); err != nil {
			return written, fmt.Errorf("writing %s: %w", f.name, err)
		}
		written = append(written, f.name)
	}

	return written, nil
}
