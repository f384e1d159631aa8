package pairs

import (
	"context"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/f3rmion/minpair/internal/delta"
	"github.com/f3rmion/minpair/internal/viet"
)

// Pair is a minimal pair: two words whose only difference is the delta.
type Pair struct {
	delta.Indexed
}

// Row returns the (left word, right word) output row.
func (p Pair) Row() []string {
	return []string{p.LeftWord, p.RightWord}
}

// Options tunes a Find run.
type Options struct {
	Workers int          // Parallel workers; defaults to GOMAXPROCS
	Logger  *slog.Logger // Defaults to slog.Default()
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// candidate is an entry that passed the filter, with the position at which
// one of its syllables passes on its own.
type candidate struct {
	entry viet.Entry
	pos   int
	count int
}

// Filter returns the entries that pass c, in corpus order.
func Filter(ctx context.Context, entries []viet.Entry, c Criteria, opts Options) ([]viet.Entry, error) {
	cands, err := filter(ctx, entries, c, opts.workers())
	if err != nil {
		return nil, err
	}
	out := make([]viet.Entry, len(cands))
	for i, cand := range cands {
		out[i] = cand.entry
	}
	return out, nil
}

func filter(ctx context.Context, entries []viet.Entry, c Criteria, workers int) ([]candidate, error) {
	slots := make([]*candidate, len(entries))
	err := forEach(ctx, len(entries), workers, func(i int) {
		syllables := entries[i].Syllables()
		if _, ok := c.Position(syllables); !ok {
			return
		}
		pos, ok := c.SyllablePosition(syllables)
		if !ok {
			return
		}
		slots[i] = &candidate{entry: entries[i], pos: pos, count: len(syllables)}
	})
	if err != nil {
		return nil, err
	}

	var out []candidate
	for _, s := range slots {
		if s != nil {
			out = append(out, *s)
		}
	}
	return out, nil
}

// Find filters entries with c and returns every ordered pair of distinct
// candidates that differ in exactly one feature, of kind c.Target, at the
// syllable where both words independently satisfy c. Results are ordered by
// left then right candidate; both orientations of a pair are reported.
func Find(ctx context.Context, entries []viet.Entry, c Criteria, opts Options) ([]Pair, error) {
	log := opts.logger()

	cands, err := filter(ctx, entries, c, opts.workers())
	if err != nil {
		return nil, err
	}
	log.Debug("filtered corpus", "entries", len(entries), "candidates", len(cands))

	results := make([][]Pair, len(cands))
	err = forEach(ctx, len(cands), opts.workers(), func(i int) {
		left := cands[i]
		for j, right := range cands {
			if i == j || left.count != right.count || left.pos != right.pos {
				continue
			}
			if p, ok := minimal(left, right, c.Target); ok {
				results[i] = append(results[i], p)
			}
		}
	})
	if err != nil {
		return nil, err
	}

	var out []Pair
	for _, r := range results {
		out = append(out, r...)
	}
	log.Debug("paired candidates", "pairs", len(out), "target", c.Target.String())
	return out, nil
}

// minimal checks a single ordered pair.
func minimal(left, right candidate, target delta.Kind) (Pair, bool) {
	deltas, err := delta.Words(left.entry, right.entry)
	if err != nil || len(deltas) != 1 {
		return Pair{}, false
	}
	d := deltas[0]
	if d.Kind != target || d.Index != left.pos || d.Index != right.pos {
		return Pair{}, false
	}
	return Pair{Indexed: d}, true
}

// forEach runs fn for every index in [0, n) across workers goroutines, each
// owning a contiguous range.
func forEach(ctx context.Context, n, workers int, fn func(i int)) error {
	if n == 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}
	chunk := (n + workers - 1) / workers

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				fn(i)
			}
			return nil
		})
	}
	return g.Wait()
}
