// Package resolve drives the end-to-end pipeline: parsed citations go out
// as catalog queries, scored candidates come back as decisions, and every
// decision lands in the output CSV before the next query starts.
package resolve

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/matsen/refsolve/internal/citation"
	"github.com/matsen/refsolve/internal/crossref"
	"github.com/matsen/refsolve/internal/journal"
	"github.com/matsen/refsolve/internal/match"
)

// Querier fetches catalog candidates for one citation.
type Querier interface {
	Candidates(ctx context.Context, w citation.Wanted) ([]crossref.Work, error)
}

// Resolver matches parsed citations against the catalog and records one
// decision row per citation.
type Resolver struct {
	querier  Querier
	journals *journal.Table
	minScore int
	limit    int
	logger   *zap.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithMinScore sets the score at which a best candidate is accepted.
func WithMinScore(minScore int) Option {
	return func(r *Resolver) {
		r.minScore = minScore
	}
}

// WithLimit caps how many citations one run processes. Zero or negative
// means no cap.
func WithLimit(limit int) Option {
	return func(r *Resolver) {
		r.limit = limit
	}
}

// WithLogger sets the run logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// NewResolver creates a resolver over the given catalog querier and
// journal table.
func NewResolver(querier Querier, journals *journal.Table, opts ...Option) *Resolver {
	r := &Resolver{
		querier:  querier,
		journals: journals,
		minScore: match.DefaultMinScore,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Summary tallies the decisions of one run.
type Summary struct {
	Processed     int `json:"processed"`
	Accepted      int `json:"accepted"`
	LowConfidence int `json:"low_confidence"`
	NoMatch       int `json:"no_match"`
}

// Run resolves every citation with index greater than startAfter and
// records one decision row per citation in the CSV at outPath. A fresh run
// (startAfter zero, or no file yet) truncates and writes the header; a
// resumed run appends. Rows are flushed as they are written, so an
// interrupted run keeps its progress. Failed catalog queries demote the
// citation to no_match rather than aborting the run.
func (r *Resolver) Run(ctx context.Context, recs []citation.Record, outPath string, startAfter int) (Summary, error) {
	writeHeader := startAfter == 0
	if _, err := os.Stat(outPath); os.IsNotExist(err) {
		writeHeader = true
	}

	flags := os.O_CREATE | os.O_WRONLY
	if writeHeader {
		flags |= os.O_TRUNC
	} else {
		flags |= os.O_APPEND
	}
	f, err := os.OpenFile(outPath, flags, 0o644)
	if err != nil {
		return Summary{}, fmt.Errorf("opening %s: %w", outPath, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(Header); err != nil {
			return Summary{}, fmt.Errorf("writing header: %w", err)
		}
	}

	total := 0
	for _, rec := range recs {
		if rec.Index > startAfter {
			total++
		}
	}
	if r.limit > 0 && total > r.limit {
		total = r.limit
	}

	var sum Summary
	for _, rec := range recs {
		if rec.Index <= startAfter {
			continue
		}
		if r.limit > 0 && sum.Processed >= r.limit {
			break
		}
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		wanted := r.wanted(rec)
		works, err := r.querier.Candidates(ctx, wanted)
		if err != nil {
			if ctx.Err() != nil {
				return sum, ctx.Err()
			}
			r.logger.Debug("catalog query failed",
				zap.Int("idx", rec.Index),
				zap.Error(err))
			works = nil
		}

		best, score, found := match.Best(works, wanted)
		decision := match.Decide(found, score, r.minScore)

		var doi, title, container, year, volume, page, article, scoreField string
		if found {
			doi = strings.ToLower(strings.TrimSpace(best.DOI))
			title = best.FirstTitle()
			container = best.FirstContainer()
			year = best.IssuedYear()
			volume = strings.TrimSpace(best.Volume.String())
			page = strings.TrimSpace(best.Page.String())
			article = strings.TrimSpace(best.ArticleNumber.String())
			scoreField = strconv.Itoa(score)
		}

		row := []string{
			strconv.Itoa(rec.Index), rec.RawText, doi, title, container,
			year, volume, page, article, scoreField, string(decision),
		}
		if err := w.Write(row); err != nil {
			return sum, fmt.Errorf("writing row for idx %d: %w", rec.Index, err)
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return sum, fmt.Errorf("writing row for idx %d: %w", rec.Index, err)
		}

		sum.Processed++
		switch decision {
		case match.DecisionAccepted:
			sum.Accepted++
		case match.DecisionLowConfidence:
			sum.LowConfidence++
		default:
			sum.NoMatch++
		}

		if sum.Processed%10 == 0 || sum.Processed == total {
			r.logger.Info("progress",
				zap.Int("processed", sum.Processed),
				zap.Int("total", total),
				zap.Int("idx", rec.Index),
				zap.Int("score", score),
				zap.String("decision", string(decision)),
				zap.String("doi", doi))
		}
	}

	return sum, nil
}

// wanted assembles the query fields for one citation. The journal travels
// twice: as extracted for the free-text fallback, expanded for the
// structured query and for scoring.
func (r *Resolver) wanted(rec citation.Record) citation.Wanted {
	return citation.Wanted{
		Authors:     rec.Authors,
		Journal:     rec.Journal,
		JournalFull: r.journals.Expand(rec.Journal),
		Year:        rec.Year,
		Volume:      rec.Volume,
		Page:        rec.PageOrArticle,
	}
}
