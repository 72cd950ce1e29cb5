package batch

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"uenvalidator/internal/uen/models"
	"uenvalidator/pkg/requestcontext"
)

// Validator is the single operation the runner needs.
type Validator interface {
	Validate(ctx context.Context, rec models.Record) models.Outcome
}

// Result pairs an input row with its outcome. Error is set, and Outcome
// zero, when the row was rejected before validation.
type Result struct {
	Line    int            `json:"line"`
	Outcome models.Outcome `json:"outcome"`
	Error   string         `json:"error,omitempty"`
}

type Summary struct {
	Total    int `json:"total"`
	Valid    int `json:"valid"`
	Invalid  int `json:"invalid"`
	Rejected int `json:"rejected"`
}

type Report struct {
	GeneratedAt time.Time `json:"generated_at"`
	Results     []Result  `json:"results"`
	Summary     Summary   `json:"summary"`
}

// Run validates rows with at most workers concurrent validations. Results
// keep input order regardless of completion order.
func Run(ctx context.Context, v Validator, rows []Row, workers int) (*Report, error) {
	if workers < 1 {
		workers = 1
	}
	generatedAt := requestcontext.Now(ctx)
	results := make([]Result, len(rows))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, row := range rows {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = evaluate(gctx, v, row)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &Report{GeneratedAt: generatedAt, Results: results, Summary: summarize(results)}, nil
}

func evaluate(ctx context.Context, v Validator, row Row) Result {
	if row.Err != nil {
		return Result{Line: row.Line, Error: row.Err.Error()}
	}
	return Result{Line: row.Line, Outcome: v.Validate(ctx, row.Record)}
}

func summarize(results []Result) Summary {
	sum := Summary{Total: len(results)}
	for _, r := range results {
		switch {
		case r.Error != "":
			sum.Rejected++
		case r.Outcome.Valid:
			sum.Valid++
		default:
			sum.Invalid++
		}
	}
	return sum
}
