package results

import (
	"context"
	"errors"
	"fmt"
	"resultfetcher/internal/scrapers/bise"
	"resultfetcher/internal/telemetry"
	"strings"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	report_fetcher_validate  = "fetcher.validate"
	report_fetcher_fetch_one = "fetcher.fetch-one"
	report_fetcher_batch     = "fetcher.fetch-batch"
)

var tracer = otel.Tracer("internal/results")

type FetcherOptions struct {
	Resolver  Resolver
	Telemetry telemetry.API
	// MeterProvider defaults to the global otel meter provider.
	MeterProvider metric.MeterProvider
}

// Fetcher turns roll numbers into records. It holds no per-request state,
// a single Fetcher can serve any number of concurrent calls.
type Fetcher struct {
	resolver Resolver
	tel      telemetry.API
	metrics  instruments
}

func NewFetcher(opts FetcherOptions) (*Fetcher, error) {
	if opts.Resolver == nil {
		return nil, fmt.Errorf("fetcher: resolver is required")
	}
	if opts.Telemetry == nil {
		opts.Telemetry = telemetry.NewSlogAPI(nil)
	}
	metrics, err := newInstruments(opts.MeterProvider)
	if err != nil {
		return nil, err
	}
	return &Fetcher{
		resolver: opts.Resolver,
		tel:      telemetry.NewScopedAPI("results", opts.Telemetry),
		metrics:  metrics,
	}, nil
}

func classify(err error) Cause {
	switch {
	case errors.Is(err, bise.ErrTokenUnavailable):
		return CAUSE_TOKEN
	case errors.Is(err, bise.ErrMalformedPage):
		return CAUSE_PARSE
	default:
		return CAUSE_TRANSPORT
	}
}

// FetchOne looks up a single roll number. It always returns a record with a
// terminal status, every failure is folded into STATUS_ERROR.
func (f *Fetcher) FetchOne(ctx context.Context, rollNumber string) Record {
	ctx, span := tracer.Start(ctx, "Fetcher:FetchOne", trace.WithAttributes(
		attribute.String("roll_number", rollNumber),
	))
	defer span.End()

	record, cause := f.fetch(ctx, rollNumber)

	span.SetAttributes(
		attribute.String("status", string(record.Status)),
		attribute.String("cause", string(cause)),
	)
	if record.Status == STATUS_ERROR {
		span.SetStatus(codes.Error, string(cause))
	}
	f.metrics.recordOutcome(ctx, record.Status, cause)

	return record
}

func (f *Fetcher) fetch(ctx context.Context, rollNumber string) (record Record, cause Cause) {
	err := ValidateRollNumber(rollNumber)
	if err != nil {
		f.tel.ReportWarning(report_fetcher_validate, err)
		return errorRecord(rollNumber), CAUSE_VALIDATION
	}

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		f.tel.ReportBroken(report_fetcher_fetch_one, fmt.Errorf("panic: %v", r), rollNumber)
		record, cause = errorRecord(rollNumber), CAUSE_PANIC
	}()

	lookup, err := f.resolver.Resolve(ctx, rollNumber)
	if err != nil {
		cause := classify(err)
		f.tel.ReportBroken(report_fetcher_fetch_one, err, rollNumber, string(cause))
		return errorRecord(rollNumber), cause
	}

	name := strings.TrimSpace(lookup.StudentName)
	if !lookup.Found || name == "" || name == NOT_AVAILABLE {
		f.tel.ReportDebug("not found", rollNumber)
		return notFoundRecord(rollNumber), CAUSE_NOT_FOUND
	}

	marks := strings.TrimSpace(lookup.SubjectMarks)
	if marks == "" {
		marks = NOT_AVAILABLE
	}

	return Record{
		RollNumber:   rollNumber,
		StudentName:  name,
		SubjectMarks: marks,
		Status:       STATUS_SUCCESS,
	}, CAUSE_NONE
}

// FetchBatch looks up every roll number concurrently and waits for all of them.
// The result has one record per input, in input order, duplicates included.
// A failing roll number never cancels or fails its siblings.
func (f *Fetcher) FetchBatch(ctx context.Context, rollNumbers []string) []Record {
	ctx, span := tracer.Start(ctx, "Fetcher:FetchBatch", trace.WithAttributes(
		attribute.Int("size", len(rollNumbers)),
	))
	defer span.End()

	records := make([]Record, len(rollNumbers))
	if len(rollNumbers) == 0 {
		return records
	}

	wg := sync.WaitGroup{}
	for i, rollNumber := range rollNumbers {
		wg.Add(1)
		go func(i int, rollNumber string) {
			defer wg.Done()
			// every goroutine owns exactly one slot
			records[i] = f.FetchOne(ctx, rollNumber)
		}(i, rollNumber)
	}
	wg.Wait()

	f.metrics.batchSize.Record(ctx, int64(len(rollNumbers)))

	var failed int64
	for _, r := range records {
		if r.Status == STATUS_ERROR {
			failed++
		}
	}
	f.tel.ReportCount(report_fetcher_batch, failed)

	return records
}
