// Package tracker turns sensor packages into rendered workout summaries.
package tracker

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"example.com/ftracker/internal/domain"
	"example.com/ftracker/internal/observability"
	"example.com/ftracker/internal/report"
)

// Sink receives every successfully processed summary.
type Sink interface {
	Record(ctx context.Context, summary domain.Summary) error
}

// Option configures optional behaviour for the Service.
type Option func(*Service)

// WithLogger overrides the logger used to report skipped packages.
func WithLogger(logger *log.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithSinks appends sinks that receive processed summaries.
func WithSinks(sinks ...Sink) Option {
	return func(s *Service) {
		s.sinks = append(s.sinks, sinks...)
	}
}

// WithConcurrency bounds the number of packages processed in parallel by ProcessBatch.
func WithConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithClock overrides the time source stamped on summaries.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// Service processes sensor packages.
type Service struct {
	sinks       []Sink
	logger      *log.Logger
	concurrency int
	now         func() time.Time
}

// NewService constructs a Service.
func NewService(opts ...Option) *Service {
	s := &Service{
		logger:      log.New(log.Writer(), "[tracker] ", log.LstdFlags),
		concurrency: 4,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summarize builds the summary for one package without touching any sink.
func (s *Service) Summarize(pkg domain.SensorPackage) (domain.Summary, error) {
	w, err := domain.CreateWorkout(pkg.Code, pkg.Values)
	if err != nil {
		return domain.Summary{}, err
	}

	msg := domain.Summarize(w)
	return domain.Summary{
		ID:          uuid.NewString(),
		Code:        pkg.Code,
		Values:      append([]float64(nil), pkg.Values...),
		Message:     msg,
		Text:        report.Render(msg),
		ProcessedAt: s.now().UTC(),
	}, nil
}

// Process summarizes a package and forwards the result to every sink.
func (s *Service) Process(ctx context.Context, pkg domain.SensorPackage) (domain.Summary, error) {
	summary, err := s.Summarize(pkg)
	if err != nil {
		observability.RecordRejected(domain.RejectionReason(err))
		return domain.Summary{}, err
	}

	for _, sink := range s.sinks {
		if err := sink.Record(ctx, summary); err != nil {
			return summary, fmt.Errorf("record summary %s: %w", summary.ID, err)
		}
	}

	observability.RecordProcessed(summary.Message, summary.ProcessedAt)
	return summary, nil
}

// Emit processes a package and writes its rendered line to w.
// A rejected package is logged and nothing is written.
func (s *Service) Emit(ctx context.Context, w io.Writer, pkg domain.SensorPackage) error {
	summary, err := s.Process(ctx, pkg)
	if err != nil {
		s.logger.Printf("skipping package (code=%q): %v", pkg.Code, err)
		return err
	}
	_, err = fmt.Fprintln(w, summary.Text)
	return err
}

// Failure describes a package that was skipped during a batch.
type Failure struct {
	Index int
	Code  string
	Err   error
}

// BatchReport is the outcome of ProcessBatch.
type BatchReport struct {
	Summaries []domain.Summary
	Processed int
	Skipped   int
	Failures  []Failure
}

// ProcessBatch processes packages concurrently and writes the rendered lines to w in input order.
// Rejected packages are skipped and listed in the report; a sink failure or cancellation aborts the batch.
func (s *Service) ProcessBatch(ctx context.Context, pkgs []domain.SensorPackage, w io.Writer) (BatchReport, error) {
	results := make([]domain.Summary, len(pkgs))
	errs := make([]error, len(pkgs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, pkg := range pkgs {
		i, pkg := i, pkg
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			summary, err := s.Process(gctx, pkg)
			if err != nil {
				if domain.IsRejection(err) {
					errs[i] = err
					return nil
				}
				return err
			}
			results[i] = summary
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return BatchReport{}, err
	}

	var rep BatchReport
	for i, pkg := range pkgs {
		if errs[i] != nil {
			s.logger.Printf("skipping package %d (code=%q): %v", i, pkg.Code, errs[i])
			rep.Skipped++
			rep.Failures = append(rep.Failures, Failure{Index: i, Code: pkg.Code, Err: errs[i]})
			continue
		}
		if w != nil {
			if _, err := fmt.Fprintln(w, results[i].Text); err != nil {
				return rep, err
			}
		}
		rep.Processed++
		rep.Summaries = append(rep.Summaries, results[i])
	}
	return rep, nil
}
