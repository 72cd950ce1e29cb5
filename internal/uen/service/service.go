package service

import (
	"context"
	"log/slog"
	"time"

	uenmetrics "uenvalidator/internal/uen/metrics"
	"uenvalidator/internal/uen/models"
	"uenvalidator/internal/uen/tracer"
	"uenvalidator/internal/uen/validator"
	"uenvalidator/pkg/requestcontext"
)

// Service wraps the pure validation engine with logging, metrics and tracing.
// It holds no mutable state and may be shared across goroutines.
type Service struct {
	logger  *slog.Logger
	metrics *uenmetrics.Metrics
	tracer  tracer.Tracer
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *uenmetrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(t tracer.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

func New(opts ...Option) *Service {
	s := &Service{}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	if s.tracer == nil {
		s.tracer = tracer.NewNoop()
	}
	return s
}

// Validate evaluates rec. The outcome is always well formed; failures are data.
func (s *Service) Validate(ctx context.Context, rec models.Record) models.Outcome {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, tracer.SpanValidate,
		tracer.Int(tracer.AttrFieldsPresent, countPresent(rec)),
	)
	defer span.End(nil)

	out := validator.Validate(rec)

	span.SetAttributes(
		tracer.Bool(tracer.AttrValid, out.Valid),
		tracer.Int(tracer.AttrFieldErrors, len(out.FieldErrors)),
		tracer.Int(tracer.AttrRecordErrors, len(out.RecordErrors)),
	)
	for _, f := range out.FailedFields() {
		span.AddEvent(tracer.EventFieldRejected, tracer.String("field", string(f)))
	}

	s.observe(out, start)

	if !out.Valid {
		// Raw identifiers are never logged, only which fields failed.
		s.logger.DebugContext(ctx, "uen record rejected",
			"failed_fields", out.FailedFields(),
			"record_errors", len(out.RecordErrors),
			"request_id", requestcontext.RequestID(ctx),
		)
	}
	return out
}

// Classify reports which registration format value follows, if any.
func (s *Service) Classify(ctx context.Context, value string) (models.Kind, bool) {
	_, span := s.tracer.Start(ctx, tracer.SpanClassify,
		tracer.String(tracer.AttrValueHash, tracer.HashValue(value)),
	)
	defer span.End(nil)

	kind, ok := validator.Classify(value)
	span.SetAttributes(tracer.String(tracer.AttrKind, string(kind)))
	if s.metrics != nil {
		s.metrics.IncrementClassification(string(kind))
	}
	return kind, ok
}

func (s *Service) observe(out models.Outcome, start time.Time) {
	if s.metrics == nil {
		return
	}
	s.metrics.ObserveValidation(start)
	s.metrics.IncrementValidations(out.Valid)
	for _, f := range out.FailedFields() {
		s.metrics.IncrementFieldRejection(string(f))
	}
	if len(out.RecordErrors) > 0 {
		s.metrics.IncrementMissingInput()
	}
}

func countPresent(rec models.Record) int {
	n := 0
	for _, f := range models.Fields {
		if rec.Value(f) != "" {
			n++
		}
	}
	return n
}
