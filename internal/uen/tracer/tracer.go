// Package tracer is the tracing seam used by the UEN service.
//
// The service talks to the small Tracer/Span interfaces below rather than to
// OpenTelemetry directly. NoopTracer backs unit tests; OTelTracer adapts the
// globally registered OpenTelemetry provider in the running binaries.
package tracer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
)

// Span is an in-flight traced operation. End must be called exactly once.
type Span interface {
	End(err error)
	SetAttributes(attrs ...Attribute)
	AddEvent(name string, attrs ...Attribute)
}

// Tracer starts spans. Implementations must be safe for concurrent use.
type Tracer interface {
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// Attribute is a key/value pair attached to a span or event.
type Attribute struct {
	Key   string
	Value any
}

func String(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

func Bool(key string, value bool) Attribute {
	return Attribute{Key: key, Value: value}
}

func Int(key string, value int) Attribute {
	return Attribute{Key: key, Value: value}
}

// HashValue returns a short SHA-256 digest of an identifier so spans can be
// correlated without carrying the raw value.
func HashValue(value string) string {
	if value == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:8])
}

// Span names.
const (
	SpanValidate = "uen.validate"
	SpanClassify = "uen.classify"
)

// Attribute keys.
const (
	AttrValid         = "uen.valid"
	AttrFieldErrors   = "uen.field_errors"
	AttrRecordErrors  = "uen.record_errors"
	AttrFieldsPresent = "uen.fields_present"
	AttrKind          = "uen.kind"
	AttrValueHash     = "uen.value_hash"
)

// Event names.
const (
	EventFieldRejected = "uen.field_rejected"
)
