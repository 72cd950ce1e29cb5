package models

import (
	"bytes"
	"encoding/json"
)

// Field names a record field. The string value is what forms and outcome
// payloads use as the key.
type Field string

const (
	FieldBusinessReg  Field = "BusinessReg"
	FieldLocalCompany Field = "LocalCompany"
	FieldOtherEntity  Field = "OtherEntity"
)

// Fields lists record fields in evaluation and reporting order.
var Fields = []Field{FieldBusinessReg, FieldLocalCompany, FieldOtherEntity}

// Kind identifies which of the three registration formats a value follows.
type Kind string

const (
	KindUnknown      Kind = ""
	KindBusinessReg  Kind = "business_reg"
	KindLocalCompany Kind = "local_company"
	KindOtherEntity  Kind = "other_entity"
)

// Field returns the record field that carries values of this kind.
func (k Kind) Field() (Field, bool) {
	switch k {
	case KindBusinessReg:
		return FieldBusinessReg, true
	case KindLocalCompany:
		return FieldLocalCompany, true
	case KindOtherEntity:
		return FieldOtherEntity, true
	default:
		return "", false
	}
}

// Record is one candidate submission. Absent fields are empty strings.
type Record struct {
	BusinessReg  string
	LocalCompany string
	OtherEntity  string
}

// Value returns the raw value held in the given field.
func (r Record) Value(f Field) string {
	switch f {
	case FieldBusinessReg:
		return r.BusinessReg
	case FieldLocalCompany:
		return r.LocalCompany
	case FieldOtherEntity:
		return r.OtherEntity
	default:
		return ""
	}
}

// FieldError holds the messages reported against a single field.
type FieldError struct {
	Field    Field
	Messages []string
}

// FieldErrors is an ordered field -> messages mapping.
type FieldErrors []FieldError

// Add appends msg to the entry for f, creating the entry if needed.
func (fe FieldErrors) Add(f Field, msg string) FieldErrors {
	for i := range fe {
		if fe[i].Field == f {
			fe[i].Messages = append(fe[i].Messages, msg)
			return fe
		}
	}
	return append(fe, FieldError{Field: f, Messages: []string{msg}})
}

// For returns the messages recorded for f, or nil.
func (fe FieldErrors) For(f Field) []string {
	for _, e := range fe {
		if e.Field == f {
			return e.Messages
		}
	}
	return nil
}

// Has reports whether f has at least one message.
func (fe FieldErrors) Has(f Field) bool {
	return len(fe.For(f)) > 0
}

// MarshalJSON encodes the errors as a JSON object whose keys keep field order.
func (fe FieldErrors) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range fe {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(e.Field))
		if err != nil {
			return nil, err
		}
		msgs := e.Messages
		if msgs == nil {
			msgs = []string{}
		}
		val, err := json.Marshal(msgs)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Outcome is the result of validating one Record.
type Outcome struct {
	Valid        bool        `json:"valid"`
	FieldErrors  FieldErrors `json:"field_errors"`
	RecordErrors []string    `json:"record_errors"`
}

// FailedFields returns the fields that carry errors, in reporting order.
func (o Outcome) FailedFields() []Field {
	failed := make([]Field, 0, len(o.FieldErrors))
	for _, e := range o.FieldErrors {
		failed = append(failed, e.Field)
	}
	return failed
}

// Messages flattens record errors followed by field errors.
func (o Outcome) Messages() []string {
	msgs := make([]string, 0, len(o.RecordErrors)+len(o.FieldErrors))
	msgs = append(msgs, o.RecordErrors...)
	for _, e := range o.FieldErrors {
		msgs = append(msgs, e.Messages...)
	}
	return msgs
}
