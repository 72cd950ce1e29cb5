// Package validator implements the UEN validation engine.
//
// Validation runs in two passes over a models.Record:
//
//  1. Per-field format checks. A field is only checked when it is non-empty;
//     absence is never a format error.
//  2. Record-level checks, currently the "at least one field" rule.
//
// Everything here is pure and allocation-light, so a single engine can be
// shared by any number of goroutines.
package validator

import (
	"errors"
	"fmt"
	"strings"

	"uenvalidator/internal/uen/models"
)

// fieldRule binds a record field to its format predicate and message.
type fieldRule struct {
	field   models.Field
	kind    models.Kind
	matches func(string) bool
	message string
}

var fieldRules = []fieldRule{
	{field: models.FieldBusinessReg, kind: models.KindBusinessReg, matches: IsBusinessReg, message: MsgBusinessReg},
	{field: models.FieldLocalCompany, kind: models.KindLocalCompany, matches: IsLocalCompany, message: MsgLocalCompany},
	{field: models.FieldOtherEntity, kind: models.KindOtherEntity, matches: IsOtherEntity, message: MsgOtherEntity},
}

// recordRule inspects the whole record and returns zero or more messages.
type recordRule func(models.Record) []string

var recordRules = []recordRule{
	requireAnyField,
}

// Validate checks rec against every field and record rule. Fields are matched
// exactly as given and never trimmed: a whitespace-only field fails its format
// and also counts as blank for the record rule. Callers that accept user input
// trim first, as every boundary in this module does.
func Validate(rec models.Record) models.Outcome {
	fieldErrs := checkFields(rec)
	recordErrs := checkRecord(rec)
	return models.Outcome{
		Valid:        len(fieldErrs) == 0 && len(recordErrs) == 0,
		FieldErrors:  fieldErrs,
		RecordErrors: recordErrs,
	}
}

// CheckField validates a single value against the format of f.
// Empty values pass. Unknown fields report no message.
func CheckField(f models.Field, value string) (string, bool) {
	for _, rule := range fieldRules {
		if rule.field != f {
			continue
		}
		if value == "" || rule.matches(value) {
			return "", true
		}
		return rule.message, false
	}
	return "", true
}

// Classify reports which format value follows. The formats are disjoint, so
// at most one kind can match.
func Classify(value string) (models.Kind, bool) {
	for _, rule := range fieldRules {
		if rule.matches(value) {
			return rule.kind, true
		}
	}
	return models.KindUnknown, false
}

func checkFields(rec models.Record) models.FieldErrors {
	var errs models.FieldErrors
	for _, rule := range fieldRules {
		if msg, ok := CheckField(rule.field, rec.Value(rule.field)); !ok {
			errs = errs.Add(rule.field, msg)
		}
	}
	return errs
}

func checkRecord(rec models.Record) []string {
	var errs []string
	for _, rule := range recordRules {
		errs = append(errs, rule(rec)...)
	}
	return errs
}

// requireAnyField fails when every field is empty or whitespace only.
func requireAnyField(rec models.Record) []string {
	for _, f := range models.Fields {
		if strings.TrimSpace(rec.Value(f)) != "" {
			return nil
		}
	}
	return []string{MsgMissingInput}
}

// SelfCheck runs the engine over fixed samples. It backs the readiness probe.
func SelfCheck() error {
	good := models.Record{BusinessReg: "53012345D", LocalCompany: "201912345K", OtherEntity: "T09LL0001B"}
	if out := Validate(good); !out.Valid {
		return fmt.Errorf("engine rejected known-good sample: %v", out.FailedFields())
	}
	if out := Validate(models.Record{}); out.Valid {
		return errors.New("engine accepted an empty record")
	}
	return nil
}
