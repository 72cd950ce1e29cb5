package validator

import (
	"strings"
	"testing"

	"uenvalidator/internal/uen/models"
)

// FuzzValidate checks that arbitrary input never panics and always yields a
// well-formed outcome.
func FuzzValidate(f *testing.F) {
	f.Add("12345678A", "", "")
	f.Add("", "200312345A", "")
	f.Add("", "", "T19LL0001K")
	f.Add("", "", "")
	f.Add("   ", "\t", "\n")
	f.Add(string([]byte{0xff, 0xfe}), "2028\x0012345A", "S99RPTU0001Z")
	f.Add(strings.Repeat("9", 4096), "", "")

	f.Fuzz(func(t *testing.T, businessReg, localCompany, otherEntity string) {
		rec := models.Record{
			BusinessReg:  businessReg,
			LocalCompany: localCompany,
			OtherEntity:  otherEntity,
		}
		out := Validate(rec)

		hasErrors := len(out.FieldErrors) > 0 || len(out.RecordErrors) > 0
		if out.Valid == hasErrors {
			t.Fatalf("valid=%v but errors present=%v", out.Valid, hasErrors)
		}
		if len(out.RecordErrors) > 1 {
			t.Fatalf("expected at most one record error, got %d", len(out.RecordErrors))
		}
		for _, e := range out.FieldErrors {
			if rec.Value(e.Field) == "" {
				t.Fatalf("empty field %s reported a format error", e.Field)
			}
			if len(e.Messages) != 1 {
				t.Fatalf("field %s has %d messages", e.Field, len(e.Messages))
			}
		}
	})
}
