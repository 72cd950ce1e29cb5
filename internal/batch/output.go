package batch

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// WriteJSON writes the whole report as one JSON document.
func WriteJSON(w io.Writer, report *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// WriteText writes one line per row followed by a summary line.
func WriteText(w io.Writer, report *Report) error {
	for _, r := range report.Results {
		var line string
		switch {
		case r.Error != "":
			line = fmt.Sprintf("line %d: REJECTED %s", r.Line, r.Error)
		case r.Outcome.Valid:
			line = fmt.Sprintf("line %d: VALID", r.Line)
		default:
			line = fmt.Sprintf("line %d: INVALID %s", r.Line, strings.Join(r.Outcome.Messages(), " "))
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	sum := report.Summary
	_, err := fmt.Fprintf(w, "total=%d valid=%d invalid=%d rejected=%d\n", sum.Total, sum.Valid, sum.Invalid, sum.Rejected)
	return err
}
