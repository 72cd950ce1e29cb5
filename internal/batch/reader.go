// Package batch validates many UEN records read from a file.
package batch

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"uenvalidator/internal/uen/models"
	dErrors "uenvalidator/pkg/domain-errors"
	"uenvalidator/pkg/platform/validation"
	s "uenvalidator/pkg/string"
)

// Input formats, keyed by file extension.
const (
	FormatJSONL = ".jsonl"
	FormatCSV   = ".csv"
	FormatXLSX  = ".xlsx"
)

// maxLineBytes bounds one JSONL line.
const maxLineBytes = 1 << 20

// maxRecords bounds how many rows one run reads.
var maxRecords = validation.MaxBatchRecords

// Row is one input record with the 1-based line (or sheet row) it came from.
// Err is set when the row could not be validated at all.
type Row struct {
	Line   int
	Record models.Record
	Err    error
}

// FormatFromPath returns the input format implied by path's extension.
func FormatFromPath(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case FormatJSONL, FormatCSV, FormatXLSX:
		return ext, nil
	default:
		return "", dErrors.New(dErrors.CodeUnsupportedFormat, fmt.Sprintf("unsupported input format %q: want .jsonl, .csv or .xlsx", ext))
	}
}

// Read parses every record from r in the given format. A row that cannot be
// parsed is returned with Err set; only structural problems (missing header,
// unreadable input, too many rows) fail the whole read.
func Read(format string, r io.Reader) ([]Row, error) {
	switch format {
	case FormatJSONL:
		return readJSONL(r)
	case FormatCSV:
		return readCSV(r)
	case FormatXLSX:
		return readXLSX(r)
	default:
		return nil, dErrors.New(dErrors.CodeUnsupportedFormat, fmt.Sprintf("unsupported input format %q", format))
	}
}

// collector accumulates rows and stops the read as soon as the limit is passed.
type collector struct {
	rows []Row
}

func (c *collector) add(row Row) error {
	if err := validation.CheckCount("records", len(c.rows)+1, maxRecords); err != nil {
		return err
	}
	c.rows = append(c.rows, row)
	return nil
}

type jsonlRecord struct {
	BusinessReg  string `json:"business_reg"`
	LocalCompany string `json:"local_company"`
	OtherEntity  string `json:"other_entity"`
}

func readJSONL(r io.Reader) ([]Row, error) {
	var c collector
	br := bufio.NewReaderSize(r, 64*1024)
	line := 0
	for {
		text, tooLong, err := readLine(br, maxLineBytes)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading jsonl line %d: %w", line+1, err)
		}
		line++

		var row Row
		switch {
		case tooLong:
			row = Row{Line: line, Err: dErrors.New(dErrors.CodeBadRequest, fmt.Sprintf("line exceeds %d bytes", maxLineBytes))}
		case len(bytes.TrimSpace(text)) == 0:
			continue
		default:
			row = parseJSONLine(line, text)
		}
		if err := c.add(row); err != nil {
			return nil, err
		}
	}
	return c.rows, nil
}

func parseJSONLine(line int, text []byte) Row {
	var rec jsonlRecord
	if err := json.Unmarshal(text, &rec); err != nil {
		return Row{Line: line, Err: dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid JSON")}
	}
	return newRow(line, models.Record{
		BusinessReg:  rec.BusinessReg,
		LocalCompany: rec.LocalCompany,
		OtherEntity:  rec.OtherEntity,
	})
}

// readLine returns the next line without its terminator. A line longer than
// limit is consumed in full and reported as tooLong with no content.
func readLine(br *bufio.Reader, limit int) (line []byte, tooLong bool, err error) {
	for {
		chunk, isPrefix, err := br.ReadLine()
		if err != nil {
			return nil, false, err
		}
		if !tooLong {
			if len(line)+len(chunk) > limit {
				tooLong, line = true, nil
			} else {
				line = append(line, chunk...)
			}
		}
		if !isPrefix {
			return line, tooLong, nil
		}
	}
}

func readCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	t := &table{}
	for {
		cells, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var perr *csv.ParseError
		if errors.As(err, &perr) && t.columns != nil {
			// The reader resumes at the next record after a parse error.
			if err := t.add(Row{Line: perr.StartLine, Err: dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid CSV")}); err != nil {
				return nil, err
			}
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv: %w", err)
		}
		line, _ := cr.FieldPos(0)
		if err := t.addCells(line, cells); err != nil {
			return nil, err
		}
	}
	return t.finish()
}

func readXLSX(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open excel file: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("no sheets found in file")
	}
	rows, err := f.Rows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}
	defer func() { _ = rows.Close() }()

	t := &table{}
	for line := 1; rows.Next(); line++ {
		cells, err := rows.Columns()
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", line, err)
		}
		if err := t.addCells(line, cells); err != nil {
			return nil, err
		}
	}
	if err := rows.Error(); err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}
	return t.finish()
}

// table maps a header row plus data rows onto records. Header cells are
// matched against field names in either BusinessReg or business_reg spelling.
// Leading blank rows are skipped before the header, as are data rows whose
// cells are all empty.
type table struct {
	collector
	columns map[int]models.Field
}

func (t *table) addCells(line int, cells []string) error {
	if blankRow(cells) {
		return nil
	}
	if t.columns == nil {
		columns, err := headerColumns(cells)
		if err != nil {
			return err
		}
		t.columns = columns
		return nil
	}

	var rec models.Record
	for col, field := range t.columns {
		if col >= len(cells) {
			continue
		}
		switch field {
		case models.FieldBusinessReg:
			rec.BusinessReg = cells[col]
		case models.FieldLocalCompany:
			rec.LocalCompany = cells[col]
		case models.FieldOtherEntity:
			rec.OtherEntity = cells[col]
		}
	}
	return t.add(newRow(line, rec))
}

func (t *table) finish() ([]Row, error) {
	if t.columns == nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "missing header row")
	}
	return t.rows, nil
}

func headerColumns(header []string) (map[int]models.Field, error) {
	columns := make(map[int]models.Field, len(models.Fields))
	for col, cell := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(cell, "\ufeff")))
		for _, f := range models.Fields {
			if name == strings.ToLower(string(f)) || name == s.ToSnakeCase(string(f)) {
				columns[col] = f
			}
		}
	}
	if len(columns) == 0 {
		return nil, dErrors.New(dErrors.CodeBadRequest, "header row names none of BusinessReg, LocalCompany, OtherEntity")
	}
	return columns, nil
}

func blankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// newRow trims values and applies the per-field length limit.
func newRow(line int, rec models.Record) Row {
	s.TrimStrings(&rec.BusinessReg, &rec.LocalCompany, &rec.OtherEntity)
	for _, f := range models.Fields {
		if err := validation.CheckStringLength(string(f), rec.Value(f), validation.MaxFieldLength); err != nil {
			return Row{Line: line, Record: rec, Err: err}
		}
	}
	return Row{Line: line, Record: rec}
}
