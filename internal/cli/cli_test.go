package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"uenvalidator/internal/uen/validator"
	dErrors "uenvalidator/pkg/domain-errors"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("UEN_CONFIG", "")
	var stdout, stderr bytes.Buffer
	err := Run(context.Background(), "test", args, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestValidateCommand(t *testing.T) {
	t.Run("valid record as json", func(t *testing.T) {
		out, _, err := run(t, "validate", "--business-reg", "53012345D", "--other-entity", " T09LL0001B ")
		require.NoError(t, err)

		var outcome struct {
			Valid        bool                `json:"valid"`
			FieldErrors  map[string][]string `json:"field_errors"`
			RecordErrors []string            `json:"record_errors"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &outcome))
		assert.True(t, outcome.Valid)
		assert.Empty(t, outcome.FieldErrors)
		assert.NotNil(t, outcome.RecordErrors)
	})

	t.Run("invalid record as text", func(t *testing.T) {
		out, _, err := run(t, "validate", "--local-company", "202912345A", "--format", "text")
		assert.ErrorIs(t, err, ErrInvalid)
		assert.Equal(t, validator.MsgLocalCompany+"\n", out)
	})

	t.Run("no fields", func(t *testing.T) {
		out, _, err := run(t, "validate", "-f", "text")
		assert.ErrorIs(t, err, ErrInvalid)
		assert.Equal(t, validator.MsgMissingInput+"\n", out)
	})

	t.Run("oversized field", func(t *testing.T) {
		_, _, err := run(t, "validate", "--business-reg", strings.Repeat("1", 257))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "BusinessReg exceeds max length")
	})

	t.Run("unknown format", func(t *testing.T) {
		_, _, err := run(t, "validate", "--business-reg", "53012345D", "--format", "yaml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown output format")
	})
}

func TestCheckCommand(t *testing.T) {
	out, _, err := run(t, "check", "s18rptu0001z")
	require.NoError(t, err)
	assert.Equal(t, "s18rptu0001z: other_entity\n", out)

	out, _, err = run(t, "check", "--format", "json", "200312345A")
	require.NoError(t, err)
	assert.JSONEq(t, `{"value":"200312345A","kind":"local_company","valid":true}`, out)

	out, _, err = run(t, "check", "hello")
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Equal(t, "hello: unknown\n", out)

	_, _, err = run(t, "check")
	assert.Error(t, err)
}

func TestCheckCommand_OversizedValue(t *testing.T) {
	out, _, err := run(t, "check", strings.Repeat("1", 257))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalid)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	assert.Contains(t, err.Error(), "value exceeds max length of 256")
	assert.Empty(t, out)

	out, _, err = run(t, "check", "  "+strings.Repeat("1", 256)+"  ")
	assert.ErrorIs(t, err, ErrInvalid, "the cap applies after trimming")
	assert.Contains(t, out, ": unknown")
}

func TestBatchCommand(t *testing.T) {
	t.Run("jsonl with text output", func(t *testing.T) {
		path := writeFile(t, "records.jsonl",
			`{"business_reg":"12345678A"}`+"\n"+
				`{}`+"\n"+
				`{"other_entity":"T99LL0001K"}`+"\n")

		out, _, err := run(t, "batch", "--input", path, "--workers", "2")
		assert.ErrorIs(t, err, ErrInvalid)

		lines := strings.Split(strings.TrimSpace(out), "\n")
		require.Len(t, lines, 4)
		assert.Equal(t, "line 1: VALID", lines[0])
		assert.Equal(t, "line 2: INVALID "+validator.MsgMissingInput, lines[1])
		assert.Equal(t, "line 3: INVALID "+validator.MsgOtherEntity, lines[2])
		assert.Equal(t, "total=3 valid=1 invalid=2 rejected=0", lines[3])
	})

	t.Run("csv all valid", func(t *testing.T) {
		path := writeFile(t, "records.csv", "BusinessReg,LocalCompany\n12345678A,\n,200312345A\n")

		out, _, err := run(t, "batch", "-i", path, "-f", "json")
		require.NoError(t, err)

		var report struct {
			Summary struct {
				Total int `json:"total"`
				Valid int `json:"valid"`
			} `json:"summary"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &report))
		assert.Equal(t, 2, report.Summary.Total)
		assert.Equal(t, 2, report.Summary.Valid)
	})

	t.Run("xlsx", func(t *testing.T) {
		f := excelize.NewFile()
		sheet := f.GetSheetList()[0]
		require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"OtherEntity"}))
		require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"R18RPTU0001Z"}))
		path := filepath.Join(t.TempDir(), "records.xlsx")
		require.NoError(t, f.SaveAs(path))
		require.NoError(t, f.Close())

		out, _, err := run(t, "batch", "--input", path)
		require.NoError(t, err)
		assert.Contains(t, out, "line 2: VALID")
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, _, err := run(t, "batch", "--input", "records.txt")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported input format")
	})

	t.Run("missing file", func(t *testing.T) {
		_, _, err := run(t, "batch", "--input", filepath.Join(t.TempDir(), "absent.csv"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "opening input")
	})

	t.Run("input flag required", func(t *testing.T) {
		_, _, err := run(t, "batch")
		assert.Error(t, err)
	})
}

func TestRun_BadConfig(t *testing.T) {
	t.Setenv("UEN_LOG_LEVEL", "loud")
	var stdout, stderr bytes.Buffer
	err := Run(context.Background(), "test", []string{"check", "53012345D"}, &stdout, &stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading config")
}

func TestRun_StdoutTracingGoesToStderr(t *testing.T) {
	t.Setenv("UEN_TRACING_ENABLED", "true")
	t.Setenv("UEN_TRACING_EXPORTER", "stdout")

	out, errOut, err := run(t, "check", "53012345D")
	require.NoError(t, err)
	assert.Equal(t, "53012345D: business_reg\n", out)
	assert.Contains(t, errOut, "uen.classify")
}
