package batch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uenvalidator/internal/uen/models"
	"uenvalidator/internal/uen/service"
	"uenvalidator/internal/uen/validator"
	"uenvalidator/pkg/requestcontext"
)

func TestRun_PreservesOrderAndSummarizes(t *testing.T) {
	rows := []Row{
		{Line: 1, Record: models.Record{BusinessReg: "12345678A"}},
		{Line: 2, Record: models.Record{}},
		{Line: 3, Record: models.Record{OtherEntity: "T29LL0001K"}},
		{Line: 4, Err: errors.New("invalid JSON")},
		{Line: 5, Record: models.Record{LocalCompany: "180012345z"}},
	}

	report, err := Run(context.Background(), service.New(), rows, 3)
	require.NoError(t, err)

	require.Len(t, report.Results, len(rows))
	for i, r := range report.Results {
		assert.Equal(t, rows[i].Line, r.Line)
	}
	assert.True(t, report.Results[0].Outcome.Valid)
	assert.Equal(t, []string{validator.MsgMissingInput}, report.Results[1].Outcome.RecordErrors)
	assert.True(t, report.Results[2].Outcome.FieldErrors.Has(models.FieldOtherEntity))
	assert.Equal(t, "invalid JSON", report.Results[3].Error)
	assert.True(t, report.Results[4].Outcome.Valid)

	assert.Equal(t, Summary{Total: 5, Valid: 2, Invalid: 2, Rejected: 1}, report.Summary)
}

func TestRun_StampsGeneratedAt(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), fixed)

	report, err := Run(ctx, service.New(), []Row{{Line: 1, Record: models.Record{BusinessReg: "12345678A"}}}, 1)
	require.NoError(t, err)
	assert.Equal(t, fixed, report.GeneratedAt)
}

// slowValidator finishes rows in reverse order and tracks peak concurrency.
type slowValidator struct {
	inFlight atomic.Int32
	peak     atomic.Int32
}

func (v *slowValidator) Validate(_ context.Context, rec models.Record) models.Outcome {
	n := v.inFlight.Add(1)
	defer v.inFlight.Add(-1)
	for {
		p := v.peak.Load()
		if n <= p || v.peak.CompareAndSwap(p, n) {
			break
		}
	}
	var idx int
	_, _ = fmt.Sscanf(rec.BusinessReg, "%d", &idx)
	time.Sleep(time.Duration(20-idx) * time.Millisecond)
	return validator.Validate(rec)
}

func TestRun_BoundedConcurrency(t *testing.T) {
	rows := make([]Row, 20)
	for i := range rows {
		rows[i] = Row{Line: i + 1, Record: models.Record{BusinessReg: fmt.Sprintf("%d", i)}}
	}
	v := &slowValidator{}

	report, err := Run(context.Background(), v, rows, 4)
	require.NoError(t, err)

	assert.LessOrEqual(t, v.peak.Load(), int32(4))
	for i, r := range report.Results {
		assert.Equal(t, i+1, r.Line)
	}
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, service.New(), []Row{{Line: 1}}, 2)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_ZeroWorkersStillRuns(t *testing.T) {
	report, err := Run(context.Background(), service.New(), []Row{{Line: 1, Record: models.Record{BusinessReg: "12345678A"}}}, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Summary.Valid)
}

func TestWriteText(t *testing.T) {
	report := &Report{
		Results: []Result{
			{Line: 2, Outcome: models.Outcome{Valid: true}},
			{Line: 3, Outcome: models.Outcome{RecordErrors: []string{validator.MsgMissingInput}}},
			{Line: 4, Error: "BusinessReg exceeds max length of 256"},
		},
		Summary: Summary{Total: 3, Valid: 1, Invalid: 1, Rejected: 1},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, report))

	assert.Equal(t,
		"line 2: VALID\n"+
			"line 3: INVALID "+validator.MsgMissingInput+"\n"+
			"line 4: REJECTED BusinessReg exceeds max length of 256\n"+
			"total=3 valid=1 invalid=1 rejected=1\n",
		buf.String())
}

func TestWriteJSON(t *testing.T) {
	report := &Report{
		Results: []Result{{Line: 1, Outcome: models.Outcome{Valid: true}}},
		Summary: Summary{Total: 1, Valid: 1},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, report))

	var decoded struct {
		Results []struct {
			Line    int `json:"line"`
			Outcome struct {
				Valid bool `json:"valid"`
			} `json:"outcome"`
		} `json:"results"`
		Summary Summary `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 1, decoded.Results[0].Line)
	assert.True(t, decoded.Results[0].Outcome.Valid)
	assert.Equal(t, report.Summary, decoded.Summary)
}
