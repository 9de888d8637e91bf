package app_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reedan88/ooicgsn-data-tools/app"
	"github.com/reedan88/ooicgsn-data-tools/domain/qc"
	"github.com/reedan88/ooicgsn-data-tools/domain/sample"
	"github.com/reedan88/ooicgsn-data-tools/internal/testkit"
)

func TestRunCleanSheet(t *testing.T) {
	svc, err := app.NewValidationService(testkit.AcceptedCruises(), 1, nil)
	require.NoError(t, err)

	findings, err := svc.Run(context.Background(), testkit.SummaryTable(5))
	require.NoError(t, err)
	assert.Empty(t, findings)
}

func TestRunOrdersFindingsByStage(t *testing.T) {
	svc, err := app.NewValidationService(testkit.AcceptedCruises(), 1, nil)
	require.NoError(t, err)

	// One bad measurement and one drifting metadata value.
	table := testkit.SummaryTable(4)
	table = testkit.WithCell(table, "CTD Pressure [db]", 1, sample.String("9000"))
	table = testkit.WithCell(table, "Cast", 2, sample.String("9"))

	findings, err := svc.Run(context.Background(), table)
	require.NoError(t, err)
	require.Len(t, findings, 2)

	// Cell findings come before grouped findings.
	assert.Equal(t, qc.KindCell, findings[0].Kind)
	assert.Equal(t, "CTD Pressure [db]", findings[0].Column)
	assert.Equal(t, qc.KindGroup, findings[1].Kind)
	assert.Equal(t, "Cast", findings[1].Column)
	assert.Equal(t, []string{"AR-04", "12"}, findings[1].Group)
}

func TestRunConcurrentMatchesSequential(t *testing.T) {
	table := testkit.SummaryTable(8)
	table = testkit.WithCell(table, "CTD Salinity 1 [psu]", 0, sample.String("60"))
	table = testkit.WithCell(table, "Discrete Nitrate [uM]", 7, sample.String("-3"))

	seq, err := app.NewValidationService(testkit.AcceptedCruises(), 1, nil)
	require.NoError(t, err)
	conc, err := app.NewValidationService(testkit.AcceptedCruises(), 4, nil)
	require.NoError(t, err)

	want, err := seq.Run(context.Background(), table)
	require.NoError(t, err)
	got, err := conc.Run(context.Background(), table)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRunCancelledContext(t *testing.T) {
	svc, err := app.NewValidationService(testkit.AcceptedCruises(), 4, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = svc.Run(ctx, testkit.SummaryTable(3))
	assert.Error(t, err)
}

func TestRunReportsHeaderDrift(t *testing.T) {
	svc, err := app.NewValidationService(testkit.AcceptedCruises(), 1, nil)
	require.NoError(t, err)

	// Rename one column; alignment flags it and the schema reports the
	// canonical name as missing.
	src := testkit.SummaryTable(2)
	cols := src.Columns()
	for i := range cols {
		if cols[i].Name == "CTD Pressure [db]" {
			cols[i].Name = "CTD Presure [db]"
		}
	}
	table, err := sample.NewTable(cols...)
	require.NoError(t, err)

	findings, err := svc.Run(context.Background(), table)
	require.NoError(t, err)
	require.NotEmpty(t, findings)

	assert.Equal(t, qc.KindHeaderUnexpected, findings[0].Kind)
	assert.Contains(t, findings[0].Message, `closest accepted header: "CTD Pressure [db]"`)

	var missing bool
	for _, f := range findings {
		if f.Kind == qc.KindMissingColumn && f.Column == "CTD Pressure [db]" {
			missing = true
		}
	}
	assert.True(t, missing)
}
