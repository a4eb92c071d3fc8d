package usage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/career-os/internal/application/service"
	"github.com/khoahotran/career-os/internal/domain/document"
	"github.com/khoahotran/career-os/pkg/apperror"
)

type fixedLedger struct {
	totals map[document.Kind]document.UsageTotals
	err    error
}

func (l fixedLedger) Record(context.Context, document.Kind, document.Usage) error { return nil }

func (l fixedLedger) Totals(context.Context) (map[document.Kind]document.UsageTotals, error) {
	return l.totals, l.err
}

func TestReportSumsKinds(t *testing.T) {
	uc := NewReportUseCase(fixedLedger{totals: map[document.Kind]document.UsageTotals{
		document.KindResume:      {Calls: 2, InputTokens: 3000, OutputTokens: 900, CacheReadInputTokens: 1500},
		document.KindCoverLetter: {Calls: 1, InputTokens: 1000, OutputTokens: 400, CacheCreationInputTokens: 800},
	}})

	out, err := uc.Execute(context.Background())
	require.NoError(t, err)

	require.Len(t, out.Kinds, 3)
	assert.Equal(t, document.KindResume, out.Kinds[0].Kind)
	assert.Equal(t, document.KindApplicationAnswer, out.Kinds[2].Kind)
	assert.Zero(t, out.Kinds[2].Calls)
	assert.Equal(t, document.UsageTotals{
		Calls: 3, InputTokens: 4000, OutputTokens: 1300,
		CacheReadInputTokens: 1500, CacheCreationInputTokens: 800,
	}, out.Total)
}

func TestReportWithNopLedger(t *testing.T) {
	out, err := NewReportUseCase(service.NopUsageLedger()).Execute(context.Background())
	require.NoError(t, err)
	assert.Len(t, out.Kinds, 3)
	assert.Zero(t, out.Total.Calls)
}

func TestReportLedgerOutageIsDatabaseFailure(t *testing.T) {
	_, err := NewReportUseCase(fixedLedger{err: errors.New("dial tcp 127.0.0.1:6379: connection refused")}).Execute(context.Background())

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.KindDatabase, appErr.Kind())
	assert.Equal(t, apperror.MsgDatabaseConnection, appErr.Message)
}

func TestReportKeepsLedgerClassification(t *testing.T) {
	classified := apperror.NewDatabase("read usage for resume", errors.New("WRONGTYPE"))
	_, err := NewReportUseCase(fixedLedger{err: classified}).Execute(context.Background())

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Same(t, classified, appErr)
	assert.Equal(t, apperror.KindDatabase, apperror.KindOf(err))
}
