package usage

import (
	"context"
	"fmt"

	"github.com/khoahotran/career-os/internal/application/service"
	"github.com/khoahotran/career-os/internal/domain/document"
	"github.com/khoahotran/career-os/pkg/apperror"
)

type ReportUseCase struct {
	ledger service.UsageLedger
}

func NewReportUseCase(ledger service.UsageLedger) *ReportUseCase {
	return &ReportUseCase{ledger: ledger}
}

type KindUsage struct {
	Kind document.Kind `json:"kind"`
	document.UsageTotals
}

type ReportOutput struct {
	Kinds []KindUsage          `json:"kinds"`
	Total document.UsageTotals `json:"total"`
}

// Execute reports cumulative usage for every document kind, in a fixed
// order, including kinds that were never generated.
func (uc *ReportUseCase) Execute(ctx context.Context) (*ReportOutput, error) {
	totals, err := uc.ledger.Totals(ctx)
	if err != nil {
		return nil, apperror.ClassifyDatabaseError(fmt.Errorf("read usage ledger: %w", err))
	}

	out := &ReportOutput{Kinds: make([]KindUsage, 0, len(document.Kinds))}
	for _, k := range document.Kinds {
		t := totals[k]
		out.Kinds = append(out.Kinds, KindUsage{Kind: k, UsageTotals: t})
		out.Total.Calls += t.Calls
		out.Total.InputTokens += t.InputTokens
		out.Total.OutputTokens += t.OutputTokens
		out.Total.CacheReadInputTokens += t.CacheReadInputTokens
		out.Total.CacheCreationInputTokens += t.CacheCreationInputTokens
	}
	return out, nil
}
