package service

import (
	"context"

	"github.com/khoahotran/career-os/internal/domain/document"
)

// UsageLedger accumulates token usage per document kind.
type UsageLedger interface {
	Record(ctx context.Context, kind document.Kind, usage document.Usage) error
	Totals(ctx context.Context) (map[document.Kind]document.UsageTotals, error)
}

type nopUsageLedger struct{}

// NopUsageLedger is used when no ledger backend is configured.
func NopUsageLedger() UsageLedger { return nopUsageLedger{} }

func (nopUsageLedger) Record(context.Context, document.Kind, document.Usage) error { return nil }

func (nopUsageLedger) Totals(context.Context) (map[document.Kind]document.UsageTotals, error) {
	totals := make(map[document.Kind]document.UsageTotals, len(document.Kinds))
	for _, k := range document.Kinds {
		totals[k] = document.UsageTotals{}
	}
	return totals, nil
}
