package service_interfaces

import (
	"context"

	"github.com/api-sage/savings-account-processor/src/internal/domain"
)

// ConfigurationService exposes the tenant-level switches the interest engine
// consults on every operation.
type ConfigurationService interface {
	IsInterestPostingAtPeriodEnd() bool
	FinancialYearStartMonth() int
}

// JournalEntryService is the external accounting ledger. A failure here is a
// hard error that aborts the enclosing unit of work.
type JournalEntryService interface {
	CreateJournalEntriesForSavings(ctx context.Context, bridgeData domain.AccountingBridgeData) error
}
