package repo_interfaces

import (
	"context"
	"time"

	"github.com/api-sage/savings-account-processor/src/internal/domain"
)

// ChargeRepository is the read side of the recurring charge schedules. Query
// misses yield empty slices; the single-row lookups report
// domain.ErrRecordNotFound.
type ChargeRepository interface {
	// MaxChargeDueDate returns the most recent deposit-charge due date
	// recorded for the account.
	MaxChargeDueDate(ctx context.Context, savingID string) (time.Time, error)

	// SavingIDsWithDepositChargeDue returns accounts whose latest deposit
	// charge due date falls inside the current period of the given frequency.
	SavingIDsWithDepositChargeDue(ctx context.Context, frequency domain.ChargeFrequency) ([]domain.SavingsIDOfChargeData, error)

	// SavingAccountsForDepositLateFee returns active accounts whose most
	// recent deposit falls outside the current period of the given frequency.
	SavingAccountsForDepositLateFee(ctx context.Context, frequency domain.ChargeFrequency) ([]domain.SavingIDListData, error)

	// SavingAccountsForDepositLateCharge lists every active account whose
	// product carries a deposit-late charge.
	SavingAccountsForDepositLateCharge(ctx context.Context) ([]domain.SavingIDListData, error)

	ChargesWithAnnualFeeDue(ctx context.Context) ([]domain.SavingsAccountAnnualFeeData, error)
	ChargesWithDue(ctx context.Context) ([]domain.SavingsAccountAnnualFeeData, error)
}
