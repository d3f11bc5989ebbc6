package service_interfaces

import (
	"context"

	"github.com/api-sage/savings-account-processor/src/internal/domain"
	"github.com/shopspring/decimal"
)

// GuarantorReleaseService proportionally releases held guarantor collateral
// when a qualifying deposit arrives on the borrower's savings account.
type GuarantorReleaseService interface {
	ReleaseOnDeposit(
		ctx context.Context,
		loanID string,
		deposit *domain.SavingsAccountTransaction,
		transactionAmount decimal.NullDecimal,
	) error
}
