package service_interfaces

import (
	"context"
	"time"

	"github.com/api-sage/savings-account-processor/src/internal/domain"
	"github.com/shopspring/decimal"
)

// SavingsAccountDomainService is the transactional entry point for money
// movement on a savings account. Each operation runs as one unit of work:
// balance mutation, transaction persistence, guarantor release and journal
// posting commit or roll back together.
type SavingsAccountDomainService interface {
	RecordDeposit(
		ctx context.Context,
		account domain.SavingsAccount,
		transactionDate time.Time,
		transactionAmount decimal.Decimal,
		paymentDetail *domain.PaymentDetail,
		isAccountTransfer bool,
		isRegularTransaction bool,
	) (*domain.SavingsAccountTransaction, error)

	RecordWithdrawal(
		ctx context.Context,
		account domain.SavingsAccount,
		transactionDate time.Time,
		transactionAmount decimal.Decimal,
		paymentDetail *domain.PaymentDetail,
		flags domain.SavingsTransactionFlags,
	) (*domain.SavingsAccountTransaction, error)

	PostJournalEntries(ctx context.Context, account domain.SavingsAccount, existingTransactionIDs, existingReversedTransactionIDs []string) error
}
