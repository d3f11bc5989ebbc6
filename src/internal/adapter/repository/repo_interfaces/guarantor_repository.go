package repo_interfaces

import (
	"context"

	"github.com/api-sage/savings-account-processor/src/internal/domain"
)

type GuarantorRepository interface {
	GuarantorsForLoan(ctx context.Context, loanID string) ([]*domain.Guarantor, error)
}

// GuarantorFundingRepository persists mutated funding details, with their
// appended funding transactions, as one batch.
type GuarantorFundingRepository interface {
	SaveAll(ctx context.Context, details []*domain.GuarantorFundingDetails) error
}

type OnHoldTransactionRepository interface {
	SaveAll(ctx context.Context, transactions []*domain.DepositAccountOnHoldTransaction) error
}

// LoanRepository resolves the active loan, if any, for a client. A missing
// loan is reported as domain.ErrRecordNotFound.
type LoanRepository interface {
	LoanIDForClient(ctx context.Context, clientID string) (string, error)
}
