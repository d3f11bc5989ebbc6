package repo_interfaces

import (
	"context"

	"github.com/api-sage/savings-account-processor/src/internal/domain"
)

type SavingsAccountRepository interface {
	Save(ctx context.Context, account domain.SavingsAccount) error
	FindByID(ctx context.Context, id string) (domain.SavingsAccount, error)
}

// SavingsAccountTransactionRepository persists transaction records. Save
// assigns the durable identifier on first insert.
type SavingsAccountTransactionRepository interface {
	Save(ctx context.Context, transaction *domain.SavingsAccountTransaction) error
}
