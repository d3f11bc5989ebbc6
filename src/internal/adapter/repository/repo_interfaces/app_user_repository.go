package repo_interfaces

import (
	"context"

	"github.com/api-sage/savings-account-processor/src/internal/domain"
)

type AppUserRepository interface {
	Create(ctx context.Context, user domain.AppUser) (domain.AppUser, error)
	GetByID(ctx context.Context, id string) (domain.AppUser, error)
	GetTransactionPinHashByUsername(ctx context.Context, username string) (string, error)
}
