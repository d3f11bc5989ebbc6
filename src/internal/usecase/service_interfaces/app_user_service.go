package service_interfaces

import (
	"context"

	"github.com/api-sage/savings-account-processor/src/internal/commons"
	"github.com/api-sage/savings-account-processor/src/internal/domain"
)

// AppUserService backs the security context: it creates operator identities
// and verifies their transaction PINs.
type AppUserService interface {
	CreateAppUser(ctx context.Context, username, firstName, lastName, transactionPin string) (commons.Response[domain.AppUser], error)
	GetAppUser(ctx context.Context, id string) (commons.Response[domain.AppUser], error)
	VerifyTransactionPin(ctx context.Context, username, pin string) (commons.Response[bool], error)
}
