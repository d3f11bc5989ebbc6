package repo_interfaces

import "context"

// TxRunner scopes a unit of work. Every repository call made with the context
// passed to fn joins the same database transaction; fn returning an error
// rolls the whole unit back.
type TxRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
