package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/api-sage/savings-account-processor/src/internal/domain"
)

type AppUserRepository struct {
	db *sql.DB
}

func NewAppUserRepository(db *sql.DB) *AppUserRepository {
	return &AppUserRepository{db: db}
}

func (r *AppUserRepository) Create(ctx context.Context, user domain.AppUser) (domain.AppUser, error) {
	const query = `
INSERT INTO m_app_user (username, first_name, last_name, transaction_pin_hash)
VALUES ($1, $2, $3, $4)
RETURNING id, username, first_name, last_name, transaction_pin_hash, created_at, updated_at`

	var created domain.AppUser
	if err := conn(ctx, r.db).QueryRowContext(
		ctx,
		query,
		user.Username,
		user.FirstName,
		user.LastName,
		user.TransactionPinHash,
	).Scan(
		&created.ID,
		&created.Username,
		&created.FirstName,
		&created.LastName,
		&created.TransactionPinHash,
		&created.CreatedAt,
		&created.UpdatedAt,
	); err != nil {
		return domain.AppUser{}, fmt.Errorf("create app user: %w", err)
	}
	return created, nil
}

func (r *AppUserRepository) GetByID(ctx context.Context, id string) (domain.AppUser, error) {
	const query = `
SELECT id, username, first_name, last_name, transaction_pin_hash, created_at, updated_at
FROM m_app_user
WHERE id = $1`

	var user domain.AppUser
	if err := conn(ctx, r.db).QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.Username,
		&user.FirstName,
		&user.LastName,
		&user.TransactionPinHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.AppUser{}, fmt.Errorf("app user %s: %w", id, domain.ErrRecordNotFound)
		}
		return domain.AppUser{}, fmt.Errorf("get app user by id: %w", err)
	}
	return user, nil
}

func (r *AppUserRepository) GetTransactionPinHashByUsername(ctx context.Context, username string) (string, error) {
	const query = `
SELECT transaction_pin_hash
FROM m_app_user
WHERE username = $1`

	var hash string
	if err := conn(ctx, r.db).QueryRowContext(ctx, query, username).Scan(&hash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("app user %s: %w", username, domain.ErrRecordNotFound)
		}
		return "", fmt.Errorf("get transaction pin hash: %w", err)
	}
	return hash, nil
}
