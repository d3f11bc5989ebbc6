package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/api-sage/savings-account-processor/src/internal/domain"
	"github.com/api-sage/savings-account-processor/src/internal/logger"
	"github.com/shopspring/decimal"
)

type SavingsAccountRepository struct {
	db *sql.DB
}

func NewSavingsAccountRepository(db *sql.DB) *SavingsAccountRepository {
	return &SavingsAccountRepository{db: db}
}

func (r *SavingsAccountRepository) Save(ctx context.Context, account domain.SavingsAccount) error {
	const query = `
UPDATE m_savings_account
SET balance = $2,
	on_hold_funds = $3,
	last_interest_posted_date = $4,
	total_deposits = $5,
	total_withdrawals = $6,
	total_withdrawal_fees = $7,
	total_interest_earned = $8,
	total_interest_posted = $9,
	updated_at = now()
WHERE id = $1`

	summary := account.Summary()

	var lastPosted *time.Time
	if regular, ok := account.(*domain.RegularSavingsAccount); ok {
		if posted := regular.LastInterestPostedOn(); !posted.IsZero() {
			lastPosted = &posted
		}
	}

	result, err := conn(ctx, r.db).ExecContext(
		ctx,
		query,
		account.ID(),
		account.Balance(),
		account.OnHoldFunds(),
		lastPosted,
		summary.TotalDeposits,
		summary.TotalWithdrawals,
		summary.TotalWithdrawalFees,
		summary.TotalInterestEarned,
		summary.TotalInterestPosted,
	)
	if err != nil {
		logger.Error("savings account repository save failed", err, logger.Fields{
			"accountId": account.ID(),
		})
		return fmt.Errorf("save savings account: %w", err)
	}

	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return fmt.Errorf("save savings account %s: %w", account.ID(), domain.ErrRecordNotFound)
	}
	return nil
}

func (r *SavingsAccountRepository) FindByID(ctx context.Context, id string) (domain.SavingsAccount, error) {
	const query = `
SELECT id, client_id, account_no, currency_code, status, deposit_allowed, withdrawal_allowed,
	release_guarantor, nominal_annual_interest_rate, withdrawal_fee_amount, balance,
	overdraft_limit, on_hold_funds, activated_on_date, last_interest_posted_date
FROM m_savings_account
WHERE id = $1`

	var (
		params      domain.RegularSavingsAccountParams
		overdraft   sql.NullString
		activatedOn sql.NullTime
		lastPosted  sql.NullTime
	)
	err := conn(ctx, r.db).QueryRowContext(ctx, query, id).Scan(
		&params.ID,
		&params.ClientID,
		&params.AccountNo,
		&params.Currency,
		&params.Status,
		&params.DepositAllowed,
		&params.WithdrawalAllowed,
		&params.ReleaseGuarantor,
		&params.NominalAnnualInterestRate,
		&params.WithdrawalFeeAmount,
		&params.Balance,
		&overdraft,
		&params.OnHoldFunds,
		&activatedOn,
		&lastPosted,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("savings account %s: %w", id, domain.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("find savings account by id: %w", err)
	}

	if overdraft.Valid {
		limit, parseErr := decimal.NewFromString(overdraft.String)
		if parseErr != nil {
			return nil, fmt.Errorf("parse overdraft limit for account %s: %w", id, parseErr)
		}
		params.OverdraftLimit = limit
	}
	if activatedOn.Valid {
		params.ActivatedOn = activatedOn.Time
	}
	if lastPosted.Valid {
		params.LastInterestPostedOn = lastPosted.Time
	}

	transactions, err := r.transactionsForAccount(ctx, id)
	if err != nil {
		return nil, err
	}
	params.Transactions = transactions

	return domain.NewRegularSavingsAccount(params), nil
}

func (r *SavingsAccountRepository) transactionsForAccount(ctx context.Context, accountID string) ([]*domain.SavingsAccountTransaction, error) {
	const query = `
SELECT id, transaction_type_enum, value_date, amount, running_balance, is_reversed, app_user_id, created_at
FROM m_savings_account_transaction
WHERE savings_account_id = $1
ORDER BY value_date, created_at`

	rows, err := conn(ctx, r.db).QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("load transactions for account %s: %w", accountID, err)
	}
	defer rows.Close()

	var transactions []*domain.SavingsAccountTransaction
	for rows.Next() {
		transaction := &domain.SavingsAccountTransaction{AccountID: accountID}
		var appUserID sql.NullString
		if err := rows.Scan(
			&transaction.ID,
			&transaction.Type,
			&transaction.ValueDate,
			&transaction.Amount,
			&transaction.RunningBalance,
			&transaction.Reversed,
			&appUserID,
			&transaction.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan transaction for account %s: %w", accountID, err)
		}
		if appUserID.Valid {
			transaction.AppUserID = &appUserID.String
		}
		transactions = append(transactions, transaction)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions for account %s: %w", accountID, err)
	}
	return transactions, nil
}
