package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/api-sage/savings-account-processor/src/internal/domain"
	"github.com/api-sage/savings-account-processor/src/internal/logger"
)

type GuarantorRepository struct {
	db          *sql.DB
	accountRepo *SavingsAccountRepository
}

func NewGuarantorRepository(db *sql.DB, accountRepo *SavingsAccountRepository) *GuarantorRepository {
	return &GuarantorRepository{db: db, accountRepo: accountRepo}
}

// GuarantorsForLoan loads a loan's guarantors with their active funding
// details and the linked savings accounts those details hold collateral on.
func (r *GuarantorRepository) GuarantorsForLoan(ctx context.Context, loanID string) ([]*domain.Guarantor, error) {
	const query = `
SELECT g.id, g.loan_id, g.client_id, g.guarantor_type,
	gfd.id, gfd.status, gfd.amount_committed, gfd.amount_remaining, gfd.self_guarantee_amount,
	gfd.linked_savings_account_id
FROM m_guarantor g
JOIN m_guarantor_funding_details gfd ON gfd.guarantor_id = g.id
WHERE g.loan_id = $1
ORDER BY g.id, gfd.id`

	rows, err := conn(ctx, r.db).QueryContext(ctx, query, loanID)
	if err != nil {
		return nil, fmt.Errorf("load guarantors for loan %s: %w", loanID, err)
	}
	defer rows.Close()

	byID := make(map[string]*domain.Guarantor)
	var ordered []*domain.Guarantor
	for rows.Next() {
		var (
			guarantorID     string
			guarantor       domain.Guarantor
			fundingDetails  domain.GuarantorFundingDetails
			linkedAccountID string
		)
		if err := rows.Scan(
			&guarantorID,
			&guarantor.LoanID,
			&guarantor.ClientID,
			&guarantor.Type,
			&fundingDetails.ID,
			&fundingDetails.Status,
			&fundingDetails.AmountCommitted,
			&fundingDetails.AmountRemaining,
			&fundingDetails.SelfGuaranteeAmount,
			&linkedAccountID,
		); err != nil {
			return nil, fmt.Errorf("scan guarantor for loan %s: %w", loanID, err)
		}

		existing, ok := byID[guarantorID]
		if !ok {
			guarantor.ID = guarantorID
			existing = &guarantor
			byID[guarantorID] = existing
			ordered = append(ordered, existing)
		}

		linkedAccount, err := r.accountRepo.FindByID(ctx, linkedAccountID)
		if err != nil {
			return nil, fmt.Errorf("load linked savings account %s: %w", linkedAccountID, err)
		}
		fundingDetails.GuarantorID = guarantorID
		fundingDetails.LinkedAccount = linkedAccount
		existing.FundingDetails = append(existing.FundingDetails, &fundingDetails)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate guarantors for loan %s: %w", loanID, err)
	}
	return ordered, nil
}

type GuarantorFundingRepository struct {
	db *sql.DB
}

func NewGuarantorFundingRepository(db *sql.DB) *GuarantorFundingRepository {
	return &GuarantorFundingRepository{db: db}
}

// SaveAll persists the mutated funding details and their appended funding
// transactions as one batch inside the ambient unit of work.
func (r *GuarantorFundingRepository) SaveAll(ctx context.Context, details []*domain.GuarantorFundingDetails) error {
	const updateQuery = `
UPDATE m_guarantor_funding_details
SET status = $2,
	amount_remaining = $3,
	self_guarantee_amount = $4,
	updated_at = now()
WHERE id = $1`

	const insertTransactionQuery = `
INSERT INTO m_guarantor_funding_transaction (funding_details_id, on_hold_transaction_id, created_at)
VALUES ($1, $2, now())
RETURNING id`

	for _, fundingDetails := range details {
		if _, err := conn(ctx, r.db).ExecContext(
			ctx,
			updateQuery,
			fundingDetails.ID,
			fundingDetails.Status,
			fundingDetails.AmountRemaining,
			fundingDetails.SelfGuaranteeAmount,
		); err != nil {
			logger.Error("guarantor funding repository save failed", err, logger.Fields{
				"fundingDetailsId": fundingDetails.ID,
			})
			return fmt.Errorf("save guarantor funding details %s: %w", fundingDetails.ID, err)
		}

		for _, fundingTransaction := range fundingDetails.FundingTransactions {
			if fundingTransaction.ID != "" {
				continue
			}
			var onHoldID any
			if fundingTransaction.OnHoldTransaction != nil {
				onHoldID = fundingTransaction.OnHoldTransaction.ID
			}
			if err := conn(ctx, r.db).QueryRowContext(
				ctx,
				insertTransactionQuery,
				fundingDetails.ID,
				onHoldID,
			).Scan(&fundingTransaction.ID); err != nil {
				return fmt.Errorf("save guarantor funding transaction: %w", err)
			}
		}
	}
	return nil
}

type OnHoldTransactionRepository struct {
	db *sql.DB
}

func NewOnHoldTransactionRepository(db *sql.DB) *OnHoldTransactionRepository {
	return &OnHoldTransactionRepository{db: db}
}

func (r *OnHoldTransactionRepository) SaveAll(ctx context.Context, transactions []*domain.DepositAccountOnHoldTransaction) error {
	const query = `
INSERT INTO m_deposit_account_on_hold_transaction (savings_account_id, amount, transaction_type, transaction_date, created_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`

	for _, transaction := range transactions {
		if transaction.ID != "" {
			continue
		}
		if err := conn(ctx, r.db).QueryRowContext(
			ctx,
			query,
			transaction.SavingsAccountID,
			transaction.Amount,
			transaction.Type,
			transaction.Date,
			transaction.CreatedAt,
		).Scan(&transaction.ID); err != nil {
			return fmt.Errorf("save on-hold transaction: %w", err)
		}
	}
	return nil
}

type LoanRepository struct {
	db *sql.DB
}

func NewLoanRepository(db *sql.DB) *LoanRepository {
	return &LoanRepository{db: db}
}

// LoanIDForClient resolves the client's active loan, reporting
// domain.ErrRecordNotFound when the client has none.
func (r *LoanRepository) LoanIDForClient(ctx context.Context, clientID string) (string, error) {
	const query = `
SELECT id
FROM m_loan
WHERE client_id = $1 AND is_active = true
ORDER BY disbursed_on_date DESC
LIMIT 1`

	var loanID string
	if err := conn(ctx, r.db).QueryRowContext(ctx, query, clientID).Scan(&loanID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("active loan for client %s: %w", clientID, domain.ErrRecordNotFound)
		}
		return "", fmt.Errorf("loan id for client: %w", err)
	}
	return loanID, nil
}
