package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/api-sage/savings-account-processor/src/internal/domain"
	"github.com/api-sage/savings-account-processor/src/internal/logger"
)

type SavingsAccountTransactionRepository struct {
	db *sql.DB
}

func NewSavingsAccountTransactionRepository(db *sql.DB) *SavingsAccountTransactionRepository {
	return &SavingsAccountTransactionRepository{db: db}
}

// Save inserts the transaction and stamps the generated identifier back onto
// the record. Already-persisted transactions are left untouched: records are
// immutable after creation.
func (r *SavingsAccountTransactionRepository) Save(ctx context.Context, transaction *domain.SavingsAccountTransaction) error {
	if transaction.ID != "" {
		return nil
	}

	const query = `
INSERT INTO m_savings_account_transaction (
	savings_account_id,
	transaction_type_enum,
	value_date,
	amount,
	running_balance,
	is_reversed,
	payment_type_id,
	payment_account_number,
	payment_cheque_number,
	payment_routing_code,
	payment_receipt_number,
	payment_bank_number,
	app_user_id,
	created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
RETURNING id`

	var (
		paymentTypeID sql.NullString
		accountNumber sql.NullString
		chequeNumber  sql.NullString
		routingCode   sql.NullString
		receiptNumber sql.NullString
		bankNumber    sql.NullString
	)
	if detail := transaction.PaymentDetail; detail != nil {
		paymentTypeID = sql.NullString{String: detail.PaymentTypeID, Valid: detail.PaymentTypeID != ""}
		accountNumber = sql.NullString{String: detail.AccountNumber, Valid: detail.AccountNumber != ""}
		chequeNumber = sql.NullString{String: detail.ChequeNumber, Valid: detail.ChequeNumber != ""}
		routingCode = sql.NullString{String: detail.RoutingCode, Valid: detail.RoutingCode != ""}
		receiptNumber = sql.NullString{String: detail.ReceiptNumber, Valid: detail.ReceiptNumber != ""}
		bankNumber = sql.NullString{String: detail.BankNumber, Valid: detail.BankNumber != ""}
	}

	err := conn(ctx, r.db).QueryRowContext(
		ctx,
		query,
		transaction.AccountID,
		transaction.Type,
		transaction.ValueDate,
		transaction.Amount,
		transaction.RunningBalance,
		transaction.Reversed,
		paymentTypeID,
		accountNumber,
		chequeNumber,
		routingCode,
		receiptNumber,
		bankNumber,
		transaction.AppUserID,
		transaction.CreatedAt,
	).Scan(&transaction.ID)
	if err != nil {
		logger.Error("savings transaction repository save failed", err, logger.Fields{
			"accountId": transaction.AccountID,
			"type":      transaction.Type,
		})
		return fmt.Errorf("save savings account transaction: %w", err)
	}
	return nil
}
