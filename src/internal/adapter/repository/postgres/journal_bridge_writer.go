package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/api-sage/savings-account-processor/src/internal/domain"
	"github.com/api-sage/savings-account-processor/src/internal/logger"
	"github.com/lib/pq"
)

// JournalBridgeWriter hands accounting bridge payloads to the ledger by
// staging one row per new or reversed transaction in the journal bridge
// table the accounting engine consumes. Any failure aborts the caller's unit
// of work.
type JournalBridgeWriter struct {
	db *sql.DB
}

func NewJournalBridgeWriter(db *sql.DB) *JournalBridgeWriter {
	return &JournalBridgeWriter{db: db}
}

func (w *JournalBridgeWriter) CreateJournalEntriesForSavings(ctx context.Context, bridgeData domain.AccountingBridgeData) error {
	const query = `
INSERT INTO acc_savings_journal_bridge (
	savings_account_id,
	transaction_id,
	currency_code,
	amount,
	transaction_type_enum,
	is_reversal,
	is_account_transfer,
	transaction_date
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	insert := func(transaction *domain.SavingsAccountTransaction, isReversal bool) error {
		_, err := conn(ctx, w.db).ExecContext(
			ctx,
			query,
			bridgeData.AccountID,
			transaction.ID,
			bridgeData.Currency,
			transaction.Amount,
			transaction.Type,
			isReversal,
			bridgeData.IsAccountTransfer,
			transaction.ValueDate,
		)
		if err != nil {
			if isUniqueViolation(err) {
				// The bridge row already exists; the diffing upstream keeps
				// this rare but reposting after a partial retry is legal.
				return nil
			}
			return fmt.Errorf("stage journal bridge row for transaction %s: %w", transaction.ID, err)
		}
		return nil
	}

	for _, transaction := range bridgeData.NewTransactions {
		if err := insert(transaction, false); err != nil {
			return err
		}
	}
	for _, transaction := range bridgeData.ReversedTransactions {
		if err := insert(transaction, true); err != nil {
			return err
		}
	}

	logger.Info("journal bridge writer staged entries", logger.Fields{
		"accountId": bridgeData.AccountID,
		"new":       len(bridgeData.NewTransactions),
		"reversed":  len(bridgeData.ReversedTransactions),
	})
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == "23505"
	}
	return false
}
