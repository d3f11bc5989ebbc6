package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/api-sage/savings-account-processor/src/internal/domain"
	"github.com/shopspring/decimal"
)

func activeAccount(balance decimal.Decimal) *domain.RegularSavingsAccount {
	return domain.NewRegularSavingsAccount(domain.RegularSavingsAccountParams{
		ID:                "sa-1",
		ClientID:          "c-1",
		AccountNo:         "0001",
		Currency:          "NGN",
		Status:            domain.SavingsAccountStatusActive,
		DepositAllowed:    true,
		WithdrawalAllowed: true,
		Balance:           balance,
	})
}

func TestDepositMovesBalanceAndTotals(t *testing.T) {
	account := activeAccount(decimal.NewFromInt(100))
	valueDate := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	deposit := account.Deposit(valueDate, decimal.NewFromInt(40), nil, nil)

	if !account.Balance().Equal(decimal.NewFromInt(140)) {
		t.Fatalf("expected balance 140, got %s", account.Balance().String())
	}
	if !account.Summary().TotalDeposits.Equal(decimal.NewFromInt(40)) {
		t.Fatalf("expected total deposits 40, got %s", account.Summary().TotalDeposits.String())
	}
	if deposit.Type != domain.SavingsTransactionDeposit {
		t.Fatalf("expected deposit transaction type, got %d", deposit.Type)
	}
	if !deposit.RunningBalance.Equal(decimal.NewFromInt(140)) {
		t.Fatalf("expected running balance 140, got %s", deposit.RunningBalance.String())
	}
	if deposit.ID != "" {
		t.Fatal("expected identity to stay unassigned until persistence")
	}
}

func TestWithdrawAppliesFee(t *testing.T) {
	account := domain.NewRegularSavingsAccount(domain.RegularSavingsAccountParams{
		ID:                  "sa-1",
		Status:              domain.SavingsAccountStatusActive,
		WithdrawalAllowed:   true,
		Balance:             decimal.NewFromInt(100),
		WithdrawalFeeAmount: decimal.NewFromInt(5),
	})
	valueDate := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	withdrawal := account.Withdraw(valueDate, decimal.NewFromInt(30), nil, nil, true)

	if !account.Balance().Equal(decimal.NewFromInt(65)) {
		t.Fatalf("expected balance 65 after fee, got %s", account.Balance().String())
	}
	if !withdrawal.RunningBalance.Equal(decimal.NewFromInt(70)) {
		t.Fatalf("expected withdrawal running balance 70, got %s", withdrawal.RunningBalance.String())
	}
	if !account.Summary().TotalWithdrawalFees.Equal(decimal.NewFromInt(5)) {
		t.Fatalf("expected total withdrawal fees 5, got %s", account.Summary().TotalWithdrawalFees.String())
	}

	transactions := account.Transactions()
	if len(transactions) != 2 {
		t.Fatalf("expected withdrawal plus fee transactions, got %d", len(transactions))
	}
	if transactions[1].Type != domain.SavingsTransactionWithdrawalFee {
		t.Fatalf("expected fee transaction, got type %d", transactions[1].Type)
	}
}

func TestValidateAccountBalanceDoesNotBecomeNegative(t *testing.T) {
	account := activeAccount(decimal.NewFromInt(20))
	valueDate := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	account.Withdraw(valueDate, decimal.NewFromInt(50), nil, nil, false)

	err := account.ValidateAccountBalanceDoesNotBecomeNegative(decimal.NewFromInt(50), false)
	var negativeErr *domain.BalanceWouldGoNegativeError
	if !errors.As(err, &negativeErr) {
		t.Fatalf("expected balance violation, got %v", err)
	}
	if negativeErr.AccountID != "sa-1" {
		t.Fatalf("expected account sa-1 in error, got %s", negativeErr.AccountID)
	}

	if err := account.ValidateAccountBalanceDoesNotBecomeNegative(decimal.NewFromInt(50), true); err != nil {
		t.Fatalf("expected exception flag to suppress the check, got %v", err)
	}
}

func TestIsBeforeLastPostingPeriod(t *testing.T) {
	lastPosted := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)
	account := domain.NewRegularSavingsAccount(domain.RegularSavingsAccountParams{
		ID:                   "sa-1",
		Status:               domain.SavingsAccountStatusActive,
		LastInterestPostedOn: lastPosted,
	})

	if !account.IsBeforeLastPostingPeriod(lastPosted.AddDate(0, 0, -1)) {
		t.Fatal("expected a date before the boundary to be inside a posted period")
	}
	if account.IsBeforeLastPostingPeriod(lastPosted) {
		t.Fatal("expected the boundary date itself to not force a recomputation")
	}
	if account.IsBeforeLastPostingPeriod(lastPosted.AddDate(0, 0, 1)) {
		t.Fatal("expected a later date to not force a recomputation")
	}

	fresh := activeAccount(decimal.Zero)
	if fresh.IsBeforeLastPostingPeriod(lastPosted) {
		t.Fatal("expected no posted period on a fresh account")
	}
}

func TestPostInterestCommitsAndMovesBoundary(t *testing.T) {
	activated := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	today := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	account := domain.NewRegularSavingsAccount(domain.RegularSavingsAccountParams{
		ID:                        "sa-1",
		Status:                    domain.SavingsAccountStatusActive,
		Balance:                   decimal.NewFromInt(1000),
		NominalAnnualInterestRate: decimal.NewFromInt(10),
		ActivatedOn:               activated,
	})

	// 1000 * 10% * 31/365 days.
	expected := decimal.NewFromFloat(8.49)
	interest := account.PostInterest(today, false, false, 1)

	if !interest.Equal(expected) {
		t.Fatalf("expected posted interest %s, got %s", expected.String(), interest.String())
	}
	if !account.Balance().Equal(decimal.NewFromInt(1000).Add(expected)) {
		t.Fatalf("expected balance credited, got %s", account.Balance().String())
	}
	if !account.LastInterestPostedOn().Equal(today) {
		t.Fatalf("expected posting boundary moved to %s, got %s", today, account.LastInterestPostedOn())
	}
	if !account.Summary().TotalInterestPosted.Equal(expected) {
		t.Fatalf("expected total interest posted %s, got %s", expected.String(), account.Summary().TotalInterestPosted.String())
	}

	transactions := account.Transactions()
	if len(transactions) != 1 || transactions[0].Type != domain.SavingsTransactionInterestPosting {
		t.Fatal("expected one interest posting transaction")
	}
}

func TestCalculateInterestUsingIsPreviewOnly(t *testing.T) {
	activated := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	today := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	account := domain.NewRegularSavingsAccount(domain.RegularSavingsAccountParams{
		ID:                        "sa-1",
		Status:                    domain.SavingsAccountStatusActive,
		Balance:                   decimal.NewFromInt(1000),
		NominalAnnualInterestRate: decimal.NewFromInt(10),
		ActivatedOn:               activated,
	})

	interest := account.CalculateInterestUsing(today, false, false, 1)

	if !interest.Equal(decimal.NewFromFloat(8.49)) {
		t.Fatalf("expected previewed interest 8.49, got %s", interest.String())
	}
	if !account.Balance().Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("expected balance untouched, got %s", account.Balance().String())
	}
	if !account.LastInterestPostedOn().IsZero() {
		t.Fatal("expected posting boundary untouched")
	}
	if len(account.Transactions()) != 0 {
		t.Fatal("expected no transaction appended by a preview")
	}
}

func TestDeriveAccountingBridgeDataDiffsByCapturedIDs(t *testing.T) {
	journaled := &domain.SavingsAccountTransaction{ID: "t-1", Type: domain.SavingsTransactionDeposit}
	reversed := &domain.SavingsAccountTransaction{ID: "t-2", Type: domain.SavingsTransactionDeposit, Reversed: true}
	account := domain.NewRegularSavingsAccount(domain.RegularSavingsAccountParams{
		ID:           "sa-1",
		Currency:     "NGN",
		Status:       domain.SavingsAccountStatusActive,
		Transactions: []*domain.SavingsAccountTransaction{journaled, reversed},
	})

	existingIDs := account.FindExistingTransactionIDs()
	existingReversedIDs := account.FindExistingReversedTransactionIDs()

	valueDate := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	account.Deposit(valueDate, decimal.NewFromInt(10), nil, nil)

	bridge := account.DeriveAccountingBridgeData(existingIDs, existingReversedIDs, false)

	if bridge.AccountID != "sa-1" || bridge.Currency != "NGN" {
		t.Fatalf("expected bridge keyed to the account, got %+v", bridge)
	}
	if len(bridge.NewTransactions) != 1 {
		t.Fatalf("expected only the fresh deposit in the diff, got %d", len(bridge.NewTransactions))
	}
	if !bridge.NewTransactions[0].Amount.Equal(decimal.NewFromInt(10)) {
		t.Fatal("expected the fresh deposit transaction")
	}
	if len(bridge.ReversedTransactions) != 0 {
		t.Fatalf("expected already-journaled reversal excluded, got %d", len(bridge.ReversedTransactions))
	}
}
