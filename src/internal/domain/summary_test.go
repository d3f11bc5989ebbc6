package domain_test

import (
	"testing"

	"github.com/api-sage/savings-account-processor/src/internal/domain"
	"github.com/shopspring/decimal"
)

func TestComputeAvailableFunds(t *testing.T) {
	balance := decimal.NewFromInt(100)
	overdraft := decimal.NewFromInt(50)
	onHold := decimal.NewFromInt(30)

	summary := domain.NewAccountSummaryForAvailableFunds(balance, &overdraft, &onHold)

	if !summary.AvailableFunds.Equal(decimal.NewFromInt(120)) {
		t.Fatalf("expected available funds 120, got %s", summary.AvailableFunds.String())
	}
	if !summary.AccountBalance.Equal(balance) {
		t.Fatalf("expected cached balance 100, got %s", summary.AccountBalance.String())
	}
	if summary.OverdraftLimit == nil || !summary.OverdraftLimit.Equal(overdraft) {
		t.Fatal("expected cached overdraft limit 50")
	}
	if summary.OnHoldFunds == nil || !summary.OnHoldFunds.Equal(onHold) {
		t.Fatal("expected cached on-hold funds 30")
	}
}

func TestComputeAvailableFundsTreatsNilAsZero(t *testing.T) {
	balance := decimal.NewFromInt(100)

	summary := domain.NewAccountSummaryForAvailableFunds(balance, nil, nil)

	if !summary.AvailableFunds.Equal(balance) {
		t.Fatalf("expected available funds 100, got %s", summary.AvailableFunds.String())
	}
	if summary.OverdraftLimit == nil || !summary.OverdraftLimit.IsZero() {
		t.Fatal("expected nil overdraft limit cached as zero")
	}
	if summary.OnHoldFunds == nil || !summary.OnHoldFunds.IsZero() {
		t.Fatal("expected nil on-hold funds cached as zero")
	}
}

func TestComputeAvailableFundsIsRepeatable(t *testing.T) {
	summary := &domain.AccountSummary{}
	balance := decimal.NewFromInt(100)
	overdraft := decimal.NewFromInt(25)

	first := summary.ComputeAvailableFunds(balance, &overdraft, nil)
	second := summary.ComputeAvailableFunds(balance, &overdraft, nil)

	if !first.Equal(second) {
		t.Fatalf("expected repeated computation to agree, got %s and %s", first.String(), second.String())
	}
	if !second.Equal(decimal.NewFromInt(125)) {
		t.Fatalf("expected available funds 125, got %s", second.String())
	}
}
