package domain_test

import (
	"testing"

	"github.com/api-sage/savings-account-processor/src/internal/domain"
	"github.com/shopspring/decimal"
)

func TestProportionalShareExactSplit(t *testing.T) {
	amount := decimal.NewFromInt(90)
	pool := decimal.NewFromInt(150)

	first := domain.ProportionalShare(amount, decimal.NewFromInt(100), pool)
	if !first.Equal(decimal.NewFromInt(60)) {
		t.Fatalf("expected share 60, got %s", first.String())
	}

	second := domain.ProportionalShare(amount, decimal.NewFromInt(50), pool)
	if !second.Equal(decimal.NewFromInt(30)) {
		t.Fatalf("expected share 30, got %s", second.String())
	}
}

func TestProportionalShareHalfEvenRounding(t *testing.T) {
	one := decimal.NewFromInt(1)
	eight := decimal.NewFromInt(8)

	// 1/8 = 0.125 rounds down to the even neighbour.
	down := domain.ProportionalShare(one, one, eight)
	if !down.Equal(decimal.NewFromFloat(0.12)) {
		t.Fatalf("expected 0.12, got %s", down.String())
	}

	// 3/8 = 0.375 rounds up to the even neighbour.
	up := domain.ProportionalShare(one, decimal.NewFromInt(3), eight)
	if !up.Equal(decimal.NewFromFloat(0.38)) {
		t.Fatalf("expected 0.38, got %s", up.String())
	}
}

func TestProportionalShareZeroPool(t *testing.T) {
	share := domain.ProportionalShare(decimal.NewFromInt(90), decimal.NewFromInt(10), decimal.Zero)
	if !share.IsZero() {
		t.Fatalf("expected zero share for zero pool, got %s", share.String())
	}
}

func TestZeroIfNil(t *testing.T) {
	if !domain.ZeroIfNil(nil).IsZero() {
		t.Fatal("expected zero for nil value")
	}

	value := decimal.NewFromInt(42)
	if !domain.ZeroIfNil(&value).Equal(value) {
		t.Fatalf("expected 42, got %s", domain.ZeroIfNil(&value).String())
	}
}
