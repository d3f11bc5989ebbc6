package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/api-sage/savings-account-processor/src/internal/domain"
	"github.com/api-sage/savings-account-processor/src/internal/usecase/services"
)

type chargeRepoStub struct {
	maxChargeDueDateFn        func(ctx context.Context, savingID string) (time.Time, error)
	savingIDsWithChargeDueFn  func(ctx context.Context, frequency domain.ChargeFrequency) ([]domain.SavingsIDOfChargeData, error)
	savingsForDepositLateFn   func(ctx context.Context, frequency domain.ChargeFrequency) ([]domain.SavingIDListData, error)
	savingsForLateChargeFn    func(ctx context.Context) ([]domain.SavingIDListData, error)
	chargesWithAnnualFeeDueFn func(ctx context.Context) ([]domain.SavingsAccountAnnualFeeData, error)
	chargesWithDueFn          func(ctx context.Context) ([]domain.SavingsAccountAnnualFeeData, error)
}

func (s chargeRepoStub) MaxChargeDueDate(ctx context.Context, savingID string) (time.Time, error) {
	if s.maxChargeDueDateFn != nil {
		return s.maxChargeDueDateFn(ctx, savingID)
	}
	return time.Time{}, domain.ErrRecordNotFound
}

func (s chargeRepoStub) SavingIDsWithDepositChargeDue(ctx context.Context, frequency domain.ChargeFrequency) ([]domain.SavingsIDOfChargeData, error) {
	if s.savingIDsWithChargeDueFn != nil {
		return s.savingIDsWithChargeDueFn(ctx, frequency)
	}
	return []domain.SavingsIDOfChargeData{}, nil
}

func (s chargeRepoStub) SavingAccountsForDepositLateFee(ctx context.Context, frequency domain.ChargeFrequency) ([]domain.SavingIDListData, error) {
	if s.savingsForDepositLateFn != nil {
		return s.savingsForDepositLateFn(ctx, frequency)
	}
	return []domain.SavingIDListData{}, nil
}

func (s chargeRepoStub) SavingAccountsForDepositLateCharge(ctx context.Context) ([]domain.SavingIDListData, error) {
	if s.savingsForLateChargeFn != nil {
		return s.savingsForLateChargeFn(ctx)
	}
	return []domain.SavingIDListData{}, nil
}

func (s chargeRepoStub) ChargesWithAnnualFeeDue(ctx context.Context) ([]domain.SavingsAccountAnnualFeeData, error) {
	if s.chargesWithAnnualFeeDueFn != nil {
		return s.chargesWithAnnualFeeDueFn(ctx)
	}
	return []domain.SavingsAccountAnnualFeeData{}, nil
}

func (s chargeRepoStub) ChargesWithDue(ctx context.Context) ([]domain.SavingsAccountAnnualFeeData, error) {
	if s.chargesWithDueFn != nil {
		return s.chargesWithDueFn(ctx)
	}
	return []domain.SavingsAccountAnnualFeeData{}, nil
}

func TestRetrieveMaxChargeDueDateSuccess(t *testing.T) {
	dueDate := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	svc := services.NewChargeScheduleService(chargeRepoStub{
		maxChargeDueDateFn: func(_ context.Context, savingID string) (time.Time, error) {
			if savingID != "sa-1" {
				t.Fatalf("expected lookup for sa-1, got %s", savingID)
			}
			return dueDate, nil
		},
	})

	data, err := svc.RetrieveMaxChargeDueDate(context.Background(), "sa-1")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if data.SavingID != "sa-1" || data.DueDate == nil || !data.DueDate.Equal(dueDate) {
		t.Fatalf("expected due date %s for sa-1, got %+v", dueDate, data)
	}
}

func TestRetrieveMaxChargeDueDateNotFound(t *testing.T) {
	svc := services.NewChargeScheduleService(chargeRepoStub{})

	_, err := svc.RetrieveMaxChargeDueDate(context.Background(), "sa-1")
	if !errors.Is(err, domain.ErrSavingsAccountChargeNotFound) {
		t.Fatalf("expected charge not-found signal, got %v", err)
	}
}

func TestRetrieveSavingIDsWithDepositChargeDueRejectsUnknownFrequency(t *testing.T) {
	svc := services.NewChargeScheduleService(chargeRepoStub{})

	if _, err := svc.RetrieveSavingIDsWithDepositChargeDue(context.Background(), domain.ChargeFrequency(9)); err == nil {
		t.Fatal("expected unknown frequency to be rejected")
	}
	if _, err := svc.RetrieveSavingAccountsForDepositLateFee(context.Background(), domain.ChargeFrequency(9)); err == nil {
		t.Fatal("expected unknown frequency to be rejected")
	}
}

func TestRetrieveSavingAccountsForDepositLateChargeEmptyResult(t *testing.T) {
	svc := services.NewChargeScheduleService(chargeRepoStub{})

	rows, err := svc.RetrieveSavingAccountsForDepositLateCharge(context.Background())
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if rows == nil || len(rows) != 0 {
		t.Fatalf("expected an empty non-nil slice, got %v", rows)
	}
}

func TestScanDueChargesAggregatesAllBuckets(t *testing.T) {
	svc := services.NewChargeScheduleService(chargeRepoStub{
		savingIDsWithChargeDueFn: func(_ context.Context, frequency domain.ChargeFrequency) ([]domain.SavingsIDOfChargeData, error) {
			return []domain.SavingsIDOfChargeData{{SavingID: fmt.Sprintf("sa-%d", frequency)}}, nil
		},
		savingsForDepositLateFn: func(_ context.Context, frequency domain.ChargeFrequency) ([]domain.SavingIDListData, error) {
			return []domain.SavingIDListData{{SavingID: fmt.Sprintf("late-%d", frequency)}}, nil
		},
	})

	asOf := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	result, err := svc.ScanDueCharges(context.Background(), asOf)
	if err != nil {
		t.Fatalf("expected scan to succeed, got %v", err)
	}

	if !result.AsOf.Equal(asOf) {
		t.Fatalf("expected asOf preserved, got %s", result.AsOf)
	}
	if len(result.DueByBucket) != 4 || len(result.LateByBucket) != 4 {
		t.Fatalf("expected all four frequency buckets, got %d due and %d late",
			len(result.DueByBucket), len(result.LateByBucket))
	}
	monthly := result.DueByBucket[domain.ChargeFrequencyMonthly]
	if len(monthly) != 1 || monthly[0].SavingID != "sa-2" {
		t.Fatalf("expected monthly bucket keyed by its frequency, got %+v", monthly)
	}
}

func TestScanDueChargesPropagatesFailure(t *testing.T) {
	svc := services.NewChargeScheduleService(chargeRepoStub{
		savingIDsWithChargeDueFn: func(_ context.Context, frequency domain.ChargeFrequency) ([]domain.SavingsIDOfChargeData, error) {
			if frequency == domain.ChargeFrequencyWeekly {
				return nil, fmt.Errorf("query timeout")
			}
			return []domain.SavingsIDOfChargeData{}, nil
		},
	})

	if _, err := svc.ScanDueCharges(context.Background(), time.Now().UTC()); err == nil {
		t.Fatal("expected a bucket failure to fail the scan")
	}
}
