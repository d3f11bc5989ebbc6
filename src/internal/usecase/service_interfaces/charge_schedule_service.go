package service_interfaces

import (
	"context"
	"time"

	"github.com/api-sage/savings-account-processor/src/internal/domain"
)

// ChargeScheduleService is the reporting read side for recurring charge and
// fee schedules.
type ChargeScheduleService interface {
	RetrieveMaxChargeDueDate(ctx context.Context, savingID string) (domain.SavingsIDOfChargeData, error)
	RetrieveSavingIDsWithDepositChargeDue(ctx context.Context, frequency domain.ChargeFrequency) ([]domain.SavingsIDOfChargeData, error)
	RetrieveSavingAccountsForDepositLateFee(ctx context.Context, frequency domain.ChargeFrequency) ([]domain.SavingIDListData, error)
	RetrieveSavingAccountsForDepositLateCharge(ctx context.Context) ([]domain.SavingIDListData, error)
	RetrieveChargesWithAnnualFeeDue(ctx context.Context) ([]domain.SavingsAccountAnnualFeeData, error)
	RetrieveChargesWithDue(ctx context.Context) ([]domain.SavingsAccountAnnualFeeData, error)
	ScanDueCharges(ctx context.Context, asOf time.Time) (DueChargeScanResult, error)
}

// DueChargeScanResult aggregates one run of the recurring due-charge scan
// across all frequency buckets.
type DueChargeScanResult struct {
	AsOf         time.Time
	DueByBucket  map[domain.ChargeFrequency][]domain.SavingsIDOfChargeData
	LateByBucket map[domain.ChargeFrequency][]domain.SavingIDListData
}
