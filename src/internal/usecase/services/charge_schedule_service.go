package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/api-sage/savings-account-processor/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/savings-account-processor/src/internal/domain"
	"github.com/api-sage/savings-account-processor/src/internal/logger"
	"github.com/api-sage/savings-account-processor/src/internal/usecase/service_interfaces"
	"golang.org/x/sync/errgroup"
)

// ChargeScheduleService answers the recurring charge/fee reporting queries.
// Empty results come back as empty slices; the single-row due-date lookup
// converts a miss into the charge not-found signal.
type ChargeScheduleService struct {
	chargeRepo repo_interfaces.ChargeRepository
}

func NewChargeScheduleService(chargeRepo repo_interfaces.ChargeRepository) *ChargeScheduleService {
	return &ChargeScheduleService{chargeRepo: chargeRepo}
}

func (s *ChargeScheduleService) RetrieveMaxChargeDueDate(ctx context.Context, savingID string) (domain.SavingsIDOfChargeData, error) {
	dueDate, err := s.chargeRepo.MaxChargeDueDate(ctx, savingID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return domain.SavingsIDOfChargeData{}, fmt.Errorf("account %s: %w", savingID, domain.ErrSavingsAccountChargeNotFound)
		}
		return domain.SavingsIDOfChargeData{}, fmt.Errorf("max charge due date for account %s: %w", savingID, err)
	}
	return domain.SavingsIDOfChargeData{SavingID: savingID, DueDate: &dueDate}, nil
}

func (s *ChargeScheduleService) RetrieveSavingIDsWithDepositChargeDue(ctx context.Context, frequency domain.ChargeFrequency) ([]domain.SavingsIDOfChargeData, error) {
	if !frequency.Valid() {
		return nil, fmt.Errorf("unknown charge frequency %d", frequency)
	}
	rows, err := s.chargeRepo.SavingIDsWithDepositChargeDue(ctx, frequency)
	if err != nil {
		return nil, fmt.Errorf("saving ids with deposit charge due: %w", err)
	}
	return rows, nil
}

func (s *ChargeScheduleService) RetrieveSavingAccountsForDepositLateFee(ctx context.Context, frequency domain.ChargeFrequency) ([]domain.SavingIDListData, error) {
	if !frequency.Valid() {
		return nil, fmt.Errorf("unknown charge frequency %d", frequency)
	}
	rows, err := s.chargeRepo.SavingAccountsForDepositLateFee(ctx, frequency)
	if err != nil {
		return nil, fmt.Errorf("saving accounts for deposit late fee: %w", err)
	}
	return rows, nil
}

func (s *ChargeScheduleService) RetrieveSavingAccountsForDepositLateCharge(ctx context.Context) ([]domain.SavingIDListData, error) {
	rows, err := s.chargeRepo.SavingAccountsForDepositLateCharge(ctx)
	if err != nil {
		return nil, fmt.Errorf("saving accounts for deposit late charge: %w", err)
	}
	return rows, nil
}

func (s *ChargeScheduleService) RetrieveChargesWithAnnualFeeDue(ctx context.Context) ([]domain.SavingsAccountAnnualFeeData, error) {
	rows, err := s.chargeRepo.ChargesWithAnnualFeeDue(ctx)
	if err != nil {
		return nil, fmt.Errorf("charges with annual fee due: %w", err)
	}
	return rows, nil
}

func (s *ChargeScheduleService) RetrieveChargesWithDue(ctx context.Context) ([]domain.SavingsAccountAnnualFeeData, error) {
	rows, err := s.chargeRepo.ChargesWithDue(ctx)
	if err != nil {
		return nil, fmt.Errorf("charges with due: %w", err)
	}
	return rows, nil
}

// ScanDueCharges runs the due and late-fee queries for every frequency bucket
// concurrently and aggregates the results for the scheduler job.
func (s *ChargeScheduleService) ScanDueCharges(ctx context.Context, asOf time.Time) (service_interfaces.DueChargeScanResult, error) {
	result := service_interfaces.DueChargeScanResult{
		AsOf:         asOf,
		DueByBucket:  make(map[domain.ChargeFrequency][]domain.SavingsIDOfChargeData),
		LateByBucket: make(map[domain.ChargeFrequency][]domain.SavingIDListData),
	}

	frequencies := []domain.ChargeFrequency{
		domain.ChargeFrequencyDaily,
		domain.ChargeFrequencyWeekly,
		domain.ChargeFrequencyMonthly,
		domain.ChargeFrequencyYearly,
	}

	var mu sync.Mutex
	group, groupCtx := errgroup.WithContext(ctx)
	for _, frequency := range frequencies {
		frequency := frequency
		group.Go(func() error {
			due, err := s.chargeRepo.SavingIDsWithDepositChargeDue(groupCtx, frequency)
			if err != nil {
				return fmt.Errorf("scan due charges (frequency %d): %w", frequency, err)
			}
			late, err := s.chargeRepo.SavingAccountsForDepositLateFee(groupCtx, frequency)
			if err != nil {
				return fmt.Errorf("scan late fees (frequency %d): %w", frequency, err)
			}

			mu.Lock()
			defer mu.Unlock()
			result.DueByBucket[frequency] = due
			result.LateByBucket[frequency] = late
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return service_interfaces.DueChargeScanResult{}, err
	}

	logger.Info("charge schedule service due charge scan completed", logger.Fields{
		"asOf":        asOf.Format("2006-01-02"),
		"dueBuckets":  len(result.DueByBucket),
		"lateBuckets": len(result.LateByBucket),
	})
	return result, nil
}
