package services

import (
	"context"
	"fmt"

	"github.com/api-sage/savings-account-processor/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/savings-account-processor/src/internal/domain"
	"github.com/api-sage/savings-account-processor/src/internal/logger"
	"github.com/shopspring/decimal"
)

// GuarantorReleaseService releases held guarantor collateral proportionally
// across a loan's active funding records when the borrower deposits.
type GuarantorReleaseService struct {
	guarantorRepo repo_interfaces.GuarantorRepository
	fundingRepo   repo_interfaces.GuarantorFundingRepository
	onHoldRepo    repo_interfaces.OnHoldTransactionRepository
}

func NewGuarantorReleaseService(
	guarantorRepo repo_interfaces.GuarantorRepository,
	fundingRepo repo_interfaces.GuarantorFundingRepository,
	onHoldRepo repo_interfaces.OnHoldTransactionRepository,
) *GuarantorReleaseService {
	return &GuarantorReleaseService{
		guarantorRepo: guarantorRepo,
		fundingRepo:   fundingRepo,
		onHoldRepo:    onHoldRepo,
	}
}

// ReleaseOnDeposit distributes the deposit amount across the loan's active
// external guarantors first, in proportion to each amountRemaining, then lets
// any residual flow into the borrower's self-guarantee pool. Every qualifying
// deposit also tops up each self-guarantee record by the full deposit amount,
// whether or not a release happened. An absent (null) amount skips everything.
func (s *GuarantorReleaseService) ReleaseOnDeposit(
	ctx context.Context,
	loanID string,
	deposit *domain.SavingsAccountTransaction,
	transactionAmount decimal.NullDecimal,
) error {
	guarantors, err := s.guarantorRepo.GuarantorsForLoan(ctx, loanID)
	if err != nil {
		return fmt.Errorf("load guarantors for loan %s: %w", loanID, err)
	}

	var externalList []*domain.GuarantorFundingDetails
	var selfList []*domain.GuarantorFundingDetails
	guarantorGuarantee := decimal.Zero
	selfGuarantee := decimal.Zero

	for _, guarantor := range guarantors {
		for _, fundingDetails := range guarantor.FundingDetails {
			if !fundingDetails.IsActive() {
				continue
			}
			if guarantor.IsSelfGuarantee() {
				selfList = append(selfList, fundingDetails)
				selfGuarantee = selfGuarantee.Add(fundingDetails.AmountRemaining)
			} else if guarantor.IsExistingCustomer() {
				externalList = append(externalList, fundingDetails)
				guarantorGuarantee = guarantorGuarantee.Add(fundingDetails.AmountRemaining)
			}
		}
	}

	if !transactionAmount.Valid {
		return nil
	}
	amount := transactionAmount.Decimal

	var onHoldTransactions []*domain.DepositAccountOnHoldTransaction
	amountLeft := s.releaseFunds(externalList, guarantorGuarantee, amount, deposit, &onHoldTransactions)
	if amountLeft.IsPositive() {
		s.releaseFunds(selfList, selfGuarantee, amountLeft, deposit, &onHoldTransactions)
	}

	// Self-pledged savings grow by the full deposit on every qualifying
	// deposit, independent of the release math above.
	for _, fundingDetails := range selfList {
		fundingDetails.AddSelfGuaranteeAmount(amount)
	}

	// Every active funding detail was mutated: external ones by the release,
	// self ones at least by the top-up. Persist them all.
	touched := make([]*domain.GuarantorFundingDetails, 0, len(externalList)+len(selfList))
	touched = append(touched, externalList...)
	touched = append(touched, selfList...)
	if len(touched) == 0 {
		return nil
	}

	if err := s.onHoldRepo.SaveAll(ctx, onHoldTransactions); err != nil {
		return fmt.Errorf("save on-hold release transactions: %w", err)
	}
	if err := s.fundingRepo.SaveAll(ctx, touched); err != nil {
		return fmt.Errorf("save guarantor funding details: %w", err)
	}

	logger.Info("guarantor release service released funds", logger.Fields{
		"loanId":        loanID,
		"depositAmount": amount.StringFixed(domain.MoneyScale),
		"released":      amount.Sub(amountLeft).StringFixed(domain.MoneyScale),
		"fundingCount":  len(touched),
		"onHoldCount":   len(onHoldTransactions),
	})
	return nil
}

// releaseFunds walks one guarantee pool, releasing each record's proportional
// half-even share of amountForRelease, clamped to its amountRemaining, and
// returns what is left undistributed. A zero pool total means there is
// nothing to release; it is never a division fault.
func (s *GuarantorReleaseService) releaseFunds(
	guarantorList []*domain.GuarantorFundingDetails,
	totalGuaranteeAmount decimal.Decimal,
	amountForRelease decimal.Decimal,
	deposit *domain.SavingsAccountTransaction,
	onHoldTransactions *[]*domain.DepositAccountOnHoldTransaction,
) decimal.Decimal {
	amountLeft := amountForRelease
	if totalGuaranteeAmount.IsZero() || amountForRelease.IsZero() {
		return amountLeft
	}

	for _, fundingDetails := range guarantorList {
		guarantorAmount := domain.ProportionalShare(amountForRelease, fundingDetails.AmountRemaining, totalGuaranteeAmount)
		if fundingDetails.AmountRemaining.LessThanOrEqual(guarantorAmount) {
			guarantorAmount = fundingDetails.AmountRemaining
		}

		fundingDetails.ReleaseFunds(guarantorAmount)

		linkedAccount := fundingDetails.LinkedAccount
		linkedAccount.ReleaseFunds(guarantorAmount)

		onHoldTransaction := domain.NewOnHoldRelease(linkedAccount, guarantorAmount, deposit.ValueDate)
		*onHoldTransactions = append(*onHoldTransactions, onHoldTransaction)

		fundingDetails.AddFundingTransaction(&domain.GuarantorFundingTransaction{
			FundingDetailsID:  fundingDetails.ID,
			OnHoldTransaction: onHoldTransaction,
		})

		amountLeft = amountLeft.Sub(guarantorAmount)
	}
	return amountLeft
}
