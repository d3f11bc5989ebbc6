package domain

import "github.com/shopspring/decimal"

// AccountSummary carries an account's cumulative totals together with the
// balance, overdraft and on-hold figures the available-funds computation
// depends on. OverdraftLimit and OnHoldFunds are optional on construction and
// treated as zero whenever available funds are recomputed.
type AccountSummary struct {
	Currency            string
	TotalDeposits       decimal.Decimal
	TotalWithdrawals    decimal.Decimal
	TotalWithdrawalFees decimal.Decimal
	TotalAnnualFees     decimal.Decimal
	TotalInterestEarned decimal.Decimal
	TotalInterestPosted decimal.Decimal
	TotalFeeCharge      decimal.Decimal
	TotalPenaltyCharge  decimal.Decimal
	AccountBalance      decimal.Decimal
	OverdraftLimit      *decimal.Decimal
	OnHoldFunds         *decimal.Decimal
	AvailableFunds      decimal.Decimal
}

// NewAccountSummary builds the full reporting view of an account's aggregate
// totals. Overdraft and on-hold figures are unset until a real-time
// available-funds check supplies them.
func NewAccountSummary(
	currency string,
	totalDeposits decimal.Decimal,
	totalWithdrawals decimal.Decimal,
	totalWithdrawalFees decimal.Decimal,
	totalAnnualFees decimal.Decimal,
	totalInterestEarned decimal.Decimal,
	totalInterestPosted decimal.Decimal,
	accountBalance decimal.Decimal,
	totalFeeCharge decimal.Decimal,
	totalPenaltyCharge decimal.Decimal,
) *AccountSummary {
	return &AccountSummary{
		Currency:            currency,
		TotalDeposits:       totalDeposits,
		TotalWithdrawals:    totalWithdrawals,
		TotalWithdrawalFees: totalWithdrawalFees,
		TotalAnnualFees:     totalAnnualFees,
		TotalInterestEarned: totalInterestEarned,
		TotalInterestPosted: totalInterestPosted,
		AccountBalance:      accountBalance,
		TotalFeeCharge:      totalFeeCharge,
		TotalPenaltyCharge:  totalPenaltyCharge,
	}
}

// NewAccountSummaryForAvailableFunds builds the minimal summary used for a
// real-time available-funds check, computing the derived figure immediately.
func NewAccountSummaryForAvailableFunds(accountBalance decimal.Decimal, overdraftLimit, onHoldFunds *decimal.Decimal) *AccountSummary {
	summary := &AccountSummary{}
	summary.ComputeAvailableFunds(accountBalance, overdraftLimit, onHoldFunds)
	return summary
}

// ComputeAvailableFunds recomputes availableFunds = balance + overdraftLimit -
// onHoldFunds, treating absent overdraft and on-hold values as zero, and caches
// all four figures on the summary.
func (s *AccountSummary) ComputeAvailableFunds(accountBalance decimal.Decimal, overdraftLimit, onHoldFunds *decimal.Decimal) decimal.Decimal {
	overdraft := ZeroIfNil(overdraftLimit)
	onHold := ZeroIfNil(onHoldFunds)

	s.AccountBalance = accountBalance
	s.OverdraftLimit = &overdraft
	s.OnHoldFunds = &onHold
	s.AvailableFunds = accountBalance.Add(overdraft).Sub(onHold)

	return s.AvailableFunds
}
