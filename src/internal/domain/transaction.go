package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type SavingsTransactionType int

const (
	SavingsTransactionDeposit         SavingsTransactionType = 1
	SavingsTransactionWithdrawal      SavingsTransactionType = 2
	SavingsTransactionInterestPosting SavingsTransactionType = 3
	SavingsTransactionWithdrawalFee   SavingsTransactionType = 4
)

// SavingsTransactionFlags mirrors the boolean switches a caller supplies with
// a money-movement request.
type SavingsTransactionFlags struct {
	IsRegularTransaction       bool
	IsAccountTransfer          bool
	IsApplyWithdrawFee         bool
	IsInterestTransfer         bool
	IsExceptionForBalanceCheck bool
}

// SavingsAccountTransaction is an immutable record of one deposit, withdrawal
// or interest posting. The ID is assigned at persistence time and the record
// is never mutated afterwards except for reversal marking.
type SavingsAccountTransaction struct {
	ID             string
	AccountID      string
	Type           SavingsTransactionType
	ValueDate      time.Time
	Amount         decimal.Decimal
	RunningBalance decimal.Decimal
	Reversed       bool
	PaymentDetail  *PaymentDetail
	AppUserID      *string
	CreatedAt      time.Time
}

func (t *SavingsAccountTransaction) IsDeposit() bool {
	return t.Type == SavingsTransactionDeposit
}

func (t *SavingsAccountTransaction) IsWithdrawal() bool {
	return t.Type == SavingsTransactionWithdrawal
}

func (t *SavingsAccountTransaction) IsReversed() bool {
	return t.Reversed
}
