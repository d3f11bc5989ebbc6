package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type GuarantorType string

const (
	GuarantorTypeSelf             GuarantorType = "SELF"
	GuarantorTypeExistingCustomer GuarantorType = "EXISTING_CUSTOMER"
	GuarantorTypeExternal         GuarantorType = "EXTERNAL"
)

type GuarantorFundingStatus string

const (
	GuarantorFundingStatusActive    GuarantorFundingStatus = "ACTIVE"
	GuarantorFundingStatusWithdrawn GuarantorFundingStatus = "WITHDRAWN"
	GuarantorFundingStatusCompleted GuarantorFundingStatus = "COMPLETED"
)

// Guarantor is a party guaranteeing a loan, with one funding detail per
// pledged savings account.
type Guarantor struct {
	ID             string
	LoanID         string
	ClientID       string
	Type           GuarantorType
	FundingDetails []*GuarantorFundingDetails
}

func (g *Guarantor) IsSelfGuarantee() bool {
	return g.Type == GuarantorTypeSelf
}

func (g *Guarantor) IsExistingCustomer() bool {
	return g.Type == GuarantorTypeExistingCustomer
}

// GuarantorFundingDetails tracks one guarantor's committed collateral against
// a loan: how much is still held, the savings account holding it, and the
// append-only audit trail of release movements.
type GuarantorFundingDetails struct {
	ID                  string
	GuarantorID         string
	Status              GuarantorFundingStatus
	AmountCommitted     decimal.Decimal
	AmountRemaining     decimal.Decimal
	SelfGuaranteeAmount decimal.Decimal
	LinkedAccount       SavingsAccount
	FundingTransactions []*GuarantorFundingTransaction
}

func (d *GuarantorFundingDetails) IsActive() bool {
	return d.Status == GuarantorFundingStatusActive
}

// ReleaseFunds reduces the held amount by a released share. A fully released
// commitment is marked completed.
func (d *GuarantorFundingDetails) ReleaseFunds(amount decimal.Decimal) {
	d.AmountRemaining = d.AmountRemaining.Sub(amount)
	if d.AmountRemaining.IsZero() {
		d.Status = GuarantorFundingStatusCompleted
	}
}

// AddSelfGuaranteeAmount tops up the borrower's own pledged savings. This runs
// on every qualifying deposit independent of the release math.
func (d *GuarantorFundingDetails) AddSelfGuaranteeAmount(amount decimal.Decimal) {
	d.SelfGuaranteeAmount = d.SelfGuaranteeAmount.Add(amount)
}

func (d *GuarantorFundingDetails) AddFundingTransaction(transaction *GuarantorFundingTransaction) {
	d.FundingTransactions = append(d.FundingTransactions, transaction)
}

// DepositAccountOnHoldTransaction is an immutable record of one hold-release
// event against a savings account.
type DepositAccountOnHoldTransaction struct {
	ID               string
	SavingsAccountID string
	Amount           decimal.Decimal
	Type             OnHoldTransactionType
	Date             time.Time
	CreatedAt        time.Time
}

type OnHoldTransactionType string

const (
	OnHoldTransactionHold    OnHoldTransactionType = "HOLD"
	OnHoldTransactionRelease OnHoldTransactionType = "RELEASE"
)

// NewOnHoldRelease records the release of held funds on the linked savings
// account as of the triggering transaction's value date.
func NewOnHoldRelease(account SavingsAccount, amount decimal.Decimal, date time.Time) *DepositAccountOnHoldTransaction {
	return &DepositAccountOnHoldTransaction{
		SavingsAccountID: account.ID(),
		Amount:           amount,
		Type:             OnHoldTransactionRelease,
		Date:             date,
		CreatedAt:        time.Now().UTC(),
	}
}

// GuarantorFundingTransaction links a funding detail to the hold-release event
// that moved its money; append-only.
type GuarantorFundingTransaction struct {
	ID                string
	FundingDetailsID  string
	OnHoldTransaction *DepositAccountOnHoldTransaction
	CreatedAt         time.Time
}
