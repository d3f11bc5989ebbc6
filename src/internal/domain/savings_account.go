package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type DepositAccountType string

const (
	DepositAccountSavings      DepositAccountType = "SAVINGS"
	DepositAccountRecurring    DepositAccountType = "RECURRING_DEPOSIT"
	DepositAccountFixedDeposit DepositAccountType = "FIXED_DEPOSIT"
)

type SavingsAccountStatus string

const (
	SavingsAccountStatusSubmitted SavingsAccountStatus = "SUBMITTED"
	SavingsAccountStatusActive    SavingsAccountStatus = "ACTIVE"
	SavingsAccountStatusClosed    SavingsAccountStatus = "CLOSED"
)

// AccountingBridgeData is the diff payload handed to the external ledger
// service after a balance-affecting operation: only transactions that were not
// journaled before the operation, plus transactions reversed since the last
// posting.
type AccountingBridgeData struct {
	AccountID            string
	Currency             string
	IsAccountTransfer    bool
	NewTransactions      []*SavingsAccountTransaction
	ReversedTransactions []*SavingsAccountTransaction
}

// SavingsAccount is the capability surface the transaction recorder and the
// guarantor release engine drive. One concrete variant exists per deposit
// product type.
type SavingsAccount interface {
	ID() string
	ClientID() string
	Currency() string
	DepositAccountType() DepositAccountType
	Status() SavingsAccountStatus
	AllowDeposit() bool
	AllowWithdrawal() bool
	IsReleaseGuarantor() bool

	Balance() decimal.Decimal
	OnHoldFunds() decimal.Decimal
	Summary() *AccountSummary
	Transactions() []*SavingsAccountTransaction

	Deposit(valueDate time.Time, amount decimal.Decimal, paymentDetail *PaymentDetail, user *AppUser) *SavingsAccountTransaction
	Withdraw(valueDate time.Time, amount decimal.Decimal, paymentDetail *PaymentDetail, user *AppUser, applyWithdrawFee bool) *SavingsAccountTransaction
	ValidateAccountBalanceDoesNotBecomeNegative(transactionAmount decimal.Decimal, isExceptionForBalanceCheck bool) error
	ReleaseFunds(amount decimal.Decimal)

	IsBeforeLastPostingPeriod(valueDate time.Time) bool
	PostInterest(today time.Time, isInterestTransfer bool, postingAtPeriodEnd bool, financialYearStartMonth int) decimal.Decimal
	CalculateInterestUsing(today time.Time, isInterestTransfer bool, postingAtPeriodEnd bool, financialYearStartMonth int) decimal.Decimal

	FindExistingTransactionIDs() []string
	FindExistingReversedTransactionIDs() []string
	DeriveAccountingBridgeData(existingTransactionIDs, existingReversedTransactionIDs []string, isAccountTransfer bool) AccountingBridgeData
}

// RegularSavingsAccountParams seeds a regular savings product aggregate,
// typically from a repository row.
type RegularSavingsAccountParams struct {
	ID                        string
	ClientID                  string
	AccountNo                 string
	Currency                  string
	Status                    SavingsAccountStatus
	DepositAllowed            bool
	WithdrawalAllowed         bool
	ReleaseGuarantor          bool
	NominalAnnualInterestRate decimal.Decimal
	WithdrawalFeeAmount       decimal.Decimal
	Balance                   decimal.Decimal
	OverdraftLimit            decimal.Decimal
	OnHoldFunds               decimal.Decimal
	ActivatedOn               time.Time
	LastInterestPostedOn      time.Time
	Transactions              []*SavingsAccountTransaction
}

// RegularSavingsAccount is the regular savings product variant. All state
// transitions happen in place; serialization of concurrent requests against
// the same account is the persistence layer's responsibility.
type RegularSavingsAccount struct {
	id                        string
	clientID                  string
	accountNo                 string
	currency                  string
	status                    SavingsAccountStatus
	depositAllowed            bool
	withdrawalAllowed         bool
	releaseGuarantor          bool
	nominalAnnualInterestRate decimal.Decimal
	withdrawalFeeAmount       decimal.Decimal
	balance                   decimal.Decimal
	overdraftLimit            decimal.Decimal
	onHoldFunds               decimal.Decimal
	activatedOn               time.Time
	lastInterestPostedOn      time.Time
	transactions              []*SavingsAccountTransaction
	summary                   *AccountSummary
}

func NewRegularSavingsAccount(params RegularSavingsAccountParams) *RegularSavingsAccount {
	account := &RegularSavingsAccount{
		id:                        params.ID,
		clientID:                  params.ClientID,
		accountNo:                 params.AccountNo,
		currency:                  params.Currency,
		status:                    params.Status,
		depositAllowed:            params.DepositAllowed,
		withdrawalAllowed:         params.WithdrawalAllowed,
		releaseGuarantor:          params.ReleaseGuarantor,
		nominalAnnualInterestRate: params.NominalAnnualInterestRate,
		withdrawalFeeAmount:       params.WithdrawalFeeAmount,
		balance:                   params.Balance,
		overdraftLimit:            params.OverdraftLimit,
		onHoldFunds:               params.OnHoldFunds,
		activatedOn:               params.ActivatedOn,
		lastInterestPostedOn:      params.LastInterestPostedOn,
		transactions:              params.Transactions,
		summary:                   &AccountSummary{Currency: params.Currency},
	}
	account.refreshSummary()
	return account
}

func (a *RegularSavingsAccount) ID() string                             { return a.id }
func (a *RegularSavingsAccount) ClientID() string                       { return a.clientID }
func (a *RegularSavingsAccount) AccountNo() string                      { return a.accountNo }
func (a *RegularSavingsAccount) Currency() string                       { return a.currency }
func (a *RegularSavingsAccount) DepositAccountType() DepositAccountType { return DepositAccountSavings }
func (a *RegularSavingsAccount) Status() SavingsAccountStatus           { return a.status }
func (a *RegularSavingsAccount) AllowDeposit() bool                     { return a.depositAllowed }
func (a *RegularSavingsAccount) AllowWithdrawal() bool                  { return a.withdrawalAllowed }
func (a *RegularSavingsAccount) IsReleaseGuarantor() bool               { return a.releaseGuarantor }
func (a *RegularSavingsAccount) Balance() decimal.Decimal               { return a.balance }
func (a *RegularSavingsAccount) OnHoldFunds() decimal.Decimal           { return a.onHoldFunds }
func (a *RegularSavingsAccount) OverdraftLimit() decimal.Decimal        { return a.overdraftLimit }
func (a *RegularSavingsAccount) Summary() *AccountSummary               { return a.summary }
func (a *RegularSavingsAccount) LastInterestPostedOn() time.Time        { return a.lastInterestPostedOn }

func (a *RegularSavingsAccount) Transactions() []*SavingsAccountTransaction {
	return a.transactions
}

func (a *RegularSavingsAccount) Deposit(valueDate time.Time, amount decimal.Decimal, paymentDetail *PaymentDetail, user *AppUser) *SavingsAccountTransaction {
	a.balance = a.balance.Add(amount)
	a.summary.TotalDeposits = a.summary.TotalDeposits.Add(amount)

	deposit := a.appendTransaction(SavingsTransactionDeposit, valueDate, amount, paymentDetail, user)
	a.refreshSummary()
	return deposit
}

func (a *RegularSavingsAccount) Withdraw(valueDate time.Time, amount decimal.Decimal, paymentDetail *PaymentDetail, user *AppUser, applyWithdrawFee bool) *SavingsAccountTransaction {
	a.balance = a.balance.Sub(amount)
	a.summary.TotalWithdrawals = a.summary.TotalWithdrawals.Add(amount)

	withdrawal := a.appendTransaction(SavingsTransactionWithdrawal, valueDate, amount, paymentDetail, user)

	if applyWithdrawFee && a.withdrawalFeeAmount.IsPositive() {
		a.balance = a.balance.Sub(a.withdrawalFeeAmount)
		a.summary.TotalWithdrawalFees = a.summary.TotalWithdrawalFees.Add(a.withdrawalFeeAmount)
		a.appendTransaction(SavingsTransactionWithdrawalFee, valueDate, a.withdrawalFeeAmount, nil, user)
	}

	a.refreshSummary()
	return withdrawal
}

// ValidateAccountBalanceDoesNotBecomeNegative enforces the balance invariant
// after a withdrawal has been applied. The caller-supplied exception flag
// suppresses the check for operations such as fee recovery on dormant
// accounts.
func (a *RegularSavingsAccount) ValidateAccountBalanceDoesNotBecomeNegative(transactionAmount decimal.Decimal, isExceptionForBalanceCheck bool) error {
	if isExceptionForBalanceCheck {
		return nil
	}
	if a.balance.IsNegative() {
		return &BalanceWouldGoNegativeError{AccountID: a.id, Balance: a.balance}
	}
	return nil
}

// ReleaseFunds lifts a hold placed as guarantor collateral, making the amount
// available again.
func (a *RegularSavingsAccount) ReleaseFunds(amount decimal.Decimal) {
	a.onHoldFunds = a.onHoldFunds.Sub(amount)
	a.refreshSummary()
}

// IsBeforeLastPostingPeriod reports whether a value date falls strictly inside
// an already-posted interest period, which forces a full recomputation rather
// than a preview.
func (a *RegularSavingsAccount) IsBeforeLastPostingPeriod(valueDate time.Time) bool {
	if a.lastInterestPostedOn.IsZero() {
		return false
	}
	return valueDate.Before(a.lastInterestPostedOn)
}

// PostInterest recomputes and commits interest up to today (or the current
// period end), moving the posting boundary and crediting the balance.
func (a *RegularSavingsAccount) PostInterest(today time.Time, _ bool, postingAtPeriodEnd bool, financialYearStartMonth int) decimal.Decimal {
	upTo := a.interestPostingUpTo(today, postingAtPeriodEnd, financialYearStartMonth)
	interest := a.accrueInterest(upTo)
	if interest.IsZero() {
		a.lastInterestPostedOn = upTo
		return interest
	}

	a.balance = a.balance.Add(interest)
	a.summary.TotalInterestPosted = a.summary.TotalInterestPosted.Add(interest)
	a.summary.TotalInterestEarned = a.summary.TotalInterestEarned.Add(interest)
	a.lastInterestPostedOn = upTo

	a.appendTransaction(SavingsTransactionInterestPosting, upTo, interest, nil, nil)
	a.refreshSummary()
	return interest
}

// CalculateInterestUsing previews interest with the same parameters as
// PostInterest but commits nothing.
func (a *RegularSavingsAccount) CalculateInterestUsing(today time.Time, _ bool, postingAtPeriodEnd bool, financialYearStartMonth int) decimal.Decimal {
	upTo := a.interestPostingUpTo(today, postingAtPeriodEnd, financialYearStartMonth)
	return a.accrueInterest(upTo)
}

func (a *RegularSavingsAccount) FindExistingTransactionIDs() []string {
	ids := make([]string, 0, len(a.transactions))
	for _, transaction := range a.transactions {
		if transaction.ID != "" && !transaction.Reversed {
			ids = append(ids, transaction.ID)
		}
	}
	return ids
}

func (a *RegularSavingsAccount) FindExistingReversedTransactionIDs() []string {
	ids := make([]string, 0)
	for _, transaction := range a.transactions {
		if transaction.ID != "" && transaction.Reversed {
			ids = append(ids, transaction.ID)
		}
	}
	return ids
}

func (a *RegularSavingsAccount) DeriveAccountingBridgeData(existingTransactionIDs, existingReversedTransactionIDs []string, isAccountTransfer bool) AccountingBridgeData {
	existing := toIDSet(existingTransactionIDs)
	existingReversed := toIDSet(existingReversedTransactionIDs)

	bridge := AccountingBridgeData{
		AccountID:         a.id,
		Currency:          a.currency,
		IsAccountTransfer: isAccountTransfer,
	}
	for _, transaction := range a.transactions {
		if _, journaled := existing[transaction.ID]; !journaled && !transaction.Reversed {
			bridge.NewTransactions = append(bridge.NewTransactions, transaction)
			continue
		}
		if _, alreadyReversed := existingReversed[transaction.ID]; transaction.Reversed && !alreadyReversed {
			bridge.ReversedTransactions = append(bridge.ReversedTransactions, transaction)
		}
	}
	return bridge
}

func (a *RegularSavingsAccount) appendTransaction(transactionType SavingsTransactionType, valueDate time.Time, amount decimal.Decimal, paymentDetail *PaymentDetail, user *AppUser) *SavingsAccountTransaction {
	var userID *string
	if user != nil {
		id := user.ID
		userID = &id
	}
	transaction := &SavingsAccountTransaction{
		AccountID:      a.id,
		Type:           transactionType,
		ValueDate:      valueDate,
		Amount:         amount,
		RunningBalance: a.balance,
		PaymentDetail:  paymentDetail,
		AppUserID:      userID,
		CreatedAt:      time.Now().UTC(),
	}
	a.transactions = append(a.transactions, transaction)
	return transaction
}

// interestPostingUpTo resolves the date interest is accrued to. Without
// posting at period end it is simply today; with it, the boundary snaps to the
// end of the current monthly posting period. The financial year start month
// only shifts period boundaries for annually-posting products, which the
// regular savings variant is not.
func (a *RegularSavingsAccount) interestPostingUpTo(today time.Time, postingAtPeriodEnd bool, _ int) time.Time {
	if !postingAtPeriodEnd {
		return today
	}
	year, month, _ := today.Date()
	firstOfNext := time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC)
	return firstOfNext.AddDate(0, 0, -1)
}

// accrueInterest computes simple daily interest on the running balance from
// the last posting boundary (or activation) up to the given date.
func (a *RegularSavingsAccount) accrueInterest(upTo time.Time) decimal.Decimal {
	from := a.lastInterestPostedOn
	if from.IsZero() {
		from = a.activatedOn
	}
	if from.IsZero() || !upTo.After(from) {
		return decimal.Zero
	}
	if !a.nominalAnnualInterestRate.IsPositive() || !a.balance.IsPositive() {
		return decimal.Zero
	}

	days := decimal.NewFromInt(int64(upTo.Sub(from).Hours() / 24))
	if !days.IsPositive() {
		return decimal.Zero
	}

	yearly := a.balance.Mul(a.nominalAnnualInterestRate).DivRound(decimal.NewFromInt(100), divisionScale)
	return yearly.Mul(days).DivRound(decimal.NewFromInt(365), divisionScale).RoundBank(MoneyScale)
}

func (a *RegularSavingsAccount) refreshSummary() {
	overdraft := a.overdraftLimit
	onHold := a.onHoldFunds
	a.summary.ComputeAvailableFunds(a.balance, &overdraft, &onHold)
}

func toIDSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
