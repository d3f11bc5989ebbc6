package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var ErrRecordNotFound = errors.New("Record not found")
var ErrInsufficientBalance = errors.New("Insufficient balance")
var ErrSavingsAccountChargeNotFound = errors.New("Savings account charge not found")

// OperationNotAllowedError is raised when a regular deposit or withdrawal is
// attempted on an account whose product disables that operation.
type OperationNotAllowedError struct {
	AccountID string
	Action    string
	Product   DepositAccountType
}

func (e *OperationNotAllowedError) Error() string {
	return fmt.Sprintf("%s is not allowed on %s account %s", e.Action, e.Product, e.AccountID)
}

// BalanceWouldGoNegativeError is raised by the balance invariant check unless
// the caller suppressed it for the operation.
type BalanceWouldGoNegativeError struct {
	AccountID string
	Balance   decimal.Decimal
}

func (e *BalanceWouldGoNegativeError) Error() string {
	return fmt.Sprintf("transaction would leave account %s with negative balance %s", e.AccountID, e.Balance.StringFixed(MoneyScale))
}
