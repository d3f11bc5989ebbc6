package domain

import "time"

// ChargeFrequency is the bucket a recurring charge schedule is computed over.
type ChargeFrequency int

const (
	ChargeFrequencyDaily   ChargeFrequency = 0
	ChargeFrequencyWeekly  ChargeFrequency = 1
	ChargeFrequencyMonthly ChargeFrequency = 2
	ChargeFrequencyYearly  ChargeFrequency = 3
)

func (f ChargeFrequency) Valid() bool {
	return f >= ChargeFrequencyDaily && f <= ChargeFrequencyYearly
}

// SavingIDListData identifies a savings account picked up by a recurring
// charge scan, together with the period anchor dates the scan was keyed on.
type SavingIDListData struct {
	SavingID           string
	PeriodDate         *time.Time
	StartFeeChargeDate *time.Time
}

// SavingsIDOfChargeData is the minimal projection of the due-charge queries:
// an account id, or a bare due date for the max-due-date lookup.
type SavingsIDOfChargeData struct {
	SavingID string
	DueDate  *time.Time
}

// SavingsAccountAnnualFeeData is one row of the annual-fee / charge-due
// reporting queries.
type SavingsAccountAnnualFeeData struct {
	ID        string
	AccountID string
	AccountNo string
	DueDate   time.Time
}
