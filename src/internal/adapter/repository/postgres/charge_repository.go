package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/api-sage/savings-account-processor/src/internal/domain"
)

// Charge time buckets mirrored from the charge configuration.
const (
	chargeTimeAnnualFee   = 6
	chargeTimeDepositFee  = 12
	depositTransactionFee = 1
)

// ChargeRepository serves the recurring charge reporting queries. All
// frequency-bucket SQL is parameterized; the bucket is expressed as a
// date_trunc unit so the "most recent date falls within the current period"
// contract holds for every frequency.
type ChargeRepository struct {
	db *sql.DB
}

func NewChargeRepository(db *sql.DB) *ChargeRepository {
	return &ChargeRepository{db: db}
}

func truncUnit(frequency domain.ChargeFrequency) (string, error) {
	switch frequency {
	case domain.ChargeFrequencyDaily:
		return "day", nil
	case domain.ChargeFrequencyWeekly:
		return "week", nil
	case domain.ChargeFrequencyMonthly:
		return "month", nil
	case domain.ChargeFrequencyYearly:
		return "year", nil
	default:
		return "", fmt.Errorf("unknown charge frequency %d", frequency)
	}
}

func (r *ChargeRepository) MaxChargeDueDate(ctx context.Context, savingID string) (time.Time, error) {
	const query = `
SELECT max(sc.charge_due_date)
FROM m_savings_account_charge sc
WHERE sc.charge_time_enum = $1 AND sc.savings_account_id = $2`

	var dueDate sql.NullTime
	if err := conn(ctx, r.db).QueryRowContext(ctx, query, chargeTimeDepositFee, savingID).Scan(&dueDate); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, fmt.Errorf("max charge due date for account %s: %w", savingID, domain.ErrRecordNotFound)
		}
		return time.Time{}, fmt.Errorf("max charge due date: %w", err)
	}
	if !dueDate.Valid {
		return time.Time{}, fmt.Errorf("max charge due date for account %s: %w", savingID, domain.ErrRecordNotFound)
	}
	return dueDate.Time, nil
}

func (r *ChargeRepository) SavingIDsWithDepositChargeDue(ctx context.Context, frequency domain.ChargeFrequency) ([]domain.SavingsIDOfChargeData, error) {
	unit, err := truncUnit(frequency)
	if err != nil {
		return nil, err
	}

	const query = `
SELECT a.saving_id
FROM (
	SELECT sc.savings_account_id AS saving_id, max(sc.charge_due_date) AS due_date
	FROM m_savings_account_charge sc
	WHERE sc.charge_time_enum = $1 AND sc.is_active = true
	GROUP BY sc.savings_account_id
) a
WHERE date_trunc($2, a.due_date) = date_trunc($2, now())`

	rows, err := conn(ctx, r.db).QueryContext(ctx, query, chargeTimeDepositFee, unit)
	if err != nil {
		return nil, fmt.Errorf("saving ids with deposit charge due: %w", err)
	}
	defer rows.Close()

	result := make([]domain.SavingsIDOfChargeData, 0)
	for rows.Next() {
		var row domain.SavingsIDOfChargeData
		if err := rows.Scan(&row.SavingID); err != nil {
			return nil, fmt.Errorf("scan saving id with deposit charge due: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate saving ids with deposit charge due: %w", err)
	}
	return result, nil
}

func (r *ChargeRepository) SavingAccountsForDepositLateFee(ctx context.Context, frequency domain.ChargeFrequency) ([]domain.SavingIDListData, error) {
	unit, err := truncUnit(frequency)
	if err != nil {
		return nil, err
	}

	const query = `
SELECT a.saving_id, a.last_deposit_date, a.start_fee_charge_date
FROM (
	SELECT sa.id AS saving_id,
		max(st.value_date) AS last_deposit_date,
		sa.start_deposit_late_fee_date AS start_fee_charge_date
	FROM m_savings_account sa
	JOIN m_savings_product_charge spc ON spc.savings_product_id = sa.product_id
	JOIN m_charge c ON c.id = spc.charge_id
	LEFT JOIN m_savings_account_transaction st
		ON st.savings_account_id = sa.id AND st.transaction_type_enum = $1
	WHERE c.charge_time_enum = $2 AND sa.status = 'ACTIVE'
	GROUP BY sa.id, sa.start_deposit_late_fee_date
) a
WHERE a.last_deposit_date IS NULL
	OR date_trunc($3, a.last_deposit_date) <> date_trunc($3, now())`

	rows, err := conn(ctx, r.db).QueryContext(ctx, query, depositTransactionFee, chargeTimeDepositFee, unit)
	if err != nil {
		return nil, fmt.Errorf("saving accounts for deposit late fee: %w", err)
	}
	defer rows.Close()

	return scanSavingIDList(rows)
}

func (r *ChargeRepository) SavingAccountsForDepositLateCharge(ctx context.Context) ([]domain.SavingIDListData, error) {
	const query = `
SELECT sa.id, sa.activated_on_date, sa.start_deposit_late_fee_date
FROM m_savings_account sa
JOIN m_savings_product_charge spc ON spc.savings_product_id = sa.product_id
JOIN m_charge c ON c.id = spc.charge_id
WHERE c.charge_time_enum = $1 AND sa.status = 'ACTIVE'`

	rows, err := conn(ctx, r.db).QueryContext(ctx, query, chargeTimeDepositFee)
	if err != nil {
		return nil, fmt.Errorf("saving accounts for deposit late charge: %w", err)
	}
	defer rows.Close()

	return scanSavingIDList(rows)
}

func (r *ChargeRepository) ChargesWithAnnualFeeDue(ctx context.Context) ([]domain.SavingsAccountAnnualFeeData, error) {
	const query = `
SELECT sac.id, sa.id, sa.account_no, sac.charge_due_date
FROM m_savings_account_charge sac
JOIN m_savings_account sa ON sac.savings_account_id = sa.id
WHERE sac.charge_due_date IS NOT NULL
	AND sac.charge_time_enum = $1
	AND sac.charge_due_date <= now()
	AND sa.status = 'ACTIVE'`

	rows, err := conn(ctx, r.db).QueryContext(ctx, query, chargeTimeAnnualFee)
	if err != nil {
		return nil, fmt.Errorf("charges with annual fee due: %w", err)
	}
	defer rows.Close()

	return scanAnnualFeeData(rows)
}

func (r *ChargeRepository) ChargesWithDue(ctx context.Context) ([]domain.SavingsAccountAnnualFeeData, error) {
	const query = `
SELECT sac.id, sa.id, sa.account_no, sac.charge_due_date
FROM m_savings_account_charge sac
JOIN m_savings_account sa ON sac.savings_account_id = sa.id
WHERE sac.charge_due_date IS NOT NULL
	AND sac.charge_due_date <= now()
	AND sac.is_waived = false
	AND sac.is_paid = false
	AND sac.is_active = true
	AND sa.status = 'ACTIVE'
ORDER BY sac.charge_due_date`

	rows, err := conn(ctx, r.db).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("charges with due: %w", err)
	}
	defer rows.Close()

	return scanAnnualFeeData(rows)
}

func scanSavingIDList(rows *sql.Rows) ([]domain.SavingIDListData, error) {
	result := make([]domain.SavingIDListData, 0)
	for rows.Next() {
		var (
			row        domain.SavingIDListData
			periodDate sql.NullTime
			startDate  sql.NullTime
		)
		if err := rows.Scan(&row.SavingID, &periodDate, &startDate); err != nil {
			return nil, fmt.Errorf("scan saving id list row: %w", err)
		}
		if periodDate.Valid {
			row.PeriodDate = &periodDate.Time
		}
		if startDate.Valid {
			row.StartFeeChargeDate = &startDate.Time
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate saving id list rows: %w", err)
	}
	return result, nil
}

func scanAnnualFeeData(rows *sql.Rows) ([]domain.SavingsAccountAnnualFeeData, error) {
	result := make([]domain.SavingsAccountAnnualFeeData, 0)
	for rows.Next() {
		var row domain.SavingsAccountAnnualFeeData
		if err := rows.Scan(&row.ID, &row.AccountID, &row.AccountNo, &row.DueDate); err != nil {
			return nil, fmt.Errorf("scan charge due row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate charge due rows: %w", err)
	}
	return result, nil
}
