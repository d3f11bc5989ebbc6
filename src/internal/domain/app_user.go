package domain

import "time"

// AppUser is the acting identity stamped onto transactions. Absence of a user
// is valid: batch and system-initiated transactions carry none.
type AppUser struct {
	ID                 string
	Username           string
	FirstName          string
	LastName           string
	TransactionPinHash string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
