// Package security carries the request-scoped identity and tenant clock that
// domain services stamp onto transactions. Both travel on the context rather
// than through ambient globals, and both may legitimately be absent.
package security

import (
	"context"
	"time"

	"github.com/api-sage/savings-account-processor/src/internal/domain"
)

type contextKey string

const (
	appUserKey    contextKey = "appUser"
	tenantDateKey contextKey = "tenantDate"
)

// WithAppUser returns a context stamped with the authenticated user.
func WithAppUser(ctx context.Context, user *domain.AppUser) context.Context {
	return context.WithValue(ctx, appUserKey, user)
}

// AppUserIfPresent returns the acting user, if any. Absence is valid:
// system-initiated transactions carry no user.
func AppUserIfPresent(ctx context.Context) (*domain.AppUser, bool) {
	user, ok := ctx.Value(appUserKey).(*domain.AppUser)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}

// WithTenantDate fixes the business date for the request, normalized to
// midnight UTC.
func WithTenantDate(ctx context.Context, date time.Time) context.Context {
	return context.WithValue(ctx, tenantDateKey, truncateToDate(date))
}

// TenantDate returns the request's business date, defaulting to today in UTC
// when none was set.
func TenantDate(ctx context.Context) time.Time {
	if date, ok := ctx.Value(tenantDateKey).(time.Time); ok {
		return date
	}
	return truncateToDate(time.Now().UTC())
}

func truncateToDate(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
