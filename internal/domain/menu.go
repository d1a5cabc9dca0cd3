package domain

import "time"

// Menu is a service offering of a tenant.
// Price and duration are copied into reservations at booking time;
// editing a menu never changes existing reservations.
type Menu struct {
	ID              int64
	TenantID        int64
	Name            string
	Price           int64 // yen, no minor units
	DurationMinutes int
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
