package mark_viewed

import (
	"context"
)

type ReservationService interface {
	MarkViewed(ctx context.Context, reservationID int64, tenantID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
