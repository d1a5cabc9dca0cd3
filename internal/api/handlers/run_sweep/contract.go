package run_sweep

import (
	"context"

	sweepReservations "github.com/m04kA/SMC-SalonService/internal/usecase/sweep_reservations"
)

type SweepUseCase interface {
	Execute(ctx context.Context) (*sweepReservations.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
