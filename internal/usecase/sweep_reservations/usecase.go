package sweep_reservations

import (
	"context"
	"fmt"
	"time"
)

// UseCase use case для автоматического завершения бронирований.
// Подтвержденное бронирование, чье расчетное время окончания уже наступило,
// переводится в completed. Отмены не трогаются, повторный запуск без
// изменений состояния завершает ноль бронирований.
type UseCase struct {
	reservationRepo ReservationRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	location        *time.Location
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	txManager TransactionManager,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		location:        location,
		logger:          logger,
	}
}

// Execute выполняет один проход свипера.
// Весь проход идет в одной транзакции: либо завершаются все просроченные
// бронирования, либо ни одного. Перевод каждой строки выполняется через
// compare-and-set по статусу, конкурентная отмена не будет перезаписана.
func (uc *UseCase) Execute(ctx context.Context) (*Response, error) {
	now := uc.timeProvider.Now().In(uc.location)

	resp := &Response{}

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		confirmed, err := uc.reservationRepo.GetAllConfirmed(txCtx)
		if err != nil {
			uc.logger.Error("SweepReservations: failed to get confirmed reservations: %v", err)
			return fmt.Errorf("%w: failed to get confirmed reservations: %v", ErrInternal, err)
		}

		resp.CheckedCount = len(confirmed)

		for _, res := range confirmed {
			endsAt, err := res.EndsAt(uc.location)
			if err != nil {
				uc.logger.Warn("SweepReservations: cannot compute end time for reservation id=%d: %v", res.ID, err)
				continue
			}

			// Окончание ровно в "сейчас" уже считается прошедшим
			if endsAt.After(now) {
				continue
			}

			completed, err := uc.reservationRepo.CompleteIfConfirmed(txCtx, res.ID)
			if err != nil {
				uc.logger.Error("SweepReservations: failed to complete reservation id=%d: %v", res.ID, err)
				return fmt.Errorf("%w: failed to complete reservation id=%d: %v", ErrInternal, res.ID, err)
			}
			if !completed {
				// Статус изменился между выборкой и обновлением
				uc.logger.Warn("SweepReservations: reservation id=%d no longer confirmed, skipped", res.ID)
				continue
			}

			resp.CompletedCount++
			resp.CompletedIDs = append(resp.CompletedIDs, res.ID)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	if resp.CompletedCount > 0 {
		uc.logger.Info("SweepReservations: completed %d of %d confirmed reservations",
			resp.CompletedCount, resp.CheckedCount)
	}

	return resp, nil
}
