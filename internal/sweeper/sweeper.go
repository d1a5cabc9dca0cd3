package sweeper

import (
	"context"
	"time"

	sweepReservations "github.com/m04kA/SMC-SalonService/internal/usecase/sweep_reservations"
	"github.com/m04kA/SMC-SalonService/pkg/metrics"
)

// SweepUseCase интерфейс use case автозавершения бронирований
type SweepUseCase interface {
	Execute(ctx context.Context) (*sweepReservations.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Sweeper периодически переводит завершившиеся подтвержденные
// бронирования в статус completed.
type Sweeper struct {
	useCase  SweepUseCase
	interval time.Duration
	metrics  *metrics.Metrics // nil, если метрики выключены
	logger   Logger
	done     chan struct{}
}

// New создает новый экземпляр свипера
func New(useCase SweepUseCase, interval time.Duration, m *metrics.Metrics, logger Logger) *Sweeper {
	return &Sweeper{
		useCase:  useCase,
		interval: interval,
		metrics:  m,
		logger:   logger,
		done:     make(chan struct{}),
	}
}

// Start запускает цикл свипера в отдельной горутине.
// Первый проход выполняется сразу, далее по тикеру.
func (s *Sweeper) Start(ctx context.Context) {
	go s.run(ctx)
}

func (s *Sweeper) run(ctx context.Context) {
	defer close(s.done)

	s.logger.Info("Sweeper: started, interval=%s", s.interval)
	s.runOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Sweeper: stopped")
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Sweeper) runOnce(ctx context.Context) {
	result, err := s.useCase.Execute(ctx)
	if err != nil {
		if s.metrics != nil {
			s.metrics.ObserveSweepRun("error")
		}
		s.logger.Error("Sweeper: sweep pass failed: %v", err)
		return
	}

	if s.metrics != nil {
		s.metrics.ObserveSweepRun("success")
		s.metrics.ObserveSweepCompleted("ticker", result.CompletedCount)
	}

	if result.CompletedCount > 0 {
		s.logger.Info("Sweeper: checked %d, completed %d reservations (ids=%v)",
			result.CheckedCount, result.CompletedCount, result.CompletedIDs)
	}
}

// Wait блокируется до завершения цикла свипера после отмены контекста
func (s *Sweeper) Wait() {
	<-s.done
}
