package sweep_reservations

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type noopLogger struct{}

func (l *noopLogger) Info(format string, v ...interface{})  {}
func (l *noopLogger) Warn(format string, v ...interface{})  {}
func (l *noopLogger) Error(format string, v ...interface{}) {}

// fakeTxManager выполняет функцию без настоящей транзакции
type fakeTxManager struct {
	calls int
}

func (m *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type mockReservationRepo struct {
	confirmed    []*domain.Reservation
	getErr       error
	completeErr  error
	completedIDs []int64
	// notConfirmed моделирует конкурентную смену статуса до CAS
	notConfirmed map[int64]bool
}

func (m *mockReservationRepo) GetAllConfirmed(ctx context.Context) ([]*domain.Reservation, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.confirmed, nil
}

func (m *mockReservationRepo) CompleteIfConfirmed(ctx context.Context, id int64) (bool, error) {
	if m.completeErr != nil {
		return false, m.completeErr
	}
	if m.notConfirmed[id] {
		return false, nil
	}
	m.completedIDs = append(m.completedIDs, id)
	return true, nil
}

func jst(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	return loc
}

func confirmedAt(id int64, loc *time.Location, date time.Time, start string, duration int) *domain.Reservation {
	return &domain.Reservation{
		ID:              id,
		TenantID:        1,
		Date:            date,
		StartTime:       types.TimeString(start),
		DurationMinutes: duration,
		Status:          domain.StatusConfirmed,
	}
}

func newSweepUseCase(repo *mockReservationRepo, tx *fakeTxManager, loc *time.Location, now time.Time) *UseCase {
	uc := NewUseCase(repo, tx, loc, &noopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

func TestExecute_CompletesPastReservations(t *testing.T) {
	loc := jst(t)
	date := time.Date(2026, 3, 16, 0, 0, 0, 0, loc)
	now := time.Date(2026, 3, 16, 15, 0, 0, 0, loc)

	repo := &mockReservationRepo{
		confirmed: []*domain.Reservation{
			confirmedAt(1, loc, date, "10:00", 60), // закончилось в 11:00
			confirmedAt(2, loc, date, "14:30", 60), // идет до 15:30
		},
	}
	tx := &fakeTxManager{}
	uc := newSweepUseCase(repo, tx, loc, now)

	resp, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, resp.CheckedCount)
	assert.Equal(t, 1, resp.CompletedCount)
	assert.Equal(t, []int64{1}, resp.CompletedIDs)
	assert.Equal(t, 1, tx.calls)
}

func TestExecute_EndExactlyNowIsCompleted(t *testing.T) {
	loc := jst(t)
	date := time.Date(2026, 3, 16, 0, 0, 0, 0, loc)
	// 14:00 + 60 минут = ровно 15:00
	now := time.Date(2026, 3, 16, 15, 0, 0, 0, loc)

	repo := &mockReservationRepo{
		confirmed: []*domain.Reservation{
			confirmedAt(1, loc, date, "14:00", 60),
		},
	}
	uc := newSweepUseCase(repo, &fakeTxManager{}, loc, now)

	resp, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, resp.CompletedCount)
}

func TestExecute_SkipsConcurrentlyChangedRows(t *testing.T) {
	loc := jst(t)
	date := time.Date(2026, 3, 16, 0, 0, 0, 0, loc)
	now := time.Date(2026, 3, 16, 23, 0, 0, 0, loc)

	repo := &mockReservationRepo{
		confirmed: []*domain.Reservation{
			confirmedAt(1, loc, date, "10:00", 60),
			confirmedAt(2, loc, date, "11:00", 60),
		},
		notConfirmed: map[int64]bool{1: true},
	}
	uc := newSweepUseCase(repo, &fakeTxManager{}, loc, now)

	resp, err := uc.Execute(context.Background())
	require.NoError(t, err)

	// Строка 1 сменила статус между выборкой и CAS, пропущена без ошибки
	assert.Equal(t, 2, resp.CheckedCount)
	assert.Equal(t, 1, resp.CompletedCount)
	assert.Equal(t, []int64{2}, resp.CompletedIDs)
}

func TestExecute_SecondPassIsNoop(t *testing.T) {
	loc := jst(t)
	now := time.Date(2026, 3, 16, 23, 0, 0, 0, loc)

	repo := &mockReservationRepo{}
	uc := newSweepUseCase(repo, &fakeTxManager{}, loc, now)

	resp, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, resp.CheckedCount)
	assert.Equal(t, 0, resp.CompletedCount)
	assert.Empty(t, resp.CompletedIDs)
}

func TestExecute_RepositoryErrorAbortsPass(t *testing.T) {
	loc := jst(t)
	now := time.Date(2026, 3, 16, 23, 0, 0, 0, loc)

	repo := &mockReservationRepo{getErr: errors.New("connection lost")}
	uc := newSweepUseCase(repo, &fakeTxManager{}, loc, now)

	_, err := uc.Execute(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_CompleteErrorAbortsPass(t *testing.T) {
	loc := jst(t)
	date := time.Date(2026, 3, 16, 0, 0, 0, 0, loc)
	now := time.Date(2026, 3, 16, 23, 0, 0, 0, loc)

	repo := &mockReservationRepo{
		confirmed: []*domain.Reservation{
			confirmedAt(1, loc, date, "10:00", 60),
		},
		completeErr: errors.New("deadlock"),
	}
	uc := newSweepUseCase(repo, &fakeTxManager{}, loc, now)

	_, err := uc.Execute(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
}
