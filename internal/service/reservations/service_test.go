package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-SalonService/internal/service/reservations/models"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
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

type mockReservationRepo struct {
	byID            map[int64]*domain.Reservation
	cancelErr       error
	cancelledID     int64
	cancelledReason string
	viewedID        int64
}

func (m *mockReservationRepo) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	if r, ok := m.byID[id]; ok {
		copied := *r
		return &copied, nil
	}
	return nil, reservationRepo.ErrReservationNotFound
}

func (m *mockReservationRepo) GetByCustomerID(ctx context.Context, customerID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	var result []*domain.Reservation
	for _, r := range m.byID {
		if r.CustomerID != customerID {
			continue
		}
		if status != nil && r.Status != *status {
			continue
		}
		result = append(result, r)
	}
	return result, nil
}

func (m *mockReservationRepo) GetByTenantWithFilter(ctx context.Context, filter domain.TenantReservationsFilter) ([]*domain.Reservation, error) {
	var result []*domain.Reservation
	for _, r := range m.byID {
		if r.TenantID == filter.TenantID {
			result = append(result, r)
		}
	}
	return result, nil
}

func (m *mockReservationRepo) Cancel(ctx context.Context, id int64, reason string) error {
	if m.cancelErr != nil {
		return m.cancelErr
	}
	m.cancelledID = id
	m.cancelledReason = reason
	return nil
}

func (m *mockReservationRepo) MarkViewed(ctx context.Context, id int64) error {
	m.viewedID = id
	return nil
}

func jst(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	return loc
}

func newService(t *testing.T, repo *mockReservationRepo, now time.Time) *Service {
	svc := NewService(repo, jst(t), &noopLogger{})
	svc.timeProvider = &fixedTimeProvider{now: now}
	return svc
}

func confirmedReservation(loc *time.Location) *domain.Reservation {
	return &domain.Reservation{
		ID:              50,
		TenantID:        1,
		CustomerID:      42,
		Date:            time.Date(2026, 3, 20, 0, 0, 0, 0, loc),
		StartTime:       "10:00",
		DurationMinutes: 60,
		Status:          domain.StatusConfirmed,
	}
}

func TestGetByID_OwnerOnly(t *testing.T) {
	loc := jst(t)
	repo := &mockReservationRepo{byID: map[int64]*domain.Reservation{50: confirmedReservation(loc)}}
	svc := newService(t, repo, time.Date(2026, 3, 16, 12, 0, 0, 0, loc))

	resp, err := svc.GetByID(context.Background(), 50, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(50), resp.ID)

	_, err = svc.GetByID(context.Background(), 50, 43)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetByID(context.Background(), 99, 42)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestCancel_CustomerBeforeDeadline(t *testing.T) {
	loc := jst(t)
	repo := &mockReservationRepo{byID: map[int64]*domain.Reservation{50: confirmedReservation(loc)}}
	// Визит 2026-03-20, клиентский дедлайн - конец дня 2026-03-19
	svc := newService(t, repo, time.Date(2026, 3, 19, 23, 0, 0, 0, loc))

	err := svc.Cancel(context.Background(), 50, &models.CancelReservationRequest{
		CustomerID:         ptr.Ptr(int64(42)),
		CancellationReason: "予定が変わりました",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(50), repo.cancelledID)
	assert.Equal(t, "予定が変わりました", repo.cancelledReason)
}

func TestCancel_CustomerAfterDeadline(t *testing.T) {
	loc := jst(t)
	repo := &mockReservationRepo{byID: map[int64]*domain.Reservation{50: confirmedReservation(loc)}}
	// День визита: клиенту отменять уже поздно
	svc := newService(t, repo, time.Date(2026, 3, 20, 8, 0, 0, 0, loc))

	err := svc.Cancel(context.Background(), 50, &models.CancelReservationRequest{
		CustomerID: ptr.Ptr(int64(42)),
	})
	assert.ErrorIs(t, err, ErrCancelDeadlinePassed)
}

func TestCancel_TenantHasNoDeadline(t *testing.T) {
	loc := jst(t)
	repo := &mockReservationRepo{byID: map[int64]*domain.Reservation{50: confirmedReservation(loc)}}
	// Отмена салоном в сам день визита проходит
	svc := newService(t, repo, time.Date(2026, 3, 20, 8, 0, 0, 0, loc))

	err := svc.Cancel(context.Background(), 50, &models.CancelReservationRequest{
		TenantID:           ptr.Ptr(int64(1)),
		CancellationReason: "スタッフ欠勤のため",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(50), repo.cancelledID)
}

func TestCancel_TenantMismatchForbidden(t *testing.T) {
	loc := jst(t)
	repo := &mockReservationRepo{byID: map[int64]*domain.Reservation{50: confirmedReservation(loc)}}
	svc := newService(t, repo, time.Date(2026, 3, 16, 12, 0, 0, 0, loc))

	err := svc.Cancel(context.Background(), 50, &models.CancelReservationRequest{
		TenantID: ptr.Ptr(int64(2)),
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancel_NonOwnerForbidden(t *testing.T) {
	loc := jst(t)
	repo := &mockReservationRepo{byID: map[int64]*domain.Reservation{50: confirmedReservation(loc)}}
	svc := newService(t, repo, time.Date(2026, 3, 16, 12, 0, 0, 0, loc))

	err := svc.Cancel(context.Background(), 50, &models.CancelReservationRequest{
		CustomerID: ptr.Ptr(int64(43)),
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancel_FinalStatusRejected(t *testing.T) {
	loc := jst(t)
	completed := confirmedReservation(loc)
	completed.Status = domain.StatusCompleted
	repo := &mockReservationRepo{byID: map[int64]*domain.Reservation{50: completed}}
	svc := newService(t, repo, time.Date(2026, 3, 16, 12, 0, 0, 0, loc))

	err := svc.Cancel(context.Background(), 50, &models.CancelReservationRequest{
		CustomerID: ptr.Ptr(int64(42)),
	})
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestCancel_ConcurrentStatusChange(t *testing.T) {
	loc := jst(t)
	repo := &mockReservationRepo{
		byID:      map[int64]*domain.Reservation{50: confirmedReservation(loc)},
		cancelErr: reservationRepo.ErrStatusChanged,
	}
	svc := newService(t, repo, time.Date(2026, 3, 16, 12, 0, 0, 0, loc))

	err := svc.Cancel(context.Background(), 50, &models.CancelReservationRequest{})
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestMarkViewed_TenantOwnership(t *testing.T) {
	loc := jst(t)
	repo := &mockReservationRepo{byID: map[int64]*domain.Reservation{50: confirmedReservation(loc)}}
	svc := newService(t, repo, time.Date(2026, 3, 16, 12, 0, 0, 0, loc))

	require.NoError(t, svc.MarkViewed(context.Background(), 50, 1))
	assert.Equal(t, int64(50), repo.viewedID)

	assert.ErrorIs(t, svc.MarkViewed(context.Background(), 50, 2), ErrAccessDenied)
	assert.ErrorIs(t, svc.MarkViewed(context.Background(), 99, 1), ErrReservationNotFound)
}

func TestGetCustomerReservations_StatusFilter(t *testing.T) {
	loc := jst(t)
	first := confirmedReservation(loc)
	second := confirmedReservation(loc)
	second.ID = 51
	second.Status = domain.StatusCompleted
	repo := &mockReservationRepo{byID: map[int64]*domain.Reservation{50: first, 51: second}}
	svc := newService(t, repo, time.Date(2026, 3, 16, 12, 0, 0, 0, loc))

	resp, err := svc.GetCustomerReservations(context.Background(), &models.GetCustomerReservationsRequest{
		CustomerID: 42,
		Status:     ptr.Ptr("completed"),
	})
	require.NoError(t, err)
	require.Len(t, resp.Reservations, 1)
	assert.Equal(t, int64(51), resp.Reservations[0].ID)

	_, err = svc.GetCustomerReservations(context.Background(), &models.GetCustomerReservationsRequest{
		CustomerID: 42,
		Status:     ptr.Ptr("pending"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
