package get_available_slots

import (
	"context"
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

type mockReservationRepo struct {
	existing []*domain.Reservation
}

func (m *mockReservationRepo) GetByTenantWithFilter(ctx context.Context, filter domain.TenantReservationsFilter) ([]*domain.Reservation, error) {
	return m.existing, nil
}

type mockTenantRepo struct {
	tenant *domain.Tenant
}

func (m *mockTenantRepo) GetByID(ctx context.Context, id int64) (*domain.Tenant, error) {
	return m.tenant, nil
}

type mockMenuRepo struct {
	menus []*domain.Menu
}

func (m *mockMenuRepo) GetActiveByIDs(ctx context.Context, tenantID int64, ids []int64) ([]*domain.Menu, error) {
	return m.menus, nil
}

type mockStaffRepo struct {
	staff *domain.Staff
}

func (m *mockStaffRepo) GetByID(ctx context.Context, tenantID, id int64) (*domain.Staff, error) {
	return m.staff, nil
}

func jst(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	return loc
}

type fixture struct {
	reservationRepo *mockReservationRepo
	tenantRepo      *mockTenantRepo
	menuRepo        *mockMenuRepo
	staffRepo       *mockStaffRepo
	uc              *UseCase
}

func newFixture(t *testing.T, now time.Time) *fixture {
	f := &fixture{
		reservationRepo: &mockReservationRepo{},
		tenantRepo: &mockTenantRepo{tenant: &domain.Tenant{
			ID:                        1,
			IsActive:                  true,
			MaxConcurrentReservations: 2,
			BusinessHours: domain.BusinessHours{
				"default": {Open: "10:00", Close: "13:00"},
			},
		}},
		menuRepo: &mockMenuRepo{menus: []*domain.Menu{
			{ID: 10, TenantID: 1, Name: "カット", Price: 4000, DurationMinutes: 60, IsActive: true},
		}},
		staffRepo: &mockStaffRepo{},
	}
	f.uc = NewUseCase(
		f.reservationRepo,
		f.tenantRepo,
		f.menuRepo,
		f.staffRepo,
		jst(t),
		&noopLogger{},
	)
	f.uc.timeProvider = &fixedTimeProvider{now: now}
	return f
}

func slotStarts(slots []Slot) []types.TimeString {
	starts := make([]types.TimeString, 0, len(slots))
	for _, s := range slots {
		starts = append(starts, s.StartTime)
	}
	return starts
}

func TestExecute_GridFitsWithinWindow(t *testing.T) {
	loc := jst(t)
	f := newFixture(t, time.Date(2026, 3, 16, 9, 0, 0, 0, loc))

	resp, err := f.uc.Execute(context.Background(), &Request{
		TenantID: 1,
		MenuIDs:  []int64{10},
		Date:     time.Date(2026, 3, 20, 0, 0, 0, 0, loc),
	})
	require.NoError(t, err)

	// Окно 10:00-13:00, длительность 60, шаг 30: последний старт 12:00
	assert.Equal(t, []types.TimeString{"10:00", "10:30", "11:00", "11:30", "12:00"}, slotStarts(resp.Slots))
	assert.Equal(t, 60, resp.DurationMinutes)

	for _, s := range resp.Slots {
		assert.Equal(t, 2, s.TotalSpots)
		assert.Equal(t, 2, s.AvailableSpots)
	}
}

func TestExecute_AvailabilityReflectsOverlaps(t *testing.T) {
	loc := jst(t)
	f := newFixture(t, time.Date(2026, 3, 16, 9, 0, 0, 0, loc))

	f.reservationRepo.existing = []*domain.Reservation{
		{ID: 1, StartTime: "10:00", DurationMinutes: 60, Status: domain.StatusConfirmed},
		{ID: 2, StartTime: "10:00", DurationMinutes: 60, Status: domain.StatusConfirmed},
	}

	resp, err := f.uc.Execute(context.Background(), &Request{
		TenantID: 1,
		MenuIDs:  []int64{10},
		Date:     time.Date(2026, 3, 20, 0, 0, 0, 0, loc),
	})
	require.NoError(t, err)

	byStart := make(map[types.TimeString]Slot, len(resp.Slots))
	for _, s := range resp.Slots {
		byStart[s.StartTime] = s
	}

	assert.Equal(t, 0, byStart["10:00"].AvailableSpots)
	assert.Equal(t, 0, byStart["10:30"].AvailableSpots)
	// Стык в 11:00 пересечением не считается
	assert.Equal(t, 2, byStart["11:00"].AvailableSpots)
}

func TestExecute_StaffModeSingleSpot(t *testing.T) {
	loc := jst(t)
	f := newFixture(t, time.Date(2026, 3, 16, 9, 0, 0, 0, loc))

	staffID := int64(7)
	f.staffRepo.staff = &domain.Staff{ID: staffID, TenantID: 1, Name: "田中", IsActive: true}
	f.reservationRepo.existing = []*domain.Reservation{
		{ID: 1, StaffID: &staffID, StartTime: "10:00", DurationMinutes: 60, Status: domain.StatusConfirmed},
	}

	resp, err := f.uc.Execute(context.Background(), &Request{
		TenantID: 1,
		StaffID:  &staffID,
		MenuIDs:  []int64{10},
		Date:     time.Date(2026, 3, 20, 0, 0, 0, 0, loc),
	})
	require.NoError(t, err)

	byStart := make(map[types.TimeString]Slot, len(resp.Slots))
	for _, s := range resp.Slots {
		byStart[s.StartTime] = s
		assert.Equal(t, 1, s.TotalSpots)
	}

	assert.Equal(t, 0, byStart["10:00"].AvailableSpots)
	assert.Equal(t, 0, byStart["10:30"].AvailableSpots)
	assert.Equal(t, 1, byStart["11:00"].AvailableSpots)
}

func TestExecute_ClosedDayReturnsEmpty(t *testing.T) {
	loc := jst(t)
	f := newFixture(t, time.Date(2026, 3, 16, 9, 0, 0, 0, loc))

	f.tenantRepo.tenant.TemporaryClosedDays = []string{"2026-03-20"}

	resp, err := f.uc.Execute(context.Background(), &Request{
		TenantID: 1,
		MenuIDs:  []int64{10},
		Date:     time.Date(2026, 3, 20, 0, 0, 0, 0, loc),
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_TodayFiltersPastStarts(t *testing.T) {
	loc := jst(t)
	// Сейчас 11:10, слоты 10:00-11:00 уже в прошлом
	f := newFixture(t, time.Date(2026, 3, 20, 11, 10, 0, 0, loc))

	resp, err := f.uc.Execute(context.Background(), &Request{
		TenantID: 1,
		MenuIDs:  []int64{10},
		Date:     time.Date(2026, 3, 20, 0, 0, 0, 0, loc),
	})
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"11:30", "12:00"}, slotStarts(resp.Slots))
}

func TestExecute_PastDateReturnsNoSlots(t *testing.T) {
	loc := jst(t)
	f := newFixture(t, time.Date(2026, 3, 21, 9, 0, 0, 0, loc))

	resp, err := f.uc.Execute(context.Background(), &Request{
		TenantID: 1,
		MenuIDs:  []int64{10},
		Date:     time.Date(2026, 3, 20, 0, 0, 0, 0, loc),
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_UnknownMenuRejected(t *testing.T) {
	loc := jst(t)
	f := newFixture(t, time.Date(2026, 3, 16, 9, 0, 0, 0, loc))

	_, err := f.uc.Execute(context.Background(), &Request{
		TenantID: 1,
		MenuIDs:  []int64{99},
		Date:     time.Date(2026, 3, 20, 0, 0, 0, 0, loc),
	})
	assert.ErrorIs(t, err, ErrMenuNotFound)
}
