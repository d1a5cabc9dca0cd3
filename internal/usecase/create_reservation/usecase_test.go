package create_reservation

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/integrations/customerservice"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
	"github.com/m04kA/SMC-SalonService/pkg/txmanager"
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

type fakeTxManager struct{}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// conflictTxManager имитирует исчерпание повторов при конфликте сериализации
type conflictTxManager struct{}

func (m *conflictTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fmt.Errorf("%w: pq: could not serialize access", txmanager.ErrSerializationFailure)
}

type mockReservationRepo struct {
	existing []*domain.Reservation
	created  *domain.Reservation
	nextID   int64
}

func (m *mockReservationRepo) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	created := *res
	created.ID = m.nextID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	m.created = &created
	return &created, nil
}

func (m *mockReservationRepo) GetByTenantWithFilter(ctx context.Context, filter domain.TenantReservationsFilter) ([]*domain.Reservation, error) {
	return m.existing, nil
}

type mockTenantRepo struct {
	tenant *domain.Tenant
	err    error
}

func (m *mockTenantRepo) GetByID(ctx context.Context, id int64) (*domain.Tenant, error) {
	if m.err != nil {
		return nil, m.err
	}
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
	err   error
}

func (m *mockStaffRepo) GetByID(ctx context.Context, tenantID, id int64) (*domain.Staff, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.staff, nil
}

type mockCustomerClient struct {
	err error
}

func (m *mockCustomerClient) VerifyCustomer(ctx context.Context, customerID int64) (*customerservice.Customer, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &customerservice.Customer{ID: customerID}, nil
}

func jst(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	return loc
}

func activeTenant() *domain.Tenant {
	return &domain.Tenant{
		ID:                        1,
		IsActive:                  true,
		MaxConcurrentReservations: 2,
		BusinessHours: domain.BusinessHours{
			"default": {Open: "10:00", Close: "19:00"},
		},
	}
}

func salonMenus() []*domain.Menu {
	return []*domain.Menu{
		{ID: 10, TenantID: 1, Name: "カット", Price: 4000, DurationMinutes: 40, IsActive: true},
		{ID: 11, TenantID: 1, Name: "カラー", Price: 8000, DurationMinutes: 80, IsActive: true},
	}
}

type fixture struct {
	reservationRepo *mockReservationRepo
	tenantRepo      *mockTenantRepo
	menuRepo        *mockMenuRepo
	staffRepo       *mockStaffRepo
	customerClient  *mockCustomerClient
	uc              *UseCase
}

func newFixture(t *testing.T, now time.Time) *fixture {
	loc := jst(t)
	f := &fixture{
		reservationRepo: &mockReservationRepo{nextID: 100},
		tenantRepo:      &mockTenantRepo{tenant: activeTenant()},
		menuRepo:        &mockMenuRepo{menus: salonMenus()},
		staffRepo:       &mockStaffRepo{},
		customerClient:  &mockCustomerClient{},
	}
	f.uc = NewUseCase(
		f.reservationRepo,
		f.tenantRepo,
		f.menuRepo,
		f.staffRepo,
		f.customerClient,
		&fakeTxManager{},
		loc,
		&noopLogger{},
	)
	f.uc.timeProvider = &fixedTimeProvider{now: now}
	return f
}

func validRequest(loc *time.Location) *Request {
	return &Request{
		TenantID:   1,
		CustomerID: 42,
		MenuIDs:    []int64{10, 11},
		Date:       time.Date(2026, 3, 20, 0, 0, 0, 0, loc),
		StartTime:  "10:00",
	}
}

func TestExecute_SnapshotsMenuAggregates(t *testing.T) {
	loc := jst(t)
	now := time.Date(2026, 3, 16, 9, 0, 0, 0, loc)
	f := newFixture(t, now)

	resp, err := f.uc.Execute(context.Background(), validRequest(loc))
	require.NoError(t, err)

	assert.Equal(t, int64(100), resp.ID)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, 120, resp.DurationMinutes)
	assert.Equal(t, int64(12000), resp.TotalPrice)
	assert.Equal(t, types.TimeString("12:00"), resp.EndTime)

	// Снимок позиций с ценой и длительностью на момент бронирования
	require.Len(t, f.reservationRepo.created.MenuItems, 2)
	assert.Equal(t, "カット", f.reservationRepo.created.MenuItems[0].Name)
	assert.Equal(t, int64(4000), f.reservationRepo.created.MenuItems[0].Price)
	assert.Equal(t, 0, f.reservationRepo.created.MenuItems[0].Position)
	assert.Equal(t, 1, f.reservationRepo.created.MenuItems[1].Position)
}

func TestExecute_RejectsPartialMenuResolution(t *testing.T) {
	loc := jst(t)
	now := time.Date(2026, 3, 16, 9, 0, 0, 0, loc)
	f := newFixture(t, now)

	req := validRequest(loc)
	req.MenuIDs = []int64{10, 99}

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrMenuNotFound)
	assert.Nil(t, f.reservationRepo.created)
}

func TestExecute_CapacityReached(t *testing.T) {
	loc := jst(t)
	now := time.Date(2026, 3, 16, 9, 0, 0, 0, loc)
	f := newFixture(t, now)

	f.reservationRepo.existing = []*domain.Reservation{
		{ID: 1, StartTime: "10:00", DurationMinutes: 60, Status: domain.StatusConfirmed},
		{ID: 2, StartTime: "10:30", DurationMinutes: 60, Status: domain.StatusConfirmed},
	}

	_, err := f.uc.Execute(context.Background(), validRequest(loc))
	assert.ErrorIs(t, err, ErrCapacityReached)
}

func TestExecute_StaffSlotConflict(t *testing.T) {
	loc := jst(t)
	now := time.Date(2026, 3, 16, 9, 0, 0, 0, loc)
	f := newFixture(t, now)

	staffID := int64(7)
	f.staffRepo.staff = &domain.Staff{ID: staffID, TenantID: 1, Name: "田中", IsActive: true}
	f.reservationRepo.existing = []*domain.Reservation{
		{ID: 1, StaffID: &staffID, StartTime: "10:30", DurationMinutes: 60, Status: domain.StatusConfirmed},
	}

	req := validRequest(loc)
	req.StaffID = &staffID

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecute_StaffOutsideWorkingHours(t *testing.T) {
	loc := jst(t)
	now := time.Date(2026, 3, 16, 9, 0, 0, 0, loc)
	f := newFixture(t, now)

	staffID := int64(7)
	f.staffRepo.staff = &domain.Staff{
		ID:           staffID,
		TenantID:     1,
		Name:         "田中",
		WorkingHours: ptr.Ptr("13:00-19:00"),
		IsActive:     true,
	}

	req := validRequest(loc)
	req.StaffID = &staffID

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrStaffUnavailable)
}

func TestExecute_OutsideBusinessHours(t *testing.T) {
	loc := jst(t)
	now := time.Date(2026, 3, 16, 9, 0, 0, 0, loc)
	f := newFixture(t, now)

	req := validRequest(loc)
	// 18:00 + 120 минут = 20:00, позже закрытия 19:00
	req.StartTime = "18:00"

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOutsideBusinessHours)
}

func TestExecute_EndExactlyAtCloseIsAccepted(t *testing.T) {
	loc := jst(t)
	now := time.Date(2026, 3, 16, 9, 0, 0, 0, loc)
	f := newFixture(t, now)

	req := validRequest(loc)
	// 17:00 + 120 минут = ровно 19:00
	req.StartTime = "17:00"

	_, err := f.uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_ClosedDay(t *testing.T) {
	loc := jst(t)
	now := time.Date(2026, 3, 16, 9, 0, 0, 0, loc)
	f := newFixture(t, now)

	f.tenantRepo.tenant.TemporaryClosedDays = []string{"2026-03-20"}

	_, err := f.uc.Execute(context.Background(), validRequest(loc))
	assert.ErrorIs(t, err, ErrTenantClosed)
}

func TestExecute_PastDateRejected(t *testing.T) {
	loc := jst(t)
	now := time.Date(2026, 3, 21, 9, 0, 0, 0, loc)
	f := newFixture(t, now)

	req := validRequest(loc)
	req.Date = time.Date(2026, 3, 20, 0, 0, 0, 0, loc)

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_InactiveTenant(t *testing.T) {
	loc := jst(t)
	now := time.Date(2026, 3, 16, 9, 0, 0, 0, loc)
	f := newFixture(t, now)

	f.tenantRepo.tenant.IsActive = false

	_, err := f.uc.Execute(context.Background(), validRequest(loc))
	assert.ErrorIs(t, err, ErrTenantInactive)
}

func TestExecute_CustomerNotFound(t *testing.T) {
	loc := jst(t)
	now := time.Date(2026, 3, 16, 9, 0, 0, 0, loc)
	f := newFixture(t, now)

	f.customerClient.err = customerservice.ErrCustomerNotFound

	_, err := f.uc.Execute(context.Background(), validRequest(loc))
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestExecute_DegradedCustomerServiceDoesNotBlock(t *testing.T) {
	loc := jst(t)
	now := time.Date(2026, 3, 16, 9, 0, 0, 0, loc)
	f := newFixture(t, now)

	f.customerClient.err = customerservice.ErrServiceDegraded

	resp, err := f.uc.Execute(context.Background(), validRequest(loc))
	require.NoError(t, err)
	assert.NotNil(t, resp)
}

func TestExecute_ValidationErrors(t *testing.T) {
	loc := jst(t)
	now := time.Date(2026, 3, 16, 9, 0, 0, 0, loc)
	f := newFixture(t, now)

	t.Run("missing menu ids", func(t *testing.T) {
		req := validRequest(loc)
		req.MenuIDs = nil
		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("bad start time", func(t *testing.T) {
		req := validRequest(loc)
		req.StartTime = "25:00"
		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestExecute_SerializationConflictMapsToConcurrentUpdate(t *testing.T) {
	loc := jst(t)
	now := time.Date(2026, 3, 16, 9, 0, 0, 0, loc)
	f := newFixture(t, now)
	f.uc.txManager = &conflictTxManager{}

	_, err := f.uc.Execute(context.Background(), validRequest(loc))
	assert.ErrorIs(t, err, ErrConcurrentUpdate)
}
