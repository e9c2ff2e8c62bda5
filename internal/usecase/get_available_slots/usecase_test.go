package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	configRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/scheduleconfig"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/staffservice"
	"github.com/m04kA/SMC-ScheduleService/pkg/ptr"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

type stubBookingRepo struct {
	bookings []*domain.Booking
	err      error
	gotFilter *domain.ResourceBookingsFilter
}

func (s *stubBookingRepo) GetByResourceWithFilter(_ context.Context, filter domain.ResourceBookingsFilter) ([]*domain.Booking, error) {
	s.gotFilter = &filter
	return s.bookings, s.err
}

type stubConfigRepo struct {
	config *domain.ScheduleConfig
	err    error
}

func (s *stubConfigRepo) GetConfigWithHierarchy(_ context.Context, _ int64, _ *int64) (*domain.ScheduleConfig, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.config, nil
}

type stubStaffClient struct {
	company    *staffservice.Company
	companyErr error
	service    *staffservice.Service
	serviceErr error
}

func (s *stubStaffClient) GetCompany(_ context.Context, _ int64) (*staffservice.Company, error) {
	return s.company, s.companyErr
}

func (s *stubStaffClient) GetService(_ context.Context, _, _ int64) (*staffservice.Service, error) {
	return s.service, s.serviceErr
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testCompany() *staffservice.Company {
	return &staffservice.Company{
		ID:       1,
		Name:     "Barbershop",
		Timezone: "UTC",
		Managers: []int64{100},
		Resources: []staffservice.Resource{
			{ID: 10, Name: "Master", IsActive: true},
		},
	}
}

func utcConfig() *domain.ScheduleConfig {
	return &domain.ScheduleConfig{
		ID:                     1,
		CompanyID:              1,
		OpenTime:               types.TimeString("09:00"),
		CloseTime:              types.TimeString("12:00"),
		SlotGranularityMinutes: 30,
		OpenDays: []time.Weekday{
			time.Sunday, time.Monday, time.Tuesday, time.Wednesday,
			time.Thursday, time.Friday, time.Saturday,
		},
		Timezone: "UTC",
	}
}

func newTestUseCase(bookingRepo *stubBookingRepo, cfgRepo *stubConfigRepo, staff *stubStaffClient, now time.Time) *UseCase {
	uc := NewUseCase(bookingRepo, cfgRepo, staff, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

func TestExecute_ReturnsSlotsWithVerdicts(t *testing.T) {
	bookingRepo := &stubBookingRepo{
		bookings: []*domain.Booking{
			{
				ID:              1,
				CompanyID:       1,
				ResourceID:      10,
				StartAt:         time.Date(2026, 4, 15, 10, 0, 0, 0, time.UTC),
				DurationMinutes: 40,
				Status:          domain.StatusConfirmed,
			},
		},
	}
	uc := newTestUseCase(
		bookingRepo,
		&stubConfigRepo{config: utcConfig()},
		&stubStaffClient{company: testCompany()},
		time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC),
	)

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:     5,
		CompanyID:  1,
		ResourceID: 10,
		Date:       time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 6)

	byStart := make(map[string]Slot)
	for _, s := range resp.Slots {
		byStart[s.StartTime.String()] = s
	}

	assert.True(t, byStart["09:30"].Available)
	assert.False(t, byStart["10:00"].Available)
	assert.Equal(t, "conflict", byStart["10:00"].Reason)
	assert.False(t, byStart["10:30"].Available)
	assert.True(t, byStart["11:00"].Available)

	// Репозиторий должен получить интервальный фильтр на сутки
	require.NotNil(t, bookingRepo.gotFilter)
	assert.Equal(t, int64(1), bookingRepo.gotFilter.CompanyID)
	assert.Equal(t, int64(10), *bookingRepo.gotFilter.ResourceID)
	assert.Equal(t, time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC), bookingRepo.gotFilter.From.UTC())
	assert.Equal(t, time.Date(2026, 4, 16, 0, 0, 0, 0, time.UTC), bookingRepo.gotFilter.To.UTC())
}

func TestExecute_DefaultConfigWhenNotFound(t *testing.T) {
	uc := newTestUseCase(
		&stubBookingRepo{},
		&stubConfigRepo{err: configRepo.ErrConfigNotFound},
		&stubStaffClient{company: testCompany()},
		time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC),
	)

	// Среда - открытый день дефолтной конфигурации (09:00-18:00, шаг 30)
	resp, err := uc.Execute(context.Background(), &Request{
		UserID:     5,
		CompanyID:  1,
		ResourceID: 10,
		Date:       time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 18)
	assert.Equal(t, "UTC", resp.Timezone)
}

func TestExecute_DurationFromService(t *testing.T) {
	uc := newTestUseCase(
		&stubBookingRepo{},
		&stubConfigRepo{config: utcConfig()},
		&stubStaffClient{
			company: testCompany(),
			service: &staffservice.Service{
				ID:              7,
				DurationMinutes: 60,
				ResourceIDs:     []int64{10},
			},
		},
		time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC),
	)

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:     5,
		CompanyID:  1,
		ResourceID: 10,
		ServiceID:  ptr.Ptr(int64(7)),
		Date:       time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	// Часовые слоты с шагом 30 минут: последний начинается в 11:00
	require.Len(t, resp.Slots, 5)
	assert.Equal(t, "11:00", resp.Slots[4].StartTime.String())
	assert.Equal(t, 60, resp.Slots[4].DurationMinutes)
}

func TestExecute_ServiceNotOnResource(t *testing.T) {
	uc := newTestUseCase(
		&stubBookingRepo{},
		&stubConfigRepo{config: utcConfig()},
		&stubStaffClient{
			company: testCompany(),
			service: &staffservice.Service{ID: 7, DurationMinutes: 60, ResourceIDs: []int64{99}},
		},
		time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC),
	)

	_, err := uc.Execute(context.Background(), &Request{
		UserID:     5,
		CompanyID:  1,
		ResourceID: 10,
		ServiceID:  ptr.Ptr(int64(7)),
		Date:       time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrServiceNotAvailableOnResource)
}

func TestExecute_CompanyNotFound(t *testing.T) {
	uc := newTestUseCase(
		&stubBookingRepo{},
		&stubConfigRepo{config: utcConfig()},
		&stubStaffClient{companyErr: staffservice.ErrCompanyNotFound},
		time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC),
	)

	_, err := uc.Execute(context.Background(), &Request{
		UserID:     5,
		CompanyID:  1,
		ResourceID: 10,
		Date:       time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrCompanyNotFound)
}

func TestExecute_ResourceNotFound(t *testing.T) {
	uc := newTestUseCase(
		&stubBookingRepo{},
		&stubConfigRepo{config: utcConfig()},
		&stubStaffClient{company: testCompany()},
		time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC),
	)

	_, err := uc.Execute(context.Background(), &Request{
		UserID:     5,
		CompanyID:  1,
		ResourceID: 404,
		Date:       time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrResourceNotFound)
}

func TestExecute_PastDateRejected(t *testing.T) {
	uc := newTestUseCase(
		&stubBookingRepo{},
		&stubConfigRepo{config: utcConfig()},
		&stubStaffClient{company: testCompany()},
		time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC),
	)

	_, err := uc.Execute(context.Background(), &Request{
		UserID:     5,
		CompanyID:  1,
		ResourceID: 10,
		Date:       time.Date(2026, 4, 9, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(
		&stubBookingRepo{},
		&stubConfigRepo{config: utcConfig()},
		&stubStaffClient{company: testCompany()},
		time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC),
	)

	_, err := uc.Execute(context.Background(), &Request{
		UserID:     5,
		CompanyID:  0,
		ResourceID: 10,
		Date:       time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
