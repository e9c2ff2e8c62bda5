package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	configRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/scheduleconfig"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/notifyservice"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/staffservice"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

type stubBookingRepo struct {
	bookings []*domain.Booking
	created  *domain.Booking
}

func (s *stubBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	booking.ID = 42
	booking.CreatedAt = time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC)
	booking.UpdatedAt = booking.CreatedAt
	s.created = booking
	return booking, nil
}

func (s *stubBookingRepo) GetByResourceWithFilter(_ context.Context, _ domain.ResourceBookingsFilter) ([]*domain.Booking, error) {
	return s.bookings, nil
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

type stubNotifyClient struct {
	events []*notifyservice.BookingEvent
}

func (s *stubNotifyClient) SendBookingEventWithGracefulDegradation(_ context.Context, event *notifyservice.BookingEvent) error {
	s.events = append(s.events, event)
	return nil
}

// inlineTxManager выполняет функцию без настоящей транзакции
type inlineTxManager struct {
	calls int
}

func (m *inlineTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
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
		Timezone: "Europe/Moscow",
		Managers: []int64{100},
		Resources: []staffservice.Resource{
			{ID: 10, IsActive: true},
		},
	}
}

func testService() *staffservice.Service {
	return &staffservice.Service{
		ID:              7,
		Name:            "Haircut",
		Price:           1500,
		DurationMinutes: 30,
		ResourceIDs:     []int64{10},
	}
}

func moscowConfig() *domain.ScheduleConfig {
	return &domain.ScheduleConfig{
		ID:                     1,
		CompanyID:              1,
		OpenTime:               types.TimeString("09:00"),
		CloseTime:              types.TimeString("18:00"),
		SlotGranularityMinutes: 30,
		OpenDays: []time.Weekday{
			time.Sunday, time.Monday, time.Tuesday, time.Wednesday,
			time.Thursday, time.Friday, time.Saturday,
		},
		Timezone: "Europe/Moscow",
	}
}

type fixture struct {
	uc          *UseCase
	bookingRepo *stubBookingRepo
	txManager   *inlineTxManager
	notify      *stubNotifyClient
}

func newFixture(bookings []*domain.Booking, config *domain.ScheduleConfig) *fixture {
	bookingRepo := &stubBookingRepo{bookings: bookings}
	txManager := &inlineTxManager{}
	notify := &stubNotifyClient{}

	cfgRepo := &stubConfigRepo{config: config}
	if config == nil {
		cfgRepo = &stubConfigRepo{err: configRepo.ErrConfigNotFound}
	}

	uc := NewUseCase(
		bookingRepo,
		cfgRepo,
		&stubStaffClient{company: testCompany(), service: testService()},
		notify,
		txManager,
		nopLogger{},
	)
	uc.timeProvider = &fixedTimeProvider{now: time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)}

	return &fixture{uc: uc, bookingRepo: bookingRepo, txManager: txManager, notify: notify}
}

func validRequest() *Request {
	return &Request{
		UserID:     5,
		CompanyID:  1,
		ResourceID: 10,
		ServiceID:  7,
		Date:       time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC),
		StartTime:  types.TimeString("10:00"),
	}
}

func TestExecute_CreatesBooking(t *testing.T) {
	f := newFixture(nil, moscowConfig())

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, 30, resp.DurationMinutes)
	assert.Equal(t, "Haircut", resp.ServiceName)
	assert.Equal(t, 1500.0, resp.ServicePrice)
	assert.Equal(t, "Europe/Moscow", resp.Timezone)

	// 10:00 по Москве = 07:00 UTC
	assert.Equal(t, time.Date(2026, 4, 15, 7, 0, 0, 0, time.UTC), resp.StartAt)
	assert.Equal(t, 1, f.txManager.calls)

	require.NotNil(t, f.bookingRepo.created)
	assert.Equal(t, domain.StatusPending, f.bookingRepo.created.Status)
}

func TestExecute_SendsCreatedEvent(t *testing.T) {
	f := newFixture(nil, moscowConfig())

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	require.Len(t, f.notify.events, 1)
	assert.Equal(t, resp.ID, f.notify.events[0].BookingID)
	assert.Equal(t, notifyservice.EventBookingCreated, f.notify.events[0].Event)
}

func TestExecute_SlotConflict(t *testing.T) {
	f := newFixture([]*domain.Booking{
		{
			ID:              1,
			CompanyID:       1,
			ResourceID:      10,
			StartAt:         time.Date(2026, 4, 15, 7, 0, 0, 0, time.UTC), // 10:00 МСК
			DurationMinutes: 30,
			Status:          domain.StatusConfirmed,
		},
	}, moscowConfig())

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Nil(t, f.bookingRepo.created)
	assert.Empty(t, f.notify.events)
}

func TestExecute_BackToBackAllowed(t *testing.T) {
	// Существующее бронирование заканчивается ровно в 10:00 - конфликта нет
	f := newFixture([]*domain.Booking{
		{
			ID:              1,
			CompanyID:       1,
			ResourceID:      10,
			StartAt:         time.Date(2026, 4, 15, 6, 30, 0, 0, time.UTC), // 09:30 МСК
			DurationMinutes: 30,
			Status:          domain.StatusConfirmed,
		},
	}, moscowConfig())

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.NoError(t, err)
}

func TestExecute_CancelledBookingDoesNotBlock(t *testing.T) {
	f := newFixture([]*domain.Booking{
		{
			ID:              1,
			CompanyID:       1,
			ResourceID:      10,
			StartAt:         time.Date(2026, 4, 15, 7, 0, 0, 0, time.UTC),
			DurationMinutes: 30,
			Status:          domain.StatusCancelled,
		},
	}, moscowConfig())

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.NoError(t, err)
}

func TestExecute_OffGridTimeRejected(t *testing.T) {
	f := newFixture(nil, moscowConfig())

	req := validRequest()
	req.StartTime = types.TimeString("10:10")
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_SlotPastCloseRejected(t *testing.T) {
	f := newFixture(nil, moscowConfig())

	// 17:45 + 30 минут выходит за закрытие в 18:00
	req := validRequest()
	req.StartTime = types.TimeString("17:45")
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_BreakSlotRejected(t *testing.T) {
	config := moscowConfig()
	breakStart := types.TimeString("13:00")
	breakEnd := types.TimeString("14:00")
	config.BreakStart = &breakStart
	config.BreakEnd = &breakEnd

	f := newFixture(nil, config)

	req := validRequest()
	req.StartTime = types.TimeString("13:00")
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_ClosedDayRejected(t *testing.T) {
	config := moscowConfig()
	config.OpenDays = []time.Weekday{time.Monday} // 2026-04-15 - среда

	f := newFixture(nil, config)

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrResourceClosed)
}

func TestExecute_PastDateRejected(t *testing.T) {
	f := newFixture(nil, moscowConfig())

	req := validRequest()
	req.Date = time.Date(2026, 4, 9, 0, 0, 0, 0, time.UTC)
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_TooLateToBookToday(t *testing.T) {
	f := newFixture(nil, moscowConfig())
	// Сейчас 13:00 МСК 15 апреля, слот 10:00 уже прошел
	f.uc.timeProvider = &fixedTimeProvider{now: time.Date(2026, 4, 15, 10, 0, 0, 0, time.UTC)}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrTooLateToBook)
}

func TestExecute_DSTGapRejected(t *testing.T) {
	config := moscowConfig()
	config.Timezone = "Europe/Berlin"
	config.OpenTime = types.TimeString("02:00")
	config.CloseTime = types.TimeString("06:00")

	f := newFixture(nil, config)
	f.uc.staffClient = &stubStaffClient{
		company: &staffservice.Company{
			ID:       1,
			Timezone: "Europe/Berlin",
			Resources: []staffservice.Resource{
				{ID: 10, IsActive: true},
			},
		},
		service: testService(),
	}

	// 29 марта 2026 в Берлине часы переводятся с 02:00 на 03:00 - 02:30 не существует
	req := validRequest()
	req.Date = time.Date(2026, 3, 29, 0, 0, 0, 0, time.UTC)
	req.StartTime = types.TimeString("02:30")
	f.uc.timeProvider = &fixedTimeProvider{now: time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC)}

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrAmbiguousTime)
}

func TestExecute_DefaultConfigFallback(t *testing.T) {
	f := newFixture(nil, nil)

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, "Europe/Moscow", resp.Timezone)
}

func TestExecute_ServiceNotOnResource(t *testing.T) {
	f := newFixture(nil, moscowConfig())
	f.uc.staffClient = &stubStaffClient{
		company: testCompany(),
		service: &staffservice.Service{ID: 7, DurationMinutes: 30, ResourceIDs: []int64{99}},
	}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrServiceNotAvailableOnResource)
}

func TestExecute_CompanyNotFound(t *testing.T) {
	f := newFixture(nil, moscowConfig())
	f.uc.staffClient = &stubStaffClient{companyErr: staffservice.ErrCompanyNotFound}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrCompanyNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	f := newFixture(nil, moscowConfig())

	req := validRequest()
	req.StartTime = types.TimeString("25:00")
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
