package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/notifyservice"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/staffservice"
	"github.com/m04kA/SMC-ScheduleService/internal/service/bookings/models"
)

type stubRepo struct {
	byID        map[int64]*domain.Booking
	cancelled   []int64
	newStatus   *domain.BookingStatus
	listResults []*domain.Booking
}

func (s *stubRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := s.byID[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (s *stubRepo) GetByCustomerID(_ context.Context, _ int64, _ *domain.BookingStatus) ([]*domain.Booking, error) {
	return s.listResults, nil
}

func (s *stubRepo) GetByResourceWithFilter(_ context.Context, _ domain.ResourceBookingsFilter) ([]*domain.Booking, error) {
	return s.listResults, nil
}

func (s *stubRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	if _, ok := s.byID[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	s.newStatus = &status
	return nil
}

func (s *stubRepo) Cancel(_ context.Context, id int64, _ string) error {
	if _, ok := s.byID[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	s.cancelled = append(s.cancelled, id)
	return nil
}

type stubStaff struct {
	company *staffservice.Company
	err     error
}

func (s *stubStaff) GetCompany(_ context.Context, _ int64) (*staffservice.Company, error) {
	return s.company, s.err
}

type stubNotify struct {
	events []*notifyservice.BookingEvent
}

func (s *stubNotify) SendBookingEventWithGracefulDegradation(_ context.Context, event *notifyservice.BookingEvent) error {
	s.events = append(s.events, event)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testBooking(id int64, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:              id,
		CustomerID:      5,
		CompanyID:       1,
		ResourceID:      10,
		ServiceID:       7,
		StartAt:         time.Date(2026, 4, 15, 7, 0, 0, 0, time.UTC),
		DurationMinutes: 30,
		Status:          status,
		ServiceName:     "Haircut",
		ServicePrice:    1500,
	}
}

func testStaff() *stubStaff {
	return &stubStaff{company: &staffservice.Company{
		ID:       1,
		Managers: []int64{100},
		Resources: []staffservice.Resource{
			{ID: 10},
		},
	}}
}

func newService(repo *stubRepo, staff *stubStaff, notify *stubNotify) *Service {
	return NewService(repo, staff, notify, nopLogger{})
}

func TestGetByID_Owner(t *testing.T) {
	repo := &stubRepo{byID: map[int64]*domain.Booking{1: testBooking(1, domain.StatusConfirmed)}}
	svc := newService(repo, testStaff(), &stubNotify{})

	resp, err := svc.GetByID(context.Background(), 1, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "confirmed", resp.Status)
}

func TestGetByID_Manager(t *testing.T) {
	repo := &stubRepo{byID: map[int64]*domain.Booking{1: testBooking(1, domain.StatusConfirmed)}}
	svc := newService(repo, testStaff(), &stubNotify{})

	_, err := svc.GetByID(context.Background(), 1, 100)
	assert.NoError(t, err)
}

func TestGetByID_AccessDenied(t *testing.T) {
	repo := &stubRepo{byID: map[int64]*domain.Booking{1: testBooking(1, domain.StatusConfirmed)}}
	svc := newService(repo, testStaff(), &stubNotify{})

	_, err := svc.GetByID(context.Background(), 1, 999)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := newService(&stubRepo{byID: map[int64]*domain.Booking{}}, testStaff(), &stubNotify{})

	_, err := svc.GetByID(context.Background(), 404, 5)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancel_ByOwnerSendsEvent(t *testing.T) {
	repo := &stubRepo{byID: map[int64]*domain.Booking{1: testBooking(1, domain.StatusPending)}}
	notify := &stubNotify{}
	svc := newService(repo, testStaff(), notify)

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		UserID:             5,
		CancellationReason: "plans changed",
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, repo.cancelled)

	require.Len(t, notify.events, 1)
	assert.Equal(t, notifyservice.EventBookingCancelled, notify.events[0].Event)
	assert.Equal(t, int64(1), notify.events[0].BookingID)
}

func TestCancel_ByManager(t *testing.T) {
	repo := &stubRepo{byID: map[int64]*domain.Booking{1: testBooking(1, domain.StatusConfirmed)}}
	svc := newService(repo, testStaff(), &stubNotify{})

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: 100})
	assert.NoError(t, err)
}

func TestCancel_ByStrangerDenied(t *testing.T) {
	repo := &stubRepo{byID: map[int64]*domain.Booking{1: testBooking(1, domain.StatusConfirmed)}}
	svc := newService(repo, testStaff(), &stubNotify{})

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: 999})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, repo.cancelled)
}

func TestCancel_CompletedCannotBeCancelled(t *testing.T) {
	repo := &stubRepo{byID: map[int64]*domain.Booking{1: testBooking(1, domain.StatusCompleted)}}
	svc := newService(repo, testStaff(), &stubNotify{})

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: 5})
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestUpdateStatus_ValidTransition(t *testing.T) {
	repo := &stubRepo{byID: map[int64]*domain.Booking{1: testBooking(1, domain.StatusPending)}}
	svc := newService(repo, testStaff(), &stubNotify{})

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		UserID: 100,
		Status: "confirmed",
	})
	require.NoError(t, err)
	require.NotNil(t, repo.newStatus)
	assert.Equal(t, domain.StatusConfirmed, *repo.newStatus)
}

func TestUpdateStatus_IllegalTransition(t *testing.T) {
	repo := &stubRepo{byID: map[int64]*domain.Booking{1: testBooking(1, domain.StatusCompleted)}}
	svc := newService(repo, testStaff(), &stubNotify{})

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		UserID: 100,
		Status: "confirmed",
	})
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestUpdateStatus_PendingToCompletedRejected(t *testing.T) {
	repo := &stubRepo{byID: map[int64]*domain.Booking{1: testBooking(1, domain.StatusPending)}}
	svc := newService(repo, testStaff(), &stubNotify{})

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		UserID: 100,
		Status: "completed",
	})
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestUpdateStatus_OnlyManager(t *testing.T) {
	repo := &stubRepo{byID: map[int64]*domain.Booking{1: testBooking(1, domain.StatusPending)}}
	svc := newService(repo, testStaff(), &stubNotify{})

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		UserID: 5, // владелец, но не менеджер
		Status: "confirmed",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdateStatus_UnknownStatus(t *testing.T) {
	repo := &stubRepo{byID: map[int64]*domain.Booking{1: testBooking(1, domain.StatusPending)}}
	svc := newService(repo, testStaff(), &stubNotify{})

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		UserID: 100,
		Status: "no_show",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetCompanyBookings_ManagerOnly(t *testing.T) {
	svc := newService(&stubRepo{}, testStaff(), &stubNotify{})

	_, err := svc.GetCompanyBookings(context.Background(), &models.GetCompanyBookingsRequest{
		UserID:    999,
		CompanyID: 1,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetCompanyBookings_InvalidInterval(t *testing.T) {
	svc := newService(&stubRepo{}, testStaff(), &stubNotify{})

	from := time.Date(2026, 4, 16, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC)
	_, err := svc.GetCompanyBookings(context.Background(), &models.GetCompanyBookingsRequest{
		UserID:    100,
		CompanyID: 1,
		From:      &from,
		To:        &to,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetCustomerBookings_InvalidStatus(t *testing.T) {
	svc := newService(&stubRepo{}, testStaff(), &stubNotify{})

	badStatus := "in_progress"
	_, err := svc.GetCustomerBookings(context.Background(), &models.GetCustomerBookingsRequest{
		UserID: 5,
		Status: &badStatus,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetCustomerBookings_ReturnsList(t *testing.T) {
	repo := &stubRepo{listResults: []*domain.Booking{
		testBooking(1, domain.StatusConfirmed),
		testBooking(2, domain.StatusCancelled),
	}}
	svc := newService(repo, testStaff(), &stubNotify{})

	resp, err := svc.GetCustomerBookings(context.Background(), &models.GetCustomerBookingsRequest{UserID: 5})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)
}
