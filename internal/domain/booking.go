package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking represents an appointment of a customer with a resource
// (e.g. a staff member) for a specific service.
// StartAt is always stored as a UTC instant; wall-clock interpretation
// happens through the business timezone of the schedule config.
type Booking struct {
	ID              int64
	CustomerID      int64
	CompanyID       int64
	ResourceID      int64 // бронируемый ресурс (сотрудник)
	ServiceID       int64
	StartAt         time.Time // UTC instant
	DurationMinutes int
	Status          BookingStatus

	// Denormalized data for history
	ServiceName  string
	ServicePrice float64
	Notes        *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EndAt returns the UTC instant at which the booking ends
func (b *Booking) EndAt() time.Time {
	return b.StartAt.Add(time.Duration(b.DurationMinutes) * time.Minute)
}

// Occupies returns true if the booking blocks its time interval
// for new reservations (pending and confirmed bookings only;
// cancelled and completed bookings do not occupy time)
func (b *Booking) Occupies() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanTransitionTo returns true if the status transition is legal
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	switch b.Status {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCompleted || next == StatusCancelled
	default:
		return false
	}
}

// ResourceBookingsFilter фильтр для получения бронирований компании/ресурса
// From/To задают UTC интервал: выбираются бронирования, чей занятый интервал
// [StartAt, StartAt+Duration) пересекается с [From, To)
type ResourceBookingsFilter struct {
	CompanyID        int64          // Обязательный параметр
	ResourceID       *int64         // Фильтр по ресурсу (опционально, если nil - все ресурсы)
	From             *time.Time     // Начало интервала UTC (опционально)
	To               *time.Time     // Конец интервала UTC (опционально)
	Status           *BookingStatus // Фильтр по статусу (опционально)
	IncludeCancelled bool           // Включать ли отменённые бронирования
}
