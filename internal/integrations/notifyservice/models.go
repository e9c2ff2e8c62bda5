package notifyservice

// BookingEvent уведомление о событии бронирования
// Отправляется внешнему сервису нотификаций (push/SMS) после фиксации события
type BookingEvent struct {
	BookingID  int64  `json:"bookingId"`
	CustomerID int64  `json:"customerId"`
	CompanyID  int64  `json:"companyId"`
	ResourceID int64  `json:"resourceId"`
	StartAt    string `json:"startAt"` // UTC, RFC3339
	Event      string `json:"event"`   // created | cancelled
}

// Типы событий бронирования
const (
	EventBookingCreated   = "created"
	EventBookingCancelled = "cancelled"
)
