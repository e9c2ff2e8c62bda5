package domain

// MinutesPerDay количество минут в сутках (шкала TimeWindow)
const MinutesPerDay = 24 * 60

// Default configuration values
const (
	DefaultOpenTime               = "09:00"
	DefaultCloseTime              = "18:00"
	DefaultSlotGranularityMinutes = 30
	DefaultTimezone               = "Europe/Moscow"
)

// Business validation constants
const (
	MinSlotGranularityMinutes   = 5
	MaxSlotGranularityMinutes   = 480 // 8 часов
	MaxDurationMinutes          = MinutesPerDay
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// OccupyingStatuses статусы бронирований, занимающих время на календаре
// Используется при подсчёте конфликтов слотов: отменённые и завершённые
// бронирования не блокируют новые записи
var OccupyingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// InactiveStatuses статусы неактивных бронирований
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
}
