package create_booking

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID     int64            // ID клиента
	CompanyID  int64            // ID компании
	ResourceID int64            // ID ресурса (сотрудника)
	ServiceID  int64            // ID услуги
	Date       time.Time        // Дата бронирования (без времени, в таймзоне бизнеса)
	StartTime  types.TimeString // Время начала слота в таймзоне бизнеса (например, "10:00")
	Notes      *string          // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64            // ID созданного бронирования
	CustomerID      int64            // ID клиента
	CompanyID       int64            // ID компании
	ResourceID      int64            // ID ресурса
	ServiceID       int64            // ID услуги
	Date            time.Time        // Дата бронирования в таймзоне бизнеса
	StartTime       types.TimeString // Время начала в таймзоне бизнеса
	StartAt         time.Time        // Момент начала в UTC
	DurationMinutes int              // Длительность в минутах
	Status          string           // Статус бронирования
	Timezone        string           // Таймзона бизнеса

	// Денормализованные данные
	ServiceName  string  // Название услуги
	ServicePrice float64 // Цена услуги
	Notes        *string // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
