package get_day_layout

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// Request модель запроса раскладки календаря на день
type Request struct {
	UserID           int64     // ID пользователя (менеджер компании)
	CompanyID        int64     // ID компании
	ResourceID       *int64    // Фильтр по ресурсу (опционально, nil = все ресурсы)
	Date             time.Time // Дата календаря (без времени)
	IncludeCancelled bool      // Показывать ли отменённые бронирования
}

// Response модель ответа с раскладкой бронирований по колонкам
type Response struct {
	Date       time.Time // Дата календаря
	CompanyID  int64     // ID компании
	ResourceID *int64    // Фильтр по ресурсу (если был задан)
	Timezone   string    // Таймзона бизнеса, в которой указано время
	Items      []Item    // Бронирования дня, упорядоченные по времени начала
}

// Item бронирование дня с координатами для отрисовки
type Item struct {
	BookingID       int64                // ID бронирования
	CustomerID      int64                // ID клиента
	ResourceID      int64                // ID ресурса
	StartTime       types.TimeString     // Время начала в таймзоне бизнеса (обрезано до границ дня)
	DurationMinutes int                  // Отображаемая длительность в минутах (в пределах дня)
	Status          domain.BookingStatus // Статус бронирования
	ServiceName     string               // Название услуги
	ColumnIndex     int                  // Индекс колонки (с нуля)
	TotalColumns    int                  // Число колонок на интервале бронирования
}
