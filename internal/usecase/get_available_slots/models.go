package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// Request модель запроса на получение слотов ресурса
type Request struct {
	UserID          int64     // ID пользователя (для логирования, не влияет на результат)
	CompanyID       int64     // ID компании
	ResourceID      int64     // ID ресурса (сотрудника)
	ServiceID       *int64    // ID услуги (опционально, задает длительность слота)
	Date            time.Time // Дата для получения слотов (без времени)
	DurationMinutes int       // Явная длительность в минутах (0 = из услуги или одна гранула)
}

// Response модель ответа со списком слотов и их вердиктами
type Response struct {
	Date       time.Time // Дата, на которую запрашивались слоты
	CompanyID  int64     // ID компании
	ResourceID int64     // ID ресурса
	Timezone   string    // Таймзона бизнеса, в которой указано время слотов
	Slots      []Slot    // Все слоты дня с вердиктами доступности
}

// Slot модель временного слота с вердиктом доступности
type Slot struct {
	StartTime       types.TimeString // Время начала слота в таймзоне бизнеса (например, "10:00")
	DurationMinutes int              // Длительность слота в минутах
	Available       bool             // Доступен ли слот для бронирования
	Reason          string           // ok | in_break | already_passed | conflict
}
