package schedule

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// SlotRequest входные данные генерации слотов на один календарный день
type SlotRequest struct {
	Config          *domain.ScheduleConfig
	Date            time.Time // маркер civil date (см. CivilDate)
	DurationMinutes int       // 0 = одна гранула конфигурации
	Bookings        []*domain.Booking
	Now             time.Time // текущий UTC момент (для фильтрации прошедших слотов)
}

// GenerateSlots генерирует упорядоченный по возрастанию список вердиктов слотов
// Чистая функция: одинаковый вход всегда дает одинаковый результат
//
// Кандидаты перебираются от открытия с шагом гранулярности, пока слот целиком
// помещается до закрытия; слот, выходящий за закрытие, не генерируется вовсе.
// Порядок проверки причин недоступности фиксирован:
// перерыв -> уже прошло -> конфликт с существующим бронированием
func GenerateSlots(req SlotRequest) ([]domain.SlotVerdict, error) {
	cfg := req.Config

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	normalizer, err := NewNormalizer(cfg.Timezone)
	if err != nil {
		return nil, err
	}

	// Выходной день - пустой результат, не ошибка
	if !cfg.IsOpenOn(req.Date.Weekday()) {
		return []domain.SlotVerdict{}, nil
	}

	openWindow, err := cfg.OpenWindow()
	if err != nil {
		return nil, err
	}

	breakWindow, hasBreak, err := cfg.BreakWindow()
	if err != nil {
		return nil, err
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = cfg.SlotGranularityMinutes
	}
	if duration < 0 {
		return nil, ErrInvalidDuration
	}

	// Занятые интервалы в локальных минутах целевого дня
	// Учитываются только бронирования, занимающие время (pending/confirmed)
	occupied := occupiedWindows(req.Bookings, req.Date, normalizer)

	// Определяем "сегодня" и текущую локальную минуту
	nowDate, nowMinute := normalizer.ToLocal(req.Now)
	isToday := nowDate.Equal(CivilDate(req.Date))

	verdicts := make([]domain.SlotVerdict, 0)

	for start := openWindow.StartMinute; start+duration <= openWindow.EndMinute; start += cfg.SlotGranularityMinutes {
		candidate := domain.TimeWindow{StartMinute: start, EndMinute: start + duration}

		verdict := domain.SlotVerdict{
			Window:    candidate,
			Available: true,
			Reason:    domain.ReasonOK,
		}

		switch {
		case hasBreak && candidate.Overlaps(breakWindow):
			verdict.Available = false
			verdict.Reason = domain.ReasonInBreak

		// Слот, начинающийся в текущую минуту, считается уже начавшимся
		case isToday && start <= nowMinute:
			verdict.Available = false
			verdict.Reason = domain.ReasonAlreadyPassed

		case overlapsAny(candidate, occupied):
			verdict.Available = false
			verdict.Reason = domain.ReasonConflict
		}

		verdicts = append(verdicts, verdict)
	}

	return verdicts, nil
}

// occupiedWindows конвертирует бронирования в занятые интервалы локальных минут
// целевого дня. Бронирования, переходящие через локальную полночь, обрезаются
// до границ дня. Пересекающиеся между собой бронирования (аномалия исторических
// данных) не являются ошибкой - каждое учитывается независимо.
func occupiedWindows(bookings []*domain.Booking, date time.Time, normalizer *Normalizer) []domain.TimeWindow {
	windows := make([]domain.TimeWindow, 0, len(bookings))

	for _, booking := range bookings {
		if !booking.Occupies() {
			continue
		}

		window, ok := bookingWindow(booking, date, normalizer)
		if !ok {
			continue
		}

		windows = append(windows, window)
	}

	return windows
}

// bookingWindow возвращает интервал бронирования в локальных минутах целевого дня
// Второй результат false, если бронирование не пересекает этот день
func bookingWindow(booking *domain.Booking, date time.Time, normalizer *Normalizer) (domain.TimeWindow, bool) {
	if booking.DurationMinutes <= 0 {
		return domain.TimeWindow{}, false
	}

	startDate, startMinute := normalizer.ToLocal(booking.StartAt)

	// Смещение начала относительно полуночи целевого дня
	// (отрицательное для бронирований, начавшихся в предыдущие сутки)
	dayDiff := int(startDate.Sub(CivilDate(date)).Hours() / 24)
	startOffset := startMinute + dayDiff*domain.MinutesPerDay

	window := domain.TimeWindow{
		StartMinute: startOffset,
		EndMinute:   startOffset + booking.DurationMinutes,
	}

	clamped := window.ClampToDay()
	if clamped.IsEmpty() {
		return domain.TimeWindow{}, false
	}

	return clamped, true
}

// overlapsAny возвращает true при первом найденном пересечении
// Полный список конфликтов не нужен - достаточно факта
func overlapsAny(candidate domain.TimeWindow, occupied []domain.TimeWindow) bool {
	for _, w := range occupied {
		if candidate.Overlaps(w) {
			return true
		}
	}
	return false
}
