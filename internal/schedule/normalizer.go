package schedule

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// Normalizer конвертирует между фиксированной таймзоной бизнеса и UTC
// Все хранимые моменты времени - UTC; весь расчёт слотов и раскладки
// работает в локальных минутах от полуночи. Normalizer - единственная
// точка, где эти два представления встречаются.
type Normalizer struct {
	loc *time.Location
}

// NewNormalizer создает Normalizer для IANA таймзоны
func NewNormalizer(timezone string) (*Normalizer, error) {
	if timezone == "" {
		timezone = domain.DefaultTimezone
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTimezone, timezone)
	}
	return &Normalizer{loc: loc}, nil
}

// Location возвращает *time.Location таймзоны бизнеса
func (n *Normalizer) Location() *time.Location {
	return n.loc
}

// ToLocal конвертирует UTC момент в локальную календарную дату и минуту от полуночи
// Дата возвращается как маркер civil date (полночь UTC), время в ней не несёт смысла
func (n *Normalizer) ToLocal(instant time.Time) (time.Time, int) {
	local := instant.In(n.loc)
	date := CivilDate(local)
	return date, local.Hour()*60 + local.Minute()
}

// ToUTC конвертирует локальную дату и минуту от полуночи в UTC момент
// Возвращает ErrAmbiguousLocalTime, если такое локальное время не существует
// (перевод часов вперёд): проверяется обратной конвертацией
func (n *Normalizer) ToUTC(date time.Time, minuteOfDay int) (time.Time, error) {
	if minuteOfDay < 0 || minuteOfDay >= domain.MinutesPerDay {
		return time.Time{}, fmt.Errorf("%w: minute of day %d is out of range", ErrAmbiguousLocalTime, minuteOfDay)
	}

	instant := time.Date(
		date.Year(), date.Month(), date.Day(),
		minuteOfDay/60, minuteOfDay%60, 0, 0,
		n.loc,
	)

	// time.Date нормализует несуществующее время, сдвигая его через переход;
	// обратная проверка выявляет такой сдвиг
	roundDate, roundMinute := n.ToLocal(instant)
	if !roundDate.Equal(CivilDate(date)) || roundMinute != minuteOfDay {
		return time.Time{}, fmt.Errorf("%w: %s %02d:%02d in %s",
			ErrAmbiguousLocalTime, date.Format(domain.DateFormat),
			minuteOfDay/60, minuteOfDay%60, n.loc.String())
	}

	return instant.UTC(), nil
}

// DayBoundsUTC возвращает UTC границы локальных суток [start, end)
// Используется репозиторием для выборки бронирований, пересекающих календарный день
// Для границ суток сдвиг через DST переход допустим и ошибкой не считается
func (n *Normalizer) DayBoundsUTC(date time.Time) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, n.loc)
	end := start.AddDate(0, 0, 1)
	return start.UTC(), end.UTC()
}

// CivilDate возвращает маркер календарной даты: полночь UTC с теми же год/месяц/день
func CivilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
