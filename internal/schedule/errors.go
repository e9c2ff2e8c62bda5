package schedule

import "errors"

var (
	// ErrAmbiguousLocalTime возвращается, когда локальное время попадает
	// в "пропавший" интервал перевода часов (DST spring-forward gap)
	// Движок не выбирает сторону перехода молча - ошибка отдается вызывающему
	ErrAmbiguousLocalTime = errors.New("schedule: local time falls into a DST transition gap")

	// ErrUnknownTimezone возвращается при неизвестном имени таймзоны
	ErrUnknownTimezone = errors.New("schedule: unknown timezone")

	// ErrInvalidDuration возвращается при некорректной длительности услуги
	ErrInvalidDuration = errors.New("schedule: duration must be positive")
)
