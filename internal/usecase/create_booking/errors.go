package create_booking

import "errors"

var (
	// ErrCompanyNotFound возвращается, когда компания не найдена
	ErrCompanyNotFound = errors.New("create_booking: company not found")

	// ErrResourceNotFound возвращается, когда ресурс не найден в компании
	ErrResourceNotFound = errors.New("create_booking: resource not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrServiceNotAvailableOnResource возвращается, когда услугу не выполняет указанный ресурс
	ErrServiceNotAvailableOnResource = errors.New("create_booking: service is not available on this resource")

	// ErrResourceClosed возвращается, когда ресурс не принимает записи в указанный день
	ErrResourceClosed = errors.New("create_booking: resource is closed on this date")

	// ErrInvalidDate возвращается при попытке бронирования на прошедшую дату
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrInvalidTimeSlot возвращается, когда время слота некорректно
	// (не на сетке гранулярности или слот не помещается до закрытия)
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrTooLateToBook возвращается при попытке забронировать уже начавшийся слот
	ErrTooLateToBook = errors.New("create_booking: too late to book this slot")

	// ErrSlotNotAvailable возвращается, когда выбранный слот занят или попадает на перерыв
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrAmbiguousTime возвращается, когда локальное время попадает в пропуск
	// перевода часов (DST) и не существует в таймзоне бизнеса
	ErrAmbiguousTime = errors.New("create_booking: local time does not exist in business timezone")

	// ErrInvalidConfig возвращается при некорректной конфигурации расписания
	ErrInvalidConfig = errors.New("create_booking: invalid schedule config")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
