package notifyservice

import "errors"

var (
	// ErrInvalidResponse возвращается при некорректном ответе сервиса
	ErrInvalidResponse = errors.New("notifyservice: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("notifyservice: internal error")

	// ErrServiceDegraded возвращается при недоступности сервиса нотификаций
	// Доставка уведомлений не критична для бронирования - вызывающий логирует и продолжает
	ErrServiceDegraded = errors.New("notifyservice: service degraded")
)
