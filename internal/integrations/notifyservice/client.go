package notifyservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для отправки уведомлений о бронированиях
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента NotifyService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// SendBookingEvent отправляет уведомление о событии бронирования
func (c *Client) SendBookingEvent(ctx context.Context, event *BookingEvent) error {
	url := fmt.Sprintf("%s/internal/notifications/booking-events", c.baseURL)

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal event: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	return nil
}

// SendBookingEventWithGracefulDegradation отправляет уведомление с graceful degradation
// Недоступность сервиса нотификаций не должна ломать флоу бронирования:
// любая ошибка доставки конвертируется в ErrServiceDegraded, вызывающий
// логирует её и продолжает работу
func (c *Client) SendBookingEventWithGracefulDegradation(ctx context.Context, event *BookingEvent) error {
	if err := c.SendBookingEvent(ctx, event); err != nil {
		c.log.Error("NotifyService unavailable, booking event dropped: booking_id=%d, event=%s: %v",
			event.BookingID, event.Event, err)
		return fmt.Errorf("%w: booking_id=%d, event=%s: %v", ErrServiceDegraded, event.BookingID, event.Event, err)
	}

	c.log.Info("Booking event delivered: booking_id=%d, event=%s", event.BookingID, event.Event)
	return nil
}
