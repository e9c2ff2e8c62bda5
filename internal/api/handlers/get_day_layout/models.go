package get_day_layout

import (
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	getDayLayout "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_day_layout"
)

// DayLayoutResponse HTTP response model
type DayLayoutResponse struct {
	Date       string       `json:"date"`
	CompanyID  int64        `json:"companyId"`
	ResourceID *int64       `json:"resourceId,omitempty"`
	Timezone   string       `json:"timezone"`
	Items      []LayoutItem `json:"items"`
}

// LayoutItem бронирование с координатами для отрисовки в календаре
type LayoutItem struct {
	BookingID       int64  `json:"bookingId"`
	CustomerID      int64  `json:"customerId"`
	ResourceID      int64  `json:"resourceId"`
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`
	ServiceName     string `json:"serviceName"`
	ColumnIndex     int    `json:"columnIndex"`
	TotalColumns    int    `json:"totalColumns"`
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(
	companyID int64,
	userID int64,
	dateStr string,
	resourceIDStr string,
	includeCancelledStr string,
) (*getDayLayout.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	req := &getDayLayout.Request{
		UserID:    userID,
		CompanyID: companyID,
		Date:      date,
	}

	// Парсим resourceId если указан
	if resourceIDStr != "" {
		resourceID, err := strconv.ParseInt(resourceIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.ResourceID = &resourceID
	}

	// Парсим includeCancelled если указан
	if includeCancelledStr != "" {
		includeCancelled, err := strconv.ParseBool(includeCancelledStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeCancelled value: %w", err)
		}
		req.IncludeCancelled = includeCancelled
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getDayLayout.Response) *DayLayoutResponse {
	items := make([]LayoutItem, len(resp.Items))
	for i, item := range resp.Items {
		items[i] = LayoutItem{
			BookingID:       item.BookingID,
			CustomerID:      item.CustomerID,
			ResourceID:      item.ResourceID,
			StartTime:       item.StartTime.String(),
			DurationMinutes: item.DurationMinutes,
			Status:          string(item.Status),
			ServiceName:     item.ServiceName,
			ColumnIndex:     item.ColumnIndex,
			TotalColumns:    item.TotalColumns,
		}
	}

	return &DayLayoutResponse{
		Date:       resp.Date.Format(domain.DateFormat),
		CompanyID:  resp.CompanyID,
		ResourceID: resp.ResourceID,
		Timezone:   resp.Timezone,
		Items:      items,
	}
}
