package get_available_slots

import (
	"strconv"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_available_slots"
)

// SlotsResponse HTTP response model
type SlotsResponse struct {
	Date       string `json:"date"`
	CompanyID  int64  `json:"companyId"`
	ResourceID int64  `json:"resourceId"`
	Timezone   string `json:"timezone"`
	Slots      []Slot `json:"slots"`
}

// Slot модель временного слота с вердиктом доступности
type Slot struct {
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Available       bool   `json:"available"`
	Reason          string `json:"reason"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *SlotsResponse {
	slots := make([]Slot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = Slot{
			StartTime:       slot.StartTime.String(),
			DurationMinutes: slot.DurationMinutes,
			Available:       slot.Available,
			Reason:          slot.Reason,
		}
	}

	return &SlotsResponse{
		Date:       resp.Date.Format(domain.DateFormat),
		CompanyID:  resp.CompanyID,
		ResourceID: resp.ResourceID,
		Timezone:   resp.Timezone,
		Slots:      slots,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(
	companyID, resourceID int64,
	dateStr, serviceIDStr, durationStr string,
) (*getAvailableSlots.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	req := &getAvailableSlots.Request{
		CompanyID:  companyID,
		ResourceID: resourceID,
		Date:       date,
	}

	// Парсим serviceId если указан
	if serviceIDStr != "" {
		serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.ServiceID = &serviceID
	}

	// Парсим durationMinutes если указан
	if durationStr != "" {
		duration, err := strconv.Atoi(durationStr)
		if err != nil {
			return nil, err
		}
		req.DurationMinutes = duration
	}

	return req, nil
}
