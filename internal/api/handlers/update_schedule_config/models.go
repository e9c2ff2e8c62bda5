package update_schedule_config

import (
	"github.com/m04kA/SMC-ScheduleService/internal/service/scheduleconfig/models"
)

// UpdateScheduleConfigRequest HTTP request model
type UpdateScheduleConfigRequest struct {
	ResourceID             *int64  `json:"resourceId,omitempty"` // Отсутствие = общая конфигурация компании
	OpenTime               string  `json:"openTime"`             // "09:00"
	CloseTime              string  `json:"closeTime"`            // "18:00"
	SlotGranularityMinutes int     `json:"slotGranularityMinutes"`
	BreakStart             *string `json:"breakStart,omitempty"`
	BreakEnd               *string `json:"breakEnd,omitempty"`
	OpenDays               []int   `json:"openDays"` // 0 = воскресенье ... 6 = суббота
	Timezone               string  `json:"timezone"` // Пустое = таймзона компании
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateScheduleConfigRequest) ToServiceRequest(companyID, userID int64) *models.UpsertConfigRequest {
	return &models.UpsertConfigRequest{
		UserID:                 userID,
		CompanyID:              companyID,
		ResourceID:             r.ResourceID,
		OpenTime:               r.OpenTime,
		CloseTime:              r.CloseTime,
		SlotGranularityMinutes: r.SlotGranularityMinutes,
		BreakStart:             r.BreakStart,
		BreakEnd:               r.BreakEnd,
		OpenDays:               r.OpenDays,
		Timezone:               r.Timezone,
	}
}
