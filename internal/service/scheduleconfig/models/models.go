package models

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// Request модели

// GetConfigRequest запрос на получение конфигурации расписания
// ResourceID может быть nil - тогда возвращается общая конфигурация компании
type GetConfigRequest struct {
	CompanyID  int64  `json:"companyId"`
	ResourceID *int64 `json:"resourceId,omitempty"`
}

// UpsertConfigRequest запрос на создание или обновление конфигурации расписания
type UpsertConfigRequest struct {
	UserID                 int64    `json:"userId"`
	CompanyID              int64    `json:"companyId"`
	ResourceID             *int64   `json:"resourceId,omitempty"` // NULL = для всех ресурсов компании
	OpenTime               string   `json:"openTime"`             // "09:00"
	CloseTime              string   `json:"closeTime"`            // "18:00"
	SlotGranularityMinutes int      `json:"slotGranularityMinutes"`
	BreakStart             *string  `json:"breakStart,omitempty"` // "13:00", отсутствие = без перерыва
	BreakEnd               *string  `json:"breakEnd,omitempty"`   // "14:00"
	OpenDays               []int    `json:"openDays"`             // 0 = воскресенье ... 6 = суббота
	Timezone               string   `json:"timezone"`             // IANA имя, пустое = таймзона компании
}

// DeleteConfigRequest запрос на удаление конфигурации
type DeleteConfigRequest struct {
	UserID     int64  `json:"userId"`
	CompanyID  int64  `json:"companyId"`
	ResourceID *int64 `json:"resourceId,omitempty"`
}

// Response модели

// ConfigResponse ответ с данными конфигурации расписания
type ConfigResponse struct {
	ID                     int64     `json:"id,omitempty"` // 0 для дефолтной конфигурации
	CompanyID              int64     `json:"companyId"`
	ResourceID             *int64    `json:"resourceId,omitempty"`
	OpenTime               string    `json:"openTime"`
	CloseTime              string    `json:"closeTime"`
	SlotGranularityMinutes int       `json:"slotGranularityMinutes"`
	BreakStart             *string   `json:"breakStart,omitempty"`
	BreakEnd               *string   `json:"breakEnd,omitempty"`
	OpenDays               []int     `json:"openDays"`
	Timezone               string    `json:"timezone"`
	IsDefault              bool      `json:"isDefault"` // true, если конфигурация не задана и применен дефолт
	CreatedAt              time.Time `json:"createdAt,omitempty"`
	UpdatedAt              time.Time `json:"updatedAt,omitempty"`
}

// ConfigListResponse ответ со списком конфигураций
type ConfigListResponse struct {
	Configs []ConfigResponse `json:"configs"`
}

// Методы конвертации

// FromDomainConfig конвертирует domain модель в DTO
func FromDomainConfig(c *domain.ScheduleConfig) *ConfigResponse {
	if c == nil {
		return nil
	}

	resp := &ConfigResponse{
		ID:                     c.ID,
		CompanyID:              c.CompanyID,
		ResourceID:             c.ResourceID,
		OpenTime:               c.OpenTime.String(),
		CloseTime:              c.CloseTime.String(),
		SlotGranularityMinutes: c.SlotGranularityMinutes,
		OpenDays:               weekdaysToInts(c.OpenDays),
		Timezone:               c.Timezone,
		CreatedAt:              c.CreatedAt,
		UpdatedAt:              c.UpdatedAt,
	}

	if c.BreakStart != nil {
		s := c.BreakStart.String()
		resp.BreakStart = &s
	}
	if c.BreakEnd != nil {
		s := c.BreakEnd.String()
		resp.BreakEnd = &s
	}

	return resp
}

// FromDomainConfigList конвертирует список domain моделей в DTO
func FromDomainConfigList(configs []*domain.ScheduleConfig) *ConfigListResponse {
	if configs == nil {
		return &ConfigListResponse{
			Configs: []ConfigResponse{},
		}
	}

	resp := &ConfigListResponse{
		Configs: make([]ConfigResponse, len(configs)),
	}

	for i, config := range configs {
		if configResp := FromDomainConfig(config); configResp != nil {
			resp.Configs[i] = *configResp
		}
	}

	return resp
}

// ToDomainConfig конвертирует UpsertConfigRequest в domain модель
func (r *UpsertConfigRequest) ToDomainConfig() *domain.ScheduleConfig {
	config := &domain.ScheduleConfig{
		CompanyID:              r.CompanyID,
		ResourceID:             r.ResourceID,
		OpenTime:               types.TimeString(r.OpenTime),
		CloseTime:              types.TimeString(r.CloseTime),
		SlotGranularityMinutes: r.SlotGranularityMinutes,
		OpenDays:               intsToWeekdays(r.OpenDays),
		Timezone:               r.Timezone,
	}

	if r.BreakStart != nil {
		ts := types.TimeString(*r.BreakStart)
		config.BreakStart = &ts
	}
	if r.BreakEnd != nil {
		ts := types.TimeString(*r.BreakEnd)
		config.BreakEnd = &ts
	}

	return config
}

func weekdaysToInts(days []time.Weekday) []int {
	result := make([]int, len(days))
	for i, d := range days {
		result[i] = int(d)
	}
	return result
}

func intsToWeekdays(values []int) []time.Weekday {
	result := make([]time.Weekday, len(values))
	for i, v := range values {
		result[i] = time.Weekday(v)
	}
	return result
}
