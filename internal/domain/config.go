package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

var (
	// ErrInvalidConfig возвращается при некорректной конфигурации расписания
	ErrInvalidConfig = errors.New("invalid schedule config")

	// ErrInvalidTimeWindow возвращается при нарушении инварианта TimeWindow
	ErrInvalidTimeWindow = errors.New("invalid time window")
)

// ScheduleConfig represents the booking calendar configuration for a resource.
// Supports hierarchical configuration:
// 1. Resource-specific (company_id, resource_id)
// 2. Company-wide (company_id, NULL)
type ScheduleConfig struct {
	ID                     int64
	CompanyID              int64
	ResourceID             *int64 // NULL = config for all resources of the company
	OpenTime               types.TimeString
	CloseTime              types.TimeString
	SlotGranularityMinutes int
	BreakStart             *types.TimeString // отсутствие значения = без перерыва
	BreakEnd               *types.TimeString
	OpenDays               []time.Weekday // дни недели, когда ресурс принимает записи
	Timezone               string         // IANA имя фиксированной таймзоны бизнеса
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// DefaultScheduleConfig returns the documented fallback configuration:
// 09:00-18:00, 30-minute granularity, no break, Monday-Saturday open
func DefaultScheduleConfig(timezone string) *ScheduleConfig {
	if timezone == "" {
		timezone = DefaultTimezone
	}
	return &ScheduleConfig{
		OpenTime:               types.TimeString(DefaultOpenTime),
		CloseTime:              types.TimeString(DefaultCloseTime),
		SlotGranularityMinutes: DefaultSlotGranularityMinutes,
		OpenDays: []time.Weekday{
			time.Monday, time.Tuesday, time.Wednesday,
			time.Thursday, time.Friday, time.Saturday,
		},
		Timezone: timezone,
	}
}

// IsResourceSpecific returns true if this configuration is bound to a single resource
func (c *ScheduleConfig) IsResourceSpecific() bool {
	return c.ResourceID != nil
}

// IsOpenOn returns true if the calendar accepts bookings on the given weekday
func (c *ScheduleConfig) IsOpenOn(day time.Weekday) bool {
	for _, d := range c.OpenDays {
		if d == day {
			return true
		}
	}
	return false
}

// HasBreak returns true if a break window is configured
func (c *ScheduleConfig) HasBreak() bool {
	return c.BreakStart != nil && c.BreakEnd != nil
}

// OpenWindow returns the open hours as a TimeWindow of local minutes
func (c *ScheduleConfig) OpenWindow() (TimeWindow, error) {
	open, err := c.OpenTime.Minutes()
	if err != nil {
		return TimeWindow{}, fmt.Errorf("%w: open time: %v", ErrInvalidConfig, err)
	}
	close, err := c.CloseTime.Minutes()
	if err != nil {
		return TimeWindow{}, fmt.Errorf("%w: close time: %v", ErrInvalidConfig, err)
	}
	w, err := NewTimeWindow(open, close)
	if err != nil {
		return TimeWindow{}, fmt.Errorf("%w: open time must be before close time", ErrInvalidConfig)
	}
	return w, nil
}

// BreakWindow returns the configured break as a TimeWindow of local minutes.
// The second return value is false when no break is configured.
func (c *ScheduleConfig) BreakWindow() (TimeWindow, bool, error) {
	if !c.HasBreak() {
		return TimeWindow{}, false, nil
	}
	start, err := c.BreakStart.Minutes()
	if err != nil {
		return TimeWindow{}, false, fmt.Errorf("%w: break start: %v", ErrInvalidConfig, err)
	}
	end, err := c.BreakEnd.Minutes()
	if err != nil {
		return TimeWindow{}, false, fmt.Errorf("%w: break end: %v", ErrInvalidConfig, err)
	}
	w, err := NewTimeWindow(start, end)
	if err != nil {
		return TimeWindow{}, false, fmt.Errorf("%w: break start must be before break end", ErrInvalidConfig)
	}
	return w, true, nil
}

// Validate проверяет все инварианты конфигурации:
// open < close, положительная гранулярность, перерыв внутри рабочего окна,
// валидная таймзона
func (c *ScheduleConfig) Validate() error {
	openWindow, err := c.OpenWindow()
	if err != nil {
		return err
	}

	if c.SlotGranularityMinutes <= 0 {
		return fmt.Errorf("%w: slot granularity must be positive, got %d", ErrInvalidConfig, c.SlotGranularityMinutes)
	}
	if c.SlotGranularityMinutes < MinSlotGranularityMinutes || c.SlotGranularityMinutes > MaxSlotGranularityMinutes {
		return fmt.Errorf("%w: slot granularity must be between %d and %d minutes",
			ErrInvalidConfig, MinSlotGranularityMinutes, MaxSlotGranularityMinutes)
	}

	// Перерыв допускается только целиком внутри рабочего окна
	breakWindow, hasBreak, err := c.BreakWindow()
	if err != nil {
		return err
	}
	if hasBreak && !openWindow.Contains(breakWindow) {
		return fmt.Errorf("%w: break window must be within open hours", ErrInvalidConfig)
	}

	if c.BreakStart != nil && c.BreakEnd == nil || c.BreakStart == nil && c.BreakEnd != nil {
		return fmt.Errorf("%w: break start and break end must be set together", ErrInvalidConfig)
	}

	if c.Timezone != "" {
		if _, err := time.LoadLocation(c.Timezone); err != nil {
			return fmt.Errorf("%w: unknown timezone %q", ErrInvalidConfig, c.Timezone)
		}
	}

	return nil
}
