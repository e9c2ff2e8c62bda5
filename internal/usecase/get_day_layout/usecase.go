package get_day_layout

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	configRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/scheduleconfig"
	staffClient "github.com/m04kA/SMC-ScheduleService/internal/integrations/staffservice"
	"github.com/m04kA/SMC-ScheduleService/internal/schedule"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// UseCase use case для получения раскладки календаря компании на день
// Используется менеджерами для отрисовки дневного календаря: пересекающиеся
// бронирования разводятся по колонкам без визуальных наложений
type UseCase struct {
	bookingRepo BookingRepository
	configRepo  ConfigRepository
	staffClient StaffServiceClient
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	configRepo ConfigRepository,
	staffClient StaffServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		configRepo:  configRepo,
		staffClient: staffClient,
		logger:      logger,
	}
}

// Execute выполняет use case получения раскладки дня
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetDayLayout: user=%d, company=%d, date=%s",
		req.UserID, req.CompanyID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetDayLayout: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем компанию и проверяем права менеджера
	company, err := uc.staffClient.GetCompany(ctx, req.CompanyID)
	if err != nil {
		if errors.Is(err, staffClient.ErrCompanyNotFound) {
			uc.logger.Warn("GetDayLayout: company id=%d not found", req.CompanyID)
			return nil, ErrCompanyNotFound
		}
		uc.logger.Error("GetDayLayout: failed to get company id=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: failed to get company: %v", ErrInternal, err)
	}

	if !company.HasManager(req.UserID) {
		uc.logger.Warn("GetDayLayout: user id=%d is not a manager of company id=%d", req.UserID, req.CompanyID)
		return nil, ErrAccessDenied
	}

	// 3. Определяем таймзону через конфигурацию расписания
	config, err := uc.configRepo.GetConfigWithHierarchy(ctx, req.CompanyID, req.ResourceID)
	if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
		uc.logger.Error("GetDayLayout: failed to get config: %v", err)
		return nil, fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
	}

	timezone := company.Timezone
	if config != nil && config.Timezone != "" {
		timezone = config.Timezone
	}

	normalizer, err := schedule.NewNormalizer(timezone)
	if err != nil {
		uc.logger.Error("GetDayLayout: bad timezone %q: %v", timezone, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	// 4. Получаем бронирования, пересекающие запрошенный день
	requestDate := schedule.CivilDate(req.Date)
	dayStart, dayEnd := normalizer.DayBoundsUTC(requestDate)
	filter := domain.ResourceBookingsFilter{
		CompanyID:        req.CompanyID,
		ResourceID:       req.ResourceID,
		From:             &dayStart,
		To:               &dayEnd,
		IncludeCancelled: req.IncludeCancelled,
	}

	bookings, err := uc.bookingRepo.GetByResourceWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetDayLayout: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 5. Раскладываем бронирования по колонкам
	entries := schedule.DayEntries(bookings, requestDate, normalizer)
	assignments := schedule.PackDayLayout(entries)

	// 6. Собираем элементы ответа (assignments упорядочены по времени начала)
	byID := make(map[int64]*domain.Booking, len(bookings))
	for _, b := range bookings {
		byID[b.ID] = b
	}
	windows := make(map[int64]domain.TimeWindow, len(entries))
	for _, e := range entries {
		windows[e.BookingID] = e.Window
	}

	items := make([]Item, 0, len(assignments))
	for _, a := range assignments {
		booking, ok := byID[a.BookingID]
		if !ok {
			continue
		}
		window := windows[a.BookingID]

		startTime, err := types.NewTimeStringFromMinutes(window.StartMinute)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to format item start: %v", ErrInternal, err)
		}

		items = append(items, Item{
			BookingID:       booking.ID,
			CustomerID:      booking.CustomerID,
			ResourceID:      booking.ResourceID,
			StartTime:       startTime,
			DurationMinutes: window.DurationMinutes(),
			Status:          booking.Status,
			ServiceName:     booking.ServiceName,
			ColumnIndex:     a.ColumnIndex,
			TotalColumns:    a.TotalColumns,
		})
	}

	uc.logger.Info("GetDayLayout: %d items for company=%d, date=%s",
		len(items), req.CompanyID, requestDate.Format(domain.DateFormat))

	return &Response{
		Date:       requestDate,
		CompanyID:  req.CompanyID,
		ResourceID: req.ResourceID,
		Timezone:   timezone,
		Items:      items,
	}, nil
}
