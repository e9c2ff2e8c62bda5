package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	configRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/scheduleconfig"
	staffClient "github.com/m04kA/SMC-ScheduleService/internal/integrations/staffservice"
	"github.com/m04kA/SMC-ScheduleService/internal/schedule"
	"github.com/m04kA/SMC-ScheduleService/pkg/ptr"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// UseCase use case для получения слотов ресурса на день
type UseCase struct {
	bookingRepo  BookingRepository
	configRepo   ConfigRepository
	staffClient  StaffServiceClient
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	configRepo ConfigRepository,
	staffClient StaffServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		configRepo:   configRepo,
		staffClient:  staffClient,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения слотов ресурса
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: user=%d, company=%d, resource=%d, date=%s",
		req.UserID, req.CompanyID, req.ResourceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now().UTC()

	// 3. Получаем компанию и проверяем существование ресурса
	company, err := uc.staffClient.GetCompany(ctx, req.CompanyID)
	if err != nil {
		if errors.Is(err, staffClient.ErrCompanyNotFound) {
			uc.logger.Warn("GetAvailableSlots: company id=%d not found", req.CompanyID)
			return nil, ErrCompanyNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get company id=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: failed to get company: %v", ErrInternal, err)
	}

	if !company.HasResource(req.ResourceID) {
		uc.logger.Warn("GetAvailableSlots: resource id=%d not found in company id=%d", req.ResourceID, req.CompanyID)
		return nil, ErrResourceNotFound
	}

	// 4. Определяем длительность слота
	// Приоритет: явная длительность из запроса -> длительность услуги -> одна гранула
	duration := req.DurationMinutes
	if duration == 0 && req.ServiceID != nil {
		service, err := uc.staffClient.GetService(ctx, req.CompanyID, *req.ServiceID)
		if err != nil {
			if errors.Is(err, staffClient.ErrServiceNotFound) {
				uc.logger.Warn("GetAvailableSlots: service id=%d not found", *req.ServiceID)
				return nil, ErrServiceNotFound
			}
			uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", *req.ServiceID, err)
			return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}

		if !service.AvailableOnResource(req.ResourceID) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not available on resource id=%d",
				*req.ServiceID, req.ResourceID)
			return nil, ErrServiceNotAvailableOnResource
		}

		duration = service.DurationMinutes
	}

	// 5. Получаем конфигурацию расписания с учетом иерархии
	config, err := uc.configRepo.GetConfigWithHierarchy(ctx, req.CompanyID, ptr.Ptr(req.ResourceID))
	if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
		uc.logger.Error("GetAvailableSlots: failed to get config: %v", err)
		return nil, fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
	}

	// Если конфигурация не найдена, используем дефолтную с таймзоной компании
	if config == nil {
		config = domain.DefaultScheduleConfig(company.Timezone)
		uc.logger.Info("GetAvailableSlots: using default config for company=%d, resource=%d",
			req.CompanyID, req.ResourceID)
	} else {
		if config.Timezone == "" {
			config.Timezone = company.Timezone
		}
		uc.logger.Info("GetAvailableSlots: using config id=%d", config.ID)
	}

	// 6. Нормализуем дату в таймзону бизнеса и проверяем, что она не в прошлом
	normalizer, err := schedule.NewNormalizer(config.Timezone)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: bad timezone %q: %v", config.Timezone, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	requestDate := schedule.CivilDate(req.Date)
	nowDate, _ := normalizer.ToLocal(now)
	if requestDate.Before(nowDate) {
		uc.logger.Warn("GetAvailableSlots: date %s is in the past", requestDate.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	// 7. Получаем бронирования, пересекающие запрошенный день
	// Интервал дня берется в UTC по границам локальных суток бизнеса
	dayStart, dayEnd := normalizer.DayBoundsUTC(requestDate)
	filter := domain.ResourceBookingsFilter{
		CompanyID:        req.CompanyID,
		ResourceID:       ptr.Ptr(req.ResourceID),
		From:             &dayStart,
		To:               &dayEnd,
		IncludeCancelled: false,
	}

	bookings, err := uc.bookingRepo.GetByResourceWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 8. Генерируем вердикты слотов
	verdicts, err := schedule.GenerateSlots(schedule.SlotRequest{
		Config:          config,
		Date:            requestDate,
		DurationMinutes: duration,
		Bookings:        bookings,
		Now:             now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidConfig) {
			uc.logger.Warn("GetAvailableSlots: invalid config id=%d: %v", config.ID, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		if errors.Is(err, schedule.ErrInvalidDuration) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		uc.logger.Error("GetAvailableSlots: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	// 9. Конвертируем вердикты в модель ответа
	slots := make([]Slot, 0, len(verdicts))
	for _, v := range verdicts {
		startTime, err := types.NewTimeStringFromMinutes(v.Window.StartMinute)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to format slot start: %v", ErrInternal, err)
		}
		slots = append(slots, Slot{
			StartTime:       startTime,
			DurationMinutes: v.Window.DurationMinutes(),
			Available:       v.Available,
			Reason:          string(v.Reason),
		})
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for company=%d, resource=%d, date=%s",
		len(slots), req.CompanyID, req.ResourceID, requestDate.Format(domain.DateFormat))

	return &Response{
		Date:       requestDate,
		CompanyID:  req.CompanyID,
		ResourceID: req.ResourceID,
		Timezone:   config.Timezone,
		Slots:      slots,
	}, nil
}
