package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	configRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/scheduleconfig"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/notifyservice"
	staffClient "github.com/m04kA/SMC-ScheduleService/internal/integrations/staffservice"
	"github.com/m04kA/SMC-ScheduleService/internal/schedule"
	"github.com/m04kA/SMC-ScheduleService/pkg/ptr"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	configRepo   ConfigRepository
	staffClient  StaffServiceClient
	notifyClient NotifyServiceClient
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	configRepo ConfigRepository,
	staffClient StaffServiceClient,
	notifyClient NotifyServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		configRepo:   configRepo,
		staffClient:  staffClient,
		notifyClient: notifyClient,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Использует сериализуемую транзакцию для предотвращения гонки данных:
// доступность слота перепроверяется внутри транзакции по заблокированным
// (FOR UPDATE) бронированиям дня, поэтому два конкурентных запроса на один
// слот не могут пройти оба
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, company=%d, resource=%d, service=%d, date=%s, time=%s",
		req.UserID, req.CompanyID, req.ResourceID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now().UTC()

	// 3. Получаем компанию и проверяем существование ресурса
	company, err := uc.staffClient.GetCompany(ctx, req.CompanyID)
	if err != nil {
		if errors.Is(err, staffClient.ErrCompanyNotFound) {
			uc.logger.Warn("CreateBooking: company id=%d not found", req.CompanyID)
			return nil, ErrCompanyNotFound
		}
		uc.logger.Error("CreateBooking: failed to get company id=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: failed to get company: %v", ErrInternal, err)
	}

	if !company.HasResource(req.ResourceID) {
		uc.logger.Warn("CreateBooking: resource id=%d not found in company id=%d", req.ResourceID, req.CompanyID)
		return nil, ErrResourceNotFound
	}

	// 4. Получаем услугу и проверяем, что её выполняет этот ресурс
	service, err := uc.staffClient.GetService(ctx, req.CompanyID, req.ServiceID)
	if err != nil {
		if errors.Is(err, staffClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if !service.AvailableOnResource(req.ResourceID) {
		uc.logger.Warn("CreateBooking: service id=%d not available on resource id=%d",
			req.ServiceID, req.ResourceID)
		return nil, ErrServiceNotAvailableOnResource
	}

	// Переменные для результата и уведомления, заполняются внутри транзакции
	var result *domain.Booking
	var timezone string
	var startTime = req.StartTime

	// 5. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Получаем конфигурацию расписания с учетом иерархии
		config, err := uc.configRepo.GetConfigWithHierarchy(txCtx, req.CompanyID, ptr.Ptr(req.ResourceID))
		if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
			uc.logger.Error("CreateBooking: failed to get config: %v", err)
			return fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
		}

		// Если конфигурация не найдена, используем дефолтную с таймзоной компании
		if config == nil {
			config = domain.DefaultScheduleConfig(company.Timezone)
			uc.logger.Info("CreateBooking: using default config for company=%d, resource=%d",
				req.CompanyID, req.ResourceID)
		} else {
			if config.Timezone == "" {
				config.Timezone = company.Timezone
			}
			uc.logger.Info("CreateBooking: using config id=%d", config.ID)
		}
		timezone = config.Timezone

		normalizer, err := schedule.NewNormalizer(config.Timezone)
		if err != nil {
			uc.logger.Error("CreateBooking: bad timezone %q: %v", config.Timezone, err)
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}

		// 5.2. Проверяем дату: не в прошлом и открытый день
		requestDate := schedule.CivilDate(req.Date)
		nowDate, _ := normalizer.ToLocal(now)
		if requestDate.Before(nowDate) {
			uc.logger.Warn("CreateBooking: date %s is in the past", requestDate.Format(domain.DateFormat))
			return ErrInvalidDate
		}

		if !config.IsOpenOn(requestDate.Weekday()) {
			uc.logger.Warn("CreateBooking: resource is closed on %s", requestDate.Format(domain.DateFormat))
			return ErrResourceClosed
		}

		startMinute, err := req.StartTime.Minutes()
		if err != nil {
			return fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
		}

		// 5.3. Конвертируем локальное время в UTC момент
		// Время, попадающее в пропуск перевода часов, не существует
		startAt, err := normalizer.ToUTC(requestDate, startMinute)
		if err != nil {
			if errors.Is(err, schedule.ErrAmbiguousLocalTime) {
				uc.logger.Warn("CreateBooking: time %s on %s falls into a DST gap in %s",
					req.StartTime, requestDate.Format(domain.DateFormat), config.Timezone)
				return ErrAmbiguousTime
			}
			return fmt.Errorf("%w: failed to normalize start time: %v", ErrInternal, err)
		}

		// 5.4. Получаем бронирования дня с блокировкой (FOR UPDATE)
		dayStart, dayEnd := normalizer.DayBoundsUTC(requestDate)
		filter := domain.ResourceBookingsFilter{
			CompanyID:        req.CompanyID,
			ResourceID:       ptr.Ptr(req.ResourceID),
			From:             &dayStart,
			To:               &dayEnd,
			IncludeCancelled: false,
		}

		bookings, err := uc.bookingRepo.GetByResourceWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 5.5. Перепроверяем доступность слота тем же генератором,
		// который строит слоты для выдачи: источник истины один
		verdicts, err := schedule.GenerateSlots(schedule.SlotRequest{
			Config:          config,
			Date:            requestDate,
			DurationMinutes: service.DurationMinutes,
			Bookings:        bookings,
			Now:             now,
		})
		if err != nil {
			if errors.Is(err, domain.ErrInvalidConfig) {
				uc.logger.Warn("CreateBooking: invalid config id=%d: %v", config.ID, err)
				return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
			}
			uc.logger.Error("CreateBooking: failed to generate slots: %v", err)
			return fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
		}

		verdict, found := findVerdict(verdicts, startMinute)
		if !found {
			// Время не на сетке гранулярности или слот не помещается до закрытия
			uc.logger.Warn("CreateBooking: time %s is not a valid slot start", req.StartTime)
			return ErrInvalidTimeSlot
		}

		if !verdict.Available {
			switch verdict.Reason {
			case domain.ReasonAlreadyPassed:
				uc.logger.Warn("CreateBooking: slot %s has already started", req.StartTime)
				return ErrTooLateToBook
			default:
				uc.logger.Warn("CreateBooking: slot %s not available: %s", req.StartTime, verdict.Reason)
				return ErrSlotNotAvailable
			}
		}

		// 5.6. Создаем бронирование с денормализацией данных услуги
		duration := service.DurationMinutes
		if duration == 0 {
			duration = config.SlotGranularityMinutes
		}

		booking := &domain.Booking{
			CustomerID:      req.UserID,
			CompanyID:       req.CompanyID,
			ResourceID:      req.ResourceID,
			ServiceID:       req.ServiceID,
			StartAt:         startAt,
			DurationMinutes: duration,
			Status:          domain.StatusPending,
			ServiceName:     service.Name,
			ServicePrice:    service.Price,
			Notes:           req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	// 6. Отправляем уведомление после фиксации транзакции
	// Недоступность сервиса нотификаций не откатывает бронирование
	_ = uc.notifyClient.SendBookingEventWithGracefulDegradation(ctx, &notifyservice.BookingEvent{
		BookingID:  result.ID,
		CustomerID: result.CustomerID,
		CompanyID:  result.CompanyID,
		ResourceID: result.ResourceID,
		StartAt:    result.StartAt.Format(time.RFC3339),
		Event:      notifyservice.EventBookingCreated,
	})

	// Конвертируем в response
	return &Response{
		ID:              result.ID,
		CustomerID:      result.CustomerID,
		CompanyID:       result.CompanyID,
		ResourceID:      result.ResourceID,
		ServiceID:       result.ServiceID,
		Date:            schedule.CivilDate(req.Date),
		StartTime:       startTime,
		StartAt:         result.StartAt,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		Timezone:        timezone,
		ServiceName:     result.ServiceName,
		ServicePrice:    result.ServicePrice,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// findVerdict находит вердикт слота, начинающегося в указанную минуту
func findVerdict(verdicts []domain.SlotVerdict, startMinute int) (domain.SlotVerdict, bool) {
	for _, v := range verdicts {
		if v.Window.StartMinute == startMinute {
			return v, true
		}
	}
	return domain.SlotVerdict{}, false
}
