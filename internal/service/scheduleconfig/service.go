package scheduleconfig

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	configRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/scheduleconfig"
	staffClient "github.com/m04kA/SMC-ScheduleService/internal/integrations/staffservice"
	"github.com/m04kA/SMC-ScheduleService/internal/service/scheduleconfig/models"
)

// Service сервис для работы с конфигурацией расписания
type Service struct {
	configRepo  ConfigRepository
	staffClient StaffServiceClient
	logger      Logger
}

// NewService создает новый экземпляр сервиса конфигурации расписания
func NewService(
	configRepo ConfigRepository,
	staffClient StaffServiceClient,
	logger Logger,
) *Service {
	return &Service{
		configRepo:  configRepo,
		staffClient: staffClient,
		logger:      logger,
	}
}

// Get получает действующую конфигурацию для ресурса с учетом иерархии:
// конфигурация ресурса перекрывает общую конфигурацию компании,
// при отсутствии обеих применяется дефолтная конфигурация с таймзоной компании.
// Публичный метод - доступен всем
func (s *Service) Get(ctx context.Context, req *models.GetConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("Get: fetching config for company=%d, resource=%v", req.CompanyID, req.ResourceID)

	company, err := s.staffClient.GetCompany(ctx, req.CompanyID)
	if err != nil {
		if errors.Is(err, staffClient.ErrCompanyNotFound) {
			s.logger.Warn("Get: company id=%d not found", req.CompanyID)
			return nil, ErrCompanyNotFound
		}
		s.logger.Error("Get: failed to get company id=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: failed to get company: %v", ErrInternal, err)
	}

	config, err := s.configRepo.GetConfigWithHierarchy(ctx, req.CompanyID, req.ResourceID)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			// Конфигурация не задана - отдаем дефолтную
			defaultConfig := domain.DefaultScheduleConfig(company.Timezone)
			defaultConfig.CompanyID = req.CompanyID

			resp := models.FromDomainConfig(defaultConfig)
			resp.IsDefault = true

			s.logger.Info("Get: no config for company=%d, resource=%v, returning default",
				req.CompanyID, req.ResourceID)
			return resp, nil
		}
		s.logger.Error("Get: repository error for company=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	if config.Timezone == "" {
		config.Timezone = company.Timezone
	}

	s.logger.Info("Get: successfully fetched config id=%d", config.ID)
	return models.FromDomainConfig(config), nil
}

// GetAll получает все конфигурации компании (общую и для ресурсов)
// Доступно только менеджерам компании
func (s *Service) GetAll(ctx context.Context, companyID int64, userID int64) (*models.ConfigListResponse, error) {
	s.logger.Info("GetAll: fetching configs for company=%d by user=%d", companyID, userID)

	if err := s.checkManagerAccess(ctx, companyID, userID); err != nil {
		return nil, err
	}

	configs, err := s.configRepo.GetAllByCompany(ctx, companyID)
	if err != nil {
		s.logger.Error("GetAll: repository error for company=%d: %v", companyID, err)
		return nil, fmt.Errorf("%w: GetAll - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetAll: successfully fetched %d configs for company=%d", len(configs), companyID)
	return models.FromDomainConfigList(configs), nil
}

// Upsert создает или обновляет конфигурацию расписания
// Доступно только менеджерам компании. Проверяет существование ресурса
// (если указан) и все инварианты конфигурации
func (s *Service) Upsert(ctx context.Context, req *models.UpsertConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("Upsert: upserting config for company=%d, resource=%v by user=%d",
		req.CompanyID, req.ResourceID, req.UserID)

	// 1. Получаем компанию для проверки прав доступа и ресурсов
	company, err := s.staffClient.GetCompany(ctx, req.CompanyID)
	if err != nil {
		if errors.Is(err, staffClient.ErrCompanyNotFound) {
			s.logger.Warn("Upsert: company id=%d not found", req.CompanyID)
			return nil, ErrCompanyNotFound
		}
		s.logger.Error("Upsert: failed to get company id=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: failed to get company: %v", ErrInternal, err)
	}

	// 2. Проверяем права доступа (только менеджер компании)
	if !company.HasManager(req.UserID) {
		s.logger.Warn("Upsert: user=%d is not a manager of company=%d", req.UserID, req.CompanyID)
		return nil, ErrAccessDenied
	}

	// 3. Если указан ресурс, проверяем его существование
	if req.ResourceID != nil && !company.HasResource(*req.ResourceID) {
		s.logger.Warn("Upsert: resource id=%d not found in company=%d", *req.ResourceID, req.CompanyID)
		return nil, ErrResourceNotFound
	}

	// 4. Конвертируем и валидируем конфигурацию
	config := req.ToDomainConfig()
	if config.Timezone == "" {
		config.Timezone = company.Timezone
	}

	if err := config.Validate(); err != nil {
		s.logger.Warn("Upsert: config validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	// 5. Сохраняем конфигурацию
	saved, err := s.configRepo.Upsert(ctx, config)
	if err != nil {
		s.logger.Error("Upsert: repository error: %v", err)
		return nil, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Upsert: successfully saved config id=%d", saved.ID)
	return models.FromDomainConfig(saved), nil
}

// Delete удаляет конфигурацию расписания для пары (company, resource)
// Доступно только менеджерам компании
func (s *Service) Delete(ctx context.Context, req *models.DeleteConfigRequest) error {
	s.logger.Info("Delete: deleting config for company=%d, resource=%v by user=%d",
		req.CompanyID, req.ResourceID, req.UserID)

	if err := s.checkManagerAccess(ctx, req.CompanyID, req.UserID); err != nil {
		return err
	}

	config, err := s.configRepo.GetByCompanyAndResource(ctx, req.CompanyID, req.ResourceID)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Warn("Delete: config not found for company=%d, resource=%v", req.CompanyID, req.ResourceID)
			return ErrConfigNotFound
		}
		s.logger.Error("Delete: repository error for company=%d: %v", req.CompanyID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	if err := s.configRepo.Delete(ctx, config.ID); err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			return ErrConfigNotFound
		}
		s.logger.Error("Delete: repository error for config id=%d: %v", config.ID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted config id=%d", config.ID)
	return nil
}

// checkManagerAccess проверяет, что пользователь является менеджером компании
func (s *Service) checkManagerAccess(ctx context.Context, companyID int64, userID int64) error {
	company, err := s.staffClient.GetCompany(ctx, companyID)
	if err != nil {
		if errors.Is(err, staffClient.ErrCompanyNotFound) {
			s.logger.Warn("checkManagerAccess: company id=%d not found", companyID)
			return ErrCompanyNotFound
		}
		s.logger.Error("checkManagerAccess: failed to get company id=%d: %v", companyID, err)
		return fmt.Errorf("%w: checkManagerAccess - failed to get company: %v", ErrInternal, err)
	}

	if company.HasManager(userID) {
		return nil
	}

	s.logger.Warn("checkManagerAccess: user=%d is not a manager of company=%d", userID, companyID)
	return ErrAccessDenied
}
