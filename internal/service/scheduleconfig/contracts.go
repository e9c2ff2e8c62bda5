package scheduleconfig

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/staffservice"
)

// ConfigRepository интерфейс репозитория конфигурации расписания
type ConfigRepository interface {
	GetByCompanyAndResource(ctx context.Context, companyID int64, resourceID *int64) (*domain.ScheduleConfig, error)
	GetConfigWithHierarchy(ctx context.Context, companyID int64, resourceID *int64) (*domain.ScheduleConfig, error)
	GetAllByCompany(ctx context.Context, companyID int64) ([]*domain.ScheduleConfig, error)
	Upsert(ctx context.Context, config *domain.ScheduleConfig) (*domain.ScheduleConfig, error)
	Delete(ctx context.Context, id int64) error
}

// StaffServiceClient интерфейс клиента для StaffService
type StaffServiceClient interface {
	GetCompany(ctx context.Context, companyID int64) (*staffservice.Company, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
