package list_schedule_configs

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/service/scheduleconfig/models"
)

type ConfigService interface {
	GetAll(ctx context.Context, companyID int64, userID int64) (*models.ConfigListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
