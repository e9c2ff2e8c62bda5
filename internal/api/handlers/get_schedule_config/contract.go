package get_schedule_config

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/service/scheduleconfig/models"
)

type ConfigService interface {
	Get(ctx context.Context, req *models.GetConfigRequest) (*models.ConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
