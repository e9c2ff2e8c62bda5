package get_day_layout

import (
	"context"

	getDayLayout "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_day_layout"
)

type GetDayLayoutUseCase interface {
	Execute(ctx context.Context, req *getDayLayout.Request) (*getDayLayout.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
