package get_schedule_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	scheduleConfig "github.com/m04kA/SMC-ScheduleService/internal/service/scheduleconfig"
	"github.com/m04kA/SMC-ScheduleService/internal/service/scheduleconfig/models"
)

const (
	msgInvalidCompanyID  = "некорректный ID компании"
	msgInvalidResourceID = "некорректный ID ресурса"
	msgCompanyNotFound   = "компания не найдена"
)

type Handler struct {
	service ConfigService
	logger  Logger
}

func NewHandler(service ConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/companies/{companyId}/schedule-config
// Query params: resourceId (опционально, без него - общая конфигурация компании)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем companyId из URL
	vars := mux.Vars(r)
	companyIDStr := vars["companyId"]

	companyID, err := strconv.ParseInt(companyIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /companies/{id}/schedule-config - Invalid company ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	// Формируем запрос к сервису
	serviceReq := &models.GetConfigRequest{
		CompanyID: companyID,
	}

	// Парсим resourceId если указан
	if resourceIDStr := r.URL.Query().Get("resourceId"); resourceIDStr != "" {
		resourceID, err := strconv.ParseInt(resourceIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /companies/{id}/schedule-config - Invalid resource ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidResourceID)
			return
		}
		serviceReq.ResourceID = &resourceID
	}

	// Получаем действующую конфигурацию (с учетом иерархии и дефолта)
	result, err := h.service.Get(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, scheduleConfig.ErrCompanyNotFound):
			h.logger.Warn("GET /companies/{id}/schedule-config - Company not found: company_id=%d", companyID)
			handlers.RespondNotFound(w, msgCompanyNotFound)

		default:
			h.logger.Error("GET /companies/{id}/schedule-config - Failed to get config: company_id=%d, error=%v",
				companyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /companies/{id}/schedule-config - Config retrieved: company_id=%d, is_default=%t",
		companyID, result.IsDefault)
	handlers.RespondJSON(w, http.StatusOK, result)
}
