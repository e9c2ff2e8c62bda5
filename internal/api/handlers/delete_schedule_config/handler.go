package delete_schedule_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	scheduleConfig "github.com/m04kA/SMC-ScheduleService/internal/service/scheduleconfig"
	"github.com/m04kA/SMC-ScheduleService/internal/service/scheduleconfig/models"
)

const (
	msgInvalidCompanyID  = "некорректный ID компании"
	msgInvalidResourceID = "некорректный ID ресурса"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgNotFound          = "конфигурация не найдена"
	msgCompanyNotFound   = "компания не найдена"
	msgForbidden         = "доступ запрещен"
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

// Handle DELETE /api/v1/companies/{companyId}/schedule-config
// Query params: resourceId (опционально, без него - общая конфигурация компании)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем companyId из URL
	vars := mux.Vars(r)
	companyIDStr := vars["companyId"]

	companyID, err := strconv.ParseInt(companyIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /companies/{id}/schedule-config - Invalid company ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /companies/{id}/schedule-config - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Формируем запрос к сервису
	serviceReq := &models.DeleteConfigRequest{
		UserID:    userID,
		CompanyID: companyID,
	}

	// Парсим resourceId если указан
	if resourceIDStr := r.URL.Query().Get("resourceId"); resourceIDStr != "" {
		resourceID, err := strconv.ParseInt(resourceIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("DELETE /companies/{id}/schedule-config - Invalid resource ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidResourceID)
			return
		}
		serviceReq.ResourceID = &resourceID
	}

	// Удаляем конфигурацию (сервис сам проверит права менеджера)
	err = h.service.Delete(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, scheduleConfig.ErrConfigNotFound):
			h.logger.Warn("DELETE /companies/{id}/schedule-config - Config not found: company_id=%d, resource_id=%v",
				companyID, serviceReq.ResourceID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, scheduleConfig.ErrCompanyNotFound):
			h.logger.Warn("DELETE /companies/{id}/schedule-config - Company not found: company_id=%d", companyID)
			handlers.RespondNotFound(w, msgCompanyNotFound)

		case errors.Is(err, scheduleConfig.ErrAccessDenied):
			h.logger.Warn("DELETE /companies/{id}/schedule-config - Access denied: company_id=%d, user_id=%d",
				companyID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /companies/{id}/schedule-config - Failed to delete config: company_id=%d, error=%v",
				companyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /companies/{id}/schedule-config - Config deleted: company_id=%d, resource_id=%v, user_id=%d",
		companyID, serviceReq.ResourceID, userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
