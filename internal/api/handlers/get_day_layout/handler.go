package get_day_layout

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	getDayLayout "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_day_layout"
)

const (
	msgInvalidCompanyID = "некорректный ID компании"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgMissingDate      = "отсутствует обязательный параметр date"
	msgInvalidParams    = "некорректные параметры запроса, ожидается date=YYYY-MM-DD"
	msgCompanyNotFound  = "компания не найдена"
	msgForbidden        = "доступ запрещен"
	msgInvalidConfig    = "некорректная конфигурация расписания"
	msgInvalidInput     = "некорректные входные данные"
)

type Handler struct {
	useCase GetDayLayoutUseCase
	logger  Logger
}

func NewHandler(useCase GetDayLayoutUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/companies/{companyId}/day-layout
// Query params: date (обязательный), resourceId, includeCancelled (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем companyId из URL
	vars := mux.Vars(r)
	companyIDStr := vars["companyId"]

	companyID, err := strconv.ParseInt(companyIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /companies/{id}/day-layout - Invalid company ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /companies/{id}/day-layout - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Получаем query параметры
	query := r.URL.Query()

	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /companies/{id}/day-layout - Missing date parameter")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Формируем запрос к use case
	useCaseReq, err := ToUseCaseRequest(
		companyID,
		userID,
		dateStr,
		query.Get("resourceId"),
		query.Get("includeCancelled"),
	)
	if err != nil {
		h.logger.Warn("GET /companies/{id}/day-layout - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	// Вызываем use case (сам проверит права менеджера)
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getDayLayout.ErrCompanyNotFound):
			h.logger.Warn("GET /companies/{id}/day-layout - Company not found: company_id=%d", companyID)
			handlers.RespondNotFound(w, msgCompanyNotFound)

		case errors.Is(err, getDayLayout.ErrAccessDenied):
			h.logger.Warn("GET /companies/{id}/day-layout - Access denied: company_id=%d, user_id=%d",
				companyID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, getDayLayout.ErrInvalidConfig):
			h.logger.Warn("GET /companies/{id}/day-layout - Invalid config: company_id=%d, error=%v",
				companyID, err)
			handlers.RespondBadRequest(w, msgInvalidConfig)

		case errors.Is(err, getDayLayout.ErrInvalidInput):
			h.logger.Warn("GET /companies/{id}/day-layout - Invalid input: company_id=%d, error=%v",
				companyID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /companies/{id}/day-layout - Failed to get layout: company_id=%d, error=%v",
				companyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("GET /companies/{id}/day-layout - Layout retrieved: company_id=%d, date=%s, items=%d",
		companyID, dateStr, len(response.Items))
	handlers.RespondJSON(w, http.StatusOK, response)
}
