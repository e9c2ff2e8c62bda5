package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_available_slots"
)

const (
	msgInvalidCompanyID    = "некорректный ID компании"
	msgInvalidResourceID   = "некорректный ID ресурса"
	msgMissingDate         = "отсутствует обязательный параметр date"
	msgInvalidParams       = "некорректные параметры запроса, ожидается date=YYYY-MM-DD"
	msgCompanyNotFound     = "компания не найдена"
	msgResourceNotFound    = "ресурс не найден"
	msgServiceNotFound     = "услуга не найдена"
	msgServiceNotAvailable = "услуга недоступна на выбранном ресурсе"
	msgInvalidDate         = "некорректная дата запроса"
	msgInvalidConfig       = "некорректная конфигурация расписания"
	msgInvalidInput        = "некорректные входные данные"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/companies/{companyId}/resources/{resourceId}/available-slots
// Query params: date (обязательный), serviceId, durationMinutes (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем companyId и resourceId из URL
	vars := mux.Vars(r)

	companyID, err := strconv.ParseInt(vars["companyId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /companies/{id}/resources/{id}/available-slots - Invalid company ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	resourceID, err := strconv.ParseInt(vars["resourceId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /companies/{id}/resources/{id}/available-slots - Invalid resource ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	// Получаем query параметры
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /companies/{id}/resources/{id}/available-slots - Missing date parameter")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	serviceIDStr := r.URL.Query().Get("serviceId")
	durationStr := r.URL.Query().Get("durationMinutes")

	// Формируем запрос к use case
	useCaseReq, err := ToUseCaseRequest(companyID, resourceID, dateStr, serviceIDStr, durationStr)
	if err != nil {
		h.logger.Warn("GET /companies/{id}/resources/{id}/available-slots - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrCompanyNotFound):
			h.logger.Warn("GET /companies/{id}/resources/{id}/available-slots - Company not found: company_id=%d", companyID)
			handlers.RespondNotFound(w, msgCompanyNotFound)

		case errors.Is(err, getAvailableSlots.ErrResourceNotFound):
			h.logger.Warn("GET /companies/{id}/resources/{id}/available-slots - Resource not found: company_id=%d, resource_id=%d",
				companyID, resourceID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /companies/{id}/resources/{id}/available-slots - Service not found: company_id=%d", companyID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceNotAvailableOnResource):
			h.logger.Warn("GET /companies/{id}/resources/{id}/available-slots - Service not available: company_id=%d, resource_id=%d",
				companyID, resourceID)
			handlers.RespondBadRequest(w, msgServiceNotAvailable)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /companies/{id}/resources/{id}/available-slots - Invalid date: company_id=%d, date=%s",
				companyID, dateStr)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, getAvailableSlots.ErrInvalidConfig):
			h.logger.Warn("GET /companies/{id}/resources/{id}/available-slots - Invalid config: company_id=%d, error=%v",
				companyID, err)
			handlers.RespondBadRequest(w, msgInvalidConfig)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /companies/{id}/resources/{id}/available-slots - Invalid input: company_id=%d, error=%v",
				companyID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /companies/{id}/resources/{id}/available-slots - Failed to get slots: company_id=%d, error=%v",
				companyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("GET /companies/{id}/resources/{id}/available-slots - Slots retrieved: company_id=%d, resource_id=%d, count=%d",
		companyID, resourceID, len(response.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
