package get_company_bookings

import (
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров.
// Параметр date задает UTC сутки [00:00, 24:00); from/to задают
// произвольный UTC интервал в формате RFC3339 и перекрывают date
func ToServiceRequest(
	companyID int64,
	userID int64,
	resourceIDStr string,
	statusStr string,
	dateStr string,
	fromStr string,
	toStr string,
	includeCancelledStr string,
) (*models.GetCompanyBookingsRequest, error) {
	req := &models.GetCompanyBookingsRequest{
		UserID:           userID,
		CompanyID:        companyID,
		IncludeCancelled: false, // По умолчанию только активные
	}

	// Парсим resourceId если указан
	if resourceIDStr != "" {
		resourceID, err := strconv.ParseInt(resourceIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.ResourceID = &resourceID
	}

	// Парсим status если указан
	if statusStr != "" {
		req.Status = &statusStr
	}

	// Парсим date если указана
	if dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			return nil, err
		}
		from := date
		to := date.Add(24 * time.Hour)
		req.From = &from
		req.To = &to
	}

	// Парсим from/to если указаны
	if fromStr != "" {
		from, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			return nil, err
		}
		fromUTC := from.UTC()
		req.From = &fromUTC
	}
	if toStr != "" {
		to, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			return nil, err
		}
		toUTC := to.UTC()
		req.To = &toUTC
	}

	// Парсим includeCancelled если указан
	if includeCancelledStr != "" {
		includeCancelled, err := strconv.ParseBool(includeCancelledStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeCancelled value: %w", err)
		}
		req.IncludeCancelled = includeCancelled
	}

	return req, nil
}
