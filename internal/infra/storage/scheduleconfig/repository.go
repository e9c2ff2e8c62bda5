package scheduleconfig

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// Repository репозиторий для работы с конфигурацией расписания
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигурации расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую конфигурацию расписания
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, config *domain.ScheduleConfig) (*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("schedule_configs").
		Columns(
			"company_id",
			"resource_id",
			"open_time",
			"close_time",
			"slot_granularity_minutes",
			"break_start",
			"break_end",
			"open_days",
			"timezone",
		).
		Values(
			config.CompanyID,
			config.ResourceID,
			config.OpenTime,
			config.CloseTime,
			config.SlotGranularityMinutes,
			config.BreakStart,
			config.BreakEnd,
			pq.Array(weekdaysToInts(config.OpenDays)),
			config.Timezone,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&config.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return nil, ErrDuplicateConfig
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return config, nil
}

// GetByCompanyAndResource получает конфигурацию для компании и ресурса
// resourceID == nil означает общую конфигурацию компании (resource_id IS NULL)
func (r *Repository) GetByCompanyAndResource(ctx context.Context, companyID int64, resourceID *int64) (*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := selectConfigColumns().
		Where(squirrel.Eq{"company_id": companyID})

	// Фильтрация по resource_id (NULL или конкретное значение)
	if resourceID == nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"resource_id": nil})
	} else {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"resource_id": *resourceID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCompanyAndResource - build select query: %v", ErrBuildQuery, err)
	}

	config, err := r.scanConfigRow(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCompanyAndResource - scan config: %v", ErrScanRow, err)
	}

	return config, nil
}

// GetConfigWithHierarchy получает конфигурацию с учетом иерархии приоритетов
// Приоритет применения конфигурации:
// 1. Конфигурация конкретного ресурса (companyID, resourceID)
// 2. Общая конфигурация компании (companyID, NULL)
//
// Если конфигурация не найдена ни на одном уровне, возвращает ErrConfigNotFound.
// Fallback на дефолтную конфигурацию делает вызывающий usecase.
func (r *Repository) GetConfigWithHierarchy(ctx context.Context, companyID int64, resourceID *int64) (*domain.ScheduleConfig, error) {
	// 1. Пробуем получить конфигурацию конкретного ресурса (если указан)
	if resourceID != nil {
		config, err := r.GetByCompanyAndResource(ctx, companyID, resourceID)
		if err == nil {
			return config, nil
		}
		if err != ErrConfigNotFound {
			return nil, fmt.Errorf("%w: GetConfigWithHierarchy - level 1 (resource): %v", ErrExecQuery, err)
		}
	}

	// 2. Пробуем получить общую конфигурацию компании
	config, err := r.GetByCompanyAndResource(ctx, companyID, nil)
	if err == nil {
		return config, nil
	}
	if err != ErrConfigNotFound {
		return nil, fmt.Errorf("%w: GetConfigWithHierarchy - level 2 (company): %v", ErrExecQuery, err)
	}

	return nil, ErrConfigNotFound
}

// GetAllByCompany получает все конфигурации компании (общую и для ресурсов)
func (r *Repository) GetAllByCompany(ctx context.Context, companyID int64) ([]*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectConfigColumns().
		Where(squirrel.Eq{"company_id": companyID}).
		OrderBy("resource_id ASC NULLS FIRST"). // Общая конфигурация первой
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAllByCompany - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAllByCompany - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	configs := make([]*domain.ScheduleConfig, 0)

	for rows.Next() {
		config, err := r.scanConfigRow(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetAllByCompany - scan row: %v", ErrScanRow, err)
		}
		configs = append(configs, config)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAllByCompany - rows error: %v", ErrScanRow, err)
	}

	return configs, nil
}

// Upsert создает или обновляет конфигурацию для пары (company_id, resource_id)
// Сначала пытается обновить существующую строку, при её отсутствии создает новую
func (r *Repository) Upsert(ctx context.Context, config *domain.ScheduleConfig) (*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("schedule_configs").
		Set("open_time", config.OpenTime).
		Set("close_time", config.CloseTime).
		Set("slot_granularity_minutes", config.SlotGranularityMinutes).
		Set("break_start", config.BreakStart).
		Set("break_end", config.BreakEnd).
		Set("open_days", pq.Array(weekdaysToInts(config.OpenDays))).
		Set("timezone", config.Timezone).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"company_id": config.CompanyID}).
		Suffix("RETURNING id, created_at, updated_at")

	if config.ResourceID == nil {
		updateBuilder = updateBuilder.Where(squirrel.Eq{"resource_id": nil})
	} else {
		updateBuilder = updateBuilder.Where(squirrel.Eq{"resource_id": *config.ResourceID})
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&config.ID, &createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		// Строки нет - создаем новую
		return r.Create(ctx, config)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute update: %v", ErrExecQuery, err)
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return config, nil
}

// Delete удаляет конфигурацию расписания по ID
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("schedule_configs").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrConfigNotFound
	}

	return nil
}

// rowScanner объединяет *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanConfigRow сканирует одну строку конфигурации
func (r *Repository) scanConfigRow(row rowScanner) (*domain.ScheduleConfig, error) {
	var config domain.ScheduleConfig
	var breakStart, breakEnd sql.NullString
	var openDays []int64
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&config.ID,
		&config.CompanyID,
		&config.ResourceID,
		&config.OpenTime,
		&config.CloseTime,
		&config.SlotGranularityMinutes,
		&breakStart,
		&breakEnd,
		pq.Array(&openDays),
		&config.Timezone,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if breakStart.Valid {
		ts := types.TimeString(truncateSeconds(breakStart.String))
		config.BreakStart = &ts
	}
	if breakEnd.Valid {
		ts := types.TimeString(truncateSeconds(breakEnd.String))
		config.BreakEnd = &ts
	}

	config.OpenDays = intsToWeekdays(openDays)
	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return &config, nil
}

// selectConfigColumns возвращает builder со стандартным набором колонок конфигурации
func selectConfigColumns() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"company_id",
		"resource_id",
		"open_time",
		"close_time",
		"slot_granularity_minutes",
		"break_start",
		"break_end",
		"open_days",
		"timezone",
		"created_at",
		"updated_at",
	).From("schedule_configs")
}

// weekdaysToInts конвертирует дни недели в int64 для хранения в integer[]
func weekdaysToInts(days []time.Weekday) []int64 {
	result := make([]int64, len(days))
	for i, d := range days {
		result[i] = int64(d)
	}
	return result
}

// intsToWeekdays конвертирует значения из integer[] обратно в дни недели
func intsToWeekdays(values []int64) []time.Weekday {
	result := make([]time.Weekday, len(values))
	for i, v := range values {
		result[i] = time.Weekday(v)
	}
	return result
}

// truncateSeconds обрезает секунды из времени вида HH:MM:SS (тип TIME в Postgres)
func truncateSeconds(s string) string {
	if len(s) > 5 {
		return s[:5]
	}
	return s
}
