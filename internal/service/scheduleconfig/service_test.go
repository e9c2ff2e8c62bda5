package scheduleconfig

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	configRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/scheduleconfig"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/staffservice"
	"github.com/m04kA/SMC-ScheduleService/internal/service/scheduleconfig/models"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

type stubRepo struct {
	config    *domain.ScheduleConfig
	hierarchy *domain.ScheduleConfig
	all       []*domain.ScheduleConfig
	upserted  *domain.ScheduleConfig
	deleted   []int64
}

func (s *stubRepo) GetByCompanyAndResource(_ context.Context, _ int64, _ *int64) (*domain.ScheduleConfig, error) {
	if s.config == nil {
		return nil, configRepo.ErrConfigNotFound
	}
	return s.config, nil
}

func (s *stubRepo) GetConfigWithHierarchy(_ context.Context, _ int64, _ *int64) (*domain.ScheduleConfig, error) {
	if s.hierarchy == nil {
		return nil, configRepo.ErrConfigNotFound
	}
	return s.hierarchy, nil
}

func (s *stubRepo) GetAllByCompany(_ context.Context, _ int64) ([]*domain.ScheduleConfig, error) {
	return s.all, nil
}

func (s *stubRepo) Upsert(_ context.Context, config *domain.ScheduleConfig) (*domain.ScheduleConfig, error) {
	config.ID = 1
	s.upserted = config
	return config, nil
}

func (s *stubRepo) Delete(_ context.Context, id int64) error {
	s.deleted = append(s.deleted, id)
	return nil
}

type stubStaff struct {
	company *staffservice.Company
	err     error
}

func (s *stubStaff) GetCompany(_ context.Context, _ int64) (*staffservice.Company, error) {
	return s.company, s.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testStaff() *stubStaff {
	return &stubStaff{company: &staffservice.Company{
		ID:       1,
		Timezone: "Europe/Moscow",
		Managers: []int64{100},
		Resources: []staffservice.Resource{
			{ID: 10},
		},
	}}
}

func storedConfig() *domain.ScheduleConfig {
	return &domain.ScheduleConfig{
		ID:                     3,
		CompanyID:              1,
		OpenTime:               types.TimeString("10:00"),
		CloseTime:              types.TimeString("20:00"),
		SlotGranularityMinutes: 15,
		OpenDays:               []time.Weekday{time.Monday, time.Tuesday},
		Timezone:               "Europe/Moscow",
	}
}

func validUpsert() *models.UpsertConfigRequest {
	return &models.UpsertConfigRequest{
		UserID:                 100,
		CompanyID:              1,
		OpenTime:               "09:00",
		CloseTime:              "18:00",
		SlotGranularityMinutes: 30,
		OpenDays:               []int{1, 2, 3, 4, 5, 6},
		Timezone:               "Europe/Moscow",
	}
}

func TestGet_ReturnsStoredConfig(t *testing.T) {
	svc := NewService(&stubRepo{hierarchy: storedConfig()}, testStaff(), nopLogger{})

	resp, err := svc.Get(context.Background(), &models.GetConfigRequest{CompanyID: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.ID)
	assert.Equal(t, "10:00", resp.OpenTime)
	assert.False(t, resp.IsDefault)
}

func TestGet_FallsBackToDefault(t *testing.T) {
	svc := NewService(&stubRepo{}, testStaff(), nopLogger{})

	resp, err := svc.Get(context.Background(), &models.GetConfigRequest{CompanyID: 1})
	require.NoError(t, err)
	assert.True(t, resp.IsDefault)
	assert.Equal(t, "09:00", resp.OpenTime)
	assert.Equal(t, "18:00", resp.CloseTime)
	assert.Equal(t, 30, resp.SlotGranularityMinutes)
	assert.Equal(t, "Europe/Moscow", resp.Timezone)
	// Понедельник - суббота
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, resp.OpenDays)
}

func TestGet_CompanyNotFound(t *testing.T) {
	svc := NewService(&stubRepo{}, &stubStaff{err: staffservice.ErrCompanyNotFound}, nopLogger{})

	_, err := svc.Get(context.Background(), &models.GetConfigRequest{CompanyID: 404})
	assert.ErrorIs(t, err, ErrCompanyNotFound)
}

func TestUpsert_Saves(t *testing.T) {
	repo := &stubRepo{}
	svc := NewService(repo, testStaff(), nopLogger{})

	resp, err := svc.Upsert(context.Background(), validUpsert())
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	require.NotNil(t, repo.upserted)
	assert.Equal(t, types.TimeString("09:00"), repo.upserted.OpenTime)
}

func TestUpsert_ManagerOnly(t *testing.T) {
	svc := NewService(&stubRepo{}, testStaff(), nopLogger{})

	req := validUpsert()
	req.UserID = 999
	_, err := svc.Upsert(context.Background(), req)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpsert_UnknownResource(t *testing.T) {
	svc := NewService(&stubRepo{}, testStaff(), nopLogger{})

	req := validUpsert()
	resourceID := int64(404)
	req.ResourceID = &resourceID
	_, err := svc.Upsert(context.Background(), req)
	assert.ErrorIs(t, err, ErrResourceNotFound)
}

func TestUpsert_OpenAfterCloseRejected(t *testing.T) {
	svc := NewService(&stubRepo{}, testStaff(), nopLogger{})

	req := validUpsert()
	req.OpenTime = "18:00"
	req.CloseTime = "09:00"
	_, err := svc.Upsert(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestUpsert_BreakOutsideOpenHoursRejected(t *testing.T) {
	svc := NewService(&stubRepo{}, testStaff(), nopLogger{})

	req := validUpsert()
	breakStart := "08:00"
	breakEnd := "09:30"
	req.BreakStart = &breakStart
	req.BreakEnd = &breakEnd
	_, err := svc.Upsert(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestUpsert_UnknownTimezoneRejected(t *testing.T) {
	svc := NewService(&stubRepo{}, testStaff(), nopLogger{})

	req := validUpsert()
	req.Timezone = "Mars/Olympus"
	_, err := svc.Upsert(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestUpsert_EmptyTimezoneTakesCompanyTimezone(t *testing.T) {
	repo := &stubRepo{}
	svc := NewService(repo, testStaff(), nopLogger{})

	req := validUpsert()
	req.Timezone = ""
	resp, err := svc.Upsert(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Europe/Moscow", resp.Timezone)
}

func TestDelete_RemovesConfig(t *testing.T) {
	repo := &stubRepo{config: storedConfig()}
	svc := NewService(repo, testStaff(), nopLogger{})

	err := svc.Delete(context.Background(), &models.DeleteConfigRequest{UserID: 100, CompanyID: 1})
	require.NoError(t, err)
	assert.Equal(t, []int64{3}, repo.deleted)
}

func TestDelete_NotFound(t *testing.T) {
	svc := NewService(&stubRepo{}, testStaff(), nopLogger{})

	err := svc.Delete(context.Background(), &models.DeleteConfigRequest{UserID: 100, CompanyID: 1})
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestDelete_ManagerOnly(t *testing.T) {
	svc := NewService(&stubRepo{config: storedConfig()}, testStaff(), nopLogger{})

	err := svc.Delete(context.Background(), &models.DeleteConfigRequest{UserID: 999, CompanyID: 1})
	assert.ErrorIs(t, err, ErrAccessDenied)
}
