package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/salutech-dev/medbook-api/internal/cache"
	"github.com/salutech-dev/medbook-api/internal/middleware"
)

func newHandlerMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	return db, mock
}

func newHandlerCache(t *testing.T) *cache.AvailabilityCache {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	return cache.NewAvailabilityCache(rdb)
}

func TestUpdateBranchSchedule_FlushesProviderCache(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db, mock := newHandlerMockDB(t)
	availCache := newHandlerCache(t)
	h := NewScheduleHandler(db, availCache)

	ctx := context.Background()
	availCache.Set(ctx, 1, 7, "2026-09-03", []string{"09:00"})
	availCache.Set(ctx, 1, 7, "2026-09-04", []string{"10:00"})
	availCache.Set(ctx, 2, 9, "2026-09-03", []string{"11:00"})

	mock.ExpectQuery(`SELECT \* FROM "provider_branches" WHERE provider_id = .+`).
		WithArgs(uint(1), 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "provider_id"}).AddRow(7, 1))
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "weekly_schedules"`).
		WithArgs("branch", uint(7)).
		WillReturnResult(sqlmock.NewResult(0, 7))
	mock.ExpectQuery(`INSERT INTO "weekly_schedules"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	router := gin.New()
	router.PUT("/schedule", func(c *gin.Context) {
		c.Set(middleware.ContextProviderID, uint(1))
		h.UpdateBranchSchedule(c)
	})

	body := `{"days":[{"day_of_week":0,"enabled":true,"start_time":"09:00","end_time":"17:00"}]}`
	req := httptest.NewRequest(http.MethodPut, "/schedule", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())

	// Every cached date for the provider is gone; other providers keep
	// their entries.
	_, ok := availCache.Get(ctx, 1, 7, "2026-09-03")
	assert.False(t, ok, "stale template output must be flushed")
	_, ok = availCache.Get(ctx, 1, 7, "2026-09-04")
	assert.False(t, ok, "the flush covers all dates, not one")
	_, ok = availCache.Get(ctx, 2, 9, "2026-09-03")
	assert.True(t, ok)
}
