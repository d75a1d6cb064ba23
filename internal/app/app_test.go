package app

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"culinary-hub/internal/model"
	"culinary-hub/pkg/config"
	"culinary-hub/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type nopStorage struct{}

func (nopStorage) Upload(_ context.Context, key string, _ io.Reader, _ int64, _ string) (string, error) {
	return "http://cdn.test/" + key, nil
}

func (nopStorage) Delete(context.Context, string) error { return nil }

func testConfig() *config.Config {
	return &config.Config{
		ServerPort:          "0",
		JWTSecret:           "test-secret-key",
		RateLimitPerMinute:  100,
		ImageMaxWidth:       800,
		ImageMaxHeight:      800,
		ImageQuality:        75,
		RatingReconcileCron: "0 3 * * *",
	}
}

func newTestApp(t *testing.T, cfg *config.Config) (*App, error) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(model.All()...))

	return New(cfg, logger.NewNop(), Dependencies{DB: db, Storage: nopStorage{}})
}

func TestNew_Routes(t *testing.T) {
	a, err := newTestApp(t, testConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Shutdown() })

	for _, tc := range []struct {
		method string
		path   string
		want   int
	}{
		{"GET", "/health", http.StatusOK},
		{"GET", "/swagger/index.html", http.StatusOK},
		{"GET", "/api/posts", http.StatusUnauthorized},
		{"GET", "/api/ManageUser", http.StatusUnauthorized},
		{"GET", "/api/notifications/ws", http.StatusUnauthorized},
		{"GET", "/api/unknown", http.StatusNotFound},
	} {
		req, _ := http.NewRequest(tc.method, tc.path, nil)
		w := httptest.NewRecorder()
		a.Handler().ServeHTTP(w, req)
		assert.Equal(t, tc.want, w.Code, tc.path)
	}
}

func TestNew_SwaggerDocumentsEveryRoute(t *testing.T) {
	a, err := newTestApp(t, testConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Shutdown() })

	req, _ := http.NewRequest(http.MethodGet, "/swagger/doc.json", nil)
	w := httptest.NewRecorder()
	a.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var doc struct {
		Paths       map[string]map[string]json.RawMessage `json:"paths"`
		Definitions map[string]json.RawMessage            `json:"definitions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Contains(t, doc.Definitions, "dto.PostDetailResponse")

	param := regexp.MustCompile(`:(\w+)`)
	documented := 0
	for _, route := range a.router.Routes() {
		path, ok := strings.CutPrefix(route.Path, "/api")
		if !ok {
			continue
		}
		path = param.ReplaceAllString(path, "{$1}")
		assert.Contains(t, doc.Paths[path], strings.ToLower(route.Method), route.Method+" "+route.Path)
		documented++
	}
	assert.Greater(t, documented, 70)
}

func TestNew_InvalidSchedule(t *testing.T) {
	cfg := testConfig()
	cfg.RatingReconcileCron = "every night"

	_, err := newTestApp(t, cfg)
	assert.ErrorContains(t, err, "invalid rating reconcile schedule")
}

func TestNew_ScheduleDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.RatingReconcileCron = ""

	a, err := newTestApp(t, cfg)
	require.NoError(t, err)
	assert.Empty(t, a.scheduler.Entries())
}
