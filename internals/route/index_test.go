package route

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"sirumah_backend/internals/configs"
	"sirumah_backend/internals/databases/testdb"
	authService "sirumah_backend/internals/features/users/auth/service"
	userModel "sirumah_backend/internals/features/users/user/model"
	"sirumah_backend/internals/policy"
)

func testConfig() configs.Config {
	return configs.Config{
		JWTSecret:   "test-secret",
		JWTTTL:      time.Hour,
		CORSOrigins: []string{"http://localhost:5173"},
	}
}

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	db := testdb.Open(t)
	return NewApp(Deps{Cfg: testConfig(), DB: db}), db
}

func createUser(t *testing.T, db *gorm.DB, email string, role policy.Role, active bool) userModel.UserModel {
	hash, err := authService.HashPassword("password")
	require.NoError(t, err)
	u := userModel.UserModel{Name: role.String(), Email: email, Password: hash, Role: role, IsActive: active}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func call(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := sonic.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	if len(raw) > 0 && strings.HasPrefix(resp.Header.Get("Content-Type"), fiber.MIMEApplicationJSON) {
		require.NoError(t, sonic.Unmarshal(raw, &out))
	}
	return resp, out
}

func login(t *testing.T, app *fiber.App, email string) string {
	t.Helper()
	resp, body := call(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{"email": email, "password": "password"})
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	data := body["data"].(map[string]any)
	return data["access_token"].(string)
}

func TestHealthCheckOK(t *testing.T) {
	app, _ := newTestApp(t)
	resp, body := call(t, app, http.MethodGet, "/health-check", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, body["timestamp"])
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestHealthCheckDatabaseDown(t *testing.T) {
	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		DisableAutomaticPing: true,
		Logger:               logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))

	app := fiber.New()
	BaseRoutes(app, db, zap.NewNop())
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health-check", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMetricsEndpoint(t *testing.T) {
	app, _ := newTestApp(t)
	call(t, app, http.MethodGet, "/health-check", "", nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), "sirumah_http_requests_total")
}

func TestAuthRequired(t *testing.T) {
	app, _ := newTestApp(t)
	resp, body := call(t, app, http.MethodGet, "/api/houses", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "UNAUTHORIZED", body["error_code"])

	resp, _ = call(t, app, http.MethodGet, "/api/houses", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLogin(t *testing.T) {
	app, db := newTestApp(t)
	createUser(t, db, "admin@sirumah.com", policy.Administrator, true)
	createUser(t, db, "off@sirumah.com", policy.Resident, false)

	resp, _ := call(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{"email": "admin@sirumah.com", "password": "salah"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = call(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{"email": "off@sirumah.com", "password": "password"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body := call(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{"email": ""})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body["errors"], "email")

	token := login(t, app, "ADMIN@sirumah.com")
	resp, body = call(t, app, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	me := body["data"].(map[string]any)
	assert.Equal(t, "administrator", me["role"])
	assert.NotContains(t, me, "password")
}

func TestDeactivatedUserLosesAccess(t *testing.T) {
	app, db := newTestApp(t)
	u := createUser(t, db, "sales@sirumah.com", policy.SalesStaff, true)
	token := login(t, app, "sales@sirumah.com")

	resp, _ := call(t, app, http.MethodGet, "/api/houses", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, db.Model(&userModel.UserModel{}).Where("id = ?", u.ID).Update("is_active", false).Error)
	resp, _ = call(t, app, http.MethodGet, "/api/houses", token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestHouseLifecycleOverHTTP(t *testing.T) {
	app, db := newTestApp(t)
	createUser(t, db, "admin@sirumah.com", policy.Administrator, true)
	createUser(t, db, "warga@sirumah.com", policy.Resident, true)
	admin := login(t, app, "admin@sirumah.com")
	warga := login(t, app, "warga@sirumah.com")

	resp, body := call(t, app, http.MethodPost, "/api/houses", admin, fiber.Map{
		"block_number": "A1", "address": "Jl. Melati 1", "house_type": "Type 36",
		"bedrooms": 2, "bathrooms": 1,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)
	assert.Equal(t, "Rumah berhasil ditambahkan.", body["message"])
	loc := resp.Header.Get("Location")
	require.Contains(t, loc, "/api/houses/")

	resp, body = call(t, app, http.MethodGet, loc, admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	house := body["data"].(map[string]any)["house"].(map[string]any)
	assert.Equal(t, "available", house["status"])

	// penghuni tanpa rumah: tidak boleh ubah, tidak terlihat
	resp, _ = call(t, app, http.MethodPatch, loc, warga, fiber.Map{"status": "sold"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp, _ = call(t, app, http.MethodGet, loc, warga, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body = call(t, app, http.MethodGet, "/api/houses?status=available", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, body["total"])
	stats := body["stats"].(map[string]any)
	assert.EqualValues(t, 1, stats["available"])

	resp, body = call(t, app, http.MethodPatch, loc, admin, fiber.Map{"status": "bogus"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body["errors"], "status")

	resp, _ = call(t, app, http.MethodDelete, loc, admin, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "/api/houses", resp.Header.Get("Location"))

	resp, _ = call(t, app, http.MethodGet, loc, admin, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = call(t, app, http.MethodGet, "/api/houses/not-a-uuid", admin, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body["errors"], "id")
}

func TestUserAdminOnly(t *testing.T) {
	app, db := newTestApp(t)
	createUser(t, db, "admin@sirumah.com", policy.Administrator, true)
	createUser(t, db, "manager@sirumah.com", policy.HousingManager, true)
	admin := login(t, app, "admin@sirumah.com")
	manager := login(t, app, "manager@sirumah.com")

	resp, _ := call(t, app, http.MethodGet, "/api/users", manager, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body := call(t, app, http.MethodGet, "/api/users?role=housing_manager", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, body["total"])
}

func TestDashboardOverHTTP(t *testing.T) {
	app, db := newTestApp(t)
	createUser(t, db, "sales@sirumah.com", policy.SalesStaff, true)
	token := login(t, app, "sales@sirumah.com")

	resp, body := call(t, app, http.MethodGet, "/api/dashboard", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]any)
	assert.Equal(t, "sales_staff", data["role"])
	assert.Nil(t, data["payments"])
}

func TestComplaintFlowOverHTTP(t *testing.T) {
	app, db := newTestApp(t)
	createUser(t, db, "manager@sirumah.com", policy.HousingManager, true)
	warga := createUser(t, db, "warga@sirumah.com", policy.Resident, true)
	manager := login(t, app, "manager@sirumah.com")
	wargaTok := login(t, app, "warga@sirumah.com")

	resp, body := call(t, app, http.MethodPost, "/api/houses", manager, fiber.Map{
		"block_number": "C3", "address": "Jl. Kenanga 3", "house_type": "Type 45",
		"bedrooms": 3, "bathrooms": 2,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)
	houseID := body["data"].(map[string]any)["id"].(string)

	resp, body = call(t, app, http.MethodPost, "/api/residents", manager, fiber.Map{
		"house_id": houseID, "user_id": warga.ID.String(), "name": "Warga", "phone": "0811", "relationship": "owner",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)

	resp, body = call(t, app, http.MethodPost, "/api/complaints", wargaTok, fiber.Map{
		"house_id": houseID, "title": "Lampu jalan mati", "description": "Sejak kemarin", "category": "facility",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)
	loc := resp.Header.Get("Location")

	resp, _ = call(t, app, http.MethodGet, loc+"/edit", wargaTok, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = call(t, app, http.MethodPatch, loc, wargaTok, fiber.Map{"status": "resolved"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, body["errors"], "status")

	resp, body = call(t, app, http.MethodPatch, loc, manager, fiber.Map{"status": "resolved"})
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	assert.NotNil(t, body["data"].(map[string]any)["resolved_date"])

	resp, _ = call(t, app, http.MethodGet, loc+"/edit", wargaTok, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp, _ = call(t, app, http.MethodDelete, loc, wargaTok, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestPaymentExportOverHTTP(t *testing.T) {
	app, db := newTestApp(t)
	createUser(t, db, "manager@sirumah.com", policy.HousingManager, true)
	manager := login(t, app, "manager@sirumah.com")

	req := httptest.NewRequest(http.MethodGet, "/api/payments/export?status=paid", nil)
	req.Header.Set("Authorization", "Bearer "+manager)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), ".xlsx")
	assert.Equal(t, "0", resp.Header.Get("X-Total-Rows"))
}
