package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/termpro2000/fdapp/internal/application/auth"
	"github.com/termpro2000/fdapp/internal/application/export"
	"github.com/termpro2000/fdapp/internal/application/shipping"
	"github.com/termpro2000/fdapp/internal/application/usecase"
	"github.com/termpro2000/fdapp/internal/domain"
	"github.com/termpro2000/fdapp/internal/domain/entity"
	"github.com/termpro2000/fdapp/internal/domain/repository"
	infraexcel "github.com/termpro2000/fdapp/internal/infrastructure/excel"
	apphttp "github.com/termpro2000/fdapp/internal/interfaces/http"
	"github.com/termpro2000/fdapp/pkg/logger"
)

// ── In-memory repositories ───────────────────────────────────────────────────

type memUserRepo struct {
	users map[string]*entity.User
}

func (m *memUserRepo) Create(u *entity.User) error {
	for _, x := range m.users {
		if x.Username == u.Username {
			return domain.ErrUsernameTaken
		}
	}
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *memUserRepo) GetByUsername(username string) (*entity.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memUserRepo) Update(u *entity.User) error {
	stored, ok := m.users[u.ID]
	if !ok {
		return domain.ErrUserNotFound
	}
	*stored = *u
	return nil
}

func (m *memUserRepo) TouchLastLogin(id string) error { return nil }

func (m *memUserRepo) List(f repository.UserFilter, limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range m.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memUserRepo) Count(f repository.UserFilter) (int, error) { return len(m.users), nil }

func (m *memUserRepo) Delete(id string) error {
	delete(m.users, id)
	return nil
}

type memOrderRepo struct {
	orders map[string]*entity.ShippingOrder
}

func (m *memOrderRepo) Create(o *entity.ShippingOrder) error {
	cp := *o
	m.orders[o.ID] = &cp
	return nil
}

func (m *memOrderRepo) GetByID(id string) (*entity.ShippingOrder, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (m *memOrderRepo) GetByTrackingNumber(tn string) (*entity.ShippingOrder, error) {
	for _, o := range m.orders {
		if o.TrackingNumber != nil && *o.TrackingNumber == tn {
			cp := *o
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memOrderRepo) List(f repository.OrderFilter, limit, offset int) ([]*entity.ShippingOrder, error) {
	var out []*entity.ShippingOrder
	for _, o := range m.orders {
		if f.UserID != "" && o.UserID != f.UserID {
			continue
		}
		cp := *o
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memOrderRepo) Count(f repository.OrderFilter) (int, error) {
	list, _ := m.List(f, 0, 0)
	return len(list), nil
}

func (m *memOrderRepo) UpdateStatus(id, status string) error {
	o, ok := m.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	o.UpdatedAt = time.Now()
	return nil
}

func (m *memOrderRepo) AssignTracking(id, tn, tc string, eta *time.Time) error {
	o, ok := m.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.TrackingNumber = &tn
	o.TrackingCompany = tc
	o.EstimatedDelivery = eta
	o.Status = entity.StatusPreparing
	o.UpdatedAt = time.Now()
	return nil
}

type memActivityRepo struct {
	entries []*entity.UserActivity
}

func (m *memActivityRepo) Create(a *entity.UserActivity) error {
	m.entries = append(m.entries, a)
	return nil
}

func (m *memActivityRepo) List(f repository.ActivityFilter, limit, offset int) ([]*entity.UserActivity, error) {
	return m.entries, nil
}

func (m *memActivityRepo) Count(f repository.ActivityFilter) (int, error) {
	return len(m.entries), nil
}

// memStatsRepo serves the export endpoints off the same order map.
type memStatsRepo struct {
	orders *memOrderRepo
	users  *memUserRepo
}

func (m *memStatsRepo) OrdersForExport(f repository.OrderFilter) ([]*entity.OrderExportRow, error) {
	list, _ := m.orders.List(f, 0, 0)
	var out []*entity.OrderExportRow
	for _, o := range list {
		row := &entity.OrderExportRow{Order: *o}
		if u, _ := m.users.GetByID(o.UserID); u != nil {
			row.Username = u.Username
			row.UserName = u.Name
		}
		out = append(out, row)
	}
	return out, nil
}

func (m *memStatsRepo) StatusStats(f repository.OrderFilter) ([]*entity.StatusStat, error) {
	return nil, nil
}

func (m *memStatsRepo) DailyStats(f repository.OrderFilter) ([]*entity.DailyStat, error) {
	return nil, nil
}

func (m *memStatsRepo) CarrierStats(f repository.OrderFilter) ([]*entity.CarrierStat, error) {
	return nil, nil
}

func (m *memStatsRepo) UserStats(f repository.OrderFilter) ([]*entity.UserOrderStat, error) {
	return nil, nil
}

// ── Wiring ───────────────────────────────────────────────────────────────────

func buildTestAPI(t *testing.T) *fiber.App {
	t.Helper()

	userRepo := &memUserRepo{users: map[string]*entity.User{}}
	orderRepo := &memOrderRepo{orders: map[string]*entity.ShippingOrder{}}
	activityRepo := &memActivityRepo{}
	statsRepo := &memStatsRepo{orders: orderRepo, users: userRepo}

	log := logger.New(logger.Config{Env: "production", Level: "error"})
	activityUC := usecase.NewActivityUseCase(activityRepo, log)
	userUC := usecase.NewUserUseCase(userRepo, activityUC)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     testJWTSecret,
		ExpMinutes: testExpMin,
		Issuer:     testIssuer,
	})
	shippingUC := shipping.NewShippingUseCase(orderRepo, activityUC, nil)
	exportUC := export.NewExportUseCase(statsRepo, map[string]export.Renderer{
		"csv": infraexcel.NewCSVRenderer(),
	}, activityUC)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:     authUC,
		ShippingUC: shippingUC,
		UserUC:     userUC,
		ActivityUC: activityUC,
		ExportUC:   exportUC,
		JWTSecret:  testJWTSecret,
	})
	return app
}

func jsonRequest(t *testing.T, method, target, token string, body any) *http.Request {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// registerAndLogin creates an account through the API and returns its token.
func registerAndLogin(t *testing.T, app *fiber.App, username string) string {
	t.Helper()
	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"username": username,
		"password": "secret123",
		"name":     "테스트사용자",
	}), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"username": username,
		"password": "secret123",
	}), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var login struct {
		Token string `json:"token"`
	}
	decodeBody(t, resp, &login)
	require.NotEmpty(t, login.Token)
	return login.Token
}

func orderBody() fiber.Map {
	return fiber.Map{
		"sender_name":      "홍길동",
		"sender_phone":     "010-1234-5678",
		"sender_address":   "서울시 강남구 테헤란로 1",
		"sender_zipcode":   "06100",
		"receiver_name":    "김철수",
		"receiver_phone":   "010-8765-4321",
		"receiver_address": "부산시 해운대구 센텀로 2",
		"receiver_zipcode": "48000",
	}
}

// ── End-to-end flow ──────────────────────────────────────────────────────────

func TestAPI_RegisterCreateAndTrack(t *testing.T) {
	app := buildTestAPI(t)
	token := registerAndLogin(t, app, "hong")

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/shipping/orders", token, orderBody()), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		OrderID        string `json:"orderId"`
		TrackingNumber string `json:"trackingNumber"`
		Status         string `json:"status"`
	}
	decodeBody(t, resp, &created)
	assert.Equal(t, entity.StatusReceived, created.Status)
	assert.Regexp(t, `^SH\d{8}[A-Z0-9]{6}$`, created.TrackingNumber)

	// Tracking is public: no Authorization header.
	resp, err = app.Test(jsonRequest(t, http.MethodGet, "/api/shipping/tracking/"+created.TrackingNumber, "", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var tracked struct {
		TrackingNumber string `json:"trackingNumber"`
		CurrentStatus  string `json:"currentStatus"`
		StatusHistory  []any  `json:"statusHistory"`
	}
	decodeBody(t, resp, &tracked)
	assert.Equal(t, created.TrackingNumber, tracked.TrackingNumber)
	assert.Equal(t, entity.StatusReceived, tracked.CurrentStatus)
	assert.Len(t, tracked.StatusHistory, 1)
}

func TestAPI_StatusUpdateRequiresManager(t *testing.T) {
	app := buildTestAPI(t)
	token := registerAndLogin(t, app, "hong")

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/shipping/orders", token, orderBody()), -1)
	require.NoError(t, err)
	var created struct {
		OrderID string `json:"orderId"`
	}
	decodeBody(t, resp, &created)

	target := fmt.Sprintf("/api/shipping/orders/%s/status", created.OrderID)
	resp, err = app.Test(jsonRequest(t, http.MethodPatch, target, token, fiber.Map{"status": entity.StatusInTransit}), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAPI_UnknownTrackingNumber(t *testing.T) {
	app := buildTestAPI(t)
	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/shipping/tracking/SH20260901XXXXXX", "", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_UserListNeedsManagerRole(t *testing.T) {
	app := buildTestAPI(t)
	token := registerAndLogin(t, app, "hong")

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/users", token, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAPI_OrdersExportCSV(t *testing.T) {
	app := buildTestAPI(t)
	token := registerAndLogin(t, app, "hong")

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/shipping/orders", token, orderBody()), -1)
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = app.Test(jsonRequest(t, http.MethodGet, "/api/exports/orders?format=csv", token, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "shipping_orders_")

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}), "csv must carry the UTF-8 BOM")
	assert.Contains(t, string(data), "주문번호")
	assert.Contains(t, string(data), "홍길동")
}
