package app

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"appointly/internal/config"
	"appointly/internal/email"
	"appointly/internal/models"
	"appointly/internal/services/dto"
	"appointly/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testApp struct {
	router http.Handler
	db     *gorm.DB
	mailer *email.MockProvider
}

func newTestApp(t *testing.T, mutate ...func(*config.Config)) *testApp {
	t.Helper()

	cfg := config.Default()
	cfg.JWT.Secret = "test-secret"
	cfg.RateLimit.RPS = 1000
	cfg.RateLimit.Burst = 1000
	for _, m := range mutate {
		m(cfg)
	}

	db := testutil.NewTestDB(t)
	mailer := email.NewMockProvider()
	application, err := SetupRouter(cfg, db, mailer)
	require.NoError(t, err)

	return &testApp{router: application.Router, db: db, mailer: mailer}
}

func (a *testApp) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	return testutil.SendRequest(t, a.router, method, path, token, body)
}

func (a *testApp) login(t *testing.T, emailAddr, password string) string {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": emailAddr, "password": password})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp dto.LoginResponse
	testutil.DecodeJSON(t, w, &resp)
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

func TestHealth(t *testing.T) {
	a := newTestApp(t)

	w := a.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestCategories_CRUDFlow(t *testing.T) {
	a := newTestApp(t)
	owner := testutil.CreateUser(t, a.db, testutil.UserFixture{FirstName: "Owner"})
	other := testutil.CreateUser(t, a.db, testutil.UserFixture{FirstName: "Other"})

	w := a.do(t, http.MethodPost, "/categories", "", map[string]interface{}{
		"name":        "  Haircuts ",
		"description": "",
		"userId":      owner.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created models.Category
	testutil.DecodeJSON(t, w, &created)
	assert.Equal(t, "Haircuts", created.Name)
	assert.Nil(t, created.Description)
	assert.Equal(t, owner.ID, created.UserID)

	path := fmt.Sprintf("/categories/%d", created.ID)

	// чужой владелец видит 404, а не 403
	w = a.do(t, http.MethodGet, fmt.Sprintf("%s?userId=%d", path, other.ID), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Category not found", testutil.ErrorMessage(t, w))

	w = a.do(t, http.MethodGet, fmt.Sprintf("/categories?userId=%d", owner.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []models.Category
	testutil.DecodeJSON(t, w, &list)
	require.Len(t, list, 1)

	w = a.do(t, http.MethodGet, fmt.Sprintf("/categories?userId=%d", other.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = a.do(t, http.MethodPatch, path, "", `{"description": "Fades and trims"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated models.Category
	testutil.DecodeJSON(t, w, &updated)
	assert.Equal(t, "Haircuts", updated.Name)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "Fades and trims", *updated.Description)

	w = a.do(t, http.MethodDelete, fmt.Sprintf("%s?userId=%d", path, owner.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var deleted models.Category
	testutil.DecodeJSON(t, w, &deleted)
	assert.Equal(t, created.ID, deleted.ID)

	w = a.do(t, http.MethodGet, path, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCategories_BadInput(t *testing.T) {
	a := newTestApp(t)
	owner := testutil.CreateUser(t, a.db, testutil.UserFixture{})

	tests := []struct {
		name    string
		method  string
		path    string
		body    interface{}
		status  int
		message string
	}{
		{"non-numeric owner", http.MethodGet, "/categories?userId=abc", nil, http.StatusBadRequest, "Invalid userId"},
		{"zero owner", http.MethodGet, "/categories?userId=0", nil, http.StatusBadRequest, "Invalid userId"},
		{"negative owner", http.MethodGet, "/categories/1?userId=-4", nil, http.StatusBadRequest, "Invalid userId"},
		{"non-numeric id", http.MethodGet, "/categories/abc", nil, http.StatusBadRequest, ""},
		{"missing name", http.MethodPost, "/categories", map[string]interface{}{"userId": owner.ID}, http.StatusBadRequest, "Name is required"},
		{"missing owner", http.MethodPost, "/categories", map[string]interface{}{"name": "Nails"}, http.StatusBadRequest, "User id is required"},
		{"unknown field", http.MethodPost, "/categories", `{"name":"Nails","userId":1,"color":"red"}`, http.StatusBadRequest, ""},
		{"empty patch", http.MethodPatch, "/categories/1", `{}`, http.StatusBadRequest, "No valid fields to update"},
		{"blank name patch", http.MethodPatch, "/categories/1", `{"name":"  "}`, http.StatusBadRequest, "Name is required"},
		{"missing category", http.MethodDelete, "/categories/999", nil, http.StatusNotFound, "Category not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := a.do(t, tt.method, tt.path, "", tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
			if tt.message != "" {
				assert.Equal(t, tt.message, testutil.ErrorMessage(t, w))
			}
		})
	}
}

func TestRegisterLoginProfileFlow(t *testing.T) {
	a := newTestApp(t)

	register := map[string]string{
		"firstname": "Ann",
		"lastname":  "Lee",
		"email":     "ann@example.com",
		"phone":     "+7 700 000 0000",
		"password":  "super_password123",
	}
	w := a.do(t, http.MethodPost, "/api/register", "", register)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.JSONEq(t, `{"message":"User created"}`, w.Body.String())

	w = a.do(t, http.MethodPost, "/api/register", "", register)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "User already exists", testutil.ErrorMessage(t, w))

	w = a.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "ann@example.com", "password": "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid email or password", testutil.ErrorMessage(t, w))

	token := a.login(t, "ann@example.com", "super_password123")

	w = a.do(t, http.MethodGet, "/api/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = a.do(t, http.MethodGet, "/api/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var profile dto.ProfileEnvelope
	testutil.DecodeJSON(t, w, &profile)
	assert.Equal(t, "Ann", profile.User.FirstName)
	assert.Equal(t, "", profile.User.Image)

	w = a.do(t, http.MethodPatch, "/api/profile", token, `{"lastName":"Smith","image":null}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	testutil.DecodeJSON(t, w, &profile)
	assert.Equal(t, "Smith", profile.User.LastName)

	w = a.do(t, http.MethodPatch, "/api/profile", token, `{"firstName":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "First name is required", testutil.ErrorMessage(t, w))

	w = a.do(t, http.MethodPost, "/api/profile/password", token, map[string]string{"currentPassword": "nope-nope", "newPassword": "another-password"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Current password is incorrect", testutil.ErrorMessage(t, w))

	w = a.do(t, http.MethodPost, "/api/profile/password", token, map[string]string{"currentPassword": "super_password123", "newPassword": "another-password"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Password updated successfully"}`, w.Body.String())

	w = a.do(t, http.MethodPost, "/api/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = a.do(t, http.MethodGet, "/api/profile", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	a.login(t, "ann@example.com", "another-password")
}

func TestPasswordResetFlow(t *testing.T) {
	a := newTestApp(t)
	testutil.CreateUser(t, a.db, testutil.UserFixture{Email: "bob@example.com", Password: "bob-password", FirstName: "Bob"})

	w := a.do(t, http.MethodPost, "/api/auth/password-reset/request", "", map[string]string{"email": "nobody@example.com"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User not found", testutil.ErrorMessage(t, w))

	w = a.do(t, http.MethodPost, "/api/auth/password-reset/request", "", map[string]string{"email": "bob@example.com"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"message":"Reset link sent"}`, w.Body.String())

	sent := a.mailer.Last()
	require.NotNil(t, sent)
	idx := strings.Index(sent.Body, "token=")
	require.GreaterOrEqual(t, idx, 0)
	token := sent.Body[idx+len("token="):]

	w = a.do(t, http.MethodPost, "/api/auth/password-reset/confirm", "", map[string]string{"newPassword": "brand-new-password"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid or expired token", testutil.ErrorMessage(t, w))

	w = a.do(t, http.MethodPost, "/api/auth/password-reset/confirm", "", map[string]string{"token": token, "newPassword": "brand-new-password"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"message":"Password updated successfully"}`, w.Body.String())

	a.login(t, "bob@example.com", "brand-new-password")
}

func TestRateLimit_Login(t *testing.T) {
	a := newTestApp(t, func(cfg *config.Config) {
		cfg.RateLimit.RPS = 0.001
		cfg.RateLimit.Burst = 2
	})

	body := map[string]string{"email": "x@example.com", "password": "whatever1"}
	for i := 0; i < 2; i++ {
		w := a.do(t, http.MethodPost, "/api/auth/login", "", body)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	}
	w := a.do(t, http.MethodPost, "/api/auth/login", "", body)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// категории не ограничиваются
	w = a.do(t, http.MethodGet, "/categories", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func (a *testApp) loginFrom(t *testing.T, forwardedFor string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"x@example.com","password":"whatever1"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Forwarded-For", forwardedFor)

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimit_IgnoresForwardedForByDefault(t *testing.T) {
	a := newTestApp(t, func(cfg *config.Config) {
		cfg.RateLimit.RPS = 0.001
		cfg.RateLimit.Burst = 1
	})

	var codes []int
	for i := 1; i <= 5; i++ {
		codes = append(codes, a.loginFrom(t, fmt.Sprintf("10.0.0.%d", i)))
	}

	assert.Equal(t, []int{
		http.StatusUnauthorized,
		http.StatusTooManyRequests,
		http.StatusTooManyRequests,
		http.StatusTooManyRequests,
		http.StatusTooManyRequests,
	}, codes)
}

func TestRateLimit_TrustedProxyForwardedFor(t *testing.T) {
	a := newTestApp(t, func(cfg *config.Config) {
		cfg.RateLimit.RPS = 0.001
		cfg.RateLimit.Burst = 1
		// RemoteAddr httptest.NewRequest
		cfg.Server.TrustedProxies = []string{"192.0.2.1"}
	})

	assert.Equal(t, http.StatusUnauthorized, a.loginFrom(t, "10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, a.loginFrom(t, "10.0.0.1"))
	// за доверенным прокси у другого клиента свой лимит
	assert.Equal(t, http.StatusUnauthorized, a.loginFrom(t, "10.0.0.2"))
}

func TestSeedFirstAdmin(t *testing.T) {
	db := testutil.NewTestDB(t)
	cfg := config.Default()
	cfg.FirstAdminEmail = "admin@example.com"
	cfg.FirstAdminPassword = "admin-password"

	require.NoError(t, seedFirstAdmin(db, cfg))
	require.NoError(t, seedFirstAdmin(db, cfg))

	var admins []models.User
	require.NoError(t, db.Preload("Role").Where("email = ?", "admin@example.com").Find(&admins).Error)
	require.Len(t, admins, 1)
	assert.Equal(t, models.RoleNameAdmin, admins[0].RoleName())
	assert.True(t, admins[0].HasPassword())
}
