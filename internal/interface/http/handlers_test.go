package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/fashion-studio/internal/application"
	"github.com/oksasatya/fashion-studio/internal/domain/store"
	"github.com/oksasatya/fashion-studio/internal/domain/user"
	"github.com/oksasatya/fashion-studio/internal/interface/middleware"
	"github.com/oksasatya/fashion-studio/pkg/helpers"
)

func init() {
	gin.SetMode(gin.TestMode)
	SetupBinding()
}

type memUsers struct {
	user.Repository
	items map[string]*user.User
}

func (r *memUsers) Create(_ context.Context, u *user.User) (string, error) {
	r.items[u.ID().Value()] = u.ClearDomainEvents()
	return u.ID().Value(), nil
}

func (r *memUsers) Update(_ context.Context, u *user.User) error {
	r.items[u.ID().Value()] = u.ClearDomainEvents()
	return nil
}

func (r *memUsers) FindByID(_ context.Context, id string) (*user.User, error) { return r.items[id], nil }

func (r *memUsers) Exists(_ context.Context, id string) (bool, error) {
	_, ok := r.items[id]
	return ok, nil
}

type envelope struct {
	Status  int             `json:"status"`
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    json.RawMessage `json:"meta"`
	Error   apiError        `json:"error"`
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type userAPI struct {
	engine *gin.Engine
	token  string
}

func newUserAPI(t *testing.T) userAPI {
	t.Helper()
	logger := quietLogger()
	svc := application.NewUserService(&memUsers{items: map[string]*user.User{}}, application.FanoutPublisher{}, logger)
	_, err := svc.Register(context.Background(), user.NewInput{ID: "user_1", FullName: "Rin Sato"})
	require.NoError(t, err)

	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	token, _, err := jwt.GenerateAccessToken("user_1")
	require.NoError(t, err)

	h := NewUserHandler(svc, logger)
	r := gin.New()
	r.Use(middleware.RequestIDMiddleware())
	auth := r.Group("/api", middleware.Auth(jwt))
	auth.GET("/me", h.GetProfile)
	auth.PUT("/me", h.UpdateProfile)
	auth.PUT("/me/status", h.SetStatus)
	auth.DELETE("/me", h.Delete)
	return userAPI{engine: r, token: token}
}

func (a userAPI) do(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func TestUserHandler_Profile(t *testing.T) {
	api := newUserAPI(t)

	w, env := api.do(t, http.MethodGet, "/api/me", "")
	require.Equal(t, http.StatusOK, w.Code)
	var rec user.Record
	require.NoError(t, json.Unmarshal(env.Data, &rec))
	assert.Equal(t, "Rin Sato", rec.FullName)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w, env = api.do(t, http.MethodPut, "/api/me", `{"full_name":"Rin Sato-Vale","locale":"ja"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &rec))
	assert.Equal(t, "Rin Sato-Vale", rec.FullName)
	assert.Equal(t, "ja", rec.Locale)

	w, _ = api.do(t, http.MethodPut, "/api/me", `{"full_name":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserHandler_StatusAndDelete(t *testing.T) {
	api := newUserAPI(t)

	w, env := api.do(t, http.MethodPut, "/api/me/status", `{"status":"SUSPENDED"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, user.CodeInsufficientPermissions, env.Error.Code)

	w, _ = api.do(t, http.MethodPut, "/api/me/status", `{"status":"INACTIVE"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = api.do(t, http.MethodDelete, "/api/me", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w, env = api.do(t, http.MethodGet, "/api/me", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, user.CodeNotFound, env.Error.Code)
}

func TestUserHandler_RequiresToken(t *testing.T) {
	api := newUserAPI(t)
	api.token = ""
	w, _ := api.do(t, http.MethodGet, "/api/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	api.token = "not-a-jwt"
	w, _ = api.do(t, http.MethodGet, "/api/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWriteError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"domain error", store.NewNotFoundError("store_1"), http.StatusNotFound, store.CodeNotFound},
		{"wrapped domain error", errors.Join(errors.New("load"), store.NewNotFoundError("store_1")), http.StatusNotFound, store.CodeNotFound},
		{"unknown error", errors.New("connection reset"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			writeError(c, quietLogger(), tc.err)

			assert.Equal(t, tc.status, w.Code)
			var env envelope
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
			assert.Equal(t, tc.code, env.Error.Code)
			assert.NotContains(t, w.Body.String(), "connection reset")
		})
	}
}

func TestBindingRejectsBadRequests(t *testing.T) {
	logger := quietLogger()
	r := gin.New()
	r.POST("/stores", (&StoreHandler{Logger: logger}).Create)
	r.POST("/stores/:storeId/assets", (&AssetHandler{Logger: logger, MaxBytes: 1 << 20}).Upload)
	r.GET("/stores/:storeId/models", (&ModelHandler{Logger: logger}).List)

	cases := []struct {
		name   string
		method string
		path   string
		body   string
		ctype  string
	}{
		{"store without name", http.MethodPost, "/stores", `{"description":"x"}`, "application/json"},
		{"malformed json", http.MethodPost, "/stores", `{"name":`, "application/json"},
		{"upload without file", http.MethodPost, "/stores/store_1/assets", "", "multipart/form-data; boundary=x"},
		{"bad sort order", http.MethodGet, "/stores/store_1/models?sort_order=sideways", "", ""},
		{"limit too large", http.MethodGet, "/stores/store_1/models?limit=10000", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, bytes.NewBufferString(tc.body))
			if tc.ctype != "" {
				req.Header.Set("Content-Type", tc.ctype)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestModelListRejectsUnknownStatus(t *testing.T) {
	r := gin.New()
	r.GET("/stores/:storeId/models", (&ModelHandler{Logger: quietLogger()}).List)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/stores/store_1/models?status=SLEEPING", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthHandler(t *testing.T) {
	okCheck := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("dial tcp: refused") }

	for _, tc := range []struct {
		name   string
		checks map[string]Check
		status int
	}{
		{"all up", map[string]Check{"postgres": okCheck, "redis": okCheck}, http.StatusOK},
		{"one down", map[string]Check{"postgres": okCheck, "redis": down}, http.StatusServiceUnavailable},
	} {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/health", NewHealthHandler(tc.checks).Health)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
			assert.Equal(t, tc.status, w.Code)
		})
	}
}
