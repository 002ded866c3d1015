package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/crypto/bcrypt"

	"shopapi/internal/auth"
	"shopapi/internal/config"
	"shopapi/internal/handler"
	"shopapi/internal/metrics"
	"shopapi/internal/repository"
	"shopapi/internal/service"
)

type testServer struct {
	e      *echo.Echo
	fs     afero.Fs
	stores *repository.Stores
	hasher auth.PasswordHasher
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	return newTestServerWith(t, afero.NewMemMapFs(), zap.NewNop())
}

func newTestServerWith(t *testing.T, fsys afero.Fs, logger *zap.Logger) *testServer {
	t.Helper()
	cfg := &config.Config{AdminRole: "admin"}
	stores, err := repository.OpenFileStores(fsys, "data/user.json", "data/product.json")
	require.NoError(t, err)

	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	tokens := auth.NewJWTService("test-secret", 0)
	policy := auth.NewPolicy(cfg.AdminRole)

	e := echo.New()
	Register(e, cfg, Handlers{
		Auth:     handler.NewAuthHandler(service.NewAuthService(stores.Users, hasher, tokens, logger)),
		Users:    handler.NewUserHandler(service.NewUserService(stores.Users, hasher, policy, nil, logger)),
		Products: handler.NewProductHandler(service.NewProductService(stores.Products, policy, nil, logger)),
	}, tokens, logger, metrics.New())

	return &testServer{e: e, fs: fsys, stores: stores, hasher: hasher}
}

func (s *testServer) do(t *testing.T, method, path, token, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 && bytes.HasPrefix(bytes.TrimSpace(rec.Body.Bytes()), []byte("{")) {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec.Code, out
}

func (s *testServer) register(t *testing.T, email, password string) int {
	t.Helper()
	code, body := s.do(t, http.MethodPost, "/users/register", "",
		`{"email":"`+email+`","password":"`+password+`","password_confirmation":"`+password+`"}`)
	require.Equal(t, http.StatusCreated, code, body)
	return int(body["user"].(map[string]any)["id"].(float64))
}

func (s *testServer) login(t *testing.T, email, password string) string {
	t.Helper()
	code, body := s.do(t, http.MethodPost, "/login", "", `{"email":"`+email+`","password":"`+password+`"}`)
	require.Equal(t, http.StatusOK, code, body)
	return body["token"].(string)
}

func (s *testServer) seedAdmin(t *testing.T) string {
	t.Helper()
	_, _, err := service.EnsureAdmin(context.Background(), s.stores.Users, s.hasher, "root@x.com", "rootpw", "admin")
	require.NoError(t, err)
	return s.login(t, "root@x.com", "rootpw")
}

func TestRegisterAndLogin(t *testing.T) {
	s := newTestServer(t)

	code, body := s.do(t, http.MethodPost, "/users/register", "", `{"email":"a@x.com","password":"p1","password_confirmation":"p1"}`)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "User created successfully", body["message"])
	user := body["user"].(map[string]any)
	assert.Equal(t, float64(1), user["id"])
	assert.Equal(t, "user", user["role"])
	assert.NotContains(t, user, "password")

	code, body = s.do(t, http.MethodPost, "/users/register", "", `{"email":"a@x.com","password":"p1","password_confirmation":"p1"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Email already exists", body["message"])

	users, err := s.stores.Users.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 1)

	code, body = s.do(t, http.MethodPost, "/login", "", `{"email":"a@x.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "email or password is incorrect", body["message"])

	token := s.login(t, "a@x.com", "p1")
	code, body = s.do(t, http.MethodGet, "/users", token, "")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Unauthorized", body["message"])
}

func TestRegister_RejectsBadInput(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"missing confirmation", `{"email":"a@x.com","password":"p1"}`, "All fields are required"},
		{"mismatch", `{"email":"a@x.com","password":"p1","password_confirmation":"p2"}`, "Password and password confirmation does not match"},
		{"malformed json", `{"email":`, "Invalid request body."},
		{"unterminated object", `{`, "Invalid request body."},
		{"wrong type", `{"email":1,"password":"p1","password_confirmation":"p1"}`, "Invalid request body."},
		{"array body", `["a@x.com"]`, "Invalid request body."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := s.do(t, http.MethodPost, "/users/register", "", tt.body)
			assert.Equal(t, http.StatusBadRequest, code)
			assert.Equal(t, tt.message, body["message"])
		})
	}
}

func TestLogin_RejectsBadInput(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "a@x.com", "p1")

	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"missing password", `{"email":"a@x.com"}`, "All fields are required"},
		{"unterminated object", `{`, "Invalid request body."},
		{"wrong type", `{"email":1,"password":"p1"}`, "Invalid request body."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := s.do(t, http.MethodPost, "/login", "", tt.body)
			assert.Equal(t, http.StatusBadRequest, code)
			assert.Equal(t, tt.message, body["message"])
		})
	}
}

func TestUpdateUser_AuthorizesBeforeReadingBody(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "alice@x.com", "pw")
	s.register(t, "bob@x.com", "pw")
	alice := s.login(t, "alice@x.com", "pw")
	bob := s.login(t, "bob@x.com", "pw")

	tests := []struct {
		name    string
		token   string
		body    string
		code    int
		message string
	}{
		{"foreign caller with malformed body", bob, `{not json`, http.StatusUnauthorized, "unauthorized"},
		{"foreign caller with mistyped body", bob, `{"email":1}`, http.StatusUnauthorized, "unauthorized"},
		{"owner with malformed body", alice, `{not json`, http.StatusBadRequest, "Invalid request body."},
		{"owner with mistyped body", alice, `{"email":1,"password":"a","password_confirmation":"a"}`, http.StatusBadRequest, "Invalid request body."},
		{"owner with empty body", alice, ``, http.StatusBadRequest, "all fields are required."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := s.do(t, http.MethodPut, "/users/1", tt.token, tt.body)
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.message, body["message"])
		})
	}
}

func TestUserRoutes(t *testing.T) {
	s := newTestServer(t)
	aliceID := s.register(t, "alice@x.com", "pw")
	bobID := s.register(t, "bob@x.com", "pw")
	alice := s.login(t, "alice@x.com", "pw")
	bob := s.login(t, "bob@x.com", "pw")
	admin := s.seedAdmin(t)

	code, body := s.do(t, http.MethodGet, "/users", "", "")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Unauthorized access", body["message"])

	code, body = s.do(t, http.MethodGet, "/users", admin, "")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["users"], 3)

	code, body = s.do(t, http.MethodGet, "/users/1", alice, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "alice@x.com", body["user"].(map[string]any)["email"])

	code, body = s.do(t, http.MethodGet, "/users/2", alice, "")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Unauthorized", body["message"])

	code, _ = s.do(t, http.MethodGet, "/users/abc", alice, "")
	assert.Equal(t, http.StatusUnauthorized, code)
	code, body = s.do(t, http.MethodGet, "/users/abc", admin, "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "User not found.", body["message"])

	code, body = s.do(t, http.MethodPut, "/users/2", alice, `{"email":"x@x.com","password":"a","password_confirmation":"a"}`)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "unauthorized", body["message"])

	code, body = s.do(t, http.MethodPut, "/users/1", alice, `{"email":"bob@x.com","password":"a","password_confirmation":"a"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "email is already exist.", body["message"])

	code, body = s.do(t, http.MethodPut, "/users/1", alice, `{"email":"alice2@x.com","password":"new","password_confirmation":"new"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "User updated successfully", body["message"])
	s.login(t, "alice2@x.com", "new")

	code, body = s.do(t, http.MethodDelete, "/users/99", admin, "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "User not found", body["message"])

	code, body = s.do(t, http.MethodDelete, "/users/2", bob, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "User deleted successfully", body["message"])
	assert.Equal(t, 1, aliceID)
	assert.Equal(t, 2, bobID)

	// ids are not reused after a delete
	assert.Equal(t, 4, s.register(t, "carol@x.com", "pw"))
}

func TestProductRoutes(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "alice@x.com", "pw")
	s.register(t, "bob@x.com", "pw")
	alice := s.login(t, "alice@x.com", "pw")
	bob := s.login(t, "bob@x.com", "pw")
	pen := `{"product_name":"Pen","product_description":"Blue pen","product_price":1.5,"product_tag":["office"]}`

	code, body := s.do(t, http.MethodPost, "/products", "", pen)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Unauthorized access", body["message"])

	code, body = s.do(t, http.MethodPost, "/products", alice, pen)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "Product added successfully", body["message"])
	product := body["product"].(map[string]any)
	assert.Equal(t, float64(1), product["id"])
	assert.Equal(t, float64(1), product["owner_id"])
	assert.Equal(t, 1.5, product["product_price"])
	assert.Equal(t, []any{"office"}, product["product_tag"])

	code, body = s.do(t, http.MethodGet, "/products/1", "", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, product, body["product"])

	code, body = s.do(t, http.MethodGet, "/products", "", "")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["products"], 1)

	code, body = s.do(t, http.MethodPut, "/products/1", bob, pen)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Unauthorized update", body["message"])

	code, body = s.do(t, http.MethodPut, "/products/1", alice, `{"product_name":"Pen","product_description":"Blue pen","product_price":"free","product_tag":["office"]}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Product price must be a decimal number.", body["message"])

	code, body = s.do(t, http.MethodPut, "/products/1", alice, `{"product_name":"Red pen","product_description":"Red","product_price":2,"product_tag":[]}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Product updated successfully", body["message"])

	code, body = s.do(t, http.MethodDelete, "/products/9999", alice, "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "product not found", body["message"])

	code, body = s.do(t, http.MethodDelete, "/products/1", bob, "")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "unauthorized deletion", body["message"])

	code, body = s.do(t, http.MethodDelete, "/products/1", alice, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "product deleted successfully", body["message"])

	code, body = s.do(t, http.MethodGet, "/products/1", "", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "product not found.", body["message"])

	code, body = s.do(t, http.MethodGet, "/products/abc", "", "")
	assert.Equal(t, http.StatusNotFound, code)

	code, body = s.do(t, http.MethodPost, "/products", alice, `[1,2]`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid request body.", body["message"])
}

func TestProductsFileLayout(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "alice@x.com", "pw")
	alice := s.login(t, "alice@x.com", "pw")

	code, _ := s.do(t, http.MethodPost, "/products", alice, `{"product_name":"Pen","product_description":"Blue pen","product_price":1.5,"product_tag":["office"]}`)
	require.Equal(t, http.StatusCreated, code)

	data, err := afero.ReadFile(s.fs, "data/product.json")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1,"product_name":"Pen","product_description":"Blue pen","product_price":1.5,"product_tag":["office"],"owner_id":1}]`, string(data))
}

func TestOperationalRoutes(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	rec = httptest.NewRecorder()
	s.e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "shopapi_http_requests_total")
}

func TestRequestLogger_LevelsByErrorKind(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	s := newTestServerWith(t, afero.NewReadOnlyFs(afero.NewMemMapFs()), zap.New(core))

	code, _ := s.do(t, http.MethodPost, "/users/register", "", `{"email":"a@x.com","password":"p1","password_confirmation":"p1"}`)
	require.Equal(t, http.StatusInternalServerError, code)

	failed := logs.FilterMessage("request failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, zapcore.ErrorLevel, failed[0].Level)
	assert.Equal(t, "persistence", failed[0].ContextMap()["error_kind"])

	code, _ = s.do(t, http.MethodGet, "/products/7", "", "")
	require.Equal(t, http.StatusNotFound, code)

	rejected := logs.FilterMessage("request rejected").All()
	require.Len(t, rejected, 1)
	assert.Equal(t, "not_found", rejected[0].ContextMap()["error_kind"])

	code, _ = s.do(t, http.MethodGet, "/users", "", "")
	require.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, 1, logs.FilterMessage("request denied").Len())
}
