package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/neighborly/forum/internal/handler"
	"github.com/neighborly/forum/internal/middleware"
	"github.com/neighborly/forum/internal/notifier"
	"github.com/neighborly/forum/internal/repository"
	"github.com/neighborly/forum/internal/service"
	"github.com/neighborly/forum/internal/testutil"
	"github.com/neighborly/forum/pkg/logger"
)

const handlerTestSecret = "handler-suite-secret"

type AuthHandlerIntegrationTestSuite struct {
	suite.Suite
	testDB    *testutil.TestDatabase
	testRedis *testutil.TestRedis
	broker    *notifier.RedisBroker
	router    *gin.Engine
}

func (s *AuthHandlerIntegrationTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	logger.Init(false)

	s.testDB = testutil.SetupTestDatabase(s.T())
	s.testRedis = testutil.SetupTestRedis(s.T())

	broker, err := notifier.NewRedisBroker(s.testRedis.URL)
	s.Require().NoError(err)
	s.broker = broker

	userRepo := repository.NewUserRepository(s.testDB.DB)
	authService := service.NewAuthService(userRepo, broker, handlerTestSecret, time.Hour)
	authHandler := handler.NewAuthHandler(authService)

	s.router = gin.New()
	s.router.POST("/api/auth/register", authHandler.Register)
	s.router.POST("/api/auth/login", authHandler.Login)

	protected := s.router.Group("/api")
	protected.Use(middleware.AuthMiddleware(handlerTestSecret))
	protected.GET("/auth/profile", authHandler.Profile)
}

func (s *AuthHandlerIntegrationTestSuite) TearDownSuite() {
	s.broker.Close()
	s.testDB.Teardown(s.T())
	s.testRedis.Teardown(s.T())
}

func (s *AuthHandlerIntegrationTestSuite) SetupTest() {
	testutil.CleanDatabase(s.T(), s.testDB.DB)
}

func (s *AuthHandlerIntegrationTestSuite) postJSON(path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	bodyBytes, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func registerBody(username string) map[string]string {
	return map[string]string{
		"username":         username,
		"password":         "SecurePass123",
		"full_name":        "New Resident",
		"building_number":  "4",
		"apartment_number": "12",
	}
}

func (s *AuthHandlerIntegrationTestSuite) TestRegisterSuccess() {
	w := s.postJSON("/api/auth/register", registerBody("newuser"), nil)

	assert.Equal(s.T(), http.StatusCreated, w.Code)

	var response map[string]interface{}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Contains(s.T(), response["message"], "pending approval")
	assert.NotZero(s.T(), response["user_id"])
}

func (s *AuthHandlerIntegrationTestSuite) TestRegisterThenLoginBlockedUntilApproved() {
	w := s.postJSON("/api/auth/register", registerBody("newuser"), nil)
	s.Require().Equal(http.StatusCreated, w.Code)

	w = s.postJSON("/api/auth/login", map[string]string{
		"username": "newuser",
		"password": "SecurePass123",
	}, nil)

	assert.Equal(s.T(), http.StatusForbidden, w.Code)

	var response map[string]interface{}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Contains(s.T(), response["error"], "pending approval")
}

func (s *AuthHandlerIntegrationTestSuite) TestRegisterInvalidInput() {
	testCases := []struct {
		name     string
		mutate   func(map[string]string)
		expected string
	}{
		{
			name:     "missing_full_name",
			mutate:   func(body map[string]string) { body["full_name"] = "" },
			expected: "missing required field: full_name",
		},
		{
			name:     "short_password",
			mutate:   func(body map[string]string) { body["password"] = "short" },
			expected: "password must be at least 8 characters",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			body := registerBody("someuser")
			tc.mutate(body)

			w := s.postJSON("/api/auth/register", body, nil)

			assert.Equal(s.T(), http.StatusBadRequest, w.Code)

			var response map[string]interface{}
			s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
			assert.Contains(s.T(), response["error"], tc.expected)
		})
	}
}

func (s *AuthHandlerIntegrationTestSuite) TestRegisterDuplicateUsername() {
	testutil.CreateTestUser(s.T(), s.testDB.DB, "taken")

	w := s.postJSON("/api/auth/register", registerBody("taken"), nil)

	assert.Equal(s.T(), http.StatusConflict, w.Code)

	var response map[string]interface{}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Contains(s.T(), response["error"], "username already exists")
}

func (s *AuthHandlerIntegrationTestSuite) TestLoginSuccess() {
	testutil.CreateTestUser(s.T(), s.testDB.DB, "resident")

	w := s.postJSON("/api/auth/login", map[string]string{
		"username": "resident",
		"password": "Test123456",
	}, nil)

	assert.Equal(s.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(s.T(), "Login successful", response["message"])
	assert.NotEmpty(s.T(), response["access_token"])

	user := response["user"].(map[string]interface{})
	assert.Equal(s.T(), "resident", user["username"])
	assert.Equal(s.T(), false, user["is_admin"])
}

func (s *AuthHandlerIntegrationTestSuite) TestLoginInvalidCredentials() {
	testutil.CreateTestUser(s.T(), s.testDB.DB, "resident")

	w := s.postJSON("/api/auth/login", map[string]string{
		"username": "resident",
		"password": "WrongPass123",
	}, nil)

	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
}

func (s *AuthHandlerIntegrationTestSuite) TestLoginBannedUser() {
	testutil.CreateBannedUser(s.T(), s.testDB.DB, "bert")

	w := s.postJSON("/api/auth/login", map[string]string{
		"username": "bert",
		"password": "Test123456",
	}, nil)

	assert.Equal(s.T(), http.StatusForbidden, w.Code)

	var response map[string]interface{}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Contains(s.T(), response["error"], "banned")
}

func (s *AuthHandlerIntegrationTestSuite) TestProfileRequiresToken() {
	req, _ := http.NewRequest(http.MethodGet, "/api/auth/profile", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
}

func (s *AuthHandlerIntegrationTestSuite) TestProfileWithToken() {
	testutil.CreateTestUser(s.T(), s.testDB.DB, "resident")

	login := s.postJSON("/api/auth/login", map[string]string{
		"username": "resident",
		"password": "Test123456",
	}, nil)
	s.Require().Equal(http.StatusOK, login.Code)

	var loginResponse map[string]interface{}
	s.Require().NoError(json.Unmarshal(login.Body.Bytes(), &loginResponse))
	token := loginResponse["access_token"].(string)

	req, _ := http.NewRequest(http.MethodGet, "/api/auth/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusOK, w.Code)

	var profile map[string]interface{}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &profile))
	assert.Equal(s.T(), "resident", profile["username"])
	assert.Equal(s.T(), "4", profile["building_number"])
}

func TestAuthHandlerIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerIntegrationTestSuite))
}
