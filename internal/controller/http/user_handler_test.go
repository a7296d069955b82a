package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"learnhub/internal/entity"
	"learnhub/internal/usecase"
	"learnhub/pkg/apperror"
	"learnhub/pkg/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockUserUseCase is a mock implementation of UserUseCase
type MockUserUseCase struct {
	mock.Mock
}

func (m *MockUserUseCase) Register(input usecase.RegisterInput) (*entity.User, string, error) {
	args := m.Called(input)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*entity.User), args.String(1), args.Error(2)
}

func (m *MockUserUseCase) Login(email, password string) (string, error) {
	args := m.Called(email, password)
	return args.String(0), args.Error(1)
}

func (m *MockUserUseCase) Logout(ctx context.Context, token string, expiresAt time.Time) error {
	args := m.Called(ctx, token, expiresAt)
	return args.Error(0)
}

func (m *MockUserUseCase) GetUser(userID string) (*entity.User, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserUseCase) ListUsers(limit, skip int) ([]*entity.User, error) {
	args := m.Called(limit, skip)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.User), args.Error(1)
}

func (m *MockUserUseCase) UpdateProfile(userID string, input usecase.UpdateProfileInput) (*entity.User, error) {
	args := m.Called(userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserUseCase) DeleteUser(userID string) error {
	args := m.Called(userID)
	return args.Error(0)
}

var _ usecase.UserUseCase = (*MockUserUseCase)(nil)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestRegister_Success(t *testing.T) {
	mockUseCase := new(MockUserUseCase)
	handler := NewUserHandler(mockUseCase, t.TempDir())

	router := setupTestRouter()
	router.POST("/users/register", handler.Register)

	mockUser := &entity.User{
		ID:             "user-123",
		Username:       "student1",
		Email:          "student1@example.com",
		Role:           entity.RoleStudent,
		ProfilePicture: entity.DefaultProfilePicture,
	}

	mockUseCase.On("Register", usecase.RegisterInput{
		Username: "student1",
		Email:    "student1@example.com",
		Password: "Passw0rd!x",
	}).Return(mockUser, "signed-token", nil)

	body := `{"username":"student1","email":"student1@example.com","password":"Passw0rd!x"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/users/register", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "success", response["status"])

	data := response["data"].(map[string]interface{})
	assert.Equal(t, "signed-token", data["token"])

	user := data["user"].(map[string]interface{})
	assert.Equal(t, entity.DefaultProfilePicture, user["profilePicture"])

	mockUseCase.AssertExpectations(t)
}

func TestRegister_Conflict(t *testing.T) {
	mockUseCase := new(MockUserUseCase)
	handler := NewUserHandler(mockUseCase, t.TempDir())

	router := setupTestRouter()
	router.POST("/users/register", handler.Register)

	mockUseCase.On("Register", mock.Anything).
		Return(nil, "", apperror.Conflict("User or Email already exists"))

	body := `{"username":"student1","email":"student1@example.com","password":"Passw0rd!x"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/users/register", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "fail", response["status"])
	assert.Equal(t, "User or Email already exists", response["message"])

	mockUseCase.AssertExpectations(t)
}

func TestRegister_ValidationErrors(t *testing.T) {
	mockUseCase := new(MockUserUseCase)
	handler := NewUserHandler(mockUseCase, t.TempDir())

	router := setupTestRouter()
	router.POST("/users/register", handler.Register)

	mockUseCase.On("Register", mock.Anything).
		Return(nil, "", apperror.Validation("Username is required.", "Email is required."))

	body := `{"password":"Passw0rd!x"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/users/register", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "fail", response["status"])

	data := response["data"].(map[string]interface{})
	errs := data["errors"].([]interface{})
	assert.Len(t, errs, 2)
	assert.Equal(t, "Username is required.", errs[0])

	mockUseCase.AssertExpectations(t)
}

func TestLogin_Success(t *testing.T) {
	mockUseCase := new(MockUserUseCase)
	handler := NewUserHandler(mockUseCase, t.TempDir())

	router := setupTestRouter()
	router.POST("/users/login", handler.Login)

	mockUseCase.On("Login", "student1@example.com", "Passw0rd!x").Return("signed-token", nil)

	body := `{"email":"student1@example.com","password":"Passw0rd!x"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/users/login", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "signed-token", data["token"])

	mockUseCase.AssertExpectations(t)
}

func TestLogin_InvalidPassword(t *testing.T) {
	mockUseCase := new(MockUserUseCase)
	handler := NewUserHandler(mockUseCase, t.TempDir())

	router := setupTestRouter()
	router.POST("/users/login", handler.Login)

	mockUseCase.On("Login", "student1@example.com", "wrong").
		Return("", apperror.Unauthorized("Invalid password"))

	body := `{"email":"student1@example.com","password":"wrong"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/users/login", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "fail", response["status"])
	assert.Equal(t, "Invalid password", response["message"])

	mockUseCase.AssertExpectations(t)
}

func TestLogin_UserNotFound(t *testing.T) {
	mockUseCase := new(MockUserUseCase)
	handler := NewUserHandler(mockUseCase, t.TempDir())

	router := setupTestRouter()
	router.POST("/users/login", handler.Login)

	mockUseCase.On("Login", "ghost@example.com", "Passw0rd!x").
		Return("", apperror.NotFound("User not found"))

	body := `{"email":"ghost@example.com","password":"Passw0rd!x"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/users/login", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestLogout_Success(t *testing.T) {
	mockUseCase := new(MockUserUseCase)
	handler := NewUserHandler(mockUseCase, t.TempDir())

	exp := time.Now().Add(time.Hour).Truncate(time.Second)

	router := setupTestRouter()
	router.POST("/users/logout", func(c *gin.Context) {
		c.Set(middleware.ContextToken, "signed-token")
		c.Set(middleware.ContextTokenExp, exp)
		handler.Logout(c)
	})

	mockUseCase.On("Logout", mock.Anything, "signed-token", exp).Return(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/users/logout", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestUpdateProfile_OtherUser(t *testing.T) {
	mockUseCase := new(MockUserUseCase)
	handler := NewUserHandler(mockUseCase, t.TempDir())

	router := setupTestRouter()
	router.PATCH("/users/:id", func(c *gin.Context) {
		c.Set(middleware.ContextUserID, "user-123")
		handler.UpdateProfile(c)
	})

	body := `{"username":"newname"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PATCH", "/users/user-456", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "fail", response["status"])
	assert.Equal(t, "You can only update your own profile", response["message"])

	// The use case must not be reached when ownership fails.
	mockUseCase.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything)
}

func TestUpdateProfile_Success(t *testing.T) {
	mockUseCase := new(MockUserUseCase)
	handler := NewUserHandler(mockUseCase, t.TempDir())

	router := setupTestRouter()
	router.PATCH("/users/:id", func(c *gin.Context) {
		c.Set(middleware.ContextUserID, "user-123")
		handler.UpdateProfile(c)
	})

	username := "newname"
	mockUser := &entity.User{
		ID:       "user-123",
		Username: username,
		Email:    "student1@example.com",
		Role:     entity.RoleStudent,
	}

	mockUseCase.On("UpdateProfile", "user-123", usecase.UpdateProfileInput{
		Username: &username,
	}).Return(mockUser, nil)

	body := `{"username":"newname"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PATCH", "/users/user-123", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	data := response["data"].(map[string]interface{})
	user := data["user"].(map[string]interface{})
	assert.Equal(t, "newname", user["username"])

	mockUseCase.AssertExpectations(t)
}

func TestGetUser_NotFound(t *testing.T) {
	mockUseCase := new(MockUserUseCase)
	handler := NewUserHandler(mockUseCase, t.TempDir())

	router := setupTestRouter()
	router.GET("/users/:id", handler.GetUser)

	mockUseCase.On("GetUser", "missing").Return(nil, apperror.NotFound("User not found"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/users/missing", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "User not found", response["message"])

	mockUseCase.AssertExpectations(t)
}

func TestListUsers_Pagination(t *testing.T) {
	mockUseCase := new(MockUserUseCase)
	handler := NewUserHandler(mockUseCase, t.TempDir())

	router := setupTestRouter()
	router.GET("/users", handler.ListUsers)

	mockUseCase.On("ListUsers", 5, 10).Return([]*entity.User{}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/users?limit=5&page=3", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestDeleteUser_NotFound(t *testing.T) {
	mockUseCase := new(MockUserUseCase)
	handler := NewUserHandler(mockUseCase, t.TempDir())

	router := setupTestRouter()
	router.DELETE("/users/:id", handler.DeleteUser)

	mockUseCase.On("DeleteUser", "missing").Return(apperror.NotFound("User not found"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/users/missing", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockUseCase.AssertExpectations(t)
}
