package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"learnhub/internal/entity"
	"learnhub/internal/usecase"
	"learnhub/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockCourseUseCase is a mock implementation of CourseUseCase
type MockCourseUseCase struct {
	mock.Mock
}

func (m *MockCourseUseCase) CreateCourse(input usecase.CourseInput) (*entity.Course, error) {
	args := m.Called(input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Course), args.Error(1)
}

func (m *MockCourseUseCase) GetCourse(courseID string) (*entity.Course, error) {
	args := m.Called(courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Course), args.Error(1)
}

func (m *MockCourseUseCase) ListCourses(limit, skip int) ([]*entity.Course, error) {
	args := m.Called(limit, skip)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Course), args.Error(1)
}

func (m *MockCourseUseCase) UpdateCourse(courseID string, input usecase.CourseUpdateInput) (*entity.Course, error) {
	args := m.Called(courseID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Course), args.Error(1)
}

func (m *MockCourseUseCase) DeleteCourse(courseID string) error {
	args := m.Called(courseID)
	return args.Error(0)
}

var _ usecase.CourseUseCase = (*MockCourseUseCase)(nil)

func TestCreateCourse_Success(t *testing.T) {
	mockUseCase := new(MockCourseUseCase)
	handler := NewCourseHandler(mockUseCase)

	router := setupTestRouter()
	router.POST("/courses", handler.CreateCourse)

	mockCourse := &entity.Course{
		ID:       "course-123",
		Title:    "Go for backend",
		Category: "NodeJS",
		Price:    49.99,
	}

	mockUseCase.On("CreateCourse", usecase.CourseInput{
		Title:    "Go for backend",
		Category: "NodeJS",
		Price:    49.99,
	}).Return(mockCourse, nil)

	body := `{"title":"Go for backend","category":"NodeJS","price":49.99}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/courses", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "success", response["status"])

	data := response["data"].(map[string]interface{})
	course := data["course"].(map[string]interface{})
	assert.Equal(t, "course-123", course["id"])

	mockUseCase.AssertExpectations(t)
}

func TestCreateCourse_ValidationErrors(t *testing.T) {
	mockUseCase := new(MockCourseUseCase)
	handler := NewCourseHandler(mockUseCase)

	router := setupTestRouter()
	router.POST("/courses", handler.CreateCourse)

	mockUseCase.On("CreateCourse", mock.Anything).Return(nil, apperror.Validation(
		"Title must be at least 5 characters long.",
		"Category must be one of the following: PHP, Java, UI/UX, .NET Development, NodeJS.",
	))

	body := `{"title":"Go","category":"Rust","price":10}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/courses", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "fail", response["status"])

	data := response["data"].(map[string]interface{})
	errs := data["errors"].([]interface{})
	assert.Len(t, errs, 2)

	mockUseCase.AssertExpectations(t)
}

func TestGetCourse_NotFound(t *testing.T) {
	mockUseCase := new(MockCourseUseCase)
	handler := NewCourseHandler(mockUseCase)

	router := setupTestRouter()
	router.GET("/courses/:id", handler.GetCourse)

	mockUseCase.On("GetCourse", "missing").Return(nil, apperror.NotFound("Course not found"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/courses/missing", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "Course not found", response["message"])

	mockUseCase.AssertExpectations(t)
}

func TestListCourses_Defaults(t *testing.T) {
	mockUseCase := new(MockCourseUseCase)
	handler := NewCourseHandler(mockUseCase)

	router := setupTestRouter()
	router.GET("/courses", handler.ListCourses)

	mockCourses := []*entity.Course{
		{ID: "course-1", Title: "Intro to PHP", Category: "PHP", Price: 10},
	}
	mockUseCase.On("ListCourses", 10, 0).Return(mockCourses, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/courses", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	data := response["data"].(map[string]interface{})
	courses := data["courses"].([]interface{})
	assert.Len(t, courses, 1)

	mockUseCase.AssertExpectations(t)
}

func TestUpdateCourse_Success(t *testing.T) {
	mockUseCase := new(MockCourseUseCase)
	handler := NewCourseHandler(mockUseCase)

	router := setupTestRouter()
	router.PATCH("/courses/:id", handler.UpdateCourse)

	price := 59.99
	mockCourse := &entity.Course{
		ID:       "course-123",
		Title:    "Go for backend",
		Category: "NodeJS",
		Price:    price,
	}

	mockUseCase.On("UpdateCourse", "course-123", usecase.CourseUpdateInput{
		Price: &price,
	}).Return(mockCourse, nil)

	body := `{"price":59.99}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PATCH", "/courses/course-123", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestDeleteCourse_NotFound(t *testing.T) {
	mockUseCase := new(MockCourseUseCase)
	handler := NewCourseHandler(mockUseCase)

	router := setupTestRouter()
	router.DELETE("/courses/:id", handler.DeleteCourse)

	mockUseCase.On("DeleteCourse", "missing").Return(apperror.NotFound("Course not found"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/courses/missing", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockUseCase.AssertExpectations(t)
}
