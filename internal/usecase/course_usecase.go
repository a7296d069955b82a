package usecase

import (
	"errors"

	"learnhub/internal/entity"
	"learnhub/internal/repo/persistent"
	"learnhub/internal/validator"
	"learnhub/pkg/apperror"
	"learnhub/pkg/logger"

	"gorm.io/gorm"
)

type CourseInput struct {
	Title       string
	Description string
	Category    string
	Price       float64
}

type CourseUpdateInput struct {
	Title       *string
	Description *string
	Category    *string
	Price       *float64
}

type CourseUseCase interface {
	CreateCourse(input CourseInput) (*entity.Course, error)
	GetCourse(courseID string) (*entity.Course, error)
	ListCourses(limit, skip int) ([]*entity.Course, error)
	UpdateCourse(courseID string, input CourseUpdateInput) (*entity.Course, error)
	DeleteCourse(courseID string) error
}

type courseUseCase struct {
	courseRepo persistent.CourseRepository
	logger     *logger.Logger
}

func NewCourseUseCase(courseRepo persistent.CourseRepository, logger *logger.Logger) CourseUseCase {
	return &courseUseCase{
		courseRepo: courseRepo,
		logger:     logger,
	}
}

func (uc *courseUseCase) CreateCourse(input CourseInput) (*entity.Course, error) {
	if messages := validator.ValidateCourse(input.Title, input.Description, input.Category, input.Price); len(messages) > 0 {
		return nil, apperror.Validation(messages...)
	}

	course := &entity.Course{
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Price:       input.Price,
	}

	if err := uc.courseRepo.Create(course); err != nil {
		uc.logger.Error("Failed to create course: %v", err)
		return nil, apperror.Internal(err)
	}

	return course, nil
}

func (uc *courseUseCase) GetCourse(courseID string) (*entity.Course, error) {
	course, err := uc.courseRepo.GetByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Course not found")
		}
		return nil, apperror.Internal(err)
	}
	return course, nil
}

func (uc *courseUseCase) ListCourses(limit, skip int) ([]*entity.Course, error) {
	courses, err := uc.courseRepo.List(limit, skip)
	if err != nil {
		uc.logger.Error("Failed to list courses: %v", err)
		return nil, apperror.Internal(err)
	}
	return courses, nil
}

func (uc *courseUseCase) UpdateCourse(courseID string, input CourseUpdateInput) (*entity.Course, error) {
	if messages := validator.ValidateCourseUpdate(input.Title, input.Description, input.Category, input.Price); len(messages) > 0 {
		return nil, apperror.Validation(messages...)
	}

	course, err := uc.courseRepo.GetByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Course not found")
		}
		return nil, apperror.Internal(err)
	}

	if input.Title != nil {
		course.Title = *input.Title
	}
	if input.Description != nil {
		course.Description = *input.Description
	}
	if input.Category != nil {
		course.Category = *input.Category
	}
	if input.Price != nil {
		course.Price = *input.Price
	}

	if err := uc.courseRepo.Update(course); err != nil {
		uc.logger.Error("Failed to update course %s: %v", courseID, err)
		return nil, apperror.Internal(err)
	}

	return course, nil
}

func (uc *courseUseCase) DeleteCourse(courseID string) error {
	count, err := uc.courseRepo.Delete(courseID)
	if err != nil {
		uc.logger.Error("Failed to delete course %s: %v", courseID, err)
		return apperror.Internal(err)
	}
	if count == 0 {
		return apperror.NotFound("Course not found")
	}
	return nil
}
