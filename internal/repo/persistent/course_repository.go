package persistent

import (
	"learnhub/internal/entity"
	"learnhub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CourseRepository interface {
	Create(course *entity.Course) error
	GetByID(id string) (*entity.Course, error)
	List(limit, skip int) ([]*entity.Course, error)
	Update(course *entity.Course) error
	Delete(id string) (int64, error)
}

type courseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) Create(course *entity.Course) error {
	courseModel := ToCourseModel(course)
	if courseModel.ID == "" {
		courseModel.ID = uuid.New().String()
	}
	if err := r.db.Create(courseModel).Error; err != nil {
		return err
	}
	*course = *ToCourseEntity(courseModel)
	return nil
}

func (r *courseRepository) GetByID(id string) (*entity.Course, error) {
	var courseModel model.CourseModel
	if err := r.db.Where("id = ?", id).First(&courseModel).Error; err != nil {
		return nil, err
	}
	return ToCourseEntity(&courseModel), nil
}

func (r *courseRepository) List(limit, skip int) ([]*entity.Course, error) {
	var courseModels []model.CourseModel
	if err := r.db.Order("created_at asc").Limit(limit).Offset(skip).Find(&courseModels).Error; err != nil {
		return nil, err
	}

	courses := make([]*entity.Course, len(courseModels))
	for i := range courseModels {
		courses[i] = ToCourseEntity(&courseModels[i])
	}
	return courses, nil
}

func (r *courseRepository) Update(course *entity.Course) error {
	courseModel := ToCourseModel(course)
	return r.db.Save(courseModel).Error
}

func (r *courseRepository) Delete(id string) (int64, error) {
	result := r.db.Where("id = ?", id).Delete(&model.CourseModel{})
	return result.RowsAffected, result.Error
}
