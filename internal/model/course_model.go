package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CourseModel struct {
	ID          string         `gorm:"type:uuid;primary_key" json:"id"`
	Title       string         `gorm:"type:varchar(50);not null" json:"title"`
	Description string         `gorm:"type:varchar(500)" json:"description"`
	Category    string         `gorm:"type:varchar(50);not null" json:"category"`
	Price       float64        `gorm:"not null" json:"price"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (CourseModel) TableName() string {
	return "courses"
}

func (c *CourseModel) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}
