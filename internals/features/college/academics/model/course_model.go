package model

import (
	"time"
)

type CourseModel struct {
	CourseID   int       `gorm:"primaryKey;autoIncrement;column:course_id" json:"course_id"`
	CourseName string    `gorm:"size:100;not null;column:course_name" json:"course_name"`
	CourseCode string    `gorm:"size:20;not null;uniqueIndex:uq_courses_code;column:course_code" json:"course_code"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (CourseModel) TableName() string { return "courses" }
