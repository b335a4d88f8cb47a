package model

import (
	"time"
)

type SubjectModel struct {
	SubjectID   int    `gorm:"primaryKey;autoIncrement;column:subject_id" json:"subject_id"`
	SubjectName string `gorm:"size:100;not null;column:subject_name" json:"subject_name"`

	// ✅ unik per course selama masih aktif (dijaga di service, bukan constraint DB,
	// karena subject nonaktif boleh memakai kode yang sama)
	SubjectCode string `gorm:"size:20;not null;index:idx_subjects_code_course;column:subject_code" json:"subject_code"`
	CourseID    int    `gorm:"not null;index:idx_subjects_code_course;column:course_id" json:"course_id"`

	Year     int  `gorm:"not null;column:year" json:"year"`
	Semester int  `gorm:"not null;column:semester" json:"semester"`
	IsActive bool `gorm:"not null;default:true;column:is_active" json:"is_active"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (SubjectModel) TableName() string { return "subjects" }
