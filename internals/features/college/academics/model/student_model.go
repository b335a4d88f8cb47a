package model

import (
	"time"
)

type StudentModel struct {
	StudentID    int    `gorm:"primaryKey;autoIncrement;column:student_id" json:"student_id"`
	StudentName  string `gorm:"size:100;not null;column:student_name" json:"student_name"`
	RollNumber   string `gorm:"size:30;not null;uniqueIndex:uq_students_roll_number;column:roll_number" json:"roll_number"`
	CourseID     int    `gorm:"not null;column:course_id" json:"course_id"`
	AcademicYear int    `gorm:"not null;column:academic_year" json:"academic_year"`
	IsActive     bool   `gorm:"not null;default:true;column:is_active" json:"is_active"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (StudentModel) TableName() string { return "students" }
