package model

import (
	"time"
)

type SubjectAssignmentModel struct {
	AssignmentID int `gorm:"primaryKey;autoIncrement;column:assignment_id" json:"assignment_id"`

	LecturerID   int `gorm:"not null;uniqueIndex:uq_assignments_lecturer_subject_year;column:lecturer_id" json:"lecturer_id"`
	SubjectID    int `gorm:"not null;uniqueIndex:uq_assignments_lecturer_subject_year;column:subject_id" json:"subject_id"`
	AcademicYear int `gorm:"not null;uniqueIndex:uq_assignments_lecturer_subject_year;column:academic_year" json:"academic_year"`

	IsActive bool `gorm:"not null;default:true;column:is_active" json:"is_active"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (SubjectAssignmentModel) TableName() string { return "subject_assignments" }
