package model

import (
	"time"
)

// StudentEnrollmentModel menentukan siapa saja yang dihitung dalam pool kehadiran
// sebuah subject. Satu baris per (student, subject); soft-deactivate via is_active.
type StudentEnrollmentModel struct {
	EnrollmentID int `gorm:"primaryKey;autoIncrement;column:enrollment_id" json:"enrollment_id"`

	StudentID int `gorm:"not null;uniqueIndex:uq_enrollments_student_subject;column:student_id" json:"student_id"`
	SubjectID int `gorm:"not null;uniqueIndex:uq_enrollments_student_subject;column:subject_id" json:"subject_id"`

	AcademicYear int  `gorm:"not null;column:academic_year" json:"academic_year"`
	IsActive     bool `gorm:"not null;default:true;column:is_active" json:"is_active"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (StudentEnrollmentModel) TableName() string { return "student_enrollments" }
