package model

import (
	"time"
)

// StudentMarksModel: satu baris per (student, subject, assessment_type).
// percentage dan grade kolom turunan, dihitung ulang setiap tulis.
type StudentMarksModel struct {
	MarkID int `gorm:"primaryKey;autoIncrement;column:mark_id" json:"mark_id"`

	StudentID      int    `gorm:"not null;uniqueIndex:uq_marks_student_subject_assessment;column:student_id" json:"student_id"`
	SubjectID      int    `gorm:"not null;uniqueIndex:uq_marks_student_subject_assessment;column:subject_id" json:"subject_id"`
	LecturerID     int    `gorm:"not null;index;column:lecturer_id" json:"lecturer_id"`
	AssessmentType string `gorm:"size:20;not null;uniqueIndex:uq_marks_student_subject_assessment;column:assessment_type" json:"assessment_type"`

	MarksObtained float64 `gorm:"not null;column:marks_obtained" json:"marks_obtained"`
	MaxMarks      float64 `gorm:"not null;column:max_marks" json:"max_marks"`
	Percentage    float64 `gorm:"not null;default:0;column:percentage" json:"percentage"`
	Grade         string  `gorm:"size:2;column:grade" json:"grade"`

	Remarks        *string    `gorm:"size:200;column:remarks" json:"remarks,omitempty"`
	AssessmentDate *time.Time `gorm:"type:date;column:assessment_date" json:"assessment_date,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (StudentMarksModel) TableName() string { return "student_marks" }

const (
	AssessmentInternal1  = "internal1"
	AssessmentInternal2  = "internal2"
	AssessmentAssignment = "assignment"
	AssessmentProject    = "project"
)

// ValidAssessmentType: tipe di luar daftar ini ditolak di service.
func ValidAssessmentType(t string) bool {
	switch t {
	case AssessmentInternal1, AssessmentInternal2, AssessmentAssignment, AssessmentProject:
		return true
	}
	return false
}

// GradeFor memetakan persentase ke huruf. Batas bawah lulus 35.
func GradeFor(percentage float64) string {
	switch {
	case percentage >= 90:
		return "A+"
	case percentage >= 80:
		return "A"
	case percentage >= 70:
		return "B+"
	case percentage >= 60:
		return "B"
	case percentage >= 50:
		return "C+"
	case percentage >= 40:
		return "C"
	case percentage >= 35:
		return "D"
	default:
		return "F"
	}
}
