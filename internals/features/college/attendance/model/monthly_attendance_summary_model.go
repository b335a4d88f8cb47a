package model

import (
	"time"
)

// MonthlyAttendanceSummaryModel adalah record DELTA per (subject, lecturer, month, year):
// total_classes = kelas yang diadakan BULAN INI SAJA, bukan kumulatif.
// Penjumlahan delta lintas bulan menghasilkan kumulatif (lihat aggregator).
type MonthlyAttendanceSummaryModel struct {
	SummaryID int `gorm:"primaryKey;autoIncrement;column:summary_id" json:"summary_id"`

	SubjectID  int `gorm:"not null;uniqueIndex:uq_summary_subject_lecturer_month_year;column:subject_id" json:"subject_id"`
	LecturerID int `gorm:"not null;uniqueIndex:uq_summary_subject_lecturer_month_year;column:lecturer_id" json:"lecturer_id"`
	Month      int `gorm:"not null;uniqueIndex:uq_summary_subject_lecturer_month_year;column:month" json:"month"`
	Year       int `gorm:"not null;uniqueIndex:uq_summary_subject_lecturer_month_year;column:year" json:"year"`

	TotalClasses      int     `gorm:"not null;column:total_classes" json:"total_classes"`
	TotalStudents     int     `gorm:"not null;default:0;column:total_students" json:"total_students"`
	AverageAttendance float64 `gorm:"not null;default:0;column:average_attendance" json:"average_attendance"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (MonthlyAttendanceSummaryModel) TableName() string { return "monthly_attendance_summaries" }
