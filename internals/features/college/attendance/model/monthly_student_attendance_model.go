package model

import (
	"time"
)

// MonthlyStudentAttendanceModel: delta kehadiran per siswa per bulan.
// present_count = kelas yang dihadiri bulan itu (dari total_classes bulan itu).
// deputation_count = izin resmi yang dihitung hadir untuk persentase; dicatat
// terpisah supaya bisa diaudit dan tidak tersentuh koreksi delta.
type MonthlyStudentAttendanceModel struct {
	MonthlyStudentAttendanceID int `gorm:"primaryKey;autoIncrement;column:monthly_student_attendance_id" json:"monthly_student_attendance_id"`

	StudentID  int `gorm:"not null;uniqueIndex:uq_student_attendance_unique;column:student_id" json:"student_id"`
	SubjectID  int `gorm:"not null;uniqueIndex:uq_student_attendance_unique;column:subject_id" json:"subject_id"`
	LecturerID int `gorm:"not null;uniqueIndex:uq_student_attendance_unique;column:lecturer_id" json:"lecturer_id"`
	Month      int `gorm:"not null;uniqueIndex:uq_student_attendance_unique;column:month" json:"month"`
	Year       int `gorm:"not null;uniqueIndex:uq_student_attendance_unique;column:year" json:"year"`

	PresentCount    int `gorm:"not null;default:0;column:present_count" json:"present_count"`
	DeputationCount int `gorm:"not null;default:0;column:deputation_count" json:"deputation_count"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (MonthlyStudentAttendanceModel) TableName() string { return "monthly_student_attendances" }
