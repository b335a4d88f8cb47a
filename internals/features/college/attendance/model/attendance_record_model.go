package model

import (
	"time"
)

// AttendanceRecordModel: granularitas harian (legacy/fallback).
// Bukan sumber agregat utama bila monthly summary sudah ada untuk periodenya.
type AttendanceRecordModel struct {
	AttendanceRecordID int `gorm:"primaryKey;autoIncrement;column:attendance_record_id" json:"attendance_record_id"`

	StudentID  int       `gorm:"not null;uniqueIndex:uq_attendance_student_subject_date;column:student_id" json:"student_id"`
	SubjectID  int       `gorm:"not null;uniqueIndex:uq_attendance_student_subject_date;column:subject_id" json:"subject_id"`
	LecturerID int       `gorm:"not null;index;column:lecturer_id" json:"lecturer_id"`
	Date       time.Time `gorm:"type:date;not null;uniqueIndex:uq_attendance_student_subject_date;column:date" json:"date"`

	Status  string  `gorm:"size:10;not null;column:status" json:"status"` // 'present' / 'absent'
	Remarks *string `gorm:"size:200;column:remarks" json:"remarks,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (AttendanceRecordModel) TableName() string { return "attendance_records" }

const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
)
