package model

import (
	"time"
)

type LecturerModel struct {
	LecturerID   int    `gorm:"primaryKey;autoIncrement;column:lecturer_id" json:"lecturer_id"`
	LecturerName string `gorm:"size:100;not null;column:lecturer_name" json:"lecturer_name"`
	Username     string `gorm:"size:50;not null;uniqueIndex:uq_lecturers_username;column:username" json:"username"`
	PasswordHash string `gorm:"size:255;not null;column:password_hash" json:"-"`
	IsActive     bool   `gorm:"not null;default:true;column:is_active" json:"is_active"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (LecturerModel) TableName() string { return "lecturers" }
