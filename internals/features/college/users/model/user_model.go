package model

import (
	"time"
)

// UserModel: akun management (admin kampus). Akun lecturer hidup di tabel
// lecturers, bukan di sini.
type UserModel struct {
	UserID       int    `gorm:"primaryKey;autoIncrement;column:user_id" json:"user_id"`
	FullName     string `gorm:"size:100;not null;column:full_name" json:"full_name"`
	Username     string `gorm:"size:50;not null;uniqueIndex:uq_users_username;column:username" json:"username"`
	PasswordHash string `gorm:"size:255;not null;column:password_hash" json:"-"`
	IsActive     bool   `gorm:"not null;default:true;column:is_active" json:"is_active"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (UserModel) TableName() string { return "users" }
