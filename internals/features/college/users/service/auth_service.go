// file: internals/features/college/users/service/auth_service.go
package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"moulya_backend/internals/configs"
	academicsModel "moulya_backend/internals/features/college/academics/model"
	userModel "moulya_backend/internals/features/college/users/model"
	"moulya_backend/internals/middlewares/auth"
)

var ErrBadCredentials = errors.New("invalid username or password")

const tokenTTL = 12 * time.Hour

type AuthService struct {
	DB *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService { return &AuthService{DB: db} }

type LoginResult struct {
	Token     string
	ExpiresIn int
	Role      string
	UserID    int
	Name      string
}

// LoginManagement: cek akun tabel users, role management.
func (s *AuthService) LoginManagement(username, password string) (LoginResult, error) {
	var u userModel.UserModel
	err := s.DB.Where("lower(username) = lower(?) AND is_active = ?", strings.TrimSpace(username), true).
		Take(&u).Error
	if err == gorm.ErrRecordNotFound {
		return LoginResult{}, ErrBadCredentials
	}
	if err != nil {
		return LoginResult{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return LoginResult{}, ErrBadCredentials
	}
	return s.issue(u.UserID, auth.RoleManagement, u.FullName)
}

// LoginLecturer: cek akun tabel lecturers, role lecturer.
func (s *AuthService) LoginLecturer(username, password string) (LoginResult, error) {
	var l academicsModel.LecturerModel
	err := s.DB.Where("lower(username) = lower(?) AND is_active = ?", strings.TrimSpace(username), true).
		Take(&l).Error
	if err == gorm.ErrRecordNotFound {
		return LoginResult{}, ErrBadCredentials
	}
	if err != nil {
		return LoginResult{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(l.PasswordHash), []byte(password)) != nil {
		return LoginResult{}, ErrBadCredentials
	}
	return s.issue(l.LecturerID, auth.RoleLecturer, l.LecturerName)
}

func (s *AuthService) issue(userID int, role, name string) (LoginResult, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  float64(userID),
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(configs.JWTSecret))
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{
		Token:     signed,
		ExpiresIn: int(tokenTTL.Seconds()),
		Role:      role,
		UserID:    userID,
		Name:      name,
	}, nil
}
