// file: internals/features/college/users/dto/auth_dto.go
package dto

type LoginRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"` // detik
	Role        string `json:"role"`
	UserID      int    `json:"user_id"`
	Name        string `json:"name"`
}
