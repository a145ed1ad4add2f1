package dto

// LoginRequest carries the credentials for the configured user.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse returns the signed JWT.
type LoginResponse struct {
	Token string `json:"token"`
}
