package models

// LoginRequest is the participant login payload. Identity is established by
// the excluded auth collaborator; the backend trusts the verified email.
type LoginRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// AdminLoginRequest is the password-backed admin login payload
type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the signed session token
type LoginResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
	Role  string `json:"role"`
}
