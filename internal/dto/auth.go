package dto

// LoginRequest carries the credentials for password login. The backend
// auto-registers unknown emails, so there is no separate register request.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginResponse is returned on successful login or registration.
type LoginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Token   string `json:"token"`
	UID     string `json:"uid"`
}
