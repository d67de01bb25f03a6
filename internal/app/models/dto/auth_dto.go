package dto

// SignupRequest is the signup form. Emptiness is re-checked after trimming
// by the auth service.
type SignupRequest struct {
	Name     string `form:"name" binding:"required,notblank"`
	Email    string `form:"email" binding:"required,notblank"`
	Password string `form:"password" binding:"required"`
}

// LoginRequest is the login form.
type LoginRequest struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}
