package auth

type SignupRequest struct {
	Name     string `form:"name" json:"name" binding:"required"`
	Email    string `form:"email" json:"email" binding:"required,email"`
	Phone    string `form:"phone" json:"phone"`
	Password string `form:"password" json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `form:"email" json:"email" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

type ForgotPasswordRequest struct {
	Email string `form:"email" json:"email" binding:"required"`
}

type ResetPasswordRequest struct {
	Password string `form:"password" json:"password" binding:"required"`
	Confirm  string `form:"confirm" json:"confirm" binding:"required"`
}
