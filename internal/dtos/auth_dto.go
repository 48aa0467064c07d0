package dtos

type LoginInput struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}
