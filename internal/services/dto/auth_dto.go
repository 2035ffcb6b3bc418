package dto

type RegisterRequest struct {
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=6"`
	Name           string `json:"name" validate:"required,min=2,max=100"`
	Phone          string `json:"phone" validate:"omitempty,max=30"`
	IsProfessional bool   `json:"is_professional"`

	// Заполняется только при регистрации исполнителя
	Profession string `json:"profession" validate:"omitempty,max=100"`
	Category   string `json:"category" validate:"omitempty,max=100"`
	City       string `json:"city" validate:"omitempty,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
