package dto

import "time"

// RegisterRequest body para POST /api/auth/register.
type RegisterRequest struct {
	EscolaID string `json:"escola_id,omitempty"` // vazio apenas para super_admin
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// LoginRequest body para POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse representação pública de um usuário (sem hash de senha).
type UserResponse struct {
	ID        string    `json:"id"`
	EscolaID  string    `json:"escola_id,omitempty"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoginResponse token + usuário autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
