package dto

import "time"

// CreateUserRequest entrada para crear un usuario (password en texto, se hashea en use case).
type CreateUserRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	Nombre    string `json:"nombre" validate:"required,notblank,max=200"`
	Rol       string `json:"rol" validate:"required,role"`
	ClienteID string `json:"cliente_id,omitempty" validate:"omitempty,uuid"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Nombre    string    `json:"nombre"`
	Rol       string    `json:"rol"`
	ClienteID string    `json:"cliente_id,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginRequest entrada para POST /api/v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AccesoRequest entrada para POST /api/v1/auth/acceso: el cliente canjea el código de su proyecto.
type AccesoRequest struct {
	Codigo string `json:"codigo" validate:"required,projectcode"`
}

// SessionTokens par de tokens emitidos al iniciar o refrescar sesión.
type SessionTokens struct {
	AccessToken  string `json:"-"`
	RefreshToken string `json:"-"`
}

// SessionResponse identidad de la sesión activa (GET /auth/me, login, acceso).
type SessionResponse struct {
	UserID    string `json:"user_id,omitempty"`
	Rol       string `json:"rol"`
	ProjectID string `json:"project_id,omitempty"`
}
