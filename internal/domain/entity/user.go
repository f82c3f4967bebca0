package entity

import "time"

// Roles válidos de sesión.
const (
	RoleAdmin  = "admin"
	RoleClient = "client"
)

// User cuenta con credenciales. Los clientes pueden tener cuenta (ClienteID) o entrar solo con código.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Nombre       string
	Role         string
	ClienteID    string
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
