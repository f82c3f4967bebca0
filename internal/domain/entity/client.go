package entity

import "time"

// Client representa un cliente de la agencia (dueño de uno o más proyectos).
type Client struct {
	ID        string
	Nombre    string
	Rubro     string // industria o sector
	Email     string
	Telefono  string
	Direccion string
	Notas     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
