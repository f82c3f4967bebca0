package dto

import "time"

// CreateClientRequest body para POST /api/v1/clients.
type CreateClientRequest struct {
	Nombre    string `json:"nombre" validate:"required,notblank,max=200"`
	Rubro     string `json:"rubro" validate:"required,notblank,max=120"`
	Email     string `json:"email" validate:"required,notblank,email"`
	Telefono  string `json:"telefono" validate:"required,notblank,max=40"`
	Direccion string `json:"direccion,omitempty" validate:"omitempty,max=300"`
	Notas     string `json:"notas,omitempty" validate:"omitempty,max=4000"`
}

// UpdateClientRequest body para PUT /api/v1/clients: solo se validan y aplican los campos enviados.
type UpdateClientRequest struct {
	ID        string  `json:"id" validate:"required,uuid"`
	Nombre    *string `json:"nombre,omitempty" validate:"omitnil,notblank,max=200"`
	Rubro     *string `json:"rubro,omitempty" validate:"omitnil,notblank,max=120"`
	Email     *string `json:"email,omitempty" validate:"omitnil,notblank,email"`
	Telefono  *string `json:"telefono,omitempty" validate:"omitnil,notblank,max=40"`
	Direccion *string `json:"direccion,omitempty" validate:"omitnil,max=300"`
	Notas     *string `json:"notas,omitempty" validate:"omitnil,max=4000"`
}

// ClientResponse cliente en respuestas.
type ClientResponse struct {
	ID        string    `json:"id"`
	Nombre    string    `json:"nombre"`
	Rubro     string    `json:"rubro"`
	Email     string    `json:"email"`
	Telefono  string    `json:"telefono"`
	Direccion string    `json:"direccion,omitempty"`
	Notas     string    `json:"notas,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
