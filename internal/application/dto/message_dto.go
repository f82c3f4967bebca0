package dto

import "time"

// CreateMessageRequest body para POST /api/v1/messages. Sender, si viene, debe coincidir con el rol de la sesión.
type CreateMessageRequest struct {
	ProjectID string `json:"project_id" validate:"required,uuid"`
	Sender    string `json:"sender,omitempty" validate:"omitempty,sender"`
	Text      string `json:"text" validate:"required,notblank,max=4000"`
}

// UpdateMessageRequest body para PUT /api/v1/messages.
type UpdateMessageRequest struct {
	ID   string  `json:"id" validate:"required,uuid"`
	Text *string `json:"text,omitempty" validate:"omitnil,notblank,max=4000"`
}

// MarkReadRequest body para POST /api/v1/messages/read.
type MarkReadRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,max=500,dive,uuid"`
}

// MarkReadResponse cantidad de mensajes que pasaron a leídos.
type MarkReadResponse struct {
	Updated int64 `json:"updated"`
}

// MessageResponse mensaje en respuestas.
type MessageResponse struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	Sender    string    `json:"sender"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	Read      bool      `json:"read"`
}
