package entity

import "time"

// Emisores posibles de un mensaje (coinciden con los roles de sesión).
const (
	SenderClient = "client"
	SenderAdmin  = "admin"
)

// Message mensaje del chat de un proyecto. Solo el destinatario lo marca como leído.
type Message struct {
	ID        string
	ProjectID string
	Sender    string
	Text      string
	Timestamp time.Time
	Read      bool
}

// Counterpart devuelve el otro extremo del chat: el destinatario de lo que envía role y,
// a la vez, el emisor de los mensajes que role puede marcar como leídos.
func Counterpart(role string) string {
	if role == SenderClient {
		return SenderAdmin
	}
	return SenderClient
}
