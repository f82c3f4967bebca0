package dto

// CreateMeetingRequest body para POST /api/v1/meetings.
type CreateMeetingRequest struct {
	ProyectoID  string   `json:"proyecto_id" validate:"required,uuid"`
	Titulo      string   `json:"titulo" validate:"required,notblank,max=200"`
	Fecha       string   `json:"fecha" validate:"required,datetime=2006-01-02"`
	Hora        string   `json:"hora" validate:"required,datetime=15:04"`
	Duracion    int      `json:"duracion" validate:"required,gt=0,lte=1440"`
	Tipo        string   `json:"tipo" validate:"required,meetingtype"`
	Estado      string   `json:"estado,omitempty" validate:"omitempty,meetingstatus"`
	Asistentes  []string `json:"asistentes,omitempty" validate:"omitempty,dive,notblank"`
	Notas       string   `json:"notas,omitempty" validate:"omitempty,max=4000"`
	LinkReunion string   `json:"link_reunion,omitempty" validate:"optionalurl"`
}

// UpdateMeetingRequest body para PUT /api/v1/meetings.
type UpdateMeetingRequest struct {
	ID          string    `json:"id" validate:"required,uuid"`
	Titulo      *string   `json:"titulo,omitempty" validate:"omitnil,notblank,max=200"`
	Fecha       *string   `json:"fecha,omitempty" validate:"omitnil,datetime=2006-01-02"`
	Hora        *string   `json:"hora,omitempty" validate:"omitnil,datetime=15:04"`
	Duracion    *int      `json:"duracion,omitempty" validate:"omitnil,gt=0,lte=1440"`
	Tipo        *string   `json:"tipo,omitempty" validate:"omitnil,meetingtype"`
	Estado      *string   `json:"estado,omitempty" validate:"omitnil,meetingstatus"`
	Asistentes  *[]string `json:"asistentes,omitempty" validate:"omitnil,dive,notblank"`
	Notas       *string   `json:"notas,omitempty" validate:"omitnil,max=4000"`
	LinkReunion *string   `json:"link_reunion,omitempty" validate:"omitnil,optionalurl"`
}

// MeetingResponse reunión en respuestas.
type MeetingResponse struct {
	ID          string   `json:"id"`
	ProyectoID  string   `json:"proyecto_id"`
	Titulo      string   `json:"titulo"`
	Fecha       string   `json:"fecha"`
	Hora        string   `json:"hora"`
	Duracion    int      `json:"duracion"`
	Tipo        string   `json:"tipo"`
	Estado      string   `json:"estado"`
	Asistentes  []string `json:"asistentes"`
	Notas       string   `json:"notas,omitempty"`
	LinkReunion string   `json:"link_reunion,omitempty"`
}
