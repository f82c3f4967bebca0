package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePaymentRequest body para POST /api/v1/payments.
type CreatePaymentRequest struct {
	ProyectoID  string           `json:"proyecto_id" validate:"required,uuid"`
	Monto       *decimal.Decimal `json:"monto" validate:"required,gt=0"`
	FechaPago   string           `json:"fecha_pago" validate:"required,datetime=2006-01-02"`
	MetodoPago  string           `json:"metodo_pago" validate:"required,notblank,max=60"`
	Estado      string           `json:"estado" validate:"required,paymentstatus"`
	Descripcion string           `json:"descripcion,omitempty" validate:"omitempty,max=2000"`
}

// UpdatePaymentRequest body para PUT /api/v1/payments.
type UpdatePaymentRequest struct {
	ID          string           `json:"id" validate:"required,uuid"`
	Monto       *decimal.Decimal `json:"monto,omitempty" validate:"omitnil,gt=0"`
	FechaPago   *string          `json:"fecha_pago,omitempty" validate:"omitnil,datetime=2006-01-02"`
	MetodoPago  *string          `json:"metodo_pago,omitempty" validate:"omitnil,notblank,max=60"`
	Estado      *string          `json:"estado,omitempty" validate:"omitnil,paymentstatus"`
	Descripcion *string          `json:"descripcion,omitempty" validate:"omitnil,max=2000"`
}

// PaymentResponse pago en respuestas.
type PaymentResponse struct {
	ID          string          `json:"id"`
	ProyectoID  string          `json:"proyecto_id"`
	Monto       decimal.Decimal `json:"monto"`
	FechaPago   string          `json:"fecha_pago"`
	MetodoPago  string          `json:"metodo_pago"`
	Estado      string          `json:"estado"`
	Descripcion string          `json:"descripcion,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}
