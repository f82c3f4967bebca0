package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados válidos de Payment.
const (
	PaymentPagado    = "Pagado"
	PaymentPendiente = "Pendiente"
	PaymentVencido   = "Vencido"
)

// PaymentStatuses conjunto de estados aceptados.
var PaymentStatuses = []string{PaymentPagado, PaymentPendiente, PaymentVencido}

// Payment pago asociado a un proyecto. Monto siempre > 0.
type Payment struct {
	ID          string
	ProyectoID  string
	Monto       decimal.Decimal
	FechaPago   time.Time
	MetodoPago  string
	Estado      string
	Descripcion string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
