package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Proyectos-api/internal/domain/entity"
	"github.com/jhoicas/Proyectos-api/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

const paymentColumns = `id, proyecto_id, monto, fecha_pago, metodo_pago, estado, descripcion, created_at, updated_at`

// PaymentRepo implementación de PaymentRepository. monto es NUMERIC <-> decimal.Decimal.
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

func scanPayment(row rowScanner) (*entity.Payment, error) {
	var p entity.Payment
	if err := row.Scan(&p.ID, &p.ProyectoID, &p.Monto, &p.FechaPago, &p.MetodoPago, &p.Estado, &p.Descripcion, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un pago.
func (r *PaymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	query := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.ProyectoID, p.Monto, p.FechaPago, p.MetodoPago, p.Estado, p.Descripcion, p.CreatedAt, p.UpdatedAt,
	)
	return persistErr("insert payment", err)
}

// GetByID obtiene un pago por ID; (nil, nil) si no existe.
func (r *PaymentRepo) GetByID(ctx context.Context, id string) (*entity.Payment, error) {
	p, err := scanPayment(r.q.QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, persistErr("get payment", err)
	}
	return p, nil
}

// List lista pagos, opcionalmente de un proyecto, por fecha de pago descendente.
func (r *PaymentRepo) List(ctx context.Context, f repository.PaymentFilter) ([]*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments`
	var args []any
	if f.ProyectoID != "" {
		query += ` WHERE proyecto_id = $1`
		args = append(args, f.ProyectoID)
	}
	query += ` ORDER BY fecha_pago DESC, created_at DESC`
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, persistErr("list payments", err)
	}
	defer rows.Close()
	list := []*entity.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, persistErr("scan payment", err)
		}
		list = append(list, p)
	}
	return list, persistErr("list payments", rows.Err())
}

// Update actualiza un pago.
func (r *PaymentRepo) Update(ctx context.Context, p *entity.Payment) error {
	query := `
		UPDATE payments SET monto = $2, fecha_pago = $3, metodo_pago = $4, estado = $5,
			descripcion = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, p.ID, p.Monto, p.FechaPago, p.MetodoPago, p.Estado, p.Descripcion, p.UpdatedAt)
	if err != nil {
		return persistErr("update payment", err)
	}
	return notFoundIfNone(tag)
}

// Delete elimina un pago.
func (r *PaymentRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return persistErr("delete payment", err)
	}
	return notFoundIfNone(tag)
}
