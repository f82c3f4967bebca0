package postgres

import (
	"context"
	_ "embed"
	"fmt"
)

//go:embed migrations/01_create_clients.up.sql
var createClientsUp string

//go:embed migrations/02_create_projects.up.sql
var createProjectsUp string

//go:embed migrations/03_create_payments_meetings.up.sql
var createPaymentsMeetingsUp string

//go:embed migrations/04_create_messages_modificaciones.up.sql
var createMessagesModificacionesUp string

//go:embed migrations/05_create_users.up.sql
var createUsersUp string

// migrations en orden de aplicación. Todas son idempotentes (IF NOT EXISTS).
var migrations = []struct {
	name string
	sql  string
}{
	{"01_create_clients", createClientsUp},
	{"02_create_projects", createProjectsUp},
	{"03_create_payments_meetings", createPaymentsMeetingsUp},
	{"04_create_messages_modificaciones", createMessagesModificacionesUp},
	{"05_create_users", createUsersUp},
}

// Migrate aplica el esquema. Las cascadas proyecto -> pagos/reuniones/mensajes/modificaciones
// y cliente -> proyectos quedan a cargo de la base de datos (ON DELETE CASCADE).
func Migrate(ctx context.Context, q Querier) error {
	for _, m := range migrations {
		if _, err := q.Exec(ctx, m.sql); err != nil {
			return fmt.Errorf("apply migration %s: %w", m.name, err)
		}
	}
	return nil
}
