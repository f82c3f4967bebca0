package usecase

import (
	"context"
	"sort"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/jhoicas/Proyectos-api/internal/domain"
	"github.com/jhoicas/Proyectos-api/internal/domain/entity"
	"github.com/jhoicas/Proyectos-api/internal/domain/repository"
	"github.com/jhoicas/Proyectos-api/pkg/config"
	"github.com/jhoicas/Proyectos-api/pkg/logger"
)

func testRunner() *Runner {
	return NewRunner(logger.Nop(), config.RetryConfig{MaxRetries: 3, BaseDelayMs: 1})
}

// ─── Fakes en memoria ────────────────────────────────────────────────────────

type memClients struct {
	mu   sync.Mutex
	rows map[string]entity.Client
}

func newMemClients() *memClients { return &memClients{rows: map[string]entity.Client{}} }

func (r *memClients) Create(_ context.Context, c *entity.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[c.ID] = *c
	return nil
}

func (r *memClients) GetByID(_ context.Context, id string) (*entity.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *memClients) List(_ context.Context) ([]*entity.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*entity.Client{}
	for _, c := range r.rows {
		c := c
		out = append(out, &c)
	}
	return out, nil
}

func (r *memClients) Update(_ context.Context, c *entity.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[c.ID]; !ok {
		return domain.ErrNotFound
	}
	r.rows[c.ID] = *c
	return nil
}

func (r *memClients) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

type memProjects struct {
	mu   sync.Mutex
	rows map[string]entity.Project
	// failCreate, si > 0, devuelve ErrDuplicate en las primeras n creaciones.
	failCreate int
	creates    int
	// checklistWrites cuenta las escrituras de checklist+avance.
	checklistWrites int
}

func newMemProjects() *memProjects { return &memProjects{rows: map[string]entity.Project{}} }

func clone(p entity.Project) *entity.Project {
	p.Checklists = append([]entity.Task(nil), p.Checklists...)
	return &p
}

func (r *memProjects) Create(_ context.Context, p *entity.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creates++
	if r.creates <= r.failCreate {
		return domain.ErrDuplicate
	}
	for _, existing := range r.rows {
		if existing.Codigo == p.Codigo {
			return domain.ErrDuplicate
		}
	}
	r.rows[p.ID] = *clone(*p)
	return nil
}

func (r *memProjects) GetByID(_ context.Context, id string) (*entity.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	return clone(p), nil
}

func (r *memProjects) GetByCode(_ context.Context, code string) (*entity.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.rows {
		if p.Codigo == code {
			return clone(p), nil
		}
	}
	return nil, nil
}

func (r *memProjects) List(_ context.Context, f repository.ProjectFilter) ([]*entity.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*entity.Project{}
	for _, p := range r.rows {
		if f.ClienteID != "" && p.ClienteID != f.ClienteID {
			continue
		}
		out = append(out, clone(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memProjects) Update(_ context.Context, p *entity.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.rows[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cur.Nombre, cur.Descripcion, cur.ClienteID = p.Nombre, p.Descripcion, p.ClienteID
	cur.FechaEstimada, cur.Estado, cur.UpdatedAt = p.FechaEstimada, p.Estado, p.UpdatedAt
	r.rows[p.ID] = cur
	return nil
}

func (r *memProjects) UpdateChecklist(_ context.Context, id string, tasks []entity.Task, avance int) (*entity.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	r.checklistWrites++
	cur.Checklists = append([]entity.Task(nil), tasks...)
	cur.Avance = avance
	r.rows[id] = cur
	return clone(cur), nil
}

func (r *memProjects) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

type memPayments struct {
	mu   sync.Mutex
	rows map[string]entity.Payment
}

func newMemPayments() *memPayments { return &memPayments{rows: map[string]entity.Payment{}} }

func (r *memPayments) Create(_ context.Context, p *entity.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[p.ID] = *p
	return nil
}

func (r *memPayments) GetByID(_ context.Context, id string) (*entity.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *memPayments) List(_ context.Context, f repository.PaymentFilter) ([]*entity.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*entity.Payment{}
	for _, p := range r.rows {
		if f.ProyectoID != "" && p.ProyectoID != f.ProyectoID {
			continue
		}
		p := p
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FechaPago.After(out[j].FechaPago) })
	return out, nil
}

func (r *memPayments) Update(_ context.Context, p *entity.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[p.ID] = *p
	return nil
}

func (r *memPayments) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

type memMeetings struct {
	mu   sync.Mutex
	rows map[string]entity.Meeting
}

func newMemMeetings() *memMeetings { return &memMeetings{rows: map[string]entity.Meeting{}} }

func (r *memMeetings) Create(_ context.Context, m *entity.Meeting) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[m.ID] = *m
	return nil
}

func (r *memMeetings) GetByID(_ context.Context, id string) (*entity.Meeting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (r *memMeetings) List(_ context.Context, f repository.MeetingFilter) ([]*entity.Meeting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*entity.Meeting{}
	for _, m := range r.rows {
		if f.ProyectoID != "" && m.ProyectoID != f.ProyectoID {
			continue
		}
		m := m
		out = append(out, &m)
	}
	return out, nil
}

func (r *memMeetings) Update(_ context.Context, m *entity.Meeting) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[m.ID] = *m
	return nil
}

func (r *memMeetings) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, id)
	return nil
}

type memMessages struct {
	mu   sync.Mutex
	rows map[string]entity.Message
}

func newMemMessages() *memMessages { return &memMessages{rows: map[string]entity.Message{}} }

func (r *memMessages) Create(_ context.Context, m *entity.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[m.ID] = *m
	return nil
}

func (r *memMessages) GetByID(_ context.Context, id string) (*entity.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (r *memMessages) List(_ context.Context, f repository.MessageFilter) ([]*entity.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*entity.Message{}
	for _, m := range r.rows {
		if f.ProjectID != "" && m.ProjectID != f.ProjectID {
			continue
		}
		m := m
		out = append(out, &m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

func (r *memMessages) Update(_ context.Context, m *entity.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[m.ID] = *m
	return nil
}

func (r *memMessages) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, id)
	return nil
}

func (r *memMessages) MarkRead(_ context.Context, ids []string, sender, projectID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, id := range ids {
		m, ok := r.rows[id]
		if !ok || m.Read || m.Sender != sender || (projectID != "" && m.ProjectID != projectID) {
			continue
		}
		m.Read = true
		r.rows[id] = m
		n++
	}
	return n, nil
}

type memModificaciones struct {
	mu   sync.Mutex
	rows map[string]entity.Modificacion
}

func newMemModificaciones() *memModificaciones {
	return &memModificaciones{rows: map[string]entity.Modificacion{}}
}

func (r *memModificaciones) Create(_ context.Context, m *entity.Modificacion) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[m.ID] = *m
	return nil
}

func (r *memModificaciones) GetByID(_ context.Context, id string) (*entity.Modificacion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (r *memModificaciones) List(_ context.Context, f repository.ModificacionFilter) ([]*entity.Modificacion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*entity.Modificacion{}
	for _, m := range r.rows {
		if f.ProyectoID != "" && m.ProyectoID != f.ProyectoID {
			continue
		}
		m := m
		out = append(out, &m)
	}
	return out, nil
}

func (r *memModificaciones) UpdateEstado(_ context.Context, id, estado string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.rows[id]
	if !ok {
		return domain.ErrNotFound
	}
	m.Estado = estado
	r.rows[id] = m
	return nil
}

// mockReports generador de PDF simulado con testify/mock.
type mockReports struct{ mock.Mock }

func (m *mockReports) GenerateProjectReport(ctx context.Context, p *entity.Project, c *entity.Client, pays []*entity.Payment) ([]byte, error) {
	args := m.Called(ctx, p, c, pays)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}
