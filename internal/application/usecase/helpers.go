package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/Proyectos-api/internal/domain"
	"github.com/jhoicas/Proyectos-api/internal/domain/entity"
	"github.com/jhoicas/Proyectos-api/internal/domain/repository"
)

const (
	dateLayout = "2006-01-02"
	hourLayout = "15:04"
)

// parseDate convierte una fecha ya validada; si aun así falla, se reporta como error del campo.
func parseDate(field, s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, domain.NewFieldError(field, domain.FieldConstraint, "debe tener el formato "+dateLayout)
	}
	return t, nil
}

func parseOptionalDate(field, s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := parseDate(field, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

// ensureProject verifica que el proyecto referenciado exista; si no, es un error del campo.
func ensureProject(ctx context.Context, run *Runner, projects repository.ProjectRepository, field, id string) error {
	p, err := Query(ctx, run, "projects.get", func(ctx context.Context) (*entity.Project, error) {
		return projects.GetByID(ctx, id)
	})
	if err != nil {
		return err
	}
	if p == nil {
		return domain.NewFieldError(field, domain.FieldConstraint, "el proyecto no existe")
	}
	return nil
}
