package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Proyectos-api/internal/application/dto"
	"github.com/jhoicas/Proyectos-api/internal/application/usecase"
	"github.com/jhoicas/Proyectos-api/internal/domain"
	"github.com/jhoicas/Proyectos-api/internal/domain/entity"
	"github.com/jhoicas/Proyectos-api/internal/domain/repository"
	"github.com/jhoicas/Proyectos-api/pkg/config"
	"github.com/jhoicas/Proyectos-api/pkg/jwt"
	"github.com/jhoicas/Proyectos-api/pkg/logger"
)

const statusActive = "active"

// ProjectCodes resuelve un código de acceso a su proyecto. Lo implementa usecase.ProjectUseCase.
type ProjectCodes interface {
	GetByCode(ctx context.Context, raw string) (*dto.ProjectResponse, error)
}

// AuthUseCase casos de uso de sesión: login con credenciales, acceso por código de proyecto,
// refresh de tokens y alta de usuarios.
type AuthUseCase struct {
	users    repository.UserRepository
	projects ProjectCodes
	jwtCfg   config.JWTConfig
	run      *usecase.Runner
	log      *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	users repository.UserRepository,
	projects ProjectCodes,
	jwtCfg config.JWTConfig,
	run *usecase.Runner,
	log *logger.Logger,
) *AuthUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AuthUseCase{users: users, projects: projects, jwtCfg: jwtCfg, run: run, log: log}
}

// Login verifica email/password y emite el par de tokens.
// Email desconocido y password incorrecto devuelven el mismo domain.ErrUnauthorized.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.SessionTokens, *dto.SessionResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	user, err := usecase.Query(ctx, uc.run, "users.find_by_email", func(ctx context.Context) (*entity.User, error) {
		return uc.users.FindByEmail(ctx, email)
	})
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		uc.log.Warn().Msg("login rechazado: usuario inexistente")
		return nil, nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		uc.log.Warn().Str("user_id", user.ID).Msg("login rechazado: password incorrecto")
		return nil, nil, domain.ErrUnauthorized
	}
	if user.Status != statusActive {
		uc.log.Warn().Str("user_id", user.ID).Str("role", user.Role).Msg("login rechazado: usuario inactivo")
		return nil, nil, domain.ErrForbidden
	}
	return uc.issue(jwt.Session{UserID: user.ID, Role: user.Role})
}

// Acceso canjea el código de un proyecto por una sesión de cliente ligada a ese proyecto.
// Si ya hay una sesión de cliente se conserva su UserID. Un administrador no necesita código.
func (uc *AuthUseCase) Acceso(ctx context.Context, in dto.AccesoRequest, current *jwt.Session) (*dto.SessionTokens, *dto.SessionResponse, error) {
	if current != nil && current.Role == entity.RoleAdmin {
		return nil, nil, domain.ErrForbidden
	}
	p, err := uc.projects.GetByCode(ctx, in.Codigo)
	switch {
	case errors.Is(err, domain.ErrInvalidCode):
		return nil, nil, domain.NewFieldError("codigo", domain.FieldConstraint, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		uc.log.Warn().Msg("acceso rechazado: código sin proyecto")
		return nil, nil, err
	case err != nil:
		return nil, nil, err
	}
	s := jwt.Session{Role: entity.RoleClient, ProjectID: p.ID}
	if current != nil {
		s.UserID = current.UserID
	}
	return uc.issue(s)
}

// Refresh valida el refresh-token y emite un nuevo par con la misma identidad.
func (uc *AuthUseCase) Refresh(refreshToken string) (*dto.SessionTokens, *dto.SessionResponse, error) {
	s, err := jwt.Parse(uc.jwtCfg.Secret, jwt.TypeRefresh, refreshToken)
	if err != nil {
		return nil, nil, domain.ErrUnauthorized
	}
	return uc.issue(s)
}

// AccessFromRefresh emite solo un access-token nuevo a partir de un refresh-token válido.
// Lo usa el guard cuando el access-token expiró a mitad de navegación.
func (uc *AuthUseCase) AccessFromRefresh(refreshToken string) (string, jwt.Session, error) {
	s, err := jwt.Parse(uc.jwtCfg.Secret, jwt.TypeRefresh, refreshToken)
	if err != nil {
		return "", jwt.Session{}, domain.ErrUnauthorized
	}
	tok, err := jwt.Generate(uc.jwtCfg.Secret, jwt.TypeAccess, s, uc.jwtCfg.Issuer, uc.jwtCfg.Expiration)
	if err != nil {
		return "", jwt.Session{}, err
	}
	return tok, s, nil
}

// ParseAccess valida un access-token.
func (uc *AuthUseCase) ParseAccess(token string) (jwt.Session, error) {
	s, err := jwt.Parse(uc.jwtCfg.Secret, jwt.TypeAccess, token)
	if err != nil {
		return jwt.Session{}, domain.ErrUnauthorized
	}
	return s, nil
}

func (uc *AuthUseCase) issue(s jwt.Session) (*dto.SessionTokens, *dto.SessionResponse, error) {
	access, err := jwt.Generate(uc.jwtCfg.Secret, jwt.TypeAccess, s, uc.jwtCfg.Issuer, uc.jwtCfg.Expiration)
	if err != nil {
		return nil, nil, err
	}
	refresh, err := jwt.Generate(uc.jwtCfg.Secret, jwt.TypeRefresh, s, uc.jwtCfg.Issuer, uc.jwtCfg.RefreshExpiration)
	if err != nil {
		return nil, nil, err
	}
	return &dto.SessionTokens{AccessToken: access, RefreshToken: refresh}, ToSessionResponse(s), nil
}

// ToSessionResponse identidad pública de una sesión.
func ToSessionResponse(s jwt.Session) *dto.SessionResponse {
	return &dto.SessionResponse{UserID: s.UserID, Rol: s.Role, ProjectID: s.ProjectID}
}

// RegisterUser crea un usuario con el password hasheado con bcrypt.
// Devuelve domain.ErrDuplicate si el email ya está registrado.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	existing, err := usecase.Query(ctx, uc.run, "users.find_by_email", func(ctx context.Context) (*entity.User, error) {
		return uc.users.FindByEmail(ctx, email)
	})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Nombre:       in.Nombre,
		Role:         in.Rol,
		ClienteID:    in.ClienteID,
		Status:       statusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.run.Exec(ctx, "users.create", func(ctx context.Context) error {
		return uc.users.Create(ctx, user)
	}); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// EnsureAdmin crea la cuenta de administrador o, si el email ya existe, le reasigna el password.
// created indica cuál de los dos casos ocurrió.
func (uc *AuthUseCase) EnsureAdmin(ctx context.Context, email, password, nombre string) (created bool, err error) {
	_, err = uc.RegisterUser(ctx, dto.CreateUserRequest{Email: email, Password: password, Nombre: nombre, Rol: entity.RoleAdmin})
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, domain.ErrDuplicate) {
		return false, err
	}
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := usecase.Query(ctx, uc.run, "users.find_by_email", func(ctx context.Context) (*entity.User, error) {
		return uc.users.FindByEmail(ctx, email)
	})
	if err != nil {
		return false, err
	}
	if user == nil {
		return false, domain.ErrUserNotFound
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}
	return false, uc.run.Exec(ctx, "users.update_password", func(ctx context.Context) error {
		return uc.users.UpdatePassword(ctx, user.ID, string(hash))
	})
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Nombre:    u.Nombre,
		Rol:       u.Role,
		ClienteID: u.ClienteID,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
	}
}
