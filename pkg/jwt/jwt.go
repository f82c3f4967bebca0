package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Tipos de token de sesión. Un refresh-token nunca se acepta como access-token y viceversa.
const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
// Role y ProjectID permiten al guard decidir sin consultar la DB.
type Claims struct {
	jwt.RegisteredClaims
	UserID    string `json:"user_id,omitempty"`
	Role      string `json:"role"`                 // "admin" | "client"
	ProjectID string `json:"project_id,omitempty"` // proyecto vinculado por código (solo client)
	Type      string `json:"typ"`
}

// Session datos de identidad que viajan dentro del token.
type Session struct {
	UserID    string
	Role      string
	ProjectID string
}

// Generate genera un token JWT firmado del tipo indicado.
func Generate(secret, tokenType string, s Session, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	if tokenType != TypeAccess && tokenType != TypeRefresh {
		return "", fmt.Errorf("jwt: tipo de token desconocido %q", tokenType)
	}
	now := time.Now()
	subject := s.UserID
	if subject == "" {
		subject = "project:" + s.ProjectID
	}
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:    s.UserID,
		Role:      s.Role,
		ProjectID: s.ProjectID,
		Type:      tokenType,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida el token y que sea del tipo esperado.
// Retorna error si el token es inválido, expirado, tiene firma incorrecta o es de otro tipo.
func Parse(secret, tokenType, tokenString string) (Session, error) {
	if secret == "" {
		return Session{}, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return Session{}, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Session{}, fmt.Errorf("claims inválidos")
	}
	if claims.Type != tokenType {
		return Session{}, fmt.Errorf("jwt: se esperaba token %s, llegó %q", tokenType, claims.Type)
	}
	return Session{UserID: claims.UserID, Role: claims.Role, ProjectID: claims.ProjectID}, nil
}
