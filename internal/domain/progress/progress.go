// Package progress implementa los servicios de dominio del proyecto: el avance derivado del
// checklist y los códigos de acceso que el cliente usa para vincular su sesión.
package progress

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"unicode"

	"github.com/jhoicas/Proyectos-api/internal/domain"
	"github.com/jhoicas/Proyectos-api/internal/domain/entity"
)

// CodeAlphabet excluye caracteres que se confunden a simple vista (0/O, 1/I).
const CodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// Longitudes de código. Los nuevos siempre miden CodeLength; se aceptan 6 y 7 por compatibilidad.
const (
	CodeLength    = 8
	MinCodeLength = 6
	MaxCodeLength = 8
)

// ComputeProgress devuelve el porcentaje de tareas marcadas, redondeado al entero más cercano
// (mitades hacia arriba). Lista vacía = 0.
func ComputeProgress(tasks []entity.Task) int {
	n := len(tasks)
	if n == 0 {
		return 0
	}
	done := 0
	for _, t := range tasks {
		if t.Checked {
			done++
		}
	}
	// round(100*done/n) en aritmética entera
	return (200*done + n) / (2 * n)
}

// GenerateProjectCode genera un código de CodeLength símbolos de CodeAlphabet con crypto/rand.
// La unicidad la verifica el llamador contra el almacén.
func GenerateProjectCode() (string, error) {
	max := big.NewInt(int64(len(CodeAlphabet)))
	var sb strings.Builder
	sb.Grow(CodeLength)
	for i := 0; i < CodeLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generar código: %w", err)
		}
		sb.WriteByte(CodeAlphabet[n.Int64()])
	}
	return sb.String(), nil
}

// NormalizeCode pasa a mayúsculas y elimina todo lo que no sea letra o dígito ASCII.
func NormalizeCode(raw string) string {
	var sb strings.Builder
	for _, r := range strings.ToUpper(raw) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// ValidateCode normaliza el código ingresado por el cliente y verifica su longitud.
func ValidateCode(raw string) (string, error) {
	code := NormalizeCode(raw)
	if len(code) < MinCodeLength || len(code) > MaxCodeLength {
		return "", domain.ErrInvalidCode
	}
	return code, nil
}
