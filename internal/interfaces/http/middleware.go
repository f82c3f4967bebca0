package http

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/jhoicas/Proyectos-api/internal/application/dto"
	"github.com/jhoicas/Proyectos-api/pkg/config"
	"github.com/jhoicas/Proyectos-api/pkg/logger"
)

const masked = "***"

// Claves que nunca llegan a los logs en claro.
var sensitiveKeys = map[string]struct{}{
	"password":      {},
	"token":         {},
	"access-token":  {},
	"refresh-token": {},
	"access_token":  {},
	"refresh_token": {},
	"codigo":        {},
	"authorization": {},
}

// APIVersion agrega el header API-Version a todas las respuestas.
func APIVersion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("API-Version", dto.APIVersion)
		return c.Next()
	}
}

// Sanitize copia fields enmascarando los valores sensibles, también en objetos anidados.
func Sanitize(fields map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		if _, ok := sensitiveKeys[strings.ToLower(k)]; ok {
			out[k] = masked
			continue
		}
		if nested, ok := v.(map[string]interface{}); ok {
			out[k] = Sanitize(nested)
			continue
		}
		out[k] = v
	}
	return out
}

// RequestLogger registra una línea al entrar y otra al salir de cada petición, con el
// request id, la query y el body JSON ya sanitizados.
func RequestLogger(log *logger.Logger) fiber.Handler {
	if log == nil {
		log = logger.Nop()
	}
	return func(c *fiber.Ctx) error {
		start := time.Now()
		rid, _ := c.Locals(requestid.ConfigDefault.ContextKey).(string)

		query := map[string]interface{}{}
		c.Context().QueryArgs().VisitAll(func(k, v []byte) {
			query[string(k)] = string(v)
		})
		entry := log.Debug().Str("request_id", rid).Str("method", c.Method()).Str("path", c.Path()).
			Interface("query", Sanitize(query))
		if body := bodyFields(c); body != nil {
			entry = entry.Interface("body", Sanitize(body))
		}
		entry.Msg("petición")

		err := c.Next()

		status := c.Response().StatusCode()
		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		}
		ev.Str("request_id", rid).Str("method", c.Method()).Str("path", c.Path()).
			Int("status", status).Int64("duration_ms", time.Since(start).Milliseconds()).
			Str("role", GetRole(c)).Msg("respuesta")
		return err
	}
}

func bodyFields(c *fiber.Ctx) map[string]interface{} {
	if len(c.Body()) == 0 || !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
		return nil
	}
	var m map[string]interface{}
	if err := json.Unmarshal(c.Body(), &m); err != nil {
		return nil
	}
	return m
}

// ValidateID rechaza con 400 INVALID_ID cualquier id mal formado (:id, ?id, ?proyecto_id,
// ?project_id, ?cliente_id o "id" del body) antes de llegar al caso de uso.
func ValidateID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		candidates := []string{c.Params("id"), c.Query("id"), c.Query("proyecto_id"), c.Query("project_id"), c.Query("cliente_id")}
		if len(c.Body()) > 0 {
			var probe struct {
				ID *string `json:"id"`
			}
			if err := json.Unmarshal(c.Body(), &probe); err == nil && probe.ID != nil {
				candidates = append(candidates, *probe.ID)
				if *probe.ID == "" {
					return invalidID(c)
				}
			}
		}
		for _, id := range candidates {
			if id == "" {
				continue
			}
			if _, err := uuid.Parse(id); err != nil {
				return invalidID(c)
			}
		}
		return c.Next()
	}
}

func invalidID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(CodeInvalidID, "identificador inválido"))
}

// RateLimiter ventana fija por identidad: usuario de la sesión, si no su proyecto, si no la IP.
// storage nil guarda los contadores en memoria del proceso.
func RateLimiter(cfg config.RateLimitConfig, storage fiber.Storage) fiber.Handler {
	limit := cfg.Max
	if limit <= 0 {
		limit = 120
	}
	window := time.Duration(cfg.WindowSeconds) * time.Second
	if window <= 0 {
		window = time.Minute
	}
	return limiter.New(limiter.Config{
		Max:          limit,
		Expiration:   window,
		KeyGenerator: rateKey,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.Fail(CodeRateLimited, "demasiadas solicitudes, intente más tarde"))
		},
		Storage: storage,
	})
}

func rateKey(c *fiber.Ctx) string {
	if id := GetUserID(c); id != "" {
		return "user:" + id
	}
	if p := GetProjectID(c); p != "" {
		return "project:" + p
	}
	return "ip:" + c.IP()
}
