// Package validation valida los payloads de entrada antes de llegar a persistencia.
// Devuelve *domain.ValidationError con un FieldError por campo, distinguiendo campo
// faltante, tipo incorrecto, restricción incumplida y campo desconocido.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Proyectos-api/internal/domain"
	"github.com/jhoicas/Proyectos-api/internal/domain/entity"
	"github.com/jhoicas/Proyectos-api/internal/domain/progress"
)

// validate instancia compartida; validator.Validate es seguro para uso concurrente.
var validate *validator.Validate

func init() {
	validate = validator.New()

	// Los errores se reportan con el nombre JSON del campo.
	validate.RegisterTagNameFunc(jsonName)

	// decimal.Decimal se valida como número (required, gt=0, ...).
	validate.RegisterCustomTypeFunc(func(v reflect.Value) interface{} {
		d, ok := v.Interface().(decimal.Decimal)
		if !ok {
			return nil
		}
		f, _ := d.Float64()
		return f
	}, decimal.Decimal{})

	_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = validate.RegisterValidation("projectstatus", oneOf(entity.ProjectStatuses))
	_ = validate.RegisterValidation("paymentstatus", oneOf(entity.PaymentStatuses))
	_ = validate.RegisterValidation("meetingtype", oneOf(entity.MeetingTypes))
	_ = validate.RegisterValidation("meetingstatus", oneOf(entity.MeetingStatuses))
	_ = validate.RegisterValidation("modstatus", oneOf(entity.ModificacionStatuses))
	_ = validate.RegisterValidation("sender", oneOf([]string{entity.SenderClient, entity.SenderAdmin}))
	_ = validate.RegisterValidation("role", oneOf([]string{entity.RoleAdmin, entity.RoleClient}))
	_ = validate.RegisterValidation("projectcode", func(fl validator.FieldLevel) bool {
		_, err := progress.ValidateCode(fl.Field().String())
		return err == nil
	})
	_ = validate.RegisterValidation("optionalurl", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return true
		}
		u, err := url.ParseRequestURI(s)
		return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
	})
}

func oneOf(values []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		for _, v := range values {
			if s == v {
				return true
			}
		}
		return false
	}
}

// Struct valida v según sus tags. Devuelve nil o *domain.ValidationError.
func Struct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validación: %w", err)
	}
	out := &domain.ValidationError{Fields: make([]domain.FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, toFieldError(fe))
	}
	return out
}

func toFieldError(fe validator.FieldError) domain.FieldError {
	field := fe.Namespace()
	// sin el nombre del struct raíz: "CreateProjectRequest.checklists[0].nombre" -> "checklists[0].nombre"
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}
	switch fe.Tag() {
	case "required", "notblank":
		return domain.FieldError{Field: field, Kind: domain.FieldMissing, Message: "es requerido"}
	}
	return domain.FieldError{Field: field, Kind: domain.FieldConstraint, Message: constraintMessage(fe)}
}

func constraintMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "email":
		return "debe ser un email válido"
	case "uuid":
		return "debe ser un UUID"
	case "gt":
		return "debe ser mayor que " + fe.Param()
	case "lte", "max":
		return "excede el máximo de " + fe.Param()
	case "min":
		return "requiere al menos " + fe.Param()
	case "datetime":
		return "debe tener el formato " + fe.Param()
	case "projectstatus":
		return "debe ser uno de: " + strings.Join(entity.ProjectStatuses, ", ")
	case "paymentstatus":
		return "debe ser uno de: " + strings.Join(entity.PaymentStatuses, ", ")
	case "meetingtype":
		return "debe ser uno de: " + strings.Join(entity.MeetingTypes, ", ")
	case "meetingstatus":
		return "debe ser uno de: " + strings.Join(entity.MeetingStatuses, ", ")
	case "modstatus":
		return "debe ser uno de: " + strings.Join(entity.ModificacionStatuses, ", ")
	case "sender", "role":
		return "debe ser client o admin"
	case "projectcode":
		return "debe tener entre 6 y 8 caracteres alfanuméricos"
	case "optionalurl":
		return "debe ser una URL http(s)"
	default:
		return "no cumple la regla " + fe.Tag()
	}
}

// DecodeStrict decodifica body en dst rechazando campos desconocidos y reportando tipos
// incorrectos por campo. Un body vacío equivale a {}.
func DecodeStrict(body []byte, dst interface{}) error {
	if len(bytes.TrimSpace(body)) == 0 {
		body = []byte("{}")
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	err := dec.Decode(dst)
	if err == nil {
		if _, extra := dec.Token(); extra != io.EOF {
			return domain.NewFieldError("body", domain.FieldType, "se esperaba un único objeto JSON")
		}
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return domain.NewFieldError(field, domain.FieldType, "debe ser de tipo "+typeErr.Type.String())
	}
	if name, ok := unknownField(err); ok {
		return domain.NewFieldError(name, domain.FieldUnknown, "campo no permitido")
	}
	var syntaxErr *json.SyntaxError
	if !errors.As(err, &syntaxErr) {
		if field, ok := failingField(body, dst); ok {
			return domain.NewFieldError(field, domain.FieldType, "valor con tipo o formato inválido")
		}
	}
	return domain.NewFieldError("body", domain.FieldType, "JSON inválido")
}

// failingField ubica el campo de primer nivel cuyo valor no decodifica. Cubre los errores de
// UnmarshalJSON propios (decimal.Decimal en monto), que encoding/json no atribuye a un campo.
func failingField(body []byte, dst interface{}) (string, bool) {
	rv := reflect.ValueOf(dst)
	for rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return "", false
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return "", false
	}
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		name := jsonName(sf)
		if !sf.IsExported() || name == "" {
			continue
		}
		val, ok := raw[name]
		if !ok {
			continue
		}
		if err := json.Unmarshal(val, reflect.New(sf.Type).Interface()); err != nil {
			return name, true
		}
	}
	return "", false
}

func jsonName(sf reflect.StructField) string {
	name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return sf.Name
	}
	return name
}

// unknownField extrae el nombre del error `json: unknown field "x"` de encoding/json.
func unknownField(err error) (string, bool) {
	const prefix = "json: unknown field "
	msg := err.Error()
	if !strings.HasPrefix(msg, prefix) {
		return "", false
	}
	return strings.Trim(strings.TrimPrefix(msg, prefix), `"`), true
}

// DecodeAndValidate combina DecodeStrict y Struct.
func DecodeAndValidate(body []byte, dst interface{}) error {
	if err := DecodeStrict(body, dst); err != nil {
		return err
	}
	return Struct(dst)
}
