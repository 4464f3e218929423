package dto

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-backoffice-api/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Los mensajes usan el nombre JSON del campo.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	// gt/gte/lt sobre decimales comparan el signo: gt=0 es > 0, gte=0 es ≥ 0.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.Sign()
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// Validate aplica las etiquetas validate de v. Los fallos se devuelven envueltos en domain.ErrInvalidInput.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.Invalid("%s", err.Error())
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, describe(fe))
	}
	return domain.Invalid("%s", strings.Join(parts, "; "))
}

func describe(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), rootName(fe))
	switch fe.Tag() {
	case "required":
		return field + " es obligatorio"
	case "gt":
		return field + " debe ser mayor que " + fe.Param()
	case "gte", "min":
		return field + " debe ser al menos " + fe.Param()
	case "max":
		return field + " debe ser como máximo " + fe.Param()
	case "oneof":
		return field + " debe ser uno de [" + fe.Param() + "]"
	case "email":
		return field + " no es un email válido"
	default:
		return field + " no cumple " + fe.Tag()
	}
}

// rootName devuelve el prefijo "Struct." del namespace para quitarlo del mensaje.
func rootName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[:i+1]
	}
	return ""
}
