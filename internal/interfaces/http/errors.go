package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-backoffice-api/internal/application/dto"
	"github.com/jhoicas/pos-backoffice-api/internal/domain"
	"github.com/jhoicas/pos-backoffice-api/pkg/logger"
)

// ErrorHandler traduce los errores devueltos por los handlers a dto.ErrorResponse.
//
//	ErrInvalidInput        → 400 VALIDATION
//	ErrNotFound            → 404 NOT_FOUND
//	ErrReferentialConflict → 409 REFERENTIAL_CONFLICT
//	ErrAllocationConflict  → 409 ALLOCATION_CONFLICT
//	ErrDuplicate           → 409 DUPLICATE
//	*fiber.Error           → su propio código
//	cualquier otro         → 500 INTERNAL (se registra, no se expone el detalle)
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var (
			nf   *domain.NotFoundError
			fErr *fiber.Error
		)
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return respond(c, fiber.StatusBadRequest, "VALIDATION", err.Error())
		case errors.As(err, &nf):
			return respond(c, fiber.StatusNotFound, "NOT_FOUND", nf.Error())
		case errors.Is(err, domain.ErrNotFound):
			return respond(c, fiber.StatusNotFound, "NOT_FOUND", err.Error())
		case errors.Is(err, domain.ErrReferentialConflict):
			return respond(c, fiber.StatusConflict, "REFERENTIAL_CONFLICT", err.Error())
		case errors.Is(err, domain.ErrAllocationConflict):
			return respond(c, fiber.StatusConflict, "ALLOCATION_CONFLICT", err.Error())
		case errors.Is(err, domain.ErrDuplicate):
			return respond(c, fiber.StatusConflict, "DUPLICATE", err.Error())
		case errors.As(err, &fErr):
			return respond(c, fErr.Code, fiberCode(fErr.Code), fErr.Message)
		}
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
		return respond(c, fiber.StatusInternalServerError, "INTERNAL", "error interno del servidor")
	}
}

func respond(c *fiber.Ctx, status int, code, msg string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func fiberCode(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
		return "INVALID_BODY"
	default:
		return "ERROR"
	}
}

// invalidBody respuesta estándar cuando el cuerpo no es JSON válido.
func invalidBody(c *fiber.Ctx) error {
	return respond(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
}
