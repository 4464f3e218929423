package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-backoffice-api/internal/application/billing"
	"github.com/jhoicas/pos-backoffice-api/internal/application/dto"
)

// DocumentHandler emite documentos de una transacción y sirve su contenido.
type DocumentHandler struct {
	uc *billing.DocumentUseCase
}

// NewDocumentHandler construye el handler.
func NewDocumentHandler(uc *billing.DocumentUseCase) *DocumentHandler {
	return &DocumentHandler{uc: uc}
}

// Issue godoc
// @Summary      Emitir documento
// @Description  Asigna el siguiente número del tipo, renderiza el documento y lo registra.
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID de la transacción"
// @Param        body  body  dto.IssueDocumentRequest   true  "Tipo de documento"
// @Success      201   {object}  dto.DocumentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transactions/{id}/documents [post]
func (h *DocumentHandler) Issue(c *fiber.Ctx) error {
	var in dto.IssueDocumentRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.IssueDocument(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Content godoc
// @Summary      Descargar documento
// @Tags         documents
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{id}/content [get]
func (h *DocumentHandler) Content(c *fiber.Ctx) error {
	out, err := h.uc.GetDocumentContent(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, out.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", out.Filename))
	return c.Send(out.Data)
}
