package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-backoffice-api/internal/application/billing"
	"github.com/jhoicas/pos-backoffice-api/internal/application/dto"
)

// TaxHandler expone el cálculo de impuestos sin persistencia.
type TaxHandler struct{}

// NewTaxHandler construye el handler.
func NewTaxHandler() *TaxHandler {
	return &TaxHandler{}
}

// Preview godoc
// @Summary      Vista previa de impuestos
// @Tags         taxes
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TaxPreviewRequest  true  "Líneas, flags y descuentos"
// @Success      200   {object}  dto.TaxBreakdownResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/taxes/preview [post]
func (h *TaxHandler) Preview(c *fiber.Ctx) error {
	var in dto.TaxPreviewRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := billing.PreviewTaxes(in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}
