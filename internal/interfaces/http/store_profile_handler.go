package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-backoffice-api/internal/application/dto"
	"github.com/jhoicas/pos-backoffice-api/internal/application/usecase"
)

// StoreProfileHandler lee y actualiza los datos de la tienda emisora.
type StoreProfileHandler struct {
	uc *usecase.StoreProfileUseCase
}

// NewStoreProfileHandler construye el handler.
func NewStoreProfileHandler(uc *usecase.StoreProfileUseCase) *StoreProfileHandler {
	return &StoreProfileHandler{uc: uc}
}

// Get GET /api/store-profile
func (h *StoreProfileHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Upsert PUT /api/store-profile
func (h *StoreProfileHandler) Upsert(c *fiber.Ctx) error {
	var in dto.StoreProfileRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Upsert(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}
