package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-backoffice-api/internal/application/billing"
	"github.com/jhoicas/pos-backoffice-api/internal/application/dto"
)

// TransactionHandler maneja las peticiones HTTP de transacciones.
type TransactionHandler struct {
	uc *billing.TransactionUseCase
}

// NewTransactionHandler construye el handler.
func NewTransactionHandler(uc *billing.TransactionUseCase) *TransactionHandler {
	return &TransactionHandler{uc: uc}
}

// Create godoc
// @Summary      Crear transacción
// @Description  Valida cliente y productos, calcula impuestos y guarda cabecera y líneas de forma atómica.
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransactionRequest  true  "Transacción"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/transactions [post]
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreateTransaction(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener transacción
// @Tags         transactions
// @Produce      json
// @Param        id   path  string  true  "ID de la transacción"
// @Success      200  {object}  dto.TransactionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transactions/{id} [get]
func (h *TransactionHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetTransaction(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar transacciones
// @Tags         transactions
// @Produce      json
// @Param        customer_id  query  string  false  "Cliente"
// @Param        date_from    query  string  false  "Desde (YYYY-MM-DD)"
// @Param        date_to      query  string  false  "Hasta, inclusive (YYYY-MM-DD)"
// @Param        page         query  int     false  "Página"  default(1)
// @Param        limit        query  int     false  "Límite"  default(20)
// @Success      200  {object}  dto.TransactionListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/transactions [get]
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	var q dto.ListTransactionsQuery
	if err := c.QueryParser(&q); err != nil {
		return respond(c, fiber.StatusBadRequest, "VALIDATION", "parámetros de consulta inválidos")
	}
	out, err := h.uc.ListTransactions(c.UserContext(), q)
	if err != nil {
		return err
	}
	return c.JSON(out)
}
