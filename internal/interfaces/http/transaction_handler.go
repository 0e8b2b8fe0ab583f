package http

import (
	"errors"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// TransactionHandler maneja las peticiones HTTP del libro de movimientos.
// Los movimientos son inmutables: no hay rutas de update ni delete.
type TransactionHandler struct {
	record *inventory.RecordMovementUseCase
	query  *inventory.StockQueryUseCase
	log    *logger.Logger
}

// NewTransactionHandler construye el handler.
func NewTransactionHandler(record *inventory.RecordMovementUseCase, query *inventory.StockQueryUseCase, log *logger.Logger) *TransactionHandler {
	return &TransactionHandler{record: record, query: query, log: log}
}

// List godoc
// @Summary      Listar movimientos (más reciente primero)
// @Tags         transactions
// @Produce      json
// @Success      200  {array}  dto.TransactionResponse
// @Router       /transactions [get]
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	out, err := h.query.ListTransactions(c.Context())
	if err != nil {
		return mapDomainError(c, h.log, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Registrar movimiento de inventario (IN/OUT)
// @Description  Cabecera y renglones se confirman como una sola unidad:
//               cualquier renglón inválido deja el libro sin cambios.
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransactionRequest  true  "transaction_type, notes opcional, details"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /transactions [post]
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	out, err := h.record.Record(c.Context(), in)
	if err != nil {
		return mapDomainError(c, h.log, err)
	}
	movementsRecorded.WithLabelValues(out.TransactionType).Inc()
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener movimiento por ID
// @Tags         transactions
// @Produce      json
// @Param        id   path  int  true  "ID del movimiento"
// @Success      200  {object}  dto.TransactionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /transactions/{id} [get]
func (h *TransactionHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id must be a positive integer"})
	}
	out, err := h.query.GetTransaction(c.Context(), int64(id))
	if err != nil {
		return mapDomainError(c, h.log, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "transaction not found"})
	}
	return c.JSON(out)
}

// History godoc
// @Summary      Historial de movimientos de un producto (por nombre)
// @Description  Cada movimiento expone solo las líneas del producto
//               consultado. Cuerpo de error {"error": ...} por compatibilidad
//               con el frontend original.
// @Tags         transactions
// @Produce      json
// @Param        product_name  path  string  true  "Nombre del producto (URL-encoded)"
// @Success      200  {array}   dto.TransactionResponse
// @Failure      400  {object}  dto.LegacyErrorResponse
// @Failure      404  {object}  dto.LegacyErrorResponse
// @Router       /transactions/history/{product_name} [get]
func (h *TransactionHandler) History(c *fiber.Ctx) error {
	raw := c.Params("product_name")
	name, err := url.PathUnescape(raw)
	if err != nil {
		name = raw
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.LegacyErrorResponse{Error: "Product name must not be empty."})
	}
	out, err := h.query.TransactionHistory(c.Context(), name)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.LegacyErrorResponse{Error: "Product '" + name + "' not found."})
		}
		// Mensaje genérico: el detalle queda solo en el log.
		h.log.Error().Err(err).Str("product", name).Msg("consultar historial de producto")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.LegacyErrorResponse{Error: "Error fetching transaction history."})
	}
	return c.JSON(out)
}
