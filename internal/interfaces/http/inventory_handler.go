package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// InventoryHandler vistas agregadas derivadas del libro de movimientos.
type InventoryHandler struct {
	query *inventory.StockQueryUseCase
	log   *logger.Logger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(query *inventory.StockQueryUseCase, log *logger.Logger) *InventoryHandler {
	return &InventoryHandler{query: query, log: log}
}

// Summary godoc
// @Summary      Resumen de inventario por producto
// @Description  Entradas, salidas y stock neto recalculados del historial
//               completo en cada llamada.
// @Tags         inventory
// @Produce      json
// @Success      200  {array}  dto.InventorySummaryRow
// @Router       /inventory-summary [get]
func (h *InventoryHandler) Summary(c *fiber.Ctx) error {
	out, err := h.query.Summary(c.Context())
	if err != nil {
		return mapDomainError(c, h.log, err)
	}
	return c.JSON(out)
}

// StockLevels godoc
// @Summary      Stock disponible por producto (solo productos con movimientos)
// @Tags         inventory
// @Produce      json
// @Success      200  {array}  dto.StockLevelRow
// @Router       /inventory [get]
func (h *InventoryHandler) StockLevels(c *fiber.Ctx) error {
	out, err := h.query.StockLevels(c.Context())
	if err != nil {
		return mapDomainError(c, h.log, err)
	}
	return c.JSON(out)
}
