package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/cafeteria-stock/internal/application/dto"
	"github.com/tu-usuario/cafeteria-stock/internal/application/inventory"
	"github.com/tu-usuario/cafeteria-stock/internal/domain/entity"
)

// StockHandler consultas de saldos y gastos.
type StockHandler struct {
	queryUC *inventory.QueryUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(queryUC *inventory.QueryUseCase) *StockHandler {
	return &StockHandler{queryUC: queryUC}
}

// LocationBalances godoc
// @Summary      Saldos de todos los productos en una ubicación
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        location  path  string  true  "almacen | cocina | cafeteria"
// @Success      200  {array}  dto.LocationStockResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/locations/{location} [get]
func (h *StockHandler) LocationBalances(c *fiber.Ctx) error {
	out, err := h.queryUC.LocationBalances(entity.Location(c.Params("location")))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ProductStock godoc
// @Summary      Saldos de un producto en las tres ubicaciones operativas
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductStockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/products/{id} [get]
func (h *StockHandler) ProductStock(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.queryUC.ProductStock(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListExpenses godoc
// @Summary      Listar gastos registrados por el motor
// @Tags         expenses
// @Security     Bearer
// @Produce      json
// @Param        from    query  string  false  "Desde (RFC 3339)"
// @Param        to      query  string  false  "Hasta (RFC 3339)"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200  {array}  dto.ExpenseResponse
// @Router       /api/expenses [get]
func (h *StockHandler) ListExpenses(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	from, to, err := parseDateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fechas en formato RFC 3339"})
	}
	out, err := h.queryUC.ListExpenses(from, to, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
