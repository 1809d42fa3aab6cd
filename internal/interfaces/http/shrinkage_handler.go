package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/cafeteria-stock/internal/application/dto"
	"github.com/tu-usuario/cafeteria-stock/internal/application/inventory"
	"github.com/tu-usuario/cafeteria-stock/internal/domain"
	"github.com/tu-usuario/cafeteria-stock/internal/domain/entity"
	"github.com/tu-usuario/cafeteria-stock/internal/infrastructure/metrics"
)

// ShrinkageHandler maneja registro, reversión y listado de mermas.
type ShrinkageHandler struct {
	shrinkageUC *inventory.ShrinkageUseCase
	queryUC     *inventory.QueryUseCase
}

// NewShrinkageHandler construye el handler.
func NewShrinkageHandler(shrinkageUC *inventory.ShrinkageUseCase, queryUC *inventory.QueryUseCase) *ShrinkageHandler {
	return &ShrinkageHandler{shrinkageUC: shrinkageUC, queryUC: queryUC}
}

// Record godoc
// @Summary      Registrar merma
// @Tags         losses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordLossRequest  true  "Merma"
// @Success      201   {object}  dto.LossResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/losses [post]
func (h *ShrinkageHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordLossRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	loss, err := h.shrinkageUC.RecordLoss(c.Context(), inventory.LossInput{
		ProductID:    in.ProductID,
		Quantity:     in.Quantity,
		AttributedTo: entity.Location(in.AttributedTo),
		Lines:        toLines(in.Lines),
	})
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			metrics.InsufficientStockTotal.Inc()
		}
		return respondError(c, err)
	}
	metrics.LossesTotal.Inc()
	return c.Status(fiber.StatusCreated).JSON(inventory.ToLossResponse(loss))
}

// Reverse godoc
// @Summary      Revertir merma (crédito a la ubicación responsable y borrado)
// @Tags         losses
// @Security     Bearer
// @Param        id   path  string  true  "ID de la merma"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/losses/{id} [delete]
func (h *ShrinkageHandler) Reverse(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.shrinkageUC.Reverse(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// List godoc
// @Summary      Listar mermas
// @Tags         losses
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200  {array}  dto.LossResponse
// @Router       /api/losses [get]
func (h *ShrinkageHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	out, err := h.queryUC.ListLosses(page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
