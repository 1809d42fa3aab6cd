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

// TransferHandler maneja traslados, entradas de compra y consultas del libro.
type TransferHandler struct {
	transferUC *inventory.TransferUseCase
	entryUC    *inventory.EntryUseCase
	queryUC    *inventory.QueryUseCase
}

// NewTransferHandler construye el handler.
func NewTransferHandler(transferUC *inventory.TransferUseCase, entryUC *inventory.EntryUseCase, queryUC *inventory.QueryUseCase) *TransferHandler {
	return &TransferHandler{transferUC: transferUC, entryUC: entryUC, queryUC: queryUC}
}

// Transfer godoc
// @Summary      Trasladar stock entre ubicaciones
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferRequest  true  "Traslado"
// @Success      200   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transfers [post]
func (h *TransferHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.transferUC.Transfer(c.Context(), inventory.TransferInput{
		ProductID:   in.ProductID,
		Quantity:    in.Quantity,
		Source:      entity.Location(in.Source),
		Destination: entity.Location(in.Destination),
		Lines:       toLines(in.Lines),
	})
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			metrics.InsufficientStockTotal.Inc()
		}
		return respondError(c, err)
	}
	metrics.TransfersTotal.WithLabelValues(in.Source, in.Destination).Inc()
	return c.JSON(dto.TransferResponse{
		Quantity:           result.Quantity,
		SourceBalance:      result.SourceBalance,
		DestinationBalance: result.DestinationBal,
	})
}

// RegisterEntry godoc
// @Summary      Registrar entrada de compra al almacén
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EntryRequest  true  "Entrada"
// @Success      200   {object}  dto.EntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/entries [post]
func (h *TransferHandler) RegisterEntry(c *fiber.Ctx) error {
	var in dto.EntryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.entryUC.RegisterEntry(c.Context(), inventory.EntryInput{
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		Lines:     toLines(in.Lines),
	})
	if err != nil {
		return respondError(c, err)
	}
	metrics.EntriesTotal.Inc()
	return c.JSON(dto.EntryResponse{Quantity: result.Quantity, AlmacenBalance: result.AlmacenBalance})
}

// ListLedger godoc
// @Summary      Consultar el libro de transacciones
// @Description  Filtra por exactamente uno de product_id, desde, hacia o kind; siempre más recientes primero.
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "ID del producto"
// @Param        desde       query  string  false  "Ubicación de origen"
// @Param        hacia       query  string  false  "Ubicación de destino"
// @Param        kind        query  string  false  "baja | entrega"
// @Param        limit       query  int     false  "Límite"   default(20)
// @Param        offset      query  int     false  "Offset"   default(0)
// @Success      200  {array}  dto.TransferRecordResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/transfers [get]
func (h *TransferHandler) ListLedger(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	filter := inventory.TransferFilter{
		ProductID:   c.Query("product_id"),
		Source:      entity.Location(c.Query("desde")),
		Destination: entity.Location(c.Query("hacia")),
		Kind:        entity.MovementKind(c.Query("kind")),
	}
	out, err := h.queryUC.ListTransfers(filter, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
