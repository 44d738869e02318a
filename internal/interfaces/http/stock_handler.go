package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/application/stock"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// StockHandler maneja las peticiones HTTP del motor de movimientos (protegido).
type StockHandler struct {
	uc *stock.MovementUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *stock.MovementUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de stock
// @Description  inbound/transfer_in suman; outbound/transfer_out restan con
//
//	recorte en cero; adjustment fija el valor absoluto. transfer_out lleva
//	transfer_to_location_id; el transfer_in del destino es una llamada aparte.
//
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "product_id, location_id, type, quantity, reference, notes, transfer_to_location_id"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/movements [post]
func (h *StockHandler) RegisterMovement(c *fiber.Ctx) error {
	actorID := GetActorID(c)
	if actorID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	newQuantity, err := h.uc.ApplyMovement(c.Context(), stock.MovementInput{
		ProductID:            in.ProductID,
		LocationID:           in.LocationID,
		Type:                 in.Type,
		Quantity:             in.Quantity,
		Reference:            in.Reference,
		Notes:                in.Notes,
		TransferToLocationID: in.TransferToLocationID,
		ActorID:              actorID,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto o ubicación no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MovementResponse{NewQuantity: newQuantity})
}

// GetLevel godoc
// @Summary      Nivel actual de un par (producto, ubicación)
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StockLevelDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/levels/{productId}/{locationId} [get]
func (h *StockHandler) GetLevel(c *fiber.Ctx) error {
	level, err := h.uc.GetSnapshot(c.Context(), c.Params("productId"), c.Params("locationId"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if level == nil {
		// Par sin movimientos: lógicamente cantidad 0, sin fila todavía.
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el par no registra movimientos"})
	}
	return c.JSON(dto.NewStockLevelDTO(level))
}

// ListLevels godoc
// @Summary      Listar niveles de stock
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        location_id  query  string  false  "Filtrar por ubicación"
// @Success      200  {array}  dto.StockLevelDetailDTO
// @Router       /api/stock/levels [get]
func (h *StockHandler) ListLevels(c *fiber.Ctx) error {
	details, err := h.uc.ListLevels(c.Context(), c.Query("location_id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.StockLevelDetailDTO, 0, len(details))
	for _, d := range details {
		out = append(out, dto.StockLevelDetailDTO{
			StockLevelDTO: dto.NewStockLevelDTO(&d.StockLevel),
			Product:       dto.NewProductDTO(d.Product),
			Location:      dto.NewLocationDTO(d.Location),
			LowStock:      d.LowStock(),
		})
	}
	return c.JSON(fiber.Map{"total": len(out), "levels": out})
}

// ListMovements godoc
// @Summary      Listar el libro de movimientos
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id   query  string  false  "Filtrar por producto"
// @Param        location_id  query  string  false  "Filtrar por ubicación"
// @Param        type         query  string  false  "Filtrar por tipo de movimiento"
// @Param        limit        query  int     false  "Máximo de filas (default 50)"
// @Success      200  {array}  dto.MovementDTO
// @Router       /api/stock/movements [get]
func (h *StockHandler) ListMovements(c *fiber.Ctx) error {
	movements, err := h.uc.ListMovements(c.Context(), repository.MovementFilter{
		ProductID:  c.Query("product_id"),
		LocationID: c.Query("location_id"),
		Type:       c.Query("type"),
		Limit:      c.QueryInt("limit"),
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.MovementDTO, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.NewMovementDTO(m))
	}
	return c.JSON(fiber.Map{"total": len(out), "movements": out})
}
