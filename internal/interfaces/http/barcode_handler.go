package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Bodega-api/internal/application/barcode"
	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/domain"
)

// BarcodeHandler maneja la emisión de lotes de barcodes (protegido).
type BarcodeHandler struct {
	uc *barcode.IssueUseCase
}

// NewBarcodeHandler construye el handler.
func NewBarcodeHandler(uc *barcode.IssueUseCase) *BarcodeHandler {
	return &BarcodeHandler{uc: uc}
}

// Generate godoc
// @Summary      Emitir un lote de barcodes
// @Description  Genera quantity barcodes (1..1000), crea la sesión sintética
//
//	completada y asienta el movimiento inbound inicial del lote.
//
// @Tags         barcodes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GenerateBarcodesRequest  true  "product_id, location_id, quantity"
// @Success      201   {object}  dto.BarcodeBatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/barcodes/generate [post]
func (h *BarcodeHandler) Generate(c *fiber.Ctx) error {
	actorID := GetActorID(c)
	var in dto.GenerateBarcodesRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.uc.GenerateBatch(c.Context(), in.ProductID, in.LocationID, in.Quantity, actorID)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "quantity debe estar entre 1 y 1000"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto o ubicación no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.BarcodeBatchResponse{
		SessionID: result.SessionID,
		Barcodes:  result.Barcodes,
		Quantity:  result.Quantity,
		Product:   dto.NewProductDTO(result.Product),
		Location:  dto.NewLocationDTO(result.Location),
	})
}

// BatchSession godoc
// @Summary      Barcodes de un lote emitido (para impresión)
// @Tags         barcodes
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de sesión del lote"
// @Success      200  {object}  dto.BarcodeBatchResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/barcodes/sessions/{id} [get]
func (h *BarcodeHandler) BatchSession(c *fiber.Ctx) error {
	result, err := h.uc.GeneratedBarcodes(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "sesión no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.BarcodeBatchResponse{
		SessionID: result.SessionID,
		Barcodes:  result.Barcodes,
		Quantity:  result.Quantity,
		Product:   dto.NewProductDTO(result.Product),
		Location:  dto.NewLocationDTO(result.Location),
	})
}
