package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/application/scanner"
	"github.com/jhoicas/Bodega-api/internal/domain"
)

// ScannerHandler maneja las sesiones de escaneo masivo y el escaneo unitario (protegido).
type ScannerHandler struct {
	uc *scanner.SessionUseCase
}

// NewScannerHandler construye el handler.
func NewScannerHandler(uc *scanner.SessionUseCase) *ScannerHandler {
	return &ScannerHandler{uc: uc}
}

// sessionError traduce los errores de sesión a HTTP. Sesión ajena y sesión
// inexistente responden igual (404) para no revelar existencia.
func sessionError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto o ubicación no encontrado"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "ya existe una sesión de escaneo activa"})
	case errors.Is(err, domain.ErrSessionAccess):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "SESSION_ACCESS", Message: "sesión no encontrada o acceso denegado"})
	case errors.Is(err, domain.ErrSessionNotActive):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SESSION_NOT_ACTIVE", Message: "la sesión no está activa"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

// StartSession godoc
// @Summary      Iniciar sesión de escaneo masivo
// @Tags         scanner
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StartSessionRequest  true  "product_id, location_id"
// @Success      201   {object}  map[string]string
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/scanner/sessions [post]
func (h *ScannerHandler) StartSession(c *fiber.Ctx) error {
	actorID := GetActorID(c)
	var in dto.StartSessionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	sessionID, err := h.uc.StartSession(c.Context(), in.ProductID, in.LocationID, actorID)
	if err != nil {
		return sessionError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"session_id": sessionID})
}

// ActiveSession godoc
// @Summary      Sesión activa del actor
// @Tags         scanner
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ScanSessionDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/scanner/sessions/active [get]
func (h *ScannerHandler) ActiveSession(c *fiber.Ctx) error {
	detail, err := h.uc.ActiveSession(c.Context(), GetActorID(c))
	if err != nil {
		return sessionError(c, err)
	}
	if detail == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "sin sesión activa"})
	}
	return c.JSON(dto.NewScanSessionDTO(detail))
}

// AddScan godoc
// @Summary      Añadir un escaneo a la sesión
// @Tags         scanner
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "ID de sesión"
// @Param        body  body  dto.AddScanRequest  true  "barcode"
// @Success      200   {object}  map[string]int
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/scanner/sessions/{id}/scans [post]
func (h *ScannerHandler) AddScan(c *fiber.Ctx) error {
	var in dto.AddScanRequest
	if err := c.BodyParser(&in); err != nil || in.Barcode == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "barcode requerido"})
	}
	total, err := h.uc.AddScan(c.Context(), c.Params("id"), in.Barcode, GetActorID(c))
	if err != nil {
		return sessionError(c, err)
	}
	return c.JSON(fiber.Map{"total_scanned": total})
}

// CompleteSession godoc
// @Summary      Completar la sesión y confirmar el movimiento agregado
// @Tags         scanner
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de sesión"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/scanner/sessions/{id}/complete [post]
func (h *ScannerHandler) CompleteSession(c *fiber.Ctx) error {
	result, err := h.uc.CompleteSession(c.Context(), c.Params("id"), GetActorID(c))
	if err != nil {
		return sessionError(c, err)
	}
	return c.JSON(fiber.Map{
		"product":       dto.NewProductDTO(result.Product),
		"total_scanned": result.TotalScanned,
	})
}

// CancelSession godoc
// @Summary      Cancelar la sesión sin tocar stock
// @Tags         scanner
// @Security     Bearer
// @Param        id  path  string  true  "ID de sesión"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/scanner/sessions/{id}/cancel [post]
func (h *ScannerHandler) CancelSession(c *fiber.Ctx) error {
	if err := h.uc.CancelSession(c.Context(), c.Params("id"), GetActorID(c)); err != nil {
		return sessionError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SessionBarcodes godoc
// @Summary      Escaneos de una sesión (más reciente primero)
// @Tags         scanner
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de sesión"
// @Success      200  {array}  dto.ScanRecordDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/scanner/sessions/{id}/barcodes [get]
func (h *ScannerHandler) SessionBarcodes(c *fiber.Ctx) error {
	records, err := h.uc.SessionBarcodes(c.Context(), c.Params("id"), GetActorID(c))
	if err != nil {
		return sessionError(c, err)
	}
	out := make([]dto.ScanRecordDTO, 0, len(records))
	for _, r := range records {
		out = append(out, dto.ScanRecordDTO{Barcode: r.Barcode, ScannedAt: r.ScannedAt})
	}
	return c.JSON(fiber.Map{"total": len(out), "scans": out})
}

// SingleScan godoc
// @Summary      Escaneo unitario
// @Description  Barcode conocido suma 1 unidad (inbound). Barcode desconocido
//
//	registra un producto placeholder sin movimiento: el producto nuevo
//	arranca con stock cero.
//
// @Tags         scanner
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SingleScanRequest  true  "barcode, location_id"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/scanner/scan [post]
func (h *ScannerHandler) SingleScan(c *fiber.Ctx) error {
	var in dto.SingleScanRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.uc.SingleScan(c.Context(), in.Barcode, in.LocationID, GetActorID(c))
	if err != nil {
		return sessionError(c, err)
	}
	return c.JSON(fiber.Map{
		"type":    result.Type,
		"product": dto.NewProductDTO(result.Product),
		"message": result.Message,
	})
}
