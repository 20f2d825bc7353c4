package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-odoo/internal/application/dto"
	"github.com/jhoicas/inventario-odoo/internal/application/inventory"
	"github.com/jhoicas/inventario-odoo/internal/domain"
	domaininventory "github.com/jhoicas/inventario-odoo/internal/domain/inventory"
)

// InventoryHandler expone el inventario de Odoo (protegido).
type InventoryHandler struct {
	uc *inventory.SyncUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.SyncUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// GetSummary godoc
// @Summary      Resumen del inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SummaryResponse
// @Router       /api/inventory/summary [get]
func (h *InventoryHandler) GetSummary(c *fiber.Ctx) error {
	summary := h.uc.Summary(c.UserContext())
	atCost, atList := domaininventory.Valuation(summary.Products)
	return c.JSON(dto.SummaryResponse{
		InventorySummary: summary,
		ValueAtCost:      atCost,
		ValueAtList:      atList,
	})
}

// ListProducts godoc
// @Summary      Productos (primer filtro con resultados)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Máximo de registros (defecto 100, máx. 1000)"
// @Success      200  {object}  dto.ProductListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/products [get]
func (h *InventoryHandler) ListProducts(c *fiber.Ctx) error {
	var in dto.LimitRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_LIMIT", Message: "limit debe ser un entero"})
	}
	in.Normalize()
	items := h.uc.Products(c.UserContext(), in.Limit)
	return c.JSON(dto.ProductListResponse{Limit: in.Limit, Count: len(items), Items: items})
}

// ListStockQuants godoc
// @Summary      Cantidades por ubicación (quantity > 0)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Máximo de registros (defecto 100, máx. 1000)"
// @Success      200  {object}  dto.StockQuantListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/stock-quants [get]
func (h *InventoryHandler) ListStockQuants(c *fiber.Ctx) error {
	var in dto.LimitRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_LIMIT", Message: "limit debe ser un entero"})
	}
	in.Normalize()
	items := h.uc.StockQuants(c.UserContext(), in.Limit)
	return c.JSON(dto.StockQuantListResponse{Limit: in.Limit, Count: len(items), Items: items})
}

// DownloadReportPDF godoc
// @Summary      Reporte de inventario en PDF
// @Tags         inventory
// @Security     Bearer
// @Produce      application/pdf
// @Success      200
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/report.pdf [get]
func (h *InventoryHandler) DownloadReportPDF(c *fiber.Ctx) error {
	pdf, filename, err := h.uc.ReportPDF(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "PDF_FAILED", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdf)
}

// CreateSnapshot godoc
// @Summary      Tomar y guardar una foto del inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      201  {object}  entity.Snapshot
// @Failure      502  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/inventory/snapshots [post]
func (h *InventoryHandler) CreateSnapshot(c *fiber.Ctx) error {
	snap, err := h.uc.Snapshot(c.UserContext())
	if err != nil {
		return snapshotError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(snap)
}

// GetLatestSnapshot godoc
// @Summary      Última foto guardada de la base en uso
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  entity.Snapshot
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/inventory/snapshots/latest [get]
func (h *InventoryHandler) GetLatestSnapshot(c *fiber.Ctx) error {
	snap, err := h.uc.Latest(c.UserContext())
	if err != nil {
		return snapshotError(c, err)
	}
	return c.JSON(snap)
}

func snapshotError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrStoreDisabled):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "STORE_DISABLED", Message: "el almacén de fotos no está configurado"})
	case errors.Is(err, domain.ErrNotAuthenticated):
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "ODOO_AUTH_FAILED", Message: "no se pudo autenticar con Odoo"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "no hay fotos para esta base de datos"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
