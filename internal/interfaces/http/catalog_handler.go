package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/energy-billing/internal/application/catalog"
)

// CatalogHandler lectura de contadores, contratos y lecturas.
type CatalogHandler struct {
	uc *catalog.UseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *catalog.UseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// ListMeters GET /api/meters
func (h *CatalogHandler) ListMeters(c *fiber.Ctx) error {
	list, err := h.uc.ListMeters(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// GetMeter GET /api/meters/:id
func (h *CatalogHandler) GetMeter(c *fiber.Ctx) error {
	m, err := h.uc.GetMeter(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(m)
}

// ListContracts GET /api/contracts?meter_id=
func (h *CatalogHandler) ListContracts(c *fiber.Ctx) error {
	list, err := h.uc.ListContracts(c.UserContext(), c.Query("meter_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// GetContract GET /api/contracts/:id
func (h *CatalogHandler) GetContract(c *fiber.Ctx) error {
	ct, err := h.uc.GetContract(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(ct)
}

// ListReadings GET /api/readings?meter_id=&from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *CatalogHandler) ListReadings(c *fiber.Ctx) error {
	res, err := h.uc.Readings(c.UserContext(), c.Query("meter_id"), c.Query("from"), c.Query("to"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(res)
}
