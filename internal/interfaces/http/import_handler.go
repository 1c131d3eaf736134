package http

import (
	"context"
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/energy-billing/internal/application/dto"
	"github.com/jhoicas/energy-billing/internal/application/importer"
	"github.com/jhoicas/energy-billing/internal/domain"
	"github.com/jhoicas/energy-billing/pkg/logger"
)

// ImportHandler recibe ficheros CSV (multipart, campo "file").
type ImportHandler struct {
	im  *importer.Importer
	log *logger.Logger
}

// NewImportHandler construye el handler.
func NewImportHandler(im *importer.Importer, log *logger.Logger) *ImportHandler {
	return &ImportHandler{im: im, log: log}
}

type importFunc func(ctx context.Context, r io.Reader) (*dto.ImportResult, error)

// Meters POST /api/meters/import
func (h *ImportHandler) Meters(c *fiber.Ctx) error { return h.handle(c, "meters", h.im.ImportMeters) }

// Contracts POST /api/contracts/import
func (h *ImportHandler) Contracts(c *fiber.Ctx) error {
	return h.handle(c, "contracts", h.im.ImportContracts)
}

// Readings POST /api/readings/import
func (h *ImportHandler) Readings(c *fiber.Ctx) error {
	return h.handle(c, "readings", h.im.ImportReadings)
}

func (h *ImportHandler) handle(c *fiber.Ctx, kind string, fn importFunc) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return writeError(c, fmt.Errorf("%w: se espera un fichero CSV en el campo 'file'", domain.ErrInvalidInput))
	}
	f, err := fh.Open()
	if err != nil {
		return writeError(c, err)
	}
	defer f.Close()

	res, err := fn(c.UserContext(), f)
	if err != nil {
		h.log.Error().Err(err).Str("kind", kind).Str("file", fh.Filename).Msg("importación fallida")
		return writeError(c, err)
	}
	h.log.Info().
		Str("kind", kind).
		Str("file", fh.Filename).
		Int("inserted", res.Inserted).
		Int("skipped", res.Skipped).
		Str("subject", GetSubject(c)).
		Msg("importación CSV")
	return c.JSON(res)
}
