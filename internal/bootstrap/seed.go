package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jhoicas/energy-billing/internal/application/dto"
	"github.com/jhoicas/energy-billing/internal/application/importer"
	"github.com/jhoicas/energy-billing/pkg/logger"
)

// SeedFile resultado de importar un fichero de la carpeta de semillas.
type SeedFile struct {
	Name   string
	Result *dto.ImportResult
}

// Seed importa meters.csv, contracts.csv y readings.csv desde dir, en ese orden.
// Un fichero ausente se omite. Repetirlo es seguro: las filas existentes se saltan.
func Seed(ctx context.Context, im *importer.Importer, dir string, log *logger.Logger) ([]SeedFile, error) {
	steps := []struct {
		name string
		fn   func(context.Context, io.Reader) (*dto.ImportResult, error)
	}{
		{"meters.csv", im.ImportMeters},
		{"contracts.csv", im.ImportContracts},
		{"readings.csv", im.ImportReadings},
	}

	var out []SeedFile
	for _, step := range steps {
		path := filepath.Join(dir, step.name)
		f, err := os.Open(path)
		if errors.Is(err, fs.ErrNotExist) {
			log.Warn().Str("file", path).Msg("semilla ausente, se omite")
			continue
		}
		if err != nil {
			return out, fmt.Errorf("seed: %w", err)
		}
		res, err := step.fn(ctx, f)
		f.Close()
		if err != nil {
			return out, fmt.Errorf("seed %s: %w", step.name, err)
		}
		log.Info().
			Str("file", step.name).
			Int("inserted", res.Inserted).
			Int("skipped", res.Skipped).
			Int("errors", len(res.Errors)).
			Msg("semilla importada")
		for _, msg := range res.Errors {
			log.Warn().Str("file", step.name).Msg(msg)
		}
		out = append(out, SeedFile{Name: step.name, Result: res})
	}
	return out, nil
}
