package pdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	appbilling "github.com/jhoicas/energy-billing/internal/application/billing"
)

var _ appbilling.DocumentArchive = (*DirArchive)(nil)

// DirArchive guarda los PDFs en un directorio local.
type DirArchive struct {
	dir string
}

// NewDirArchive crea el directorio si no existe.
func NewDirArchive(dir string) (*DirArchive, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("pdf: crear directorio de archivo: %w", err)
	}
	return &DirArchive{dir: dir}, nil
}

// Save escribe el fichero de forma atómica (temporal + rename).
func (a *DirArchive) Save(_ context.Context, name string, data []byte) error {
	if name == "" || filepath.Base(name) != name {
		return fmt.Errorf("pdf: nombre de fichero inválido %q", name)
	}
	tmp, err := os.CreateTemp(a.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("pdf: archivo temporal: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("pdf: escribir %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("pdf: cerrar %s: %w", name, err)
	}
	return os.Rename(tmp.Name(), filepath.Join(a.dir, name))
}
