package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Codificaciones admitidas para los CSV.
const (
	EncodingUTF8   = "utf-8"
	EncodingLatin1 = "latin1"
)

// decodeReader envuelve r para entregar UTF-8. En UTF-8 se descarta el BOM si lo hay.
func decodeReader(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", EncodingUTF8, "utf8":
		return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())), nil
	case EncodingLatin1, "iso-8859-1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	case "windows-1252", "cp1252":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("codificación no soportada: %s", encoding)
	}
}

// row fila CSV con número de línea (1 = cabecera).
type row struct {
	line   int
	fields []string
}

// col devuelve la celda recortada; "" si no existe.
func (r row) col(i int) string {
	if i >= len(r.fields) {
		return ""
	}
	return strings.TrimSpace(r.fields[i])
}

func (r row) String() string { return strings.Join(r.fields, ",") }

// readRows lee todas las filas salvo la cabecera. Las líneas en blanco se ignoran.
func readRows(r io.Reader, encoding string) ([]row, error) {
	dec, err := decodeReader(r, encoding)
	if err != nil {
		return nil, err
	}
	cr := csv.NewReader(dec)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var rows []row
	header := true
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("leer CSV: %w", err)
		}
		if header {
			header = false
			continue
		}
		if isBlank(fields) {
			continue
		}
		line, _ := cr.FieldPos(0)
		rows = append(rows, row{line: line, fields: fields})
	}
	return rows, nil
}

func isBlank(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
