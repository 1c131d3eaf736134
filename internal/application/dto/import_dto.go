package dto

// ImportResult resumen de una importación CSV.
// Errors contiene un mensaje por fila descartada con motivo; los duplicados de
// contadores y contratos se saltan sin mensaje.
type ImportResult struct {
	Inserted int      `json:"inserted"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors"`
}
