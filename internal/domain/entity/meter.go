package entity

import "time"

// Meter representa un punto de suministro con contador. El ID lo asigna el sistema externo
// y no cambia nunca.
type Meter struct {
	ID         string
	CUPS       string // Código Universal del Punto de Suministro (opcional)
	Address    string
	PostalCode string
	City       string
	CreatedAt  time.Time
}
