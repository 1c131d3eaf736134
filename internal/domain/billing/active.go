package billing

import "github.com/jhoicas/energy-billing/internal/domain/entity"

// IsActive indica si el contrato se solapa con el rango:
// StartDate ≤ r.To y (sin EndDate o EndDate ≥ r.From).
// Un contrato que empieza o termina a mitad de mes se factura ese mes.
func IsActive(c *entity.Contract, r DateRange) bool {
	if c == nil {
		return false
	}
	if DateOf(c.StartDate).After(DateOf(r.To)) {
		return false
	}
	if c.EndDate != nil && DateOf(*c.EndDate).Before(DateOf(r.From)) {
		return false
	}
	return true
}

// ActiveContracts filtra los contratos activos en el rango conservando el orden de entrada.
func ActiveContracts(contracts []*entity.Contract, r DateRange) []*entity.Contract {
	active := make([]*entity.Contract, 0, len(contracts))
	for _, c := range contracts {
		if IsActive(c, r) {
			active = append(active, c)
		}
	}
	return active
}
