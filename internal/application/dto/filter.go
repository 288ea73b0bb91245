package dto

import (
	"strings"

	"github.com/jhoicas/tienda-api/internal/domain"
)

// ParseFlag interpreta un filtro booleano de query string ("", "true", "false").
// Vacío devuelve nil (sin filtro). Cualquier otro valor es ErrInvalidParameter.
func ParseFlag(name, raw string) (*bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return nil, nil
	case "true":
		v := true
		return &v, nil
	case "false":
		v := false
		return &v, nil
	default:
		return nil, domain.InvalidParameterf("El parámetro '%s' debe ser 'true' o 'false'", name)
	}
}
