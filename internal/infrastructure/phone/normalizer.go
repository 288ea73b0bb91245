// Package phone valida y normaliza teléfonos con libphonenumber.
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"

	"github.com/jhoicas/tienda-api/internal/domain"
)

// Normalizer convierte números locales o internacionales a E.164.
// Solo acepta móviles (o números que la región no distingue de un fijo).
type Normalizer struct {
	region string
}

// NewNormalizer construye el normalizador para la región por defecto (ej. "AR").
func NewNormalizer(region string) *Normalizer {
	return &Normalizer{region: strings.ToUpper(region)}
}

// Normalize devuelve el número en E.164 o ErrInvalidInput.
func (n *Normalizer) Normalize(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", domain.Invalidf("El teléfono es obligatorio")
	}
	num, err := phonenumbers.Parse(raw, n.region)
	if err != nil {
		return "", domain.Invalidf("Número de teléfono inválido: %s", raw)
	}
	if !phonenumbers.IsValidNumber(num) {
		return "", domain.Invalidf("Número de teléfono inválido: %s", raw)
	}
	switch phonenumbers.GetNumberType(num) {
	case phonenumbers.MOBILE, phonenumbers.FIXED_LINE_OR_MOBILE:
	default:
		return "", domain.Invalidf("El teléfono %s debe ser un número móvil", raw)
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}
