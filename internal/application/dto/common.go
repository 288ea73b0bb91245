package dto

// ErrorResponse cuerpo de error HTTP.
// Detalles solo se incluye en fallos de validación estructurada.
type ErrorResponse struct {
	Error    string   `json:"error"`
	Code     string   `json:"code"`
	Detalle  string   `json:"detalle,omitempty"`
	Detalles []string `json:"detalles,omitempty"`
}

// MessageResponse respuesta simple de confirmación.
type MessageResponse struct {
	Mensaje string `json:"mensaje"`
}

// Patch reúne las claves JSON presentes en un cuerpo de actualización parcial.
// Lo completa el handler; los casos de uso lo validan contra su lista blanca.
type Patch struct {
	Fields []string `json:"-"`
}

// Has indica si la clave vino en el cuerpo.
func (p Patch) Has(field string) bool {
	for _, f := range p.Fields {
		if f == field {
			return true
		}
	}
	return false
}
