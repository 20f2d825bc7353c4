package dto

// Límites de registros por consulta a Odoo.
const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// LimitRequest parámetro ?limit= de los listados.
type LimitRequest struct {
	Limit int `query:"limit"`
}

// Normalize aplica el valor por defecto si Limit es cero o negativo y recorta a MaxLimit.
func (p *LimitRequest) Normalize() {
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
