package dto

// Actor usuario que ejecuta la operación (claims del JWT). Name viaja
// denormalizado para estampar el registro de actividad.
type Actor struct {
	ID   string
	Name string
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Blocking presente solo en DELETE_BLOCKED: fórmulas que impiden el borrado.
	Blocking []BlockingFormula `json:"blocking,omitempty"`
}

// BlockingFormula fórmula que bloquea el borrado de una materia prima.
type BlockingFormula struct {
	ID   string `json:"id"`
	Code string `json:"code"` // con prefijo F
	Name string `json:"name"`
}
