package dto

// ErrorResponse respuesta de error uniforme de la API.
// Details lleva el detalle estructurado cuando existe (faltantes de stock,
// materiales no autorizados).
type ErrorResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}
