package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// LegacyErrorResponse cuerpo de error del endpoint de historial; el frontend
// original espera exactamente {"error": "..."}.
type LegacyErrorResponse struct {
	Error string `json:"error"`
}
