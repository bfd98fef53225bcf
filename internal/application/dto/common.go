package dto

// ErrorResponse cuerpo de error uniforme de la API.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"error"`
}

// MessageResponse respuesta simple con mensaje.
type MessageResponse struct {
	Message string `json:"message"`
}
