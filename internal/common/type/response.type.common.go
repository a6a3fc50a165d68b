package types

// Response is what services hand back to handlers.
type Response struct {
	Code    int
	Message string
	Data    any
	Error   error
}

// ResponseAPI is the JSON envelope written to clients.
type ResponseAPI struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   any    `json:"error,omitempty"`
}

// FieldErrors is implemented by errors that carry per-field messages.
type FieldErrors interface {
	error
	Fields() map[string]string
}
