package dto

// MessageResponse carries a human readable outcome.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// CountResponse reports how many accounts are registered.
type CountResponse struct {
	Count int `json:"count"`
}
