package roomhandler

// ErrorResponse is the JSON error body for the room inspection API.
type ErrorResponse struct {
	Error string `json:"error"`
}
