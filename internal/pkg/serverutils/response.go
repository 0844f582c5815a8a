package serverutils

// ErrorBody is the single error shape every endpoint answers with.
type ErrorBody struct {
	Error string `json:"error"`
}

func ErrorResponse(message string) ErrorBody {
	return ErrorBody{Error: message}
}
