// Package httpapi defines the JSON envelopes shared by every transport handler.
package httpapi

// MsgNotFound is the body message for every not-found (and cross-owner) lookup.
const MsgNotFound = "The data you are looking for was not found."

// ErrorResponse is the error envelope returned by all endpoints:
// {"error": {"message": "..."}}
type ErrorResponse struct {
	Error ErrorMessage `json:"error"`
}

// ErrorMessage carries the human-readable error text.
type ErrorMessage struct {
	Message string `json:"message"`
}

// Error はメッセージからエラーレスポンスのエンベロープを組み立てます。
func Error(message string) ErrorResponse {
	return ErrorResponse{Error: ErrorMessage{Message: message}}
}
