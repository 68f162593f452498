package dto

// TokenResponse is the envelope returned whenever a token is issued:
// {"token": {"token": "...", "message": "..."}}
type TokenResponse struct {
	Token TokenPayload `json:"token"`
}

// TokenPayload carries the signed token and an advisory message.
type TokenPayload struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}
