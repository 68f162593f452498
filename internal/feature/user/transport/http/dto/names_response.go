package dto

// NamesResponse is the body of GET /api/names: {"names": [...]}.
type NamesResponse struct {
	Names []string `json:"names"`
}
