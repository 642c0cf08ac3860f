package model

// ErrorResponse is the JSON body of every failed request
type ErrorResponse struct {
	Status  int      `json:"status"`
	Message string   `json:"message"`
	Missing []string `json:"missing,omitempty"`
	Invalid []string `json:"invalid,omitempty"`
	Detail  string   `json:"detail,omitempty"`
}
