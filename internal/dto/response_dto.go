package dto

// ErrorResponse is the uniform error body returned by all handlers. Kind
// carries the machine-readable error taxonomy value when the failure is an
// expected operational outcome.
type ErrorResponse struct {
	Message string   `json:"message"`
	Kind    string   `json:"kind,omitempty"`
	Details []string `json:"details,omitempty"`
}
