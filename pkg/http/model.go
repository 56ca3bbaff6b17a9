package http

// ErrorBody is the only error shape clients ever see.
type ErrorBody struct {
	Error string `json:"error" example:"API key required"`
}

// ValidationError represents a single failed field rule.
type ValidationError struct {
	Code    string `json:"code,omitempty" example:"ERR_REQUIRED"`
	Field   string `json:"field,omitempty" example:"ticker"`
	Message string `json:"message,omitempty" example:"ticker is required"`
}
