package response

// SuccessResponse is the generic success envelope.
type SuccessResponse struct {
	Message string `json:"message" example:"Operation completed"`
}

// ErrorResponse is the error envelope returned by every endpoint.
type ErrorResponse struct {
	// Machine-readable error code
	// example: VALIDATION_ERROR
	Code string `json:"code"`

	// Human-readable message
	// example: Request validation failed
	Message string `json:"message"`

	// Optional extra detail
	// example: position must be a positive integer
	Details string `json:"details,omitempty"`
}

// TokenResponse carries the staff access token.
type TokenResponse struct {
	// JWT for the /api/admin endpoints
	// example: eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9...
	AccessToken string `json:"access_token"`
}
