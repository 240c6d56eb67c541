package errors

// Error codes for standardized error responses
const (
	// Validation errors
	ErrCodeInvalidRequest   = "invalid_request"
	ErrCodeValidationFailed = "validation_failed"
	ErrCodeMissingField     = "missing_field"

	// Resource errors
	ErrCodeNotFound      = "not_found"
	ErrCodeAlreadyExists = "already_exists"

	// Pipeline errors
	ErrCodePreconditionFailed = "precondition_failed"
	ErrCodeIngestFailed       = "ingest_failed"
	ErrCodeGenerationFailed   = "generation_failed"
	ErrCodeMalformedOutput    = "malformed_output"

	// Server errors
	ErrCodeInternalError      = "internal_error"
	ErrCodeServiceUnavailable = "service_unavailable"
	ErrCodeUpstreamError      = "upstream_error"
)
