// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"

	// Listings
	KeyProductNotFound = "product.not_found"
	KeyUsedCarNotFound = "used_car.not_found"
	KeyInvalidID       = "listing.invalid_id"
	KeyInvalidFilter   = "listing.invalid_filter"

	// File Upload
	KeyFileUploadFailed = "file.upload_failed"
	KeyFileTooMany      = "file.too_many"

	// Validation
	KeyValidationInvalid = "validation.invalid"

	// Server
	KeyInternalError    = "server.internal_error"
	KeyOriginNotAllowed = "server.origin_not_allowed"
)
