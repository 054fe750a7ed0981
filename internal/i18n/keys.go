// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess = "success"
	KeyError   = "error"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthUserExists         = "auth.user_exists"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthRegisterSuccess    = "auth.register_success"

	// Users
	KeyUserNotFound = "user.not_found"

	// Applications
	KeyApplicationSubmitted     = "application.submitted"
	KeyApplicationNotFound      = "application.not_found"
	KeyApplicationStatusUpdated = "application.status_updated"
	KeyApplicationInvalidType   = "application.invalid_type"

	// Admin
	KeyAdminAccessDenied  = "admin.access_denied"
	KeyAdminActionSuccess = "admin.action_success"

	// Notifications
	KeyEmailNotSent = "email.not_sent"

	// Payments
	KeyPaymentSuccess      = "payment.success"
	KeyPaymentFailed       = "payment.failed"
	KeyTransactionNotFound = "transaction.not_found"

	// Uploads
	KeyUploadSuccess = "upload.success"
	KeyUploadFailed  = "upload.failed"

	// Validation
	KeyValidationInvalid = "validation.invalid"

	// Rate limiting
	KeyRateLimitExceeded = "rate_limit.exceeded"
)
