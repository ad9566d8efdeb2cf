package errors

// Error code constants, format: CATEGORY_SPECIFIC_DETAIL.
// The terminal front-end maps these codes to display messages.

const (
	// ==================== Authentication (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"        // login required
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS" // wrong email/password
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"       // token expired
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"       // malformed token
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED"       // token blacklisted on logout
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"        // duplicate email

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden    = "AUTHZ_FORBIDDEN"      // no access
	AuthzRoleNotFound = "AUTHZ_ROLE_NOT_FOUND" // role missing from context
	AuthzAdminOnly    = "AUTHZ_ADMIN_ONLY"     // admin surface

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID    = "VALIDATION_INVALID_ID"

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"

	// ==================== Catalog (PRODUCT_/CATEGORY_) ====================
	ProductNotFound  = "PRODUCT_NOT_FOUND"
	ProductSKUExists = "PRODUCT_SKU_EXISTS"
	CategoryNotFound = "CATEGORY_NOT_FOUND"
	CategoryInUse    = "CATEGORY_IN_USE" // products still reference it

	// ==================== Checkout (ORDER_/PAYMENT_) ====================
	OrderNotFound          = "ORDER_NOT_FOUND"
	OrderEmptyCart         = "ORDER_EMPTY_CART"
	OrderTotalsMismatch    = "ORDER_TOTALS_MISMATCH" // cart snapshot fails recomputation
	PaymentMethodNotFound  = "PAYMENT_METHOD_NOT_FOUND"
	PaymentMethodDisabled  = "PAYMENT_METHOD_DISABLED"

	// ==================== Upload (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFileTooLarge    = "UPLOAD_FILE_TOO_LARGE"
	UploadFailed          = "UPLOAD_FAILED"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
)
