package utils

// Application constants
const (
	// Application name
	AppName = "BookMall"

	// API version
	APIVersion = "v1"

	// Default port
	DefaultPort = "8080"

	// Default pagination limit
	DefaultPaginationLimit = 10

	// Maximum pagination limit
	MaxPaginationLimit = 100

	// Minimum password length
	MinPasswordLength = 8

	// Maximum password length
	MaxPasswordLength = 72

	// Date layout used by coupon dates and statistics filters
	DateLayout = "2006-01-02"

	// Name of the cookie and session key carrying the login token
	AuthTokenKey = "auth_token"

	// Gin context key holding the authenticated principal
	PrincipalKey = "principal"

	// Gin context key holding the request ID
	RequestIDKey = "RequestID"
)

// Error messages
const (
	ErrInvalidCredentials = "Invalid account or password"
	ErrInvalidToken       = "Invalid or expired token"
	ErrUnauthorized       = "Please login for access"
	ErrForbidden          = "Access forbidden"
	ErrInvalidRequest     = "Invalid request"
	ErrInternalServer     = "Internal server error"
)
