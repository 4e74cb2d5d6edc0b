package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Authentication errors
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrNotAuthenticated   = fmt.Errorf("not authenticated")
	ErrInvalidSession     = fmt.Errorf("invalid session")
	ErrUnknownProvider    = fmt.Errorf("unknown sign-in provider")
	ErrProviderDisabled   = fmt.Errorf("sign-in provider not configured")
	ErrOAuthState         = fmt.Errorf("invalid oauth state")
	ErrEmailTaken         = fmt.Errorf("email already registered")
	ErrAccountNotLinked   = fmt.Errorf("email registered with another sign-in method")

	// Lookup errors
	ErrUserNotFound    = fmt.Errorf("user not found")
	ErrListingNotFound = fmt.Errorf("listing not found")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
