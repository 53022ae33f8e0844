package auth

import "homekeeper/internal/pkg/apperr"

var (
	ErrMissingSignupFields = apperr.Validation("Email, password, and name are required")
	ErrMissingLoginFields  = apperr.Validation("Email and password are required")
	ErrInvalidEmail        = apperr.Validation("Unable to validate email address: invalid format")
)
