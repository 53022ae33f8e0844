package webhook

import "homekeeper/internal/pkg/apperr"

var (
	ErrMalformedPayload = apperr.Validation("Malformed webhook payload")
	ErrItemNameRequired = apperr.Validation("item.name is required")
)
