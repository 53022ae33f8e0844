package maintenance

import "homekeeper/internal/pkg/apperr"

var (
	ErrDateRequired = apperr.Validation("date is required")
	ErrNegativeCost = apperr.Validation("cost must not be negative")
)
