package item

import "homekeeper/internal/pkg/apperr"

var (
	ErrItemNotFound     = apperr.NotFound("Item not found")
	ErrNegativePrice    = apperr.Validation("price must not be negative")
	ErrPurchaseDateZero = apperr.Validation("purchaseDate is required")
	ErrLastMaintZero    = apperr.Validation("lastMaintenance must be a valid date")
)
