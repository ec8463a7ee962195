package pricing

import "errors"

var (
	// ErrUnknownSource indicates a marketplace outside the supported set
	ErrUnknownSource = errors.New("unknown price source")

	// ErrNonPositivePrice indicates a price that is zero, negative or not finite
	ErrNonPositivePrice = errors.New("price must be a positive finite number")

	// ErrInvalidFeeRate indicates a fee rate outside [0, 1)
	ErrInvalidFeeRate = errors.New("fee rate must be within [0, 1)")

	// ErrInvalidShippingCost indicates a negative or non-finite shipping cost
	ErrInvalidShippingCost = errors.New("shipping cost must be a non-negative finite number")

	// ErrInvalidExchangeRate indicates a conversion rate that is not strictly positive
	ErrInvalidExchangeRate = errors.New("exchange rate must be positive")
)
