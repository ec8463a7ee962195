package trading

import "errors"

var (
	// ErrMissingPricePoint indicates a buy or sell side was not provided
	ErrMissingPricePoint = errors.New("buy and sell price points are required")

	// ErrZeroBuyCost indicates a buy side whose acquisition cost is not positive
	ErrZeroBuyCost = errors.New("buy cost must be positive")

	// ErrInvalidThresholds indicates thresholds that cannot produce a meaningful result
	ErrInvalidThresholds = errors.New("invalid arbitrage thresholds")

	// ErrScanRecordNotFound indicates no recorded scan matched the query
	ErrScanRecordNotFound = errors.New("scan record not found")
)
