package services

import "errors"

// --- Custom Service Errors ---
var (
	ErrNoRetailers         = errors.New("no retailers found")
	ErrRetailerNotFound    = errors.New("retailer not found for this user")
	ErrSessionNotFound     = errors.New("no active session")
	ErrNoDraft             = errors.New("no sale is awaiting confirmation")
	ErrMissingSaleData     = errors.New("missing required sale data")
	ErrStockGateClosed     = errors.New("insufficient stock to confirm this sale")
	ErrDuplicateSubmission = errors.New("this sale was already submitted")
	ErrInvalidFilter       = errors.New("invalid sales filter")
)
