package carrier

import "errors"

var (
	ErrInvalidCarrierID = errors.New("invalid carrier id")
	ErrCarrierNotFound  = errors.New("carrier not found")
	ErrInvalidPIN       = errors.New("invalid pin")
	ErrSeedFailed       = errors.New("seed carriers")
)
