package vacation

import "errors"

var (
	ErrNotFound            = errors.New("vacation period not found")
	ErrInvalidYear         = errors.New("invalid planning year")
	ErrDistributionRunning = errors.New("a distribution for this year is already running")
	ErrInvalidStatus       = errors.New("invalid period status")
)
