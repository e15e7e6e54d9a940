package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Schema errors
	ErrMissingColumn = errors.New("required column missing")
	ErrUnknownColumn = errors.New("unknown column")

	// Statistical errors, non-fatal at report level
	ErrInsufficientData      = errors.New("insufficient data for analysis")
	ErrDegenerate            = fmt.Errorf("%w: zero variance", ErrInsufficientData)
	ErrStatisticsUnavailable = errors.New("statistical test unavailable")
)
