package bazi

import "errors"

// ErrUnknownSymbol is returned when a character outside the 10 stems and
// 12 branches (or an unknown element name) reaches a parser.
var ErrUnknownSymbol = errors.New("unknown stem or branch symbol")

// ErrInvalidThresholds is returned when bucket cut points do not partition
// the 0..100 score range.
var ErrInvalidThresholds = errors.New("invalid strength thresholds")
