package model

import "errors"

var (
	// ErrStorageUnavailable means the series storage could not be reached or queried.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrUnknownMetric means a metric selector outside the catalogue was supplied.
	ErrUnknownMetric = errors.New("unknown metric")
	// ErrInsufficientData means the training window has fewer than 2 distinct dates.
	ErrInsufficientData = errors.New("insufficient data for projection")
	// ErrInvalidDate means the target date did not parse.
	ErrInvalidDate = errors.New("invalid target date")
)
