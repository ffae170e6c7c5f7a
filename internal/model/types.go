// Package model defines shared data structures.
package model

import (
	"time"

	"github.com/verte-zerg/stardate/internal/instant"
)

// RunConfig defines output settings for a conversion run.
type RunConfig struct {
	Formats string
	Digits  int
	Record  bool
}

// HistoryConfig defines filters for history output.
type HistoryConfig struct {
	Kind  string
	Since *time.Time
	Last  int
}

// Conversion is one successfully converted input.
type Conversion struct {
	Input      string
	Kind       string
	Instant    instant.Time
	RecordedAt time.Time
}

// ConversionRecord is a stored conversion.
type ConversionRecord struct {
	ID int64
	Conversion
}

// KindCount is the number of stored conversions read in one format.
type KindCount struct {
	Kind  string
	Count int
}
