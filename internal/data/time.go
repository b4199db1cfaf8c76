package data

import (
	"time"

	"github.com/fkcurrie/ledclock-golang/internal/types"
)

// TimeProvider formats the wall clock for the date and time sections
type TimeProvider struct {
	now func() time.Time
}

// NewTimeProvider returns a provider reading the local clock
func NewTimeProvider() *TimeProvider {
	return &TimeProvider{now: time.Now}
}

// Data returns the current 12-hour time without a leading zero, the AM/PM
// marker and the date as "Mon Sep 29 2025".
func (p *TimeProvider) Data() types.TimeData {
	return FormatTime(p.now())
}

// FormatTime formats t for display
func FormatTime(t time.Time) types.TimeData {
	return types.TimeData{
		Time: t.Format("3:04"),
		AMPM: t.Format("PM"),
		Date: t.Format("Mon Jan 2 2006"),
	}
}
