package types

import (
	"math"
	"slices"
	"strconv"
	"time"
)

// TimeData is the formatted clock section
type TimeData struct {
	Time string // "3:04"
	AMPM string // "AM" / "PM"
	Date string // "Mon Sep 29 2025"
}

// WeatherData holds the current conditions in whole degrees
type WeatherData struct {
	Current   int
	High      int
	Low       int
	UpdatedAt time.Time
}

// Quote is the daily change of one index
type Quote struct {
	Symbol string
	Label  string
	Change float64
}

// Value is the absolute rounded change, shown without a sign
func (q Quote) Value() string {
	return strconv.Itoa(int(math.Round(math.Abs(q.Change))))
}

// Up reports whether the change is non-negative
func (q Quote) Up() bool {
	return q.Change >= 0
}

// StockData holds the index quotes shown in the stocks section
type StockData struct {
	Quotes    []Quote
	UpdatedAt time.Time
}

// Equal compares quotes, ignoring the update time
func (s StockData) Equal(o StockData) bool {
	return slices.Equal(s.Quotes, o.Quotes)
}

// NewsData holds the cached headline list
type NewsData struct {
	Headlines []string
	UpdatedAt time.Time
}

// Snapshot is a fully materialized copy of everything the renderer needs for
// one frame. Nothing in it is shared with the data manager.
type Snapshot struct {
	Time    TimeData
	Weather WeatherData
	Stocks  StockData
	News    NewsData
}

// Equal compares readings, ignoring the update time
func (w WeatherData) Equal(o WeatherData) bool {
	return w.Current == o.Current && w.High == o.High && w.Low == o.Low
}
