// Package models defines data structures for RiskSheet
package models

import "time"

// PriceBar is one daily OHLC bar. Histories are ordered chronologically,
// oldest first, with calendar-naive dates (midnight UTC).
type PriceBar struct {
	Date  time.Time `json:"date"`
	Open  float64   `json:"open"`
	High  float64   `json:"high"`
	Low   float64   `json:"low"`
	Close float64   `json:"close"`
}

// IssuerMetadata holds descriptive data about a ticker's issuer.
type IssuerMetadata struct {
	Sector    string   `json:"sector"`
	MarketCap *float64 `json:"market_cap,omitempty"`
}

// MarketSnapshot is the once-per-batch market proxy data shared by every
// row of an evaluation: daily log returns of the proxy plus its sector
// weight breakdown (best effort, may be empty).
type MarketSnapshot struct {
	Returns       []float64
	SectorWeights map[string]float64
}
