package models

import (
	"fmt"
	"strings"
)

// DateFormat is the calendar date layout used throughout the API.
const DateFormat = "2006-01-02"

// Position is a user-entered equity position. Ticker is the unique key
// for persistence (upsert semantics). DateBought is an optional
// YYYY-MM-DD date; it may be superseded by date inference during
// evaluation when PriceBought matches a historical bar.
type Position struct {
	Ticker      string  `json:"ticker" badgerhold:"key"`
	Shares      float64 `json:"shares"`
	PriceBought float64 `json:"price_bought"`
	DateBought  string  `json:"date_bought,omitempty"`
}

// Normalize upper-cases and trims the ticker in place.
func (p *Position) Normalize() {
	p.Ticker = NormalizeTicker(p.Ticker)
}

// Validate rejects positions that must never enter the pipeline.
func (p *Position) Validate() error {
	if NormalizeTicker(p.Ticker) == "" {
		return fmt.Errorf("%w: ticker is required", ErrInvalidInput)
	}
	if p.Shares < 0 {
		return fmt.Errorf("%w: shares must be >= 0 for %s", ErrInvalidInput, p.Ticker)
	}
	if p.PriceBought < 0 {
		return fmt.Errorf("%w: price_bought must be >= 0 for %s", ErrInvalidInput, p.Ticker)
	}
	return nil
}

// NormalizeTicker upper-cases and trims a ticker symbol.
func NormalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}

// EvaluatedPosition is one fully evaluated row of a recalculation batch.
// Optional metrics are pointers so a missing value serializes as JSON
// null, matching the per-field InsufficientData semantics. When Error is
// set, every computed field is null and only the input echo remains.
type EvaluatedPosition struct {
	Position

	CurrentPrice  *float64 `json:"current_price"`
	PositionValue *float64 `json:"position_value"`
	ValuePaid     *float64 `json:"value_paid"`

	ATR       *float64 `json:"atr"`
	EntryATR  *float64 `json:"entry_atr"`
	ATRChange *float64 `json:"atr_change"`
	NoATRs    *float64 `json:"no_atrs"`

	TakeProfit *float64 `json:"take_profit"`
	StopLoss   *float64 `json:"stop_loss"`
	CurrentTP  *float64 `json:"current_tp"`
	CurrentSL  *float64 `json:"current_sl"`

	Beta      *float64 `json:"beta"`
	VaR       *float64 `json:"var"`
	IV        *float64 `json:"iv"`
	PctChange *float64 `json:"pct_change"`

	ExpectedReturn         *float64 `json:"expected_return"`
	Weight                 *float64 `json:"weight"`
	BetaWeighted           *float64 `json:"beta_weighted"`
	WeightedExpectedReturn *float64 `json:"weighted_expected_return"`

	HoldingPeriod *int `json:"holding_period"`

	Sector       string   `json:"sector,omitempty"`
	MarketCap    *float64 `json:"market_cap"`
	CapFormatted string   `json:"cap_formatted,omitempty"`

	Error string `json:"error,omitempty"`
}

// ErrorRow builds a degraded row echoing only the original inputs.
func ErrorRow(pos Position, err error) EvaluatedPosition {
	pos.Normalize()
	return EvaluatedPosition{
		Position: pos,
		Error:    err.Error(),
	}
}

// RecalculateRequest is the body of POST /api/recalculate.
type RecalculateRequest struct {
	Rows []Position `json:"rows"`
}

// RecalculateResponse carries the evaluated rows plus the market proxy's
// sector weight breakdown for comparison against target allocations.
type RecalculateResponse struct {
	Rows                []EvaluatedPosition `json:"rows"`
	MarketSectorWeights map[string]float64  `json:"market_sector_weights"`
}

// CashUpdate is the body and response of the cash endpoints.
type CashUpdate struct {
	Amount float64 `json:"amount"`
}

// SectorAllocation is one target sector allocation, keyed by sector name.
type SectorAllocation struct {
	Sector     string  `json:"sector" badgerhold:"key"`
	Allocation float64 `json:"allocation"`
}

// FormatMarketCap renders a market cap with a T/B/M suffix at the first
// threshold met, else the raw value to two decimals. Zero formats as "".
func FormatMarketCap(val float64) string {
	if val == 0 {
		return ""
	}
	switch {
	case val >= 1e12:
		return fmt.Sprintf("%.2fT", val/1e12)
	case val >= 1e9:
		return fmt.Sprintf("%.2fB", val/1e9)
	case val >= 1e6:
		return fmt.Sprintf("%.2fM", val/1e6)
	default:
		return fmt.Sprintf("%.2f", val)
	}
}

// Float returns a pointer to v, for optional metric fields.
func Float(v float64) *float64 {
	return &v
}
