package risk

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/NawraaSayed/RiskSheet/internal/common"
	"github.com/NawraaSayed/RiskSheet/internal/interfaces"
	"github.com/NawraaSayed/RiskSheet/internal/models"
)

// Default model parameters, overridable via options.
const (
	DefaultProxyTicker  = "SPY"
	DefaultRiskFreeRate = 0.0488
	DefaultWorkers      = 4
)

// Evaluator runs the per-position risk pipeline and aggregates the
// results into portfolio weights. It implements
// interfaces.EvaluationService and holds no state between batches.
type Evaluator struct {
	provider     interfaces.MarketDataProvider
	logger       *common.Logger
	proxyTicker  string
	riskFreeRate float64
	workers      int
	newSampler   func() NormalSampler
	now          func() time.Time
}

// Option configures the evaluator.
type Option func(*Evaluator)

// WithProxyTicker sets the market benchmark used for beta and CAPM.
func WithProxyTicker(ticker string) Option {
	return func(e *Evaluator) {
		if ticker != "" {
			e.proxyTicker = models.NormalizeTicker(ticker)
		}
	}
}

// WithRiskFreeRate sets the annualized risk-free rate.
func WithRiskFreeRate(rate float64) Option {
	return func(e *Evaluator) {
		e.riskFreeRate = rate
	}
}

// WithWorkers bounds the per-row evaluation pool.
func WithWorkers(n int) Option {
	return func(e *Evaluator) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithSamplerFactory injects the random source used by the Monte Carlo
// simulation. Each row draws from a fresh sampler, so the factory must
// return a new instance per call. Tests inject seeded sources for
// deterministic VaR.
func WithSamplerFactory(f func() NormalSampler) Option {
	return func(e *Evaluator) {
		e.newSampler = f
	}
}

// WithClock injects the time source used for holding-period calculation.
func WithClock(now func() time.Time) Option {
	return func(e *Evaluator) {
		e.now = now
	}
}

// NewEvaluator creates an evaluator backed by the given market data provider.
func NewEvaluator(provider interfaces.MarketDataProvider, logger *common.Logger, opts ...Option) *Evaluator {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	e := &Evaluator{
		provider:     provider,
		logger:       logger,
		proxyTicker:  DefaultProxyTicker,
		riskFreeRate: DefaultRiskFreeRate,
		workers:      DefaultWorkers,
		newSampler:   defaultSamplerFactory(),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// defaultSamplerFactory returns unseeded samplers; VaR output varies
// between calls unless WithSamplerFactory injects a fixed seed.
func defaultSamplerFactory() func() NormalSampler {
	var ctr atomic.Int64
	return func() NormalSampler {
		return rand.New(rand.NewSource(time.Now().UnixNano() + ctr.Add(1)))
	}
}

// Evaluate runs the pipeline over a batch. The market proxy is fetched
// once per batch; rows are evaluated on a bounded worker pool and placed
// by index so output order matches input order. Aggregation runs after
// every row completes. A failure on one row degrades only that row; a
// failure fetching the proxy itself degrades beta and expected return to
// null across all rows.
func (e *Evaluator) Evaluate(ctx context.Context, positions []models.Position) (*models.RecalculateResponse, error) {
	for i := range positions {
		if err := positions[i].Validate(); err != nil {
			return nil, err
		}
	}

	resp := &models.RecalculateResponse{
		Rows:                []models.EvaluatedPosition{},
		MarketSectorWeights: map[string]float64{},
	}
	if len(positions) == 0 {
		return resp, nil
	}

	market := e.fetchMarketSnapshot(ctx)
	resp.MarketSectorWeights = market.SectorWeights

	rows := make([]models.EvaluatedPosition, len(positions))
	sem := make(chan struct{}, e.workers)
	var wg sync.WaitGroup
	for i := range positions {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			rows[i] = e.evaluateSafe(ctx, positions[i], market.Returns)
		}(i)
	}
	wg.Wait()

	ApplyPortfolioWeights(rows)
	resp.Rows = rows
	return resp, nil
}

// fetchMarketSnapshot loads the proxy's return series and sector weights
// once per batch. Both degrade to empty on failure.
func (e *Evaluator) fetchMarketSnapshot(ctx context.Context) models.MarketSnapshot {
	snap := models.MarketSnapshot{SectorWeights: map[string]float64{}}

	bars, err := e.provider.FetchHistory(ctx, e.proxyTicker)
	if err != nil {
		e.logger.Warn().Err(err).Str("proxy", e.proxyTicker).
			Msg("Market proxy history unavailable - beta and expected return degrade to null")
	} else {
		snap.Returns = LogReturns(bars)
	}

	if weights := e.provider.FetchSectorWeights(ctx, e.proxyTicker); weights != nil {
		snap.SectorWeights = weights
	}
	return snap
}

// evaluateSafe converts any row-level failure, including a panic, into a
// degraded row so it can never abort the batch.
func (e *Evaluator) evaluateSafe(ctx context.Context, pos models.Position, marketReturns []float64) (row models.EvaluatedPosition) {
	defer func() {
		if rec := recover(); rec != nil {
			e.logger.Error().Str("ticker", pos.Ticker).
				Str("panic", fmt.Sprintf("%v", rec)).
				Msg("Panic recovered during row evaluation")
			row = models.ErrorRow(pos, fmt.Errorf("evaluation failed: %v", rec))
		}
	}()

	row, err := e.evaluateRow(ctx, pos, marketReturns)
	if err != nil {
		e.logger.Warn().Err(err).Str("ticker", pos.Ticker).Msg("Row evaluation failed")
		return models.ErrorRow(pos, err)
	}
	return row
}

// evaluateRow computes all per-position metrics. Weights and the
// weight-derived fields are filled later by ApplyPortfolioWeights once
// the batch total is known.
func (e *Evaluator) evaluateRow(ctx context.Context, pos models.Position, marketReturns []float64) (models.EvaluatedPosition, error) {
	pos.Normalize()
	var row models.EvaluatedPosition

	bars, err := e.provider.FetchHistory(ctx, pos.Ticker)
	if err != nil {
		return row, err
	}
	if len(bars) == 0 {
		return row, fmt.Errorf("%w: %s", models.ErrDataUnavailable, pos.Ticker)
	}

	meta, err := e.provider.FetchMetadata(ctx, pos.Ticker)
	if err != nil {
		return row, fmt.Errorf("metadata for %s: %w", pos.Ticker, err)
	}

	currentPrice := round(bars[len(bars)-1].Close, 4)
	returns := LogReturns(bars)

	inferredDate, err := InferPurchaseDate(bars, pos.PriceBought, pos.DateBought)
	if err != nil {
		return row, err
	}
	if pos.DateBought != "" && inferredDate != pos.DateBought {
		e.logger.Debug().Str("ticker", pos.Ticker).
			Str("supplied", pos.DateBought).Str("inferred", inferredDate).
			Msg("Entry price matched history - supplied purchase date superseded")
	}
	pos.DateBought = inferredDate
	row.Position = pos

	row.CurrentPrice = models.Float(currentPrice)
	row.PositionValue = models.Float(round(currentPrice*pos.Shares, 2))
	row.ValuePaid = models.Float(round(pos.PriceBought*pos.Shares, 2))

	atrSeries := ATRSeries(bars)
	row.ATR = LastATR(atrSeries)

	holdingPeriod := 0
	if inferredDate != "" {
		if dt, perr := time.Parse(models.DateFormat, inferredDate); perr == nil {
			holdingPeriod = HoldingPeriodDays(inferredDate, e.now())
			row.EntryATR = ATRAt(bars, atrSeries, dt)
		}
	}
	row.HoldingPeriod = &holdingPeriod

	if len(marketReturns) > 0 {
		row.Beta = Beta(returns, marketReturns)
	}
	row.VaR = MonteCarloVaR(*row.PositionValue, returns, e.newSampler())
	row.IV = EstimateImpliedVol(currentPrice, e.riskFreeRate, IVTenorDays, returns)

	if row.ATR != nil && row.EntryATR != nil {
		row.ATRChange = models.Float(round(*row.ATR-*row.EntryATR, 4))
	}
	if pos.PriceBought > 0 {
		row.PctChange = models.Float(round((currentPrice-pos.PriceBought)/pos.PriceBought, 4))
	} else {
		row.PctChange = models.Float(0)
	}

	row.Sector = meta.Sector
	if row.Sector == "" {
		row.Sector = "Unknown"
	}
	row.MarketCap = meta.MarketCap
	if meta.MarketCap != nil && *meta.MarketCap != 0 {
		row.CapFormatted = models.FormatMarketCap(*meta.MarketCap)
	}

	if row.EntryATR != nil && *row.EntryATR > 0 {
		row.NoATRs = models.Float(round((currentPrice-pos.PriceBought)/(*row.EntryATR), 4))
	}
	if row.EntryATR != nil && *row.EntryATR != 0 {
		row.TakeProfit = models.Float(round(pos.PriceBought+2*(*row.EntryATR), 2))
		row.StopLoss = models.Float(round(pos.PriceBought-2*(*row.EntryATR), 2))
	}
	if row.ATR != nil && *row.ATR != 0 {
		row.CurrentTP = models.Float(round(currentPrice+2*(*row.ATR), 2))
		row.CurrentSL = models.Float(round(currentPrice-2*(*row.ATR), 2))
	}

	if row.Beta != nil && len(marketReturns) > 0 {
		annualMarketReturn := mean(marketReturns) * TradingDaysPerYear
		row.ExpectedReturn = models.Float(round(e.riskFreeRate+*row.Beta*(annualMarketReturn-e.riskFreeRate), 6))
	}

	return row, nil
}
