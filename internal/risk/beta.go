package risk

// Beta computes the sensitivity of an asset's daily log returns to the
// market proxy's: cov(asset, market) / var(market), rounded to 4
// decimals. Both series are truncated to the last min(len) entries;
// alignment is positional from the end, assuming both end on the same
// trading day. Returns nil when either series is empty or market
// variance is zero.
func Beta(assetReturns, marketReturns []float64) *float64 {
	if len(assetReturns) == 0 || len(marketReturns) == 0 {
		return nil
	}

	n := len(assetReturns)
	if len(marketReturns) < n {
		n = len(marketReturns)
	}
	asset := assetReturns[len(assetReturns)-n:]
	market := marketReturns[len(marketReturns)-n:]
	if n < 2 {
		return nil
	}

	assetMean := mean(asset)
	marketMean := mean(market)

	// Sample covariance over population variance, matching the numpy
	// defaults (cov ddof=1, var ddof=0) the model was calibrated with.
	cov := 0.0
	variance := 0.0
	for i := 0; i < n; i++ {
		cov += (asset[i] - assetMean) * (market[i] - marketMean)
		d := market[i] - marketMean
		variance += d * d
	}
	cov /= float64(n - 1)
	variance /= float64(n)

	if variance == 0 {
		return nil
	}
	b := round(cov/variance, 4)
	return &b
}
