package agents

import (
	"github.com/markcheno/go-talib"
	"gonum.org/v1/gonum/stat"

	"github.com/mwarevito/financial-chat-analyzer/models"
)

const (
	shortPeriod = 20
	rsiPeriod   = 14
)

// movingAverage is the mean of up to period most recent closes. closes are
// newest first; a shorter series averages what is there.
func movingAverage(closes []float64, period int) models.Value {
	n := min(period, len(closes))
	if n == 0 {
		return models.NA()
	}
	return models.Some(stat.Mean(closes[:n], nil))
}

// fullMovingAverage is like movingAverage but absent unless period closes exist
func fullMovingAverage(closes []float64, period int) models.Value {
	if period <= 0 || len(closes) < period {
		return models.NA()
	}
	return movingAverage(closes, period)
}

// relativeStrength returns the RSI of the latest close. closes are newest first.
func relativeStrength(closes []float64, period int) models.Value {
	if len(closes) < period+1 {
		return models.NA()
	}

	// talib wants oldest first
	chronological := make([]float64, len(closes))
	for i, c := range closes {
		chronological[len(closes)-1-i] = c
	}

	out := talib.Rsi(chronological, period)
	if len(out) == 0 {
		return models.NA()
	}
	return models.Some(out[len(out)-1])
}
