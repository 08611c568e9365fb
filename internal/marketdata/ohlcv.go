package marketdata

import (
	"sort"

	"connector/internal/adapter"
	"connector/internal/adapter/enum"
	"connector/internal/errors"
	"connector/internal/extract"
	"connector/pkg/exception"
)

const (
	candleVolume   = 5
	candleTurnover = 6
)

// OHLCVs normalizes kline rows [start, open, high, low, close, volume, turnover] and returns them
// oldest first. Inverse contracts report volume in contracts, so turnover is used as volume.
func (n *Normalizer) OHLCVs(m adapter.Market, rows []any) ([]adapter.OHLCV, []errors.RecordError) {
	var failed []errors.RecordError
	candles := make([]adapter.OHLCV, 0, len(rows))
	for i, raw := range rows {
		c, err := OHLCV(m, raw)
		if err != nil {
			failed = append(failed, errors.RecordError{Index: i, ID: m.ID, Err: err})
			continue
		}
		candles = append(candles, c)
	}

	sort.SliceStable(candles, func(i, j int) bool {
		return candles[i].Timestamp < candles[j].Timestamp
	})

	return candles, failed
}

func OHLCV(m adapter.Market, raw any) (adapter.OHLCV, error) {
	row, ok := extract.AsList(raw)
	if !ok || len(row) <= candleVolume {
		return adapter.OHLCV{}, errors.Wrap(exception.ErrMalformedResponse, "kline row")
	}

	ts, ok := extract.AsInt64(row[0])
	if !ok {
		return adapter.OHLCV{}, errors.Wrap(exception.ErrMalformedResponse, "kline start time")
	}

	volumeIndex := candleVolume
	if m.Kind == enum.MarketKindInverse && len(row) > candleTurnover {
		volumeIndex = candleTurnover
	}

	return adapter.OHLCV{
		Timestamp: ts,
		Open:      decimalAt(row, 1),
		High:      decimalAt(row, 2),
		Low:       decimalAt(row, 3),
		Close:     decimalAt(row, 4),
		Volume:    decimalAt(row, volumeIndex),
	}, nil
}

func decimalAt(row []any, i int) string {
	d, _ := extract.AsDecimal(row[i])
	return d
}
