package obs

import (
	"sync/atomic"
	"time"
)

// RecordType identifies a canonical record family.
type RecordType uint8

const (
	_record_type_beg RecordType = iota
	RecordMarket
	RecordCurrency
	RecordTicker
	RecordTrade
	RecordOHLCV
	RecordOpenInterest
	RecordGreeks
	RecordFundingRate
	RecordOrder
	RecordPosition
	RecordLedger
	RecordTransfer
	RecordSettlement
	RecordBorrowRate
	RecordDepositWithdrawFee
	RecordBalance
	_record_type_end
)

var recordTypeNames = [...]string{
	"",
	"market",
	"currency",
	"ticker",
	"trade",
	"ohlcv",
	"open_interest",
	"greeks",
	"funding_rate",
	"order",
	"position",
	"ledger",
	"transfer",
	"settlement",
	"borrow_rate",
	"deposit_withdraw_fee",
	"balance",
}

func (t RecordType) IsAvailable() bool {
	return t > _record_type_beg && t < _record_type_end
}

func (t RecordType) String() string {
	if !t.IsAvailable() {
		return ""
	}
	return recordTypeNames[t]
}

// ParseRecordType accepts the names String returns.
func ParseRecordType(s string) (RecordType, bool) {
	for i := _record_type_beg + 1; i < _record_type_end; i++ {
		if recordTypeNames[i] == s {
			return i, true
		}
	}
	return 0, false
}

// Metrics collects normalization counters and catalog load latency.
type Metrics struct {
	normalized  [_record_type_end]uint64
	skipped     [_record_type_end]uint64
	synthesized uint64
	pages       uint64

	loadLatency LatencyStats
}

// LatencyStats aggregates duration samples in nanoseconds.
type LatencyStats struct {
	count uint64
	sum   uint64
	min   uint64
	max   uint64
}

// LatencySnapshot is a point-in-time view of latency stats.
type LatencySnapshot struct {
	Count uint64
	Min   time.Duration
	Max   time.Duration
	Avg   time.Duration
}

// Snapshot captures the current metrics values.
type Snapshot struct {
	Normalized  map[string]uint64
	Skipped     map[string]uint64
	Synthesized uint64
	Pages       uint64
	LoadLatency LatencySnapshot
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

// AddNormalized counts records that produced a canonical value.
func (m *Metrics) AddNormalized(t RecordType, n int) {
	if m == nil || !t.IsAvailable() || n <= 0 {
		return
	}
	atomic.AddUint64(&m.normalized[t], uint64(n))
}

// AddSkipped counts records dropped from a batch.
func (m *Metrics) AddSkipped(t RecordType, n int) {
	if m == nil || !t.IsAvailable() || n <= 0 {
		return
	}
	atomic.AddUint64(&m.skipped[t], uint64(n))
}

// IncSynthesized counts markets built from an id instead of the catalog.
func (m *Metrics) IncSynthesized() {
	if m == nil {
		return
	}
	atomic.AddUint64(&m.synthesized, 1)
}

// IncPage counts fetched catalog pages.
func (m *Metrics) IncPage() {
	if m == nil {
		return
	}
	atomic.AddUint64(&m.pages, 1)
}

// ObserveLoad measures one market kind's catalog load.
func (m *Metrics) ObserveLoad(d time.Duration) {
	if m == nil {
		return
	}
	m.loadLatency.Observe(d)
}

// Snapshot returns a copy of the current metrics values.
func (m *Metrics) Snapshot() Snapshot {
	if m == nil {
		return Snapshot{}
	}
	normalized := make(map[string]uint64)
	skipped := make(map[string]uint64)
	for i := _record_type_beg + 1; i < _record_type_end; i++ {
		if v := atomic.LoadUint64(&m.normalized[i]); v > 0 {
			normalized[i.String()] = v
		}
		if v := atomic.LoadUint64(&m.skipped[i]); v > 0 {
			skipped[i.String()] = v
		}
	}
	return Snapshot{
		Normalized:  normalized,
		Skipped:     skipped,
		Synthesized: atomic.LoadUint64(&m.synthesized),
		Pages:       atomic.LoadUint64(&m.pages),
		LoadLatency: m.loadLatency.Snapshot(),
	}
}

// Observe records a duration sample.
func (l *LatencyStats) Observe(d time.Duration) {
	if d < 0 {
		return
	}
	nanos := uint64(d)
	atomic.AddUint64(&l.count, 1)
	atomic.AddUint64(&l.sum, nanos)

	for {
		min := atomic.LoadUint64(&l.min)
		if min != 0 && nanos >= min {
			break
		}
		if atomic.CompareAndSwapUint64(&l.min, min, nanos) {
			break
		}
	}

	for {
		max := atomic.LoadUint64(&l.max)
		if nanos <= max {
			break
		}
		if atomic.CompareAndSwapUint64(&l.max, max, nanos) {
			break
		}
	}
}

// Snapshot returns the aggregated latency stats.
func (l *LatencyStats) Snapshot() LatencySnapshot {
	count := atomic.LoadUint64(&l.count)
	if count == 0 {
		return LatencySnapshot{}
	}
	sum := atomic.LoadUint64(&l.sum)
	min := atomic.LoadUint64(&l.min)
	max := atomic.LoadUint64(&l.max)
	return LatencySnapshot{
		Count: count,
		Min:   time.Duration(min),
		Max:   time.Duration(max),
		Avg:   time.Duration(sum / count),
	}
}
