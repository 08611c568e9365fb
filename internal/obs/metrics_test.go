package obs

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.AddNormalized(RecordTicker, 10)
			m.AddSkipped(RecordTicker, 1)
		}()
	}
	wg.Wait()

	m.IncSynthesized()
	m.IncPage()
	m.AddNormalized(RecordType(0), 5)
	m.ObserveLoad(2 * time.Millisecond)
	m.ObserveLoad(4 * time.Millisecond)

	snap := m.Snapshot()
	assert.Equal(t, map[string]uint64{"ticker": 80}, snap.Normalized)
	assert.Equal(t, map[string]uint64{"ticker": 8}, snap.Skipped)
	assert.Equal(t, uint64(1), snap.Synthesized)
	assert.Equal(t, uint64(1), snap.Pages)
	assert.Equal(t, uint64(2), snap.LoadLatency.Count)
	assert.Equal(t, 2*time.Millisecond, snap.LoadLatency.Min)
	assert.Equal(t, 3*time.Millisecond, snap.LoadLatency.Avg)
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	m.AddNormalized(RecordOrder, 1)
	m.IncSynthesized()
	assert.Equal(t, Snapshot{}, m.Snapshot())
}

func TestRecordTypeNames(t *testing.T) {
	for rt := RecordMarket; rt.IsAvailable(); rt++ {
		parsed, ok := ParseRecordType(rt.String())
		assert.True(t, ok, rt.String())
		assert.Equal(t, rt, parsed)
	}

	_, ok := ParseRecordType("candle")
	assert.False(t, ok)
}
