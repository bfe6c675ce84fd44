package metric

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasic(t *testing.T) {
	b := &Basic{}

	b.RecordFrame(true, ReasonAccepted)
	b.RecordFrame(false, ReasonFeatureCount)
	b.RecordFrame(true, ReasonAccepted)
	b.RecordIngest(3, 1, 10*time.Millisecond)
	b.RecordSave(2*time.Millisecond, nil)
	b.RecordSave(4*time.Millisecond, errors.New("boom"))
	b.RecordLoad(time.Millisecond, nil)

	stats := b.Stats()
	assert.Equal(t, int64(2), stats.FramesAccepted)
	assert.Equal(t, int64(1), stats.FramesSkipped)
	assert.Equal(t, int64(3), stats.LastTotal)
	assert.Equal(t, int64(1), stats.LastSkipped)
	assert.Equal(t, int64(2), stats.SaveCount)
	assert.Equal(t, int64(1), stats.SaveErrors)
	assert.Equal(t, (3 * time.Millisecond).Nanoseconds(), stats.SaveAvgNanos)
	assert.Equal(t, int64(1), stats.LoadCount)
	assert.Zero(t, stats.LoadErrors)
}

func TestPrometheus(t *testing.T) {
	reg := prometheus.NewRegistry()
	p, err := NewPrometheus(reg)
	require.NoError(t, err)

	p.RecordFrame(true, ReasonAccepted)
	p.RecordFrame(false, ReasonNoViews)
	p.RecordFrame(false, ReasonNoViews)
	p.RecordIngest(3, 2, time.Millisecond)

	families, err := reg.Gather()
	require.NoError(t, err)

	values := map[string]float64{}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			key := mf.GetName()
			for _, lp := range m.GetLabel() {
				key += "/" + lp.GetValue()
			}
			if c := m.GetCounter(); c != nil {
				values[key] = c.GetValue()
			}
			if g := m.GetGauge(); g != nil {
				values[key] = g.GetValue()
			}
		}
	}

	assert.Equal(t, 2.0, values["scenedb_frames_total/skipped/"+ReasonNoViews])
	assert.Equal(t, 1.0, values["scenedb_frames_total/accepted/"+ReasonAccepted])
	assert.Equal(t, 2.0, values["scenedb_last_ingest_skipped"])
	assert.Equal(t, 3.0, values["scenedb_last_ingest_frames"])

	_, err = NewPrometheus(reg)
	assert.Error(t, err, "duplicate registration")
}

var _ Collector = Noop{}
var _ Collector = (*Basic)(nil)
var _ Collector = (*Prometheus)(nil)
