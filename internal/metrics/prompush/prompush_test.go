package prompush

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bulkload/internal/metrics"
)

// series gathers the backend registry into "name{k=v,...}" -> value, using
// the counter value or, for summaries, the sample count.
func series(t *testing.T, b *Backend) map[string]float64 {
	t.Helper()

	families, err := b.reg.Gather()
	require.NoError(t, err)

	out := map[string]float64{}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			out[seriesKey(mf.GetName(), m)] = seriesValue(m)
		}
	}
	return out
}

func seriesKey(name string, m *dto.Metric) string {
	var pairs []string
	for _, lp := range m.GetLabel() {
		pairs = append(pairs, lp.GetName()+"="+lp.GetValue())
	}
	sort.Strings(pairs)
	return name + "{" + strings.Join(pairs, ",") + "}"
}

func seriesValue(m *dto.Metric) float64 {
	if c := m.GetCounter(); c != nil {
		return c.GetValue()
	}
	if s := m.GetSummary(); s != nil {
		return float64(s.GetSampleCount())
	}
	return 0
}

func TestNewBackend(t *testing.T) {
	t.Parallel()

	_, err := NewBackend("bulkload", "")
	require.Error(t, err)

	b, err := NewBackend("", "http://gateway:9091")
	require.NoError(t, err)
	assert.Equal(t, "bulkload", b.jobName)
	assert.Equal(t, "http://gateway:9091", b.gatewayURL)
}

// TestBackend_LoadSeries replays the counters one load run emits and checks
// the resulting series.
func TestBackend_LoadSeries(t *testing.T) {
	t.Parallel()

	b, err := NewBackend("orders", "http://gateway:9091")
	require.NoError(t, err)

	b.IncCounter(metrics.StepTotal, 1, metrics.Labels{"step": "infer", "status": "success"})
	b.IncCounter(metrics.StepTotal, 1, metrics.Labels{"step": "load", "status": "failure"})
	b.IncCounter(metrics.RowsTotal, 120, metrics.Labels{"kind": "loaded"})
	b.IncCounter(metrics.RowsTotal, 30, metrics.Labels{"kind": "loaded"})
	b.IncCounter(metrics.RowsTotal, 1, metrics.Labels{"kind": "rejected"})
	b.IncCounter(metrics.StatementsTotal, 150, nil)
	b.IncCounter(metrics.FilesTotal, 1, metrics.Labels{"status": "success"})
	b.IncCounter(metrics.FilesTotal, 1, metrics.Labels{"status": "success"})
	b.IncCounter(metrics.FilesTotal, 1, metrics.Labels{"status": "failure"})
	b.IncCounter("bulkload_unknown_total", 1, nil)

	got := series(t, b)
	want := map[string]float64{
		"bulkload_step_total{status=success,step=infer}": 1,
		"bulkload_step_total{status=failure,step=load}":  1,
		"bulkload_rows_total{kind=loaded}":               150,
		"bulkload_rows_total{kind=rejected}":             1,
		"bulkload_statements_total{}":                    150,
		"bulkload_files_total{status=success}":           2,
		"bulkload_files_total{status=failure}":           1,
	}
	assert.Equal(t, want, got)
}

func TestBackend_StepDuration(t *testing.T) {
	t.Parallel()

	b, err := NewBackend("orders", "http://gateway:9091")
	require.NoError(t, err)

	lbls := metrics.Labels{"step": "ddl_apply", "status": "success"}
	b.ObserveHistogram(metrics.StepDurationSeconds, 0.25, lbls)
	b.ObserveHistogram(metrics.StepDurationSeconds, 0.75, lbls)
	b.ObserveHistogram(metrics.RowsTotal, 9, lbls)

	m := &dto.Metric{}
	obs, ok := b.stepDuration.WithLabelValues("ddl_apply", "success").(prometheus.Metric)
	require.True(t, ok)
	require.NoError(t, obs.Write(m))
	assert.Equal(t, uint64(2), m.GetSummary().GetSampleCount())
	assert.InDelta(t, 1.0, m.GetSummary().GetSampleSum(), 1e-9)
}

func TestBackend_ZeroValueDoesNotPanic(t *testing.T) {
	t.Parallel()

	var b Backend
	assert.NotPanics(t, func() {
		b.IncCounter(metrics.FilesTotal, 1, metrics.Labels{"status": "success"})
		b.IncCounter(metrics.StatementsTotal, 1, nil)
		b.ObserveHistogram(metrics.StepDurationSeconds, 1, nil)
	})
}

func TestFlush(t *testing.T) {
	t.Parallel()

	type pushed struct {
		method, path string
		body         []byte
	}
	reqs := make(chan pushed, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		reqs <- pushed{method: r.Method, path: r.URL.Path, body: body}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	b, err := NewBackend("orders", server.URL)
	require.NoError(t, err)
	b.IncCounter(metrics.FilesTotal, 1, metrics.Labels{"status": "success"})

	require.NoError(t, b.Flush())

	select {
	case got := <-reqs:
		assert.Equal(t, http.MethodPut, got.method)
		assert.Equal(t, "/metrics/job/orders", got.path)
		assert.Contains(t, string(got.body), metrics.FilesTotal)
	default:
		t.Fatal("Flush did not reach the Pushgateway")
	}
}

func TestFlush_GatewayError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer server.Close()

	b, err := NewBackend("orders", server.URL)
	require.NoError(t, err)
	assert.Error(t, b.Flush())
}
