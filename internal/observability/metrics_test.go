package observability

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rpgo/nestegg/internal/domain"
	"github.com/rpgo/nestegg/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func TestMetrics_PrivateRegistries(t *testing.T) {
	// Two instances with the same namespace must not panic on registration.
	a := NewMetrics("")
	b := NewMetrics("")

	a.RecordCalculation("future_value", nil)
	assert.Contains(t, scrape(t, a), `nestegg_calculation_runs_total{calculator="future_value",outcome="ok"} 1`)
	assert.NotContains(t, scrape(t, b), `calculator="future_value"`)
}

func TestMetrics_Record(t *testing.T) {
	m := NewMetrics("test")

	m.RecordCalculation("retirement", fmt.Errorf("%w: years", domain.ErrInvalidArgument))
	m.RecordCalculation("retirement", errors.New("boom"))
	m.RecordValidation(domain.ValidationResult{IsValid: false, Errors: []string{"x"}})
	m.RecordValidation(domain.ValidationResult{IsValid: true, Errors: []string{}})
	m.RecordRequest("/v1/validate", "200", 15*time.Millisecond)

	out := scrape(t, m)
	assert.Contains(t, out, `test_calculation_runs_total{calculator="retirement",outcome="invalid"} 1`)
	assert.Contains(t, out, `test_calculation_runs_total{calculator="retirement",outcome="error"} 1`)
	assert.Contains(t, out, `test_validation_failures_total 1`)
	assert.Contains(t, out, `test_http_request_duration_seconds_count{route="/v1/validate",status="200"} 1`)
}

func TestInstrumentStore(t *testing.T) {
	m := NewMetrics("test")
	mem := storage.NewMemoryStore("")
	s := InstrumentStore(mem, m)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, domain.DefaultInputs()))
	_, err := s.Load(ctx)
	require.NoError(t, err)
	_, err = s.Reset(ctx)
	require.NoError(t, err)

	mem.Put([]byte("{"))
	_, err = s.Load(ctx)
	require.Error(t, err)

	out := scrape(t, m)
	assert.Contains(t, out, `test_store_operations_total{op="save",outcome="ok"} 1`)
	assert.Contains(t, out, `test_store_operations_total{op="load",outcome="ok"} 1`)
	assert.Contains(t, out, `test_store_operations_total{op="load",outcome="error"} 1`)
	assert.Contains(t, out, `test_store_operations_total{op="reset",outcome="ok"} 1`)
	assert.NoError(t, s.Close())
}
