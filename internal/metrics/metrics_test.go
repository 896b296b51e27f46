package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.ObserveRPC("/x", "ok", time.Millisecond)
	m.StoreMutation("create_user")
	m.SaveFailed()
	m.InjectedFailure()
	m.SimulatedLatency(time.Second)
}

func TestCounters(t *testing.T) {
	m := New()

	m.SaveFailed()
	m.SaveFailed()
	m.InjectedFailure()
	m.StoreMutation("toggle_favorite")

	if got := testutil.ToFloat64(m.saveFailures); got != 2 {
		t.Errorf("save failures = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.injectedFailures); got != 1 {
		t.Errorf("injected failures = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.storeMutations.WithLabelValues("toggle_favorite")); got != 1 {
		t.Errorf("toggle_favorite mutations = %v, want 1", got)
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.ObserveRPC("/groovematch.v1.AuthService/Authenticate", "ok", 10*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "groovematch_rpc_requests_total") {
		t.Error("expected rpc counter in exposition output")
	}
}
