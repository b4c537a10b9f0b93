package metrics

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordHTTPRequest(t *testing.T) {
	counter := HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/test-route", "200")
	before := testutil.ToFloat64(counter)

	RecordHTTPRequest(http.MethodGet, "/api/test-route", http.StatusOK, 15*time.Millisecond)
	RecordHTTPRequest(http.MethodGet, "/api/test-route", http.StatusOK, 40*time.Millisecond)

	if got := testutil.ToFloat64(counter) - before; got != 2 {
		t.Errorf("request count delta = %v, want 2", got)
	}
	if n := testutil.CollectAndCount(HTTPRequestDuration, "cinelog_http_request_duration_seconds"); n == 0 {
		t.Error("duration histogram has no series")
	}
}

func TestStoreLabels(t *testing.T) {
	for _, store := range []string{StoreAccount, StoreGuest} {
		c := ReviewWrites.WithLabelValues(store, "save")
		before := testutil.ToFloat64(c)
		c.Inc()
		if got := testutil.ToFloat64(c) - before; got != 1 {
			t.Errorf("%s review writes delta = %v, want 1", store, got)
		}
	}
}
