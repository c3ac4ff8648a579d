package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/fotoctl/fotolia"
)

func TestOutcome(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "ok"},
		{&fotolia.APIError{Message: "bad"}, "api"},
		{&fotolia.HTTPStatusError{StatusCode: 500}, "http_status"},
		{&fotolia.TransportError{Reason: "no content type returned"}, "transport"},
		{&fotolia.AuthRequiredError{}, "auth_required"},
		{errors.New("plain"), "error"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Outcome(tt.err))
	}
}

func TestRecordCall(t *testing.T) {
	c := New()

	c.RecordCall(fotolia.CallDiagnostics{Sequence: 1, Method: "getData", Elapsed: 200 * time.Millisecond})
	c.RecordCall(fotolia.CallDiagnostics{Sequence: 2, Method: "getData", Elapsed: time.Second})
	c.RecordCall(fotolia.CallDiagnostics{Sequence: 3, Method: "getData", Err: &fotolia.APIError{Message: "x"}})

	assert.Equal(t, 2.0, testutil.ToFloat64(c.calls.WithLabelValues("getData", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.calls.WithLabelValues("getData", "api")))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.lastCall))
	assert.Equal(t, 1, testutil.CollectAndCount(c.callTime))
}

func TestObserveDownload(t *testing.T) {
	c := New()

	c.ObserveDownload("comp", nil)
	c.ObserveDownload("media", &fotolia.AuthRequiredError{})

	assert.Equal(t, 1.0, testutil.ToFloat64(c.downloads.WithLabelValues("comp", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.downloads.WithLabelValues("media", "auth_required")))
}

func TestHandler(t *testing.T) {
	c := New()
	c.RecordCall(fotolia.CallDiagnostics{Sequence: 7, Method: "test"})

	rr := httptest.NewRecorder()
	c.Handler().ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rr.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `fotoctl_api_calls_total{method="test",outcome="ok"} 1`)
	assert.Contains(t, string(body), "fotoctl_api_last_call_sequence 7")
}
