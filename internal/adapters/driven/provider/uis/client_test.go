package uis

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edstats-labs/uisdata-cli/internal/core/domain"
)

const testPayload = `{
	"dataSets": [{"observations": {"0:0:0": [12.3, 0]}}],
	"structure": {
		"name": "Education statistics",
		"dimensions": {"observation": [
			{"id": "STAT_UNIT", "name": "Statistical unit", "values": [{"id": "ROFST", "name": "Out-of-school rate"}]},
			{"id": "REF_AREA", "name": "Reference area", "values": [{"id": "BD", "name": "Bangladesh"}]},
			{"id": "TIME_PERIOD", "name": "Time period", "values": [{"id": "2015", "name": "2015"}]}
		]},
		"attributes": {"observation": [
			{"id": "UNIT_MULT", "name": "Unit multiplier", "values": [{"id": "0", "name": "Units"}]}
		]}
	}
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{
		BaseURL:           srv.URL,
		SubscriptionKey:   "test-key",
		RequestsPerSecond: 1000,
	})
}

func TestClient_Data_RequestShape(t *testing.T) {
	var got *http.Request
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r
		w.Write([]byte(testPayload))
	})

	msg, err := client.Data(context.Background(), domain.ParamSet{
		FilterPath:  "ROFST.PT.L1._T.BD",
		StartPeriod: "2012",
		EndPeriod:   "2016",
	})
	require.NoError(t, err)
	require.NotNil(t, msg)

	require.NotNil(t, got)
	assert.Equal(t, "/ROFST.PT.L1._T.BD", got.URL.Path)
	q := got.URL.Query()
	assert.Equal(t, domain.FormatSDMXJSON, q.Get("format"))
	assert.Equal(t, domain.AllDimensions, q.Get("dimensionAtObservation"))
	assert.Equal(t, "2012", q.Get("startPeriod"))
	assert.Equal(t, "2016", q.Get("endPeriod"))
	assert.Equal(t, "test-key", q.Get("subscription-key"))
	assert.NotEmpty(t, got.Header.Get("X-Request-ID"))
}

func TestClient_Data_DecodesPayload(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(testPayload))
	})

	msg, err := client.Data(context.Background(), domain.ParamSet{FilterPath: "ROFST....BD"})
	require.NoError(t, err)

	require.Len(t, msg.DataSets, 1)
	assert.Contains(t, msg.DataSets[0].Observations, "0:0:0")
	require.Len(t, msg.Structure.Dimensions.Observation, 3)
	assert.Equal(t, "REF_AREA", msg.Structure.Dimensions.Observation[1].ID)
}

func TestClient_Data_HTTPError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "subscription key invalid", http.StatusUnauthorized)
	})

	_, err := client.Data(context.Background(), domain.ParamSet{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "subscription key invalid")
}

func TestClient_Data_MalformedBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("<html>gateway error</html>"))
	})

	_, err := client.Data(context.Background(), domain.ParamSet{})
	assert.ErrorIs(t, err, domain.ErrMalformedResponse)
}

func TestClient_Dimensions_Discovery(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, domain.DetailSeriesKeysOnly, r.URL.Query().Get("detail"))
		w.Write([]byte(testPayload))
	})

	dims, err := client.Dimensions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"STAT_UNIT", "REF_AREA", "TIME_PERIOD"}, dims)
}

func TestClient_Data_ContextCancelled(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(testPayload))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Data(ctx, domain.ParamSet{})
	assert.Error(t, err)
}

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient(Config{})

	assert.Equal(t, DefaultBaseURL, client.baseURL)
	assert.Equal(t, DefaultTimeout, client.client.Timeout)
}
