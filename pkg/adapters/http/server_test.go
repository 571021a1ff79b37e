package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aretw0/animgraph"
	animhttp "github.com/aretw0/animgraph/pkg/adapters/http"
	"github.com/aretw0/animgraph/pkg/adapters/memory"
	"github.com/aretw0/animgraph/pkg/compile"
	"github.com/aretw0/animgraph/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, opts ...animhttp.Option) *httptest.Server {
	t.Helper()
	store := memory.NewStore()
	g, err := animgraph.New("Avatar", store)
	require.NoError(t, err)
	_, err = g.Regenerate(context.Background(), func(s *compile.Session) ([]animgraph.Output, error) {
		hats, err := s.ExclusiveLayer("Hats", []domain.Param{s.Bool("Av/Hats/Cap")}, s.DefaultResetGuard())
		if err != nil {
			return nil, err
		}
		ctrl, err := s.Controller(s.TreeLayer("Trees", s.RGBTree("Av/Shirt", []string{"Body"}, "_Color")), hats)
		return []animgraph.Output{{Name: "Main", Controller: ctrl}}, err
	})
	require.NoError(t, err)

	srv := httptest.NewServer(animhttp.NewHandler(store, opts...))
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func readAll(t *testing.T, resp *http.Response) string {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(data)
}

func TestHealthz(t *testing.T) {
	srv := newServer(t)
	resp := get(t, srv.URL+"/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestListAndGetSlots(t *testing.T) {
	srv := newServer(t)

	resp := get(t, srv.URL+"/containers/Avatar/slots")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []animhttp.SlotInfo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list, 2)
	var keys []string
	for _, s := range list {
		keys = append(keys, s.Key)
	}
	assert.ElementsMatch(t, []string{domain.RootKey, "Avatar_Main_Animator"}, keys)

	resp = get(t, srv.URL+"/containers/Avatar/slots/Avatar_Main_Animator")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var slot animhttp.SlotResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&slot))
	assert.Equal(t, 1, slot.Revision)
	assert.NotEmpty(t, slot.ID)
	ctrl, err := domain.DecodeController(slot.Content)
	require.NoError(t, err)
	assert.Equal(t, "Avatar", ctrl.Name)

	resp = get(t, srv.URL+"/containers/Avatar/slots/Nope")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = get(t, srv.URL+"/containers/Empty/slots")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list = nil
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	assert.Empty(t, list)
}

func TestGetGraph(t *testing.T) {
	srv := newServer(t)

	resp := get(t, srv.URL+"/containers/Avatar/slots/Avatar_Main_Animator/graph?layer=Hats%20Exclusive%20States")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := readAll(t, resp)
	assert.Contains(t, out, "%% Hats Exclusive States")
	assert.Contains(t, out, `any{{"Any State"}}`)
	assert.NotContains(t, out, "%% Trees")

	resp = get(t, srv.URL+"/containers/Avatar/slots/Avatar_Main_Animator/graph?layer=Nope")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = get(t, srv.URL+"/containers/Avatar/slots/"+domain.RootKey+"/graph")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestMetricsEndpoint(t *testing.T) {
	resp := get(t, newServer(t).URL+"/metrics")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "metrics are opt-in")

	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "animgraph_test_total", Help: "test"})
	reg.MustRegister(counter)
	counter.Inc()

	resp = get(t, newServer(t, animhttp.WithMetrics(reg)).URL+"/metrics")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, readAll(t, resp), "animgraph_test_total 1")
}
