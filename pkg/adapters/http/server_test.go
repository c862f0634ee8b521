package http

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/stepwise"
	"github.com/aretw0/stepwise/internal/logging"
	"github.com/aretw0/stepwise/pkg/adapters/memory"
	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/observability"
	"github.com/aretw0/stepwise/pkg/registry"
	"github.com/aretw0/stepwise/pkg/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const topoBody = `{"name":"two-letters","algorithm":"topological-sort","input":{"words":["z","x"]}}`

func newTestHandler(t *testing.T, opts ...Option) (http.Handler, *session.Manager) {
	t.Helper()
	streams := NewStreamManager(logging.NewNop())
	mgr := session.NewManager(memory.NewStore(), session.WithLifecycleHooks(streams.Hooks()))
	opts = append([]Option{WithStreams(streams)}, opts...)
	return NewHandler(stepwise.New(), mgr, opts...), mgr
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

type traceBody struct {
	Algorithm string `json:"algorithm"`
	Snapshots []struct {
		Step int        `json:"step"`
		Tag  domain.Tag `json:"tag"`
	} `json:"snapshots"`
}

type viewBody struct {
	Session struct {
		ID       string `json:"id"`
		Position int    `json:"position"`
	} `json:"session"`
	Snapshot *struct {
		Step int        `json:"step"`
		Tag  domain.Tag `json:"tag"`
	} `json:"snapshot"`
	Total    int  `json:"total"`
	Finished bool `json:"finished"`
	Moved    bool `json:"moved"`
}

func TestHealthAndInfo(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode[map[string]string](t, rec)["status"])

	rec = do(t, h, http.MethodGet, "/info", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, strings.TrimSpace(stepwise.Version), decode[map[string]string](t, rec)["version"])
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestListAlgorithms(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := do(t, h, http.MethodGet, "/algorithms", "")
	require.Equal(t, http.StatusOK, rec.Code)

	algs := decode[[]registry.Info](t, rec)
	require.Len(t, algs, 3)
	names := make([]domain.Algorithm, len(algs))
	for i, a := range algs {
		names[i] = a.Name
	}
	assert.ElementsMatch(t, domain.SupportedAlgorithms(), names)
	for _, a := range algs {
		assert.NotEmpty(t, a.Input, "%s declares its input fields", a.Name)
	}
}

func TestCreateRun(t *testing.T) {
	h, _ := newTestHandler(t)

	body := `{"algorithm":"trie","input":{"words":["bad","dad","mad"],"queries":["b..",".ad","bax"]}}`
	rec := do(t, h, http.MethodPost, "/runs", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	tr := decode[traceBody](t, rec)
	assert.Equal(t, "trie", tr.Algorithm)
	require.NotEmpty(t, tr.Snapshots)
	last := tr.Snapshots[len(tr.Snapshots)-1]
	assert.Equal(t, domain.Tag("SUMMARY"), last.Tag)
	assert.Equal(t, len(tr.Snapshots)-1, last.Step)
}

func TestCreateRun_Rejections(t *testing.T) {
	h, _ := newTestHandler(t)

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{name: "invalid word", body: `{"algorithm":"trie","input":{"words":["b4d"],"queries":[]}}`, field: "words"},
		{name: "missing field", body: `{"algorithm":"union-find","input":{"n":3}}`, field: "edges"},
		{name: "unknown algorithm", body: `{"algorithm":"dijkstra","input":{}}`},
		{name: "malformed body", body: `{"algorithm":`},
		{name: "unknown body field", body: `{"algo":"trie"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/runs", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			resp := decode[ErrorResponse](t, rec)
			assert.NotEmpty(t, resp.Error)
			if tt.field != "" {
				require.NotEmpty(t, resp.Fields)
				assert.Equal(t, tt.field, resp.Fields[0].Field)
			}
		})
	}
}

func TestSessionLifecycle(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := do(t, h, http.MethodPost, "/sessions", topoBody)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[viewBody](t, rec)
	id := created.Session.ID
	require.NotEmpty(t, id)
	assert.Equal(t, "/sessions/"+id, rec.Header().Get("Location"))
	assert.Equal(t, -1, created.Session.Position)
	assert.Nil(t, created.Snapshot)
	assert.Equal(t, 7, created.Total)

	rec = do(t, h, http.MethodPost, "/sessions/"+id+"/advance", "")
	require.Equal(t, http.StatusOK, rec.Code)
	v := decode[viewBody](t, rec)
	assert.True(t, v.Moved)
	require.NotNil(t, v.Snapshot)
	assert.Equal(t, domain.Tag("REGISTER"), v.Snapshot.Tag)

	for i := 0; i < 10; i++ {
		v = decode[viewBody](t, do(t, h, http.MethodPost, "/sessions/"+id+"/advance", ""))
	}
	assert.True(t, v.Finished)
	assert.False(t, v.Moved, "advancing past the end is a no-op")
	assert.Equal(t, 6, v.Session.Position)
	assert.Equal(t, domain.Tag("DONE"), v.Snapshot.Tag)

	rec = do(t, h, http.MethodGet, "/sessions/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 6, decode[viewBody](t, rec).Session.Position)

	v = decode[viewBody](t, do(t, h, http.MethodPost, "/sessions/"+id+"/reset", ""))
	assert.True(t, v.Moved)
	assert.Equal(t, -1, v.Session.Position)
	assert.Nil(t, v.Snapshot)

	rec = do(t, h, http.MethodGet, "/sessions", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{id}, decode[map[string][]string](t, rec)["sessions"])

	rec = do(t, h, http.MethodDelete, "/sessions/"+id, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, h, http.MethodGet, "/sessions/"+id, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = do(t, h, http.MethodDelete, "/sessions/"+id, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSessions_EmptyList(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := do(t, h, http.MethodGet, "/sessions", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"sessions":[]}`, rec.Body.String())
}

func TestCreateSession_InvalidScenario(t *testing.T) {
	h, mgr := newTestHandler(t)

	rec := do(t, h, http.MethodPost, "/sessions", `{"algorithm":"union-find","input":{"n":2,"edges":[[0,5]]}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	ids, err := mgr.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids, "rejected scenarios never create a session")
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)
	streams := NewStreamManager(logging.NewNop())
	mgr := session.NewManager(memory.NewStore())
	h := NewHandler(
		stepwise.New(stepwise.WithLifecycleHooks(metrics.Hooks())),
		mgr,
		WithStreams(streams),
		WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})),
	)

	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/runs", topoBody).Code)

	rec := do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `stepwise_runs_total{algorithm="topological-sort",outcome="DONE"} 1`)
}

func TestSubscribeEvents(t *testing.T) {
	h, mgr := newTestHandler(t)
	srv := httptest.NewServer(h)
	defer srv.Close()

	view, err := mgr.Start(context.Background(), domain.Scenario{
		Algorithm: domain.AlgorithmTopologicalSort,
		Input:     map[string]any{"words": []any{"z", "x"}},
	})
	require.NoError(t, err)
	id := view.Session.ID

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/sessions/"+id+"/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	lines := bufio.NewScanner(resp.Body)
	readData := func() string {
		for lines.Scan() {
			if data, ok := strings.CutPrefix(lines.Text(), "data: "); ok {
				return data
			}
		}
		t.Fatalf("stream closed: %v", lines.Err())
		return ""
	}

	// The subscription is registered before the ping is flushed.
	require.Equal(t, "connected", readData())

	_, err = mgr.Advance(ctx, id)
	require.NoError(t, err)

	var evt domain.StepEvent
	require.NoError(t, json.Unmarshal([]byte(readData()), &evt))
	assert.Equal(t, id, evt.SessionID)
	assert.Equal(t, 0, evt.Position)
	assert.Equal(t, domain.Tag("REGISTER"), evt.Tag)
	assert.Equal(t, domain.EventStep, evt.Type)
}

func TestSubscribeEvents_UnknownSession(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := do(t, h, http.MethodGet, "/sessions/missing/events", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStreamManager_DropsWhenFull(t *testing.T) {
	sm := NewStreamManager(logging.NewNop())
	ch, cancel := sm.Subscribe("s1")
	assert.Equal(t, 1, sm.Subscribers("s1"))

	for i := 0; i < 20; i++ {
		sm.Broadcast("s1", "msg")
	}
	assert.Len(t, ch, cap(ch))

	sm.Broadcast("other", "ignored")
	cancel()
	assert.Equal(t, 0, sm.Subscribers("s1"))
}
