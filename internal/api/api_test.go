package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/playroot/daily-arcade-go/internal/config"
	"github.com/playroot/daily-arcade-go/internal/engine"
	"github.com/playroot/daily-arcade-go/internal/mechanics"
	"github.com/playroot/daily-arcade-go/internal/session"
	"github.com/playroot/daily-arcade-go/internal/store"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	db, err := store.NewSQLiteDB(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Migrate())
	t.Cleanup(func() { db.Close() })

	srv := NewServer(db, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)
	return srv, ts
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil && resp.StatusCode < 300 {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func postJSON(t *testing.T, url string, body, out any) int {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil && resp.StatusCode < 300 {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestHealth(t *testing.T) {
	_, ts := newTestServer(t)
	var health HealthResponse
	require.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/health", &health))
	require.Equal(t, "ok", health.Status)
}

func TestDailyConfig(t *testing.T) {
	_, ts := newTestServer(t)

	var daily DailyResponse
	require.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/v1/daily?date=2026-08-24", &daily))
	require.Equal(t, "2026-08-24", daily.Date)
	wantSeed := engine.DailySeed(time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC))
	require.Equal(t, wantSeed, daily.Seed)
	require.NoError(t, config.Validate(daily.Config))

	// Same date, same puzzle.
	var again DailyResponse
	getJSON(t, ts.URL+"/v1/daily?date=2026-08-24", &again)
	require.Equal(t, daily.Config, again.Config)

	require.Equal(t, http.StatusBadRequest, getJSON(t, ts.URL+"/v1/daily?date=24-08-2026", nil))
}

func TestConfigBySeed(t *testing.T) {
	_, ts := newTestServer(t)

	var got ConfigResponse
	require.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/v1/configs/42", &got))
	require.Equal(t, int32(42), got.Seed)

	want, err := config.Generate(42)
	require.NoError(t, err)
	require.Equal(t, want, got.Config)

	require.Equal(t, http.StatusBadRequest, getJSON(t, ts.URL+"/v1/configs/abc", nil))
	require.Equal(t, http.StatusBadRequest, getJSON(t, ts.URL+"/v1/configs/99999999999", nil))
}

func TestSessionFlow(t *testing.T) {
	_, ts := newTestServer(t)

	seed := int32(42)
	var created SessionResponse
	require.Equal(t, http.StatusCreated,
		postJSON(t, ts.URL+"/v1/sessions", CreateSessionRequest{Seed: &seed}, &created))
	require.NotEmpty(t, created.ID)
	require.Equal(t, seed, created.Seed)
	require.True(t, created.State.Started)
	require.False(t, created.State.Completed)

	base := ts.URL + "/v1/sessions/" + created.ID

	var fetched SessionResponse
	require.Equal(t, http.StatusOK, getJSON(t, base, &fetched))
	require.Equal(t, created.ID, fetched.ID)

	// Result is a conflict while the session is active.
	require.Equal(t, http.StatusConflict, getJSON(t, base+"/result", nil))

	// Apply one small tick.
	var after SessionResponse
	require.Equal(t, http.StatusOK,
		postJSON(t, base+"/events", EventRequest{Type: "tick", DeltaMS: 16}, &after))
	require.Equal(t, 16*time.Millisecond, after.State.Elapsed)

	// Bad event shapes.
	require.Equal(t, http.StatusBadRequest,
		postJSON(t, base+"/events", EventRequest{Type: "warp"}, nil))
	require.Equal(t, http.StatusBadRequest,
		postJSON(t, base+"/events", EventRequest{Type: "input"}, nil))
}

func TestSessionNotFound(t *testing.T) {
	_, ts := newTestServer(t)
	require.Equal(t, http.StatusNotFound, getJSON(t, ts.URL+"/v1/sessions/nope", nil))
	require.Equal(t, http.StatusNotFound, getJSON(t, ts.URL+"/v1/sessions/nope/result", nil))
	require.Equal(t, http.StatusNotFound,
		postJSON(t, ts.URL+"/v1/sessions/nope/events", EventRequest{Type: "tick", DeltaMS: 16}, nil))
}

// hostGuessSession plants a deterministic guess session directly in the hub
// so the terminal path can be driven without knowing what seed 42 generates.
func hostGuessSession(t *testing.T, srv *Server) (*session.Session, *mechanics.GuessData) {
	t.Helper()
	cfg := config.GameConfig{
		Mechanic:   config.MechanicGuess,
		Element:    config.ElementWord,
		Constraint: config.ConstraintAttempts,
		Seed:       7,
		Difficulty: 2,
	}
	sess, err := mechanics.NewSession(cfg)
	require.NoError(t, err)
	require.NoError(t, sess.Start())
	srv.hub.Add(sess)
	return sess, sess.State().Data.(*mechanics.GuessData)
}

func TestSessionCompletionAndResult(t *testing.T) {
	srv, ts := newTestServer(t)
	sess, data := hostGuessSession(t, srv)
	base := ts.URL + "/v1/sessions/" + sess.ID().String()

	// Pick a symbol the target never uses; a full guess of it is always
	// wrong, so the attempt budget drains deterministically. The target is
	// shorter than the alphabet, so such a symbol always exists.
	wrong := -1
	for i, sym := range data.Alphabet {
		used := false
		for _, tg := range data.Target {
			if tg == sym {
				used = true
				break
			}
		}
		if !used {
			wrong = i
			break
		}
	}
	require.GreaterOrEqual(t, wrong, 0, "alphabet fully covered by target")

	for !sess.State().Completed {
		for range data.Target {
			code := postJSON(t, base+"/events",
				EventRequest{Type: "input", Input: &session.Input{Type: session.InputSelect, Index: wrong}}, nil)
			require.Equal(t, http.StatusOK, code)
		}
		postJSON(t, base+"/events", EventRequest{Type: "input", Input: &session.Input{Type: session.InputSubmit}}, nil)
	}

	// Terminal: result readable, further events conflict.
	var res session.Result
	require.Equal(t, http.StatusOK, getJSON(t, base+"/result", &res))
	require.False(t, res.Won)
	require.Equal(t, sess.ID().String(), res.SessionID)

	require.Equal(t, http.StatusConflict,
		postJSON(t, base+"/events", EventRequest{Type: "tick", DeltaMS: 16}, nil))

	// Result survives eviction via the store.
	srv.hub.Remove(sess.ID().String())
	require.Equal(t, http.StatusOK, getJSON(t, base+"/result", &res))

	// Stats now count the loss.
	var stats StatsResponse
	require.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/v1/stats", &stats))
	require.Equal(t, 1, stats.Stats.TotalGames)
	require.Equal(t, 0, stats.Stats.Wins)
}

func TestEvictedSessionServedFromStore(t *testing.T) {
	srv, ts := newTestServer(t)
	sess, _ := hostGuessSession(t, srv)
	id := sess.ID().String()
	srv.hub.Remove(id)

	var fetched SessionResponse
	require.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/v1/sessions/"+id, &fetched))
	require.Equal(t, id, fetched.ID)
	require.True(t, fetched.State.Started)
}

func TestWebsocketStreamsSnapshots(t *testing.T) {
	srv, ts := newTestServer(t)
	sess, _ := hostGuessSession(t, srv)
	id := sess.ID().String()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/v1/sessions/" + id + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	// Initial snapshot arrives immediately.
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var snap SessionResponse
	require.NoError(t, conn.ReadJSON(&snap))
	require.Equal(t, id, snap.ID)
	require.Equal(t, time.Duration(0), snap.State.Elapsed)

	// An applied event pushes an update.
	code := postJSON(t, ts.URL+"/v1/sessions/"+id+"/events", EventRequest{Type: "tick", DeltaMS: 16}, nil)
	require.Equal(t, http.StatusOK, code)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	require.NoError(t, conn.ReadJSON(&snap))
	require.Equal(t, 16*time.Millisecond, snap.State.Elapsed)
}

func TestMetricsEndpoint(t *testing.T) {
	_, ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestStatsSeedFilter(t *testing.T) {
	srv, ts := newTestServer(t)
	res := &session.Result{
		SessionID: "x1",
		Seed:      100,
		Config: config.GameConfig{
			Mechanic:   config.MechanicSort,
			Element:    config.ElementNumber,
			Constraint: config.ConstraintAttempts,
			Seed:       100,
			Difficulty: 2,
		},
		Won: true, Score: 10, MaxScore: 10,
		Elapsed: time.Second, Date: time.Now().UTC(),
	}
	require.NoError(t, srv.db.SaveResult(res))

	var stats StatsResponse
	require.Equal(t, http.StatusOK, getJSON(t, fmt.Sprintf("%s/v1/stats?seed=%d", ts.URL, 100), &stats))
	require.Equal(t, 1, stats.Stats.TotalGames)

	require.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/v1/stats?seed=999", &stats))
	require.Equal(t, 0, stats.Stats.TotalGames)

	require.Equal(t, http.StatusBadRequest, getJSON(t, ts.URL+"/v1/stats?seed=abc", nil))
}
