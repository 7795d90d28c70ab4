package live

import (
	"context"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rayprobe/internal/mathutil"
	"rayprobe/internal/scene"
)

type reply struct {
	scene.Frame
	Error string `json:"error"`
}

func dial(t *testing.T) *websocket.Conn {
	t.Helper()
	return dialScenes(t, scene.Builtins())
}

func dialScenes(t *testing.T, scenes []scene.Scene) *websocket.Conn {
	t.Helper()
	srv := NewServer(Config{Scenes: scenes})
	s := httptest.NewServer(srv.Handler())
	t.Cleanup(s.Close)

	u := "ws" + strings.TrimPrefix(s.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func roundTrip(t *testing.T, conn *websocket.Conn, req any) reply {
	t.Helper()
	require.NoError(t, conn.WriteJSON(req))
	var r reply
	require.NoError(t, conn.ReadJSON(&r))
	return r
}

func TestPointerFeed(t *testing.T) {
	conn := dial(t)

	r := roundTrip(t, conn, Request{Scene: "line-vs-sphere", X: 480, Y: 270})
	require.Empty(t, r.Error)
	assert.Equal(t, "line-vs-sphere", r.Scene)
	assert.False(t, r.Clear)
	require.Len(t, r.Obstacles, 1)
	assert.True(t, r.Obstacles[0].Hit)
	assert.Equal(t, mathutil.V3(480, 270, 0), r.Obstacles[0].Center)

	r = roundTrip(t, conn, Request{Scene: "line-vs-sphere", X: 60, Y: 270})
	require.Empty(t, r.Error)
	assert.True(t, r.Clear)
	assert.False(t, r.Obstacles[0].Hit)
}

func TestPointerFeedMovesTarget(t *testing.T) {
	conn := dial(t)

	r := roundTrip(t, conn, Request{Scene: "line-vs-spheres", X: 480, Y: 40})
	require.Empty(t, r.Error)
	assert.Equal(t, mathutil.V3(480, 40, 0), r.Target)
	assert.Equal(t, []int{2}, r.Hits())
}

func TestPointerFeedErrorsKeepConnection(t *testing.T) {
	conn := dial(t)

	r := roundTrip(t, conn, Request{Scene: "nope", X: 1, Y: 2})
	assert.Equal(t, `unknown scene "nope"`, r.Error)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
	var bad reply
	require.NoError(t, conn.ReadJSON(&bad))
	assert.Contains(t, bad.Error, "bad request")

	r = roundTrip(t, conn, Request{Scene: "line-vs-sphere", X: 480, Y: 270})
	assert.Empty(t, r.Error)
	assert.False(t, r.Clear)
}

func TestPointerFeedHugeCursor(t *testing.T) {
	conn := dial(t)

	r := roundTrip(t, conn, Request{Scene: "line-vs-spheres", X: 1e308, Y: 1e308})
	require.Empty(t, r.Error)
	assert.Equal(t, mathutil.V3(1e308, 1e308, 0), r.Target)
	assert.True(t, r.Clear)
	for _, o := range r.Obstacles {
		assert.True(t, o.Projected.IsFinite())
	}

	r = roundTrip(t, conn, Request{Scene: "line-vs-sphere", X: 480, Y: 270})
	assert.Empty(t, r.Error)
	assert.False(t, r.Clear)
}

func TestPointerFeedNonFiniteFrame(t *testing.T) {
	sc := scene.Builtins()[0]
	sc.Name = "unbounded"
	sc.Follow = scene.FollowTarget
	sc.Obstacles[0].Radius = math.Inf(1)
	conn := dialScenes(t, append(scene.Builtins(), sc))

	r := roundTrip(t, conn, Request{Scene: "unbounded", X: 10, Y: 10})
	assert.Contains(t, r.Error, "not finite")

	r = roundTrip(t, conn, Request{Scene: "line-vs-sphere", X: 480, Y: 270})
	assert.Empty(t, r.Error)
	assert.False(t, r.Clear)
}

func TestHealthz(t *testing.T) {
	s := httptest.NewServer(NewServer(Config{}).Handler())
	defer s.Close()

	resp, err := http.Get(s.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(body))
}

func TestServeStopsOnCancel(t *testing.T) {
	srv := NewServer(Config{Scenes: scene.Builtins()})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, "127.0.0.1:0") }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestServeBadAddress(t *testing.T) {
	err := NewServer(Config{}).Serve(context.Background(), "127.0.0.1:-1")
	assert.ErrorContains(t, err, "live: listen")
}
