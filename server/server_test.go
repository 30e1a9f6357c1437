package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skyscape/core"
)

func newTestServer(t *testing.T, store *core.TelemetryStore) (*Server, *core.CommandQueue, *httptest.Server) {
	t.Helper()
	queue := core.NewCommandQueue(8)
	if store == nil {
		store = &core.TelemetryStore{}
	}
	s := New(queue, store, 10*time.Millisecond)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, queue, ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func roundTrip(t *testing.T, conn *websocket.Conn, msg string) Reply {
	t.Helper()
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(msg)))
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var r Reply
	require.NoError(t, conn.ReadJSON(&r))
	return r
}

func TestControlsEndpoint(t *testing.T) {
	_, _, ts := newTestServer(t, nil)
	resp, err := http.Get(ts.URL + "/controls")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	var controls []core.ParameterControl
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&controls))
	assert.Equal(t, core.Controls(), controls)
}

func TestSetQueuesValidatedCommands(t *testing.T) {
	_, queue, ts := newTestServer(t, nil)
	conn := dial(t, ts)

	r := roundTrip(t, conn, `{"op":"set","key":"clouds.density","value":0.25}`)
	assert.Equal(t, "ack", r.Type)
	r = roundTrip(t, conn, `{"op":"set","key":"toggles.shadows","value":false}`)
	assert.Equal(t, "ack", r.Type)

	cmds := queue.Drain()
	require.Len(t, cmds, 2)
	assert.Equal(t, core.Command{Kind: core.CommandSetFloat, Key: "clouds.density", Float: 0.25}, cmds[0])
	assert.Equal(t, core.CommandSetBool, cmds[1].Kind)
	assert.Equal(t, "toggles.shadows", cmds[1].Key)
	assert.False(t, cmds[1].Bool)
}

func TestRejectedMessagesQueueNothing(t *testing.T) {
	tests := []struct {
		name string
		msg  string
	}{
		{"unknown key", `{"op":"set","key":"clouds.colour","value":1}`},
		{"out of range", `{"op":"set","key":"clouds.density","value":40}`},
		{"bool to number", `{"op":"set","key":"clouds.density","value":true}`},
		{"number to bool", `{"op":"set","key":"toggles.time","value":1}`},
		{"bad value", `{"op":"set","key":"clouds.density","value":"lots"}`},
		{"unknown target", `{"op":"regenerate","target":"sky"}`},
		{"unknown op", `{"op":"explode"}`},
	}
	_, queue, ts := newTestServer(t, nil)
	conn := dial(t, ts)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := roundTrip(t, conn, tt.msg)
			assert.Equal(t, "error", r.Type)
			assert.NotEmpty(t, r.Error)
			assert.Empty(t, queue.Drain())
		})
	}
}

func TestErrorsGoOnlyToSender(t *testing.T) {
	_, _, ts := newTestServer(t, nil)
	bad := dial(t, ts)
	other := dial(t, ts)

	r := roundTrip(t, bad, `{"op":"explode"}`)
	assert.Equal(t, "error", r.Type)

	require.NoError(t, other.SetReadDeadline(time.Now().Add(100*time.Millisecond)))
	_, _, err := other.ReadMessage()
	assert.Error(t, err, "the other client should receive nothing")
}

func TestRegenerateAndReset(t *testing.T) {
	_, queue, ts := newTestServer(t, nil)
	conn := dial(t, ts)

	for _, msg := range []string{
		`{"op":"regenerate","target":"height"}`,
		`{"op":"regenerate","target":"smooth"}`,
		`{"op":"regenerate","target":"density"}`,
		`{"op":"reset_time"}`,
	} {
		require.Equal(t, "ack", roundTrip(t, conn, msg).Type)
	}

	var kinds []core.CommandKind
	for _, c := range queue.Drain() {
		kinds = append(kinds, c.Kind)
	}
	assert.Equal(t, []core.CommandKind{
		core.CommandRegenerateHeight,
		core.CommandSmoothHeight,
		core.CommandRegenerateDensity,
		core.CommandResetTime,
	}, kinds)
}

func TestFullQueueIsReported(t *testing.T) {
	_, queue, ts := newTestServer(t, nil)
	for queue.Push(core.Command{Kind: core.CommandResetTime}) {
	}
	conn := dial(t, ts)
	r := roundTrip(t, conn, `{"op":"reset_time"}`)
	assert.Equal(t, "error", r.Type)
	assert.Contains(t, r.Error, "full")
}

func TestBroadcastPushesTelemetry(t *testing.T) {
	store := &core.TelemetryStore{}
	store.Store(&core.Telemetry{FPS: 60, CoinsTotal: 5})
	s, _, ts := newTestServer(t, store)
	conn := dial(t, ts)

	// The first message is the snapshot sent on connect.
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var first Reply
	require.NoError(t, conn.ReadJSON(&first))
	assert.Equal(t, "telemetry", first.Type)
	require.NotNil(t, first.Telemetry)
	assert.Equal(t, float32(60), first.Telemetry.FPS)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Broadcast(ctx)

	store.Store(&core.Telemetry{FPS: 30, CoinsTotal: 5})
	require.Eventually(t, func() bool {
		var r Reply
		if err := conn.ReadJSON(&r); err != nil {
			return false
		}
		return r.Telemetry != nil && r.Telemetry.FPS == 30
	}, 2*time.Second, 10*time.Millisecond)
}
