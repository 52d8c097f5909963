package main

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/websocket"
)

func dialTestServer(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, err := websocket.Dial(url, "", srv.URL)
	require.NoError(t, err, "websocket dial failed")
	t.Cleanup(func() { conn.Close() })
	return conn
}

func roundTrip(t *testing.T, conn *websocket.Conn, req Request) Reply {
	t.Helper()
	require.NoError(t, websocket.JSON.Send(conn, req))
	var rep Reply
	require.NoError(t, websocket.JSON.Receive(conn, &rep))
	return rep
}

func Test_server_session(t *testing.T) {
	srv := httptest.NewServer(Handler())
	defer srv.Close()

	conn := dialTestServer(t, srv)

	t.Run("evaluates and echoes the id", func(t *testing.T) {
		rep := roundTrip(t, conn, Request{ID: 7, Code: "[foo] [bar] Swap"})
		assert.Equal(t, int64(7), rep.ID)
		assert.Equal(t, "[bar] [foo]", rep.Result)
		assert.Empty(t, rep.Error)
	})

	t.Run("unreadable programs report through the error field", func(t *testing.T) {
		rep := roundTrip(t, conn, Request{ID: 8, Code: "[foo"})
		assert.Equal(t, int64(8), rep.ID)
		assert.Contains(t, rep.Error, "Unbalanced brackets")
	})

	t.Run("unknown combinators report through the error field", func(t *testing.T) {
		rep := roundTrip(t, conn, Request{ID: 9, Code: "Frobnicate"})
		assert.Contains(t, rep.Error, "unknown combinator")
	})

	t.Run("definitions persist within the session", func(t *testing.T) {
		rep := roundTrip(t, conn, Request{ID: 10, Code: `[foo bar] "x" Define`})
		require.Empty(t, rep.Error)
		rep = roundTrip(t, conn, Request{ID: 11, Code: "x"})
		assert.Equal(t, "foo bar", rep.Result)
	})

	t.Run("per-request gas bounds a loop", func(t *testing.T) {
		rep := roundTrip(t, conn, Request{ID: 12, Code: `[loop] "loop" Define`})
		require.Empty(t, rep.Error)
		rep = roundTrip(t, conn, Request{ID: 13, Code: "loop", Gas: 50})
		assert.Equal(t, "loop", rep.Result)
	})
}

func Test_server_isolation(t *testing.T) {
	srv := httptest.NewServer(Handler())
	defer srv.Close()

	a := dialTestServer(t, srv)
	b := dialTestServer(t, srv)

	rep := roundTrip(t, a, Request{ID: 1, Code: `[foo] "x" Define`})
	require.Empty(t, rep.Error)

	rep = roundTrip(t, a, Request{ID: 2, Code: "x"})
	assert.Equal(t, "foo", rep.Result, "defining session sees the binding")

	rep = roundTrip(t, b, Request{ID: 1, Code: "x"})
	assert.Equal(t, "x", rep.Result, "other session must not see the binding")
}

func Test_server_quit(t *testing.T) {
	srv := httptest.NewServer(Handler())
	defer srv.Close()

	conn := dialTestServer(t, srv)

	rep := roundTrip(t, conn, Request{ID: 1, Code: "{ Quit }"})
	assert.Equal(t, int64(1), rep.ID)

	var extra Reply
	assert.Error(t, websocket.JSON.Receive(conn, &extra), "session should be closed")
}

func Test_server_quitDetection(t *testing.T) {
	for _, tc := range []struct {
		src  string
		want bool
	}{
		{"{Quit}", true},
		{"{ Quit }", true},
		{"{Quit} foo", false},
		{`"Quit"`, false},
		{"{Quip}", false},
		{"[", false},
	} {
		assert.Equal(t, tc.want, quit(tc.src), "quit(%q)", tc.src)
	}
}

func Test_worker_gasOverride(t *testing.T) {
	w := newWorker(WithGas(4))
	rep := w.handle(Request{ID: 1, Code: "[foo] [bar] Swap Drop Drop"})
	assert.Equal(t, "[bar] [foo] Drop Drop", rep.Result, "default budget runs out")

	rep = w.handle(Request{ID: 2, Code: "[foo] [bar] Swap Drop Drop", Gas: 100})
	assert.Equal(t, "", rep.Result, "request budget finishes the job")
}
