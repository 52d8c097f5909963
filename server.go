package main

import (
	"context"
	"net"
	"net/http"
	"strings"

	"golang.org/x/net/websocket"
	"golang.org/x/sync/errgroup"
)

// A Request is one frame from a client: a program to evaluate, an id
// to correlate the reply, and an optional per-request gas budget
// (zero means the worker default).
type Request struct {
	ID   int64  `json:"id"`
	Code string `json:"code"`
	Gas  int    `json:"gas,omitempty"`
}

// A Reply carries either the residual program or a diagnostic for the
// matching request.
type Reply struct {
	ID     int64  `json:"id"`
	Result string `json:"result"`
	Error  string `json:"error,omitempty"`
}

// A worker pins one dictionary to one client and serializes every
// evaluation against it.
type worker struct {
	in *Interpreter
}

func newWorker(opts ...Option) *worker {
	return &worker{in: New(opts...)}
}

func (w *worker) handle(req Request) Reply {
	value, err := read(req.Code)
	if err != nil {
		return Reply{ID: req.ID, Error: err.Error()}
	}
	gas := w.in.gas
	if req.Gas > 0 {
		gas = req.Gas
	}
	res, err := w.in.guarded(value, gas)
	if err != nil {
		return Reply{ID: req.ID, Error: err.Error()}
	}
	return Reply{ID: req.ID, Result: res.String()}
}

// quit reports whether a program is the out-of-band session
// terminator: a bare prompt whose payload is Quit.  The terminator
// belongs to the transport and never reaches the interpreter.
func quit(code string) bool {
	value, err := read(code)
	if err != nil {
		return false
	}
	prompt, ok := value.(Prompt)
	return ok && strings.TrimSpace(prompt.Value) == "Quit"
}

// Handler returns a websocket handler that gives each connection a
// fresh worker.  Options configure that worker's interpreter.
func Handler(opts ...Option) websocket.Handler {
	return func(conn *websocket.Conn) {
		defer conn.Close()
		w := newWorker(opts...)
		for {
			var req Request
			if err := websocket.JSON.Receive(conn, &req); err != nil {
				return
			}
			if quit(req.Code) {
				websocket.JSON.Send(conn, Reply{ID: req.ID})
				return
			}
			if err := websocket.JSON.Send(conn, w.handle(req)); err != nil {
				return
			}
		}
	}
}

// Serve runs the command channel on addr until ctx is done or the
// listener fails.
func Serve(ctx context.Context, addr string, opts ...Option) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	srv := &http.Server{Handler: Handler(opts...)}
	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		<-ctx.Done()
		return srv.Shutdown(context.Background())
	})
	group.Go(func() error {
		err := srv.Serve(ln)
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	})
	return group.Wait()
}
