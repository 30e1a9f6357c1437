// Package server exposes the tuning surface over a websocket: it pushes
// telemetry to every client and turns client messages into frame loop
// commands.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"skyscape/core"
)

// Request is a client message.
type Request struct {
	Op     string          `json:"op"`
	Key    string          `json:"key,omitempty"`
	Value  json.RawMessage `json:"value,omitempty"`
	Target string          `json:"target,omitempty"`
}

// Reply is a server message. Type is "telemetry", "ack" or "error".
type Reply struct {
	Type      string          `json:"type"`
	Op        string          `json:"op,omitempty"`
	Error     string          `json:"error,omitempty"`
	Telemetry *core.Telemetry `json:"telemetry,omitempty"`
}

var (
	errUnknownOp     = errors.New("unknown op")
	errUnknownTarget = errors.New("unknown regenerate target")
	errBadValue      = errors.New("value must be a number or a bool")
	errQueueFull     = errors.New("command queue full")
)

var regenerateTargets = map[string]core.CommandKind{
	"height":  core.CommandRegenerateHeight,
	"density": core.CommandRegenerateDensity,
	"smooth":  core.CommandSmoothHeight,
}

// Server pushes telemetry and accepts parameter writes.
type Server struct {
	commands  *core.CommandQueue
	telemetry *core.TelemetryStore
	interval  time.Duration

	upgrader websocket.Upgrader

	clientsMu sync.RWMutex
	clients   map[*websocket.Conn]*sync.Mutex
}

// New creates a server that reads telemetry from store every interval and
// writes commands to queue.
func New(queue *core.CommandQueue, store *core.TelemetryStore, interval time.Duration) *Server {
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	return &Server{
		commands:  queue,
		telemetry: store,
		interval:  interval,
		upgrader: websocket.Upgrader{
			// Local tuning tool; any origin may connect.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]*sync.Mutex),
	}
}

// Handler routes /ws and /controls.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/controls", s.handleControls)
	return mux
}

// ListenAndServe serves on addr and broadcasts telemetry until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Handler()}
	go s.Broadcast(ctx)
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		srv.Shutdown(shutdown)
	}()

	slog.Info("tuning server listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("tuning server: %w", err)
	}
	return nil
}

// Broadcast pushes the latest telemetry to every client each interval until
// ctx is done.
func (s *Server) Broadcast(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.closeAll()
			return
		case <-ticker.C:
			if t := s.telemetry.Load(); t != nil {
				s.broadcast(Reply{Type: "telemetry", Telemetry: t})
			}
		}
	}
}

func (s *Server) handleControls(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(core.Controls()); err != nil {
		slog.Warn("encode controls", "err", err)
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade", "err", err)
		return
	}
	defer conn.Close()

	connMu := &sync.Mutex{}
	s.clientsMu.Lock()
	s.clients[conn] = connMu
	s.clientsMu.Unlock()
	defer func() {
		s.clientsMu.Lock()
		delete(s.clients, conn)
		s.clientsMu.Unlock()
	}()
	slog.Info("tuning client connected", "remote", conn.RemoteAddr())

	if t := s.telemetry.Load(); t != nil {
		s.send(conn, connMu, Reply{Type: "telemetry", Telemetry: t})
	}

	for {
		var req Request
		if err := conn.ReadJSON(&req); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				slog.Debug("websocket read", "err", err)
			}
			return
		}
		reply := Reply{Type: "ack", Op: req.Op}
		if err := s.handle(req); err != nil {
			reply = Reply{Type: "error", Op: req.Op, Error: err.Error()}
		}
		s.send(conn, connMu, reply)
	}
}

// handle validates req and queues the command it asks for.
func (s *Server) handle(req Request) error {
	var cmd core.Command
	switch req.Op {
	case "set":
		c, err := setCommand(req.Key, req.Value)
		if err != nil {
			return err
		}
		cmd = c
	case "regenerate":
		kind, ok := regenerateTargets[req.Target]
		if !ok {
			return fmt.Errorf("%w: %q", errUnknownTarget, req.Target)
		}
		cmd = core.Command{Kind: kind}
	case "reset_time":
		cmd = core.Command{Kind: core.CommandResetTime}
	default:
		return fmt.Errorf("%w: %q", errUnknownOp, req.Op)
	}
	if !s.commands.Push(cmd) {
		return errQueueFull
	}
	return nil
}

func setCommand(key string, raw json.RawMessage) (core.Command, error) {
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		if err := core.ValidateBool(key); err != nil {
			return core.Command{}, err
		}
		return core.Command{Kind: core.CommandSetBool, Key: key, Bool: b}, nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return core.Command{}, errBadValue
	}
	if err := core.ValidateFloat(key, f); err != nil {
		return core.Command{}, err
	}
	return core.Command{Kind: core.CommandSetFloat, Key: key, Float: f}, nil
}

func (s *Server) send(conn *websocket.Conn, mu *sync.Mutex, r Reply) error {
	mu.Lock()
	defer mu.Unlock()
	return conn.WriteJSON(r)
}

func (s *Server) broadcast(r Reply) {
	s.clientsMu.RLock()
	var failed []*websocket.Conn
	for conn, mu := range s.clients {
		if err := s.send(conn, mu, r); err != nil {
			slog.Debug("websocket write", "err", err)
			failed = append(failed, conn)
		}
	}
	s.clientsMu.RUnlock()

	if len(failed) > 0 {
		s.clientsMu.Lock()
		for _, conn := range failed {
			conn.Close()
			delete(s.clients, conn)
		}
		s.clientsMu.Unlock()
	}
}

func (s *Server) closeAll() {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	for conn := range s.clients {
		conn.Close()
		delete(s.clients, conn)
	}
}
