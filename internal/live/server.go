// Package live streams frame verdicts for pointer positions over a WebSocket.
package live

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"rayprobe/internal/mathutil"
	"rayprobe/internal/scene"
)

// Request is one pointer sample sent by the client.
type Request struct {
	Scene string  `json:"scene"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

type errorReply struct {
	Error string `json:"error"`
}

// Config holds the scenes the server answers for.
type Config struct {
	Scenes []scene.Scene
	Logger *zap.Logger
}

// Server evaluates pointer samples against a fixed scene set.
type Server struct {
	scenes   []scene.Scene
	log      *zap.Logger
	upgrader websocket.Upgrader

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

func NewServer(cfg Config) *Server {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		scenes: cfg.Scenes,
		log:    log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		conns: make(map[*websocket.Conn]struct{}),
	}
}

// Handler mounts /ws and /healthz.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// Serve listens on addr until ctx is cancelled, then shuts down and closes
// every open WebSocket.
func (s *Server) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	srv.RegisterOnShutdown(s.closeAll)

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("live feed listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("live: listen %s: %w", addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("live: shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("live: %w", err)
	}
	s.log.Info("live feed stopped")
	return nil
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("upgrade failed", zap.Error(err))
		return
	}
	s.track(conn)
	defer s.untrack(conn)

	log := s.log.With(zap.String("remote", conn.RemoteAddr().String()))
	log.Debug("client connected")

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn("read failed", zap.Error(err))
			}
			return
		}
		if err := conn.WriteMessage(websocket.TextMessage, s.answer(msg)); err != nil {
			log.Warn("write failed", zap.Error(err))
			return
		}
	}
}

// answer evaluates one raw request and returns the encoded reply. Anything
// that cannot be answered with a frame gets an error reply instead.
func (s *Server) answer(msg []byte) []byte {
	reply, err := json.Marshal(s.evaluate(msg))
	if err != nil {
		reply, _ = json.Marshal(errorReply{Error: "encode reply: " + err.Error()})
	}
	return reply
}

func (s *Server) evaluate(msg []byte) any {
	var req Request
	if err := json.Unmarshal(msg, &req); err != nil {
		return errorReply{Error: "bad request: " + err.Error()}
	}
	sc, ok := scene.Lookup(s.scenes, req.Scene)
	if !ok {
		return errorReply{Error: fmt.Sprintf("unknown scene %q", req.Scene)}
	}
	cursor := mathutil.V3(req.X, req.Y, 0)
	if !cursor.IsFinite() {
		return errorReply{Error: fmt.Sprintf("cursor %v is not finite", cursor)}
	}
	f := sc.Evaluate(cursor)
	if !f.IsFinite() {
		return errorReply{Error: fmt.Sprintf("scene %q: frame at %v is not finite", sc.Name, cursor)}
	}
	return f
}

func (s *Server) track(c *websocket.Conn) {
	s.mu.Lock()
	s.conns[c] = struct{}{}
	s.mu.Unlock()
}

func (s *Server) untrack(c *websocket.Conn) {
	s.mu.Lock()
	delete(s.conns, c)
	s.mu.Unlock()
	c.Close()
}

func (s *Server) closeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.conns {
		_ = c.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(time.Second))
		c.Close()
	}
}
