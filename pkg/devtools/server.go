package devtools

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/vango-dev/tessel"
	"github.com/vango-dev/tessel/internal/errors"
	"github.com/vango-dev/tessel/pkg/dom"
)

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithWriteTimeout bounds each websocket write. Default: 5s.
func WithWriteTimeout(d time.Duration) Option {
	return func(s *Server) { s.writeTimeout = d }
}

// WithCheckOrigin overrides the websocket origin check. The default
// accepts only same-host origins.
func WithCheckOrigin(fn func(r *http.Request) bool) Option {
	return func(s *Server) { s.upgrader.CheckOrigin = fn }
}

// Server is the devtools HTTP server of one app.
type Server struct {
	app          *tessel.App
	router       chi.Router
	upgrader     websocket.Upgrader
	logger       *slog.Logger
	writeTimeout time.Duration

	mu         sync.Mutex
	clients    map[*client]struct{}
	httpServer *http.Server
	unhook     func()
}

// New creates a devtools server for app and subscribes to its frames.
func New(app *tessel.App, opts ...Option) *Server {
	s := &Server{
		app:          app,
		logger:       app.Logger(),
		writeTimeout: 5 * time.Second,
		clients:      make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.NoCache)
	r.Get("/tree", s.handleTree)
	r.Get("/focus", s.handleFocus)
	r.Get("/frame", s.handleFrame)
	r.Get("/stats", s.handleStats)
	if m := app.Metrics(); m != nil {
		r.Handle("/metrics", m.Handler())
	}
	r.Get("/ws", s.handleWS)
	s.router = r

	s.unhook = app.OnFrame(s.broadcast)
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is done, then shuts down.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.New("T041").WithDetail(addr).Wrap(err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then shuts down.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	s.mu.Lock()
	s.httpServer = srv
	s.mu.Unlock()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("tessel: devtools listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if err != http.ErrServerClosed {
			return errors.New("T041").Wrap(err)
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		s.Close()
		return srv.Shutdown(shutdownCtx)
	}
}

// Close unsubscribes from the app and disconnects every websocket client.
func (s *Server) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.unhook != nil {
		s.unhook()
		s.unhook = nil
	}
	for c := range s.clients {
		c.close()
		delete(s.clients, c)
	}
}

// =============================================================================
// HTTP handlers
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (s *Server) inspect(w http.ResponseWriter, r *http.Request, fn func(tree *dom.Tree)) bool {
	if err := s.app.Inspect(r.Context(), fn); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": err.Error()})
		return false
	}
	return true
}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	var snap dom.Snapshot
	if s.inspect(w, r, func(tree *dom.Tree) { snap = tree.Snapshot() }) {
		writeJSON(w, http.StatusOK, snap)
	}
}

// FocusInfo is the body of GET /focus.
type FocusInfo struct {
	Focused    dom.NodeID `json:"focused,omitempty"`
	FocusedKey string     `json:"focusedKey,omitempty"`
	Registry   []string   `json:"registry"`
}

func (s *Server) handleFocus(w http.ResponseWriter, r *http.Request) {
	info := FocusInfo{Registry: []string{}}
	ok := s.inspect(w, r, func(tree *dom.Tree) {
		f := tree.Focus()
		info.Focused = f.FocusedID()
		if k, ok := f.Focused(); ok {
			info.FocusedKey = k.String()
		}
		for _, k := range f.Focusables() {
			if n := tree.Node(k); n != nil {
				info.Registry = append(info.Registry, n.Label())
			}
		}
	})
	if ok {
		writeJSON(w, http.StatusOK, info)
	}
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	frame := s.app.Frame()
	if r.URL.Query().Get("raw") == "" {
		frame = ansi.Strip(frame)
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(frame))
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.app.Stats())
}
