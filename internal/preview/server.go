// Package preview serves generated dungeons over WebSocket. Every text line
// a client sends is a seed; the reply is the YAML export of the dungeon that
// seed generates.
package preview

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/lawnchairsociety/delve/internal/config"
	"github.com/lawnchairsociety/delve/internal/dice"
	"github.com/lawnchairsociety/delve/internal/dungeon"
	"github.com/lawnchairsociety/delve/internal/export"
	"github.com/lawnchairsociety/delve/internal/generator"
	"github.com/lawnchairsociety/delve/internal/logger"
)

// Archiver stores dungeons served to clients.
type Archiver interface {
	SaveDungeon(ctx context.Context, seed string, d *dungeon.Dungeon) (int64, error)
}

// Server answers seed requests. The generator is shared by all connections.
type Server struct {
	gen      *generator.Generator
	cfg      config.PreviewConfig
	limiter  *connLimiter
	archiver Archiver
	upgrader websocket.Upgrader
}

// NewServer creates a preview server for gen.
func NewServer(gen *generator.Generator, cfg config.PreviewConfig) *Server {
	s := &Server{
		gen:     gen,
		cfg:     cfg,
		limiter: newConnLimiter(cfg.MaxPerIP, cfg.MaxTotal),
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			allowed := s.cfg.IsOriginAllowed(origin, r.Host)
			if !allowed {
				logger.Warning("WebSocket connection rejected - origin not allowed",
					"origin", origin,
					"host", r.Host,
					"remote_addr", r.RemoteAddr)
			}
			return allowed
		},
	}
	return s
}

// SetArchiver makes the server store every dungeon it serves.
func (s *Server) SetArchiver(a Archiver) {
	s.archiver = a
}

// Handler returns the HTTP routes: /ws for previews and /healthz.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleUpgrade)
	mux.HandleFunc("/healthz", s.handleHealth)
	return mux
}

// ListenAndServe serves on the configured address until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Preview server listening", "address", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("preview shutdown: %w", err)
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	total, ips := s.limiter.stats()
	fmt.Fprintf(w, "ok connections=%d clients=%d\n", total, ips)
}

func (s *Server) handleUpgrade(w http.ResponseWriter, r *http.Request) {
	clientIP := realIP(r)

	if !s.limiter.tryAcquire(clientIP) {
		logger.Warning("WebSocket connection rejected - limit exceeded",
			"remote_addr", r.RemoteAddr,
			"client_ip", clientIP)
		http.Error(w, "Too many connections. Please try again later.", http.StatusTooManyRequests)
		return
	}
	defer s.limiter.release(clientIP)

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error response.
		logger.Warning("WebSocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(s.cfg.MaxMessageSize)

	ctx := r.Context()
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	s.serve(ctx, newClient(conn))
}

func (s *Server) serve(ctx context.Context, c *client) {
	logger.Debug("Preview client connected", "remote_addr", c.remoteAddr())

	for {
		line, err := c.readLine()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Debug("Preview client read ended", "remote_addr", c.remoteAddr(), "error", err)
			}
			return
		}

		if err := c.write(s.render(ctx, line)); err != nil {
			logger.Debug("Preview client write failed", "remote_addr", c.remoteAddr(), "error", err)
			return
		}
	}
}

// render generates the dungeon for a seed line and returns the reply.
func (s *Server) render(ctx context.Context, seedText string) []byte {
	d, err := s.gen.Generate(dice.ParseSeed(seedText))
	if err != nil {
		logger.Warning("Preview generation failed", "seed", seedText, "error", err)
		return []byte("error: " + err.Error())
	}

	if s.archiver != nil {
		if id, err := s.archiver.SaveDungeon(ctx, seedText, d); err != nil {
			logger.Warning("Failed to archive preview", "seed", seedText, "error", err)
		} else {
			logger.Debug("Preview archived", "seed", seedText, "id", id)
		}
	}

	data, err := export.Marshal(d, seedText)
	if err != nil {
		logger.Error("Failed to export preview", "seed", seedText, "error", err)
		return []byte("error: " + err.Error())
	}
	return data
}
