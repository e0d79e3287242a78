// Package viewer serves an interactive Mandelbrot viewer over HTTP. The page
// talks to the server over a websocket: it sends navigation commands as JSON
// and receives every rendered frame as one binary message.
package viewer

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/coder/websocket"

	"github.com/willbeason/mandelview/pkg/config"
)

//go:embed static
var staticFiles embed.FS

// Server hands every websocket connection its own rendering session.
type Server struct {
	cfg config.Config
	log *slog.Logger
	mux *http.ServeMux
}

// New returns a Server whose sessions start from cfg. A nil logger logs
// through slog.Default.
func New(cfg config.Config, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}

	s := &Server{
		cfg: cfg,
		log: log,
		mux: http.NewServeMux(),
	}

	static, err := fs.Sub(staticFiles, "static")
	if err != nil {
		// The embedded tree is fixed at build time.
		panic(err)
	}
	s.mux.HandleFunc("/ws", s.handleWebsocket)
	s.mux.Handle("/", http.FileServer(http.FS(static)))
	return s
}

// Handler returns the HTTP handler serving the page and the websocket.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ListenAndServe serves on cfg.Addr until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	errs := make(chan error, 1)
	go func() {
		s.log.Info("viewer listening", "addr", s.cfg.Addr)
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errs; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		s.log.Warn("websocket accept failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	defer conn.CloseNow()

	log := s.log.With("remote", r.RemoteAddr)
	log.Info("viewer connected")

	sess, err := newSession(conn, s.cfg, log)
	if err != nil {
		log.Error("session setup failed", "err", err)
		conn.Close(websocket.StatusInternalError, "session setup failed")
		return
	}

	if err := sess.run(r.Context()); err != nil {
		log.Warn("viewer disconnected", "err", err)
		return
	}
	log.Info("viewer disconnected")
	conn.Close(websocket.StatusNormalClosure, "")
}
