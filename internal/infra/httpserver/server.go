package httpserver

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/bwmarrin/discordgo"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

// Server is the keep-alive endpoint uptime monitors poll. With the correct
// secret the payload includes gateway health; without it the payload is a
// bare ok so the endpoint leaks nothing.
type Server struct {
	httpServer *http.Server
	logger     *logrus.Entry
}

func New(addr, uptimeSecret string, session *discordgo.Session, logger *logrus.Entry) *Server {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	handler := func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		payload := map[string]any{"ok": true}
		if uptimeSecret == "" || req.URL.Query().Get("key") == uptimeSecret {
			payload["ping_ms"] = session.HeartbeatLatency().Milliseconds()
			payload["guilds"] = len(session.State.Guilds)
		}
		_ = json.NewEncoder(w).Encode(payload)
	}
	r.Get("/", handler)
	r.Get("/healthz", handler)

	return &Server{
		httpServer: &http.Server{Addr: addr, Handler: r},
		logger:     logger,
	}
}

// Start blocks serving requests until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Infof("Keep-alive server listening on %s", s.httpServer.Addr)
	err := s.httpServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
