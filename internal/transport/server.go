package transport

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pfassina/grimdark/internal/render"
)

// Server exposes one Hub's snapshot stream over HTTP, mirroring the
// teacher's internal/server/http.go route-registration shape (CORS
// wrapper + mux.HandleFunc) generalized to a read-only spectator feed
// instead of the gameplay command channel.
type Server struct {
	Hub  *Hub
	Addr string
	log  *logrus.Entry
}

func NewServer(hub *Hub, addr string, log *logrus.Entry) *Server {
	return &Server{Hub: hub, Addr: addr, log: log}
}

// Handler builds the spectator HTTP mux. Exposed separately from Run so
// tests can drive it through httptest.Server without binding a port.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/spectate", enableCORS(s.handleSpectate))
	mux.HandleFunc("/health", enableCORS(s.handleHealth))
	return mux
}

func (s *Server) Run() error {
	s.log.WithField("addr", s.Addr).Info("spectator transport listening")
	return http.ListenAndServe(s.Addr, s.Handler())
}

func enableCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		next(w, r)
	}
}

func (s *Server) handleSpectate(w http.ResponseWriter, r *http.Request) {
	conn, err := Upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithError(err).Error("spectator upgrade failed")
		return
	}
	client := NewClient(s.Hub, conn, s.log)
	go client.Serve()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// StreamReplay pushes one RenderContext per step through hub, pacing
// steps tickInterval apart so spectators watching a replay see the same
// cadence a live battle would have produced. frames is typically built
// by replaying a domain.ReplaySession through a GameState and calling
// render.Build after each action.
func StreamReplay(hub *Hub, frames []render.RenderContext, tickInterval time.Duration) {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()
	for _, frame := range frames {
		hub.Broadcast(frame)
		<-ticker.C
	}
}
