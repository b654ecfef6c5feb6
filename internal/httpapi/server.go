// Package httpapi exposes the registration engine over a JSON HTTP API.
// Handlers translate requests into service commands and map domain
// rejections onto 409 responses carrying the display message keys.
package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/softwerkskammer/Agora-sub003/core/service"
)

// Server holds the HTTP handlers for the registration API.
type Server struct {
	svc *service.Service
	log *slog.Logger
}

type Option func(*Server)

func WithLog(l *slog.Logger) Option {
	return func(s *Server) { s.log = l.With(slog.String("component", "httpapi")) }
}

// NewServer constructs a Server around the given service.
func NewServer(svc *service.Service, opts ...Option) *Server {
	s := &Server{
		svc: svc,
		log: slog.Default(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Router builds the chi router with all API routes. When gatherer is
// non-nil a /metrics endpoint is mounted for Prometheus scraping.
func (s *Server) Router(gatherer prometheus.Gatherer) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(s.accessLog)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/conferences/{conference}", func(r chi.Router) {
		r.Post("/", s.createConference)
		r.Get("/", s.getConference)

		r.Put("/quota", s.setRoomQuota)
		r.Post("/registration/open", s.openRegistration)
		r.Post("/registration/close", s.closeRegistration)

		r.Post("/reservations", s.issueReservation)
		r.Get("/reservations/{sessionID}/expiration", s.reservationExpiration)
		r.Post("/participants", s.registerParticipant)
		r.Delete("/participants/{memberID}", s.removeParticipant)
		r.Put("/participants/{memberID}/roomtype", s.moveParticipant)
		r.Put("/participants/{memberID}/duration", s.setDuration)

		r.Post("/waitinglist/reservations", s.issueWaitinglistReservation)
		r.Post("/waitinglist/participants", s.registerWaitinglistParticipant)
		r.Delete("/waitinglist/{memberID}", s.removeWaitinglistParticipant)
		r.Post("/waitinglist/{memberID}/promote", s.promoteFromWaitinglist)
		r.Put("/waitinglist/{memberID}/desired-roomtypes", s.changeDesiredRoomTypes)

		r.Get("/rooms/{roomType}", s.getRooms)
		r.Post("/rooms/{roomType}/pairs", s.addRoomPair)
		r.Delete("/rooms/{roomType}/pairs", s.removeRoomPair)
	})

	return r
}

// accessLog logs one line per request at debug level.
func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Debug("request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
		)
	})
}
