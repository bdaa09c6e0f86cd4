package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/Guilhem-Bonnet/bgmi-go/internal/adapters/terminal"
	"github.com/Guilhem-Bonnet/bgmi-go/internal/app"
	"github.com/Guilhem-Bonnet/bgmi-go/internal/ports"
)

// Services regroupe les dépendances des handlers; un service nil désactive ses routes.
type Services struct {
	Calendar *app.CalendarService
	Website  *app.Website
	Follow   *app.FollowService
	Updates  *app.UpdateService
	Notifier *app.UpdateNotifier
	Bus      ports.EventBus

	// Render sert le format texte du calendrier.
	Render terminal.RenderConfig
	// MaxPage borne la collecte des épisodes par requête.
	MaxPage int
}

type Server struct {
	logger zerolog.Logger
	svc    Services
}

func NewServer(logger zerolog.Logger, svc Services) *Server {
	if svc.MaxPage <= 0 {
		svc.MaxPage = app.DefaultMaxPage
	}
	return &Server{logger: logger, svc: svc}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(hlog.NewHandler(s.logger))
	r.Use(hlog.RequestIDHandler("request_id", "Request-Id"))
	r.Use(hlog.RemoteAddrHandler("remote_ip"))
	r.Use(hlog.UserAgentHandler("user_agent"))
	r.Use(hlog.AccessHandler(accessLogFn))

	r.Route("/api/v1", func(r chi.Router) {
		// SSE: pas de timeout, la connexion reste ouverte.
		r.Get("/events", s.handleEvents)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(defaultRequestTimeout))

			r.Get("/health", s.handleHealth)
			r.Get("/version", s.handleVersion)
			r.Get("/openapi.json", s.handleOpenAPI)

			if s.svc.Calendar != nil {
				NewCalendarHandler(s.logger, s.svc.Calendar, s.svc.Render).Routes(r)
			}
			if s.svc.Website != nil {
				NewSearchHandler(s.svc.Website).Routes(r)
			}
			if s.svc.Follow != nil {
				NewBangumiHandler(s.svc.Follow, s.svc.Website, s.svc.MaxPage).Routes(r)
			}
			if s.svc.Updates != nil {
				NewUpdateHandler(s.svc.Updates, s.svc.Notifier).Routes(r)
			}
		})
	})

	return r
}
