package httpapi

import (
	"net/http"

	"github.com/Guilhem-Bonnet/bgmi-go/internal/adapters/terminal"
	"github.com/Guilhem-Bonnet/bgmi-go/internal/app"
	"github.com/Guilhem-Bonnet/bgmi-go/internal/httpjson"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

type CalendarHandler struct {
	logger   zerolog.Logger
	calendar *app.CalendarService
	render   terminal.RenderConfig
}

func NewCalendarHandler(logger zerolog.Logger, calendar *app.CalendarService, render terminal.RenderConfig) *CalendarHandler {
	return &CalendarHandler{logger: logger, calendar: calendar, render: render}
}

func (h *CalendarHandler) Routes(r chi.Router) {
	r.Get("/calendar", h.get)
}

// get renvoie la vue JSON, ou le tableau texte avec ?format=text.
func (h *CalendarHandler) get(w http.ResponseWriter, r *http.Request) {
	opts := app.CalendarOptions{
		ForceUpdate: queryBool(r, "force", false),
		Today:       queryBool(r, "today", false),
		Followed:    queryBool(r, "followed", false),
		Save:        true,
	}
	view, err := h.calendar.Calendar(r.Context(), opts)
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	if r.URL.Query().Get("format") != "text" {
		httpjson.Write(w, http.StatusOK, view)
		return
	}

	cfg := h.render
	cfg.Color = false
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err := terminal.NewRenderer(*hlog.FromRequest(r), cfg).Render(w, view); err != nil {
		h.logger.Debug().Err(err).Msg("calendar write")
	}
}
