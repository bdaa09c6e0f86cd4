package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Guilhem-Bonnet/bgmi-go/internal/app"
	"github.com/Guilhem-Bonnet/bgmi-go/internal/buildinfo"
	"github.com/Guilhem-Bonnet/bgmi-go/internal/httpjson"
	"github.com/rs/zerolog/hlog"
)

const defaultRequestTimeout = 60 * time.Second

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	httpjson.Write(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	httpjson.Write(w, http.StatusOK, buildinfo.Current())
}

func accessLogFn(r *http.Request, status, size int, duration time.Duration) {
	logger := hlog.FromRequest(r)
	logger.Info().
		Int("status", status).
		Int("size", size).
		Dur("duration", duration).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("http")
}

// writeAppError traduit les erreurs du service en statut HTTP.
func writeAppError(w http.ResponseWriter, r *http.Request, err error) {
	var coded *app.CodedError
	switch {
	case errors.Is(err, app.ErrNotFound):
		httpjson.WriteError(w, http.StatusNotFound, "not found")
	case errors.Is(err, app.ErrLocked):
		httpjson.WriteError(w, http.StatusConflict, err.Error())
	case errors.As(err, &coded):
		status := http.StatusBadGateway
		if coded.Code == app.CodeInvalidParams {
			status = http.StatusBadRequest
		}
		httpjson.WriteCodedError(w, status, coded.Code, coded.Error())
	default:
		hlog.FromRequest(r).Error().Err(err).Msg("request failed")
		httpjson.WriteError(w, http.StatusInternalServerError, err.Error())
	}
}

// queryBool accepte 1/true/yes; absent vaut def.
func queryBool(r *http.Request, key string, def bool) bool {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return v == "yes"
	}
	return b
}

func queryInt(r *http.Request, key string, def int) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return def
	}
	return n
}
