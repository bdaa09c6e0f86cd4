package httpapi

import (
	"net/http"
	"strings"

	"github.com/Guilhem-Bonnet/bgmi-go/internal/app"
	"github.com/Guilhem-Bonnet/bgmi-go/internal/httpjson"
	"github.com/go-chi/chi/v5"
)

const defaultSearchCount = 30

type SearchHandler struct {
	site *app.Website
}

func NewSearchHandler(site *app.Website) *SearchHandler {
	return &SearchHandler{site: site}
}

func (h *SearchHandler) Routes(r chi.Router) {
	r.Get("/search", h.search)
}

func (h *SearchHandler) search(w http.ResponseWriter, r *http.Request) {
	keyword := strings.TrimSpace(r.URL.Query().Get("keyword"))
	if keyword == "" {
		httpjson.WriteError(w, http.StatusBadRequest, "missing keyword")
		return
	}
	count := queryInt(r, "count", defaultSearchCount)
	res, err := h.site.Search(r.Context(), keyword, count, r.URL.Query().Get("filter"))
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	httpjson.Write(w, http.StatusOK, res)
}
