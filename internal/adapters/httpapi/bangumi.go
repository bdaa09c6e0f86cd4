package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/Guilhem-Bonnet/bgmi-go/internal/app"
	"github.com/Guilhem-Bonnet/bgmi-go/internal/domain"
	"github.com/Guilhem-Bonnet/bgmi-go/internal/httpjson"
	"github.com/go-chi/chi/v5"
)

type BangumiHandler struct {
	follow  *app.FollowService
	site    *app.Website
	maxPage int
}

func NewBangumiHandler(follow *app.FollowService, site *app.Website, maxPage int) *BangumiHandler {
	return &BangumiHandler{follow: follow, site: site, maxPage: maxPage}
}

func (h *BangumiHandler) Routes(r chi.Router) {
	r.Route("/bangumi", func(r chi.Router) {
		r.Get("/", h.list)
		r.Get("/{name}", h.get)
		r.Get("/{name}/episodes", h.episodes)
		r.Post("/{name}/follow", h.followShow)
		r.Delete("/{name}/follow", h.unfollow)
		r.Put("/{name}/episode", h.mark)
		r.Get("/{name}/filter", h.getFilter)
		r.Put("/{name}/filter", h.putFilter)
	})
}

type episodeRequest struct {
	Episode int `json:"episode"`
}

type episodesResponse struct {
	Latest   domain.Episode   `json:"latest"`
	Episodes []domain.Episode `json:"episodes"`
}

func (h *BangumiHandler) list(w http.ResponseWriter, r *http.Request) {
	var statuses []domain.Status
	if queryBool(r, "followed", false) {
		statuses = []domain.Status{domain.StatusFollowed, domain.StatusUpdated}
	}
	list, err := h.follow.List(r.Context(), statuses...)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	out := make([]app.BangumiDTO, 0, len(list))
	for _, b := range list {
		out = append(out, app.ToBangumiDTO(b))
	}
	httpjson.Write(w, http.StatusOK, out)
}

func (h *BangumiHandler) get(w http.ResponseWriter, r *http.Request) {
	b, err := h.follow.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	httpjson.Write(w, http.StatusOK, app.ToBangumiDTO(b))
}

func (h *BangumiHandler) episodes(w http.ResponseWriter, r *http.Request) {
	if h.site == nil {
		httpjson.WriteError(w, http.StatusNotImplemented, "source disabled")
		return
	}
	b, err := h.follow.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	latest, data, err := h.site.GetMaximumEpisode(r.Context(), b,
		queryBool(r, "subtitle", true),
		queryBool(r, "ignoreOld", false),
		queryInt(r, "maxPage", h.maxPage),
	)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	httpjson.Write(w, http.StatusOK, episodesResponse{Latest: latest, Episodes: data})
}

func (h *BangumiHandler) followShow(w http.ResponseWriter, r *http.Request) {
	var req episodeRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpjson.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}
	}
	b, err := h.follow.Follow(r.Context(), chi.URLParam(r, "name"), req.Episode)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	httpjson.Write(w, http.StatusOK, app.ToBangumiDTO(b))
}

func (h *BangumiHandler) unfollow(w http.ResponseWriter, r *http.Request) {
	b, err := h.follow.Unfollow(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	httpjson.Write(w, http.StatusOK, app.ToBangumiDTO(b))
}

func (h *BangumiHandler) mark(w http.ResponseWriter, r *http.Request) {
	var req episodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}
	b, err := h.follow.Mark(r.Context(), chi.URLParam(r, "name"), req.Episode)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	httpjson.Write(w, http.StatusOK, app.ToBangumiDTO(b))
}

type filterDTO struct {
	Subtitle string `json:"subtitle"`
	Include  string `json:"include"`
	Exclude  string `json:"exclude"`
	Regex    string `json:"regex"`
}

func (h *BangumiHandler) getFilter(w http.ResponseWriter, r *http.Request) {
	f, err := h.follow.GetFilter(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	httpjson.Write(w, http.StatusOK, filterDTO{Subtitle: f.Subtitle, Include: f.Include, Exclude: f.Exclude, Regex: f.Regex})
}

func (h *BangumiHandler) putFilter(w http.ResponseWriter, r *http.Request) {
	var dto filterDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}
	f, err := h.follow.SetFilter(r.Context(), domain.Filter{
		BangumiName: chi.URLParam(r, "name"),
		Subtitle:    dto.Subtitle,
		Include:     dto.Include,
		Exclude:     dto.Exclude,
		Regex:       dto.Regex,
	})
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	httpjson.Write(w, http.StatusOK, filterDTO{Subtitle: f.Subtitle, Include: f.Include, Exclude: f.Exclude, Regex: f.Regex})
}
