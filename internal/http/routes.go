package httpapp

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/cesargomez89/soundboard/internal/app"
	"github.com/cesargomez89/soundboard/internal/domain"
	"github.com/cesargomez89/soundboard/internal/http/dto"
)

func (h *Handler) allowSensitive(r *http.Request) bool {
	v := r.URL.Query().Get("sensitive")
	if v == "" {
		return h.AllowSensitive
	}
	allow, err := strconv.ParseBool(v)
	if err != nil {
		return h.AllowSensitive
	}
	return allow
}

func (h *Handler) ListSounds(w http.ResponseWriter, r *http.Request) {
	sounds, err := h.Content.Sounds(h.allowSensitive(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, sounds)
}

func (h *Handler) RandomSounds(w http.ResponseWriter, r *http.Request) {
	sounds, err := h.Content.RandomSounds(h.allowSensitive(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, sounds)
}

func (h *Handler) ListSongs(w http.ResponseWriter, r *http.Request) {
	songs, err := h.Content.Songs(h.allowSensitive(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, songs)
}

func (h *Handler) ListGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := h.Content.Genres()
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, genres)
}

// GetContent resolves ?ids=a,b,c into sounds followed by songs.
func (h *Handler) GetContent(w http.ResponseWriter, r *http.Request) {
	var ids []string
	for _, id := range strings.Split(r.URL.Query().Get("ids"), ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		h.badRequest(w, "ids is required")
		return
	}

	content, err := h.Content.Content(ids)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, content)
}

func (h *Handler) ListAuthors(w http.ResponseWriter, r *http.Request) {
	authors, err := h.Content.Authors()
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, authors)
}

func (h *Handler) GetAuthor(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	author, err := h.Content.Author(id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if author == nil {
		h.writeError(w, r, domain.NewNotFound(domain.EntityAuthor, id))
		return
	}

	sounds, err := h.Content.SoundsByAuthor(id, h.allowSensitive(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"author": author,
		"sounds": sounds,
	})
}

func (h *Handler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	content, err := h.Favorites.FavoriteContent()
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, content)
}

func (h *Handler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	var req dto.FavoriteRequest
	if !h.decode(w, r, &req) {
		return
	}
	fav, err := h.Favorites.Add(req.ContentID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, fav)
}

func (h *Handler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	if err := h.Favorites.Remove(chi.URLParam(r, "contentID")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListFolders(w http.ResponseWriter, r *http.Request) {
	folders, err := h.Folders.List()
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, folders)
}

func (h *Handler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	var req dto.FolderRequest
	if !h.decode(w, r, &req) {
		return
	}
	folder, err := h.Folders.Create(req.Name, req.Symbol, req.BackgroundColor)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, folder)
}

func (h *Handler) RenameFolder(w http.ResponseWriter, r *http.Request) {
	var req dto.FolderRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.Folders.Rename(chi.URLParam(r, "id"), req.Name); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	if err := h.Folders.Delete(chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) SetFolderSort(w http.ResponseWriter, r *http.Request) {
	var req dto.FolderSortRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.Folders.SetSortPreference(chi.URLParam(r, "id"), *req.Sort); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) FolderContent(w http.ResponseWriter, r *http.Request) {
	content, err := h.Folders.FolderContent(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, content)
}

func (h *Handler) AddFolderContent(w http.ResponseWriter, r *http.Request) {
	var req dto.FolderContentRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.Folders.AddContent(chi.URLParam(r, "id"), req.ContentID); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) RemoveFolderContent(w http.ResponseWriter, r *http.Request) {
	if err := h.Folders.RemoveContent(chi.URLParam(r, "id"), chi.URLParam(r, "contentID")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func queryLimit(r *http.Request) int {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	return limit
}

// TopContent serves ?window=all|YEAR&source=local|audience&limit=N.
func (h *Handler) TopContent(w http.ResponseWriter, r *http.Request) {
	window, err := app.ParseWindow(r.URL.Query().Get("window"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var ranked []app.RankedContent
	switch source := r.URL.Query().Get("source"); source {
	case "", "local":
		ranked, err = h.Charts.TopContent(window, queryLimit(r))
	case "audience":
		ranked, err = h.Charts.TopAudienceContent(window, queryLimit(r))
	default:
		h.badRequest(w, "source must be 'local' or 'audience'")
		return
	}
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, ranked)
}

func (h *Handler) TopAuthor(w http.ResponseWriter, r *http.Request) {
	window, err := app.ParseWindow(r.URL.Query().Get("window"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	author, err := h.Charts.TopAuthor(window)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if author == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	h.writeJSON(w, http.StatusOK, author)
}

func (h *Handler) Retrospective(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		h.badRequest(w, "invalid year")
		return
	}
	retro, err := h.Charts.Retrospective(year)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, retro)
}

func (h *Handler) RunSync(w http.ResponseWriter, r *http.Request) {
	if h.Sync == nil {
		h.writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "sync is not configured"})
		return
	}
	res, err := h.Sync.Sync(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, res)
}

func (h *Handler) SyncLogs(w http.ResponseWriter, r *http.Request) {
	logs, err := h.Repo.RecentSyncLogs()
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	overflow, err := h.Repo.SyncLogOverflowCount()
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"logs":     logs,
		"overflow": overflow,
	})
}

func (h *Handler) PendingEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.Repo.UnsuccessfulUpdateEvents()
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, events)
}

func (h *Handler) RecordShare(w http.ResponseWriter, r *http.Request) {
	var req dto.ShareRequest
	if !h.decode(w, r, &req) {
		return
	}
	l, err := h.Shares.RecordShare(req.ContentID, req.ContentType, req.Destination)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, l)
}
