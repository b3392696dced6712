package httpapp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/cesargomez89/soundboard/internal/app"
	"github.com/cesargomez89/soundboard/internal/constants"
	"github.com/cesargomez89/soundboard/internal/domain"
	"github.com/cesargomez89/soundboard/internal/http/dto"
	"github.com/cesargomez89/soundboard/internal/logger"
	"github.com/cesargomez89/soundboard/internal/remote"
	"github.com/cesargomez89/soundboard/internal/store"
	"github.com/cesargomez89/soundboard/internal/syncer"
)

const maxBodyBytes = 1 << 20

// SyncRunner runs a sync pass. *syncer.Reconciler implements it.
type SyncRunner interface {
	Sync(ctx context.Context) (*syncer.Result, error)
}

type Handler struct {
	Repo      *store.DB
	Content   *app.ContentService
	Favorites *app.FavoriteService
	Folders   *app.FolderService
	Charts    *app.ChartService
	Shares    *app.ShareService
	Sync      SyncRunner
	Logger    *logger.Logger

	// AllowSensitive is the default for requests without ?sensitive=.
	AllowSensitive bool
}

func NewHandler(repo *store.DB, shares *app.ShareService, sync SyncRunner, allowSensitive bool, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Default()
	}
	content := app.NewContentService(repo, log)
	return &Handler{
		Repo:           repo,
		Content:        content,
		Favorites:      app.NewFavoriteService(repo, content, log),
		Folders:        app.NewFolderService(repo, content, log),
		Charts:         app.NewChartService(repo, content),
		Shares:         shares,
		Sync:           sync,
		Logger:         log.WithComponent("http"),
		AllowSensitive: allowSensitive,
	}
}

// Router builds the chi router with middleware and every API route.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	h.RegisterRoutes(r)
	return r
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/sounds", h.ListSounds)
		r.Get("/sounds/random", h.RandomSounds)
		r.Get("/songs", h.ListSongs)
		r.Get("/genres", h.ListGenres)
		r.Get("/content", h.GetContent)

		r.Get("/authors", h.ListAuthors)
		r.Get("/authors/{id}", h.GetAuthor)

		r.Get("/favorites", h.ListFavorites)
		r.Post("/favorites", h.AddFavorite)
		r.Delete("/favorites/{contentID}", h.RemoveFavorite)

		r.Get("/folders", h.ListFolders)
		r.Post("/folders", h.CreateFolder)
		r.Put("/folders/{id}", h.RenameFolder)
		r.Delete("/folders/{id}", h.DeleteFolder)
		r.Put("/folders/{id}/sort", h.SetFolderSort)
		r.Get("/folders/{id}/content", h.FolderContent)
		r.Post("/folders/{id}/content", h.AddFolderContent)
		r.Delete("/folders/{id}/content/{contentID}", h.RemoveFolderContent)

		r.Get("/charts/top", h.TopContent)
		r.Get("/charts/author", h.TopAuthor)
		r.Get("/charts/retrospective/{year}", h.Retrospective)

		r.Post("/sync", h.RunSync)
		r.Get("/sync/logs", h.SyncLogs)
		r.Get("/sync/pending", h.PendingEvents)

		r.Post("/shares", h.RecordShare)
	})
}

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", constants.MimeTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.Logger.Warn("Failed to write response", "error", err)
	}
}

func (h *Handler) badRequest(w http.ResponseWriter, msg string) {
	h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}

// writeError maps store, remote and sync errors to HTTP statuses.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.Logger.Error("Request failed", "method", r.Method, "path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()), "error", err)
	}
	h.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateKey):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, remote.ErrUnavailable), errors.Is(err, remote.ErrTransport):
		return http.StatusServiceUnavailable
	case errors.Is(err, remote.ErrNotFound), errors.Is(err, remote.ErrBadResponse), errors.Is(err, remote.ErrRejected):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// decode reads a JSON body into v and validates it. It writes the 400
// response itself and returns false on failure.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v dto.Validator) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		h.badRequest(w, "invalid JSON body: "+err.Error())
		return false
	}
	if errs := v.Validate(); len(errs) > 0 {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: dto.ToResponse(errs), Fields: dto.ToMap(errs)})
		return false
	}
	return true
}
