// Package handlers exposes the ideas API over HTTP with chi.
package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/ideaboard/internal/logging"
	"github.com/dmitrijs2005/ideaboard/internal/server/middleware"
	"github.com/dmitrijs2005/ideaboard/internal/server/models"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type IdeaService interface {
	Create(ctx context.Context, in *models.Idea, submitter string) (*models.Idea, error)
	List(ctx context.Context, limit int) ([]*models.Idea, error)
}

type ProfileService interface {
	Save(ctx context.Context, in *models.Profile, submitter string) (*models.Profile, error)
	Get(ctx context.Context, email string) (*models.Profile, error)
}

type ImageService interface {
	PresignUpload(ctx context.Context, contentType string) (*models.ImageUpload, error)
}

// Pinger reports whether the backing store is reachable.
type Pinger func(ctx context.Context) error

type Handler struct {
	ideas    IdeaService
	profiles ProfileService
	images   ImageService
	ping     Pinger
	secret   []byte
	logger   logging.Logger
}

func New(ideas IdeaService, profiles ProfileService, images ImageService, ping Pinger, secret []byte, logger logging.Logger) *Handler {
	return &Handler{
		ideas:    ideas,
		profiles: profiles,
		images:   images,
		ping:     ping,
		secret:   secret,
		logger:   logger.With("module", "http"),
	}
}

// Routes builds the router. Metrics are registered on reg and served from
// /metrics through gatherer.
func (h *Handler) Routes(reg prometheus.Registerer, gatherer prometheus.Gatherer) http.Handler {
	metrics := middleware.NewMetrics(reg)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Logging(h.logger))
	r.Use(metrics.Handler)

	r.Get("/healthz", h.Health)
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Session(h.secret, unauthorized))

		r.Get("/ideas", h.ListIdeas)
		r.Post("/ideas", h.CreateIdea)
		r.Post("/profile", h.SaveProfile)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSession(unauthorized))
			r.Get("/profile", h.GetProfile)
			r.Post("/images", h.PresignImage)
		})
	})

	return r
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if h.ping != nil {
		if err := h.ping(r.Context()); err != nil {
			h.logger.Warn(r.Context(), "health check failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListIdeas handles GET /api/ideas?limit=N
func (h *Handler) ListIdeas(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "bad_request", "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	ideas, err := h.ideas.List(r.Context(), limit)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	if ideas == nil {
		ideas = []*models.Idea{}
	}
	writeJSON(w, http.StatusOK, ideas)
}

// CreateIdea handles POST /api/ideas
func (h *Handler) CreateIdea(w http.ResponseWriter, r *http.Request) {
	var in models.Idea
	if !decodeBody(w, r, &in) {
		return
	}

	idea, err := h.ideas.Create(r.Context(), &in, middleware.SessionEmail(r.Context()))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, idea)
}

// SaveProfile handles POST /api/profile
func (h *Handler) SaveProfile(w http.ResponseWriter, r *http.Request) {
	var in models.Profile
	if !decodeBody(w, r, &in) {
		return
	}

	p, err := h.profiles.Save(r.Context(), &in, middleware.SessionEmail(r.Context()))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// GetProfile handles GET /api/profile for the session user.
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := h.profiles.Get(r.Context(), middleware.SessionEmail(r.Context()))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

type presignRequest struct {
	ContentType string `json:"contentType"`
}

// PresignImage handles POST /api/images
func (h *Handler) PresignImage(w http.ResponseWriter, r *http.Request) {
	var in presignRequest
	if !decodeBody(w, r, &in) {
		return
	}

	up, err := h.images.PresignUpload(r.Context(), in.ContentType)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, up)
}
