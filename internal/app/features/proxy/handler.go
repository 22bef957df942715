// Package proxy serves the JSON routes the admin pages call directly. Each
// one forwards to the SOSign API with the admin token from the session and
// answers in the {success, message} envelope with the upstream status.
package proxy

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gauravhaldar/sosign-admin/internal/app/system/auth"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/backend"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/paging"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/timeouts"
	"github.com/gauravhaldar/sosign-admin/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const internalError = "Internal server error"

// Handler holds the backend client used by the proxy routes.
type Handler struct {
	Client *backend.Client
	Log    *zap.Logger
}

// NewHandler constructs a proxy Handler.
func NewHandler(client *backend.Client, logger *zap.Logger) *Handler {
	return &Handler{Client: client, Log: logger}
}

// MountRoutes registers the proxy routes. guard must reject requests
// without an admin token (auth.SessionManager.RequireToken).
func (h *Handler) MountRoutes(r chi.Router, guard func(http.Handler) http.Handler) {
	r.Route("/api", func(r chi.Router) {
		r.Use(guard)
		r.Delete("/comments/{id}", h.DeleteComment)
		r.Get("/comments/petition/{petitionId}", h.PetitionComments)
		r.Get("/stats", h.Stats)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, models.MessageResponse{Success: false, Message: msg})
}

// relay forwards one call and writes the answer. A 2xx body is passed on
// as is with 200; anything else becomes {success:false, message} with the
// upstream status, using failure when the upstream gave no message. A body
// that is not JSON, or no answer at all, is a 500.
func (h *Handler) relay(w http.ResponseWriter, r *http.Request, op, method, path string, query url.Values, failure string) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	status, body, err := h.Client.Session(auth.Token(r)).Forward(ctx, op, method, path, query)
	if err != nil {
		h.Log.Error("proxy call failed", zap.String("op", op), zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, internalError)
		return
	}
	if !json.Valid(body) {
		h.Log.Error("proxy got a non-JSON answer", zap.String("op", op), zap.Int("status", status))
		writeMessage(w, http.StatusInternalServerError, internalError)
		return
	}
	if status < 200 || status > 299 {
		var env struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(body, &env)
		msg := env.Message
		if msg == "" {
			msg = failure
		}
		writeMessage(w, status, msg)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// DeleteComment handles DELETE /api/comments/{id}.
func (h *Handler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		writeMessage(w, http.StatusBadRequest, "Comment ID is required")
		return
	}
	h.relay(w, r, "proxy.comments.delete", http.MethodDelete,
		"/api/admin/comments/"+url.PathEscape(id), nil, "Failed to delete comment")
}

// PetitionComments handles GET /api/comments/petition/{petitionId}. page
// defaults to 1 and limit to the admin comment page size.
func (h *Handler) PetitionComments(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "petitionId"))
	if id == "" {
		writeMessage(w, http.StatusBadRequest, "Petition ID is required")
		return
	}
	q := r.URL.Query()
	page := q.Get("page")
	if page == "" {
		page = "1"
	}
	limit := q.Get("limit")
	if limit == "" {
		limit = strconv.Itoa(paging.CommentsPageSize)
	}
	h.relay(w, r, "proxy.comments.petition", http.MethodGet,
		"/api/admin/petitions/"+url.PathEscape(id)+"/comments",
		url.Values{"page": {page}, "limit": {limit}}, "Failed to fetch comments")
}

// Stats handles GET /api/stats: the public petition stats plus the number
// of customers. A failed customer list counts as zero users; failed
// petition stats fail the whole answer.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ps, err := h.Client.PetitionStats(ctx)
	if err != nil {
		h.Log.Error("proxy stats: petition stats failed", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, internalError)
		return
	}

	users := 0
	if customers, err := h.Client.Session(auth.Token(r)).Customers(ctx); err != nil {
		h.Log.Warn("proxy stats: customer count unavailable", zap.Error(err))
	} else {
		users = len(customers)
	}

	stats := &models.DashboardStats{
		TotalPetitions:  ps.TotalPetitions,
		TotalSignatures: ps.TotalSignatures,
		TotalUsers:      users,
		Victories:       ps.Victories,
		RecentActivity:  ps.RecentActivity,
	}
	if ps.Breakdown != nil {
		stats.Breakdown = *ps.Breakdown
	}
	writeJSON(w, http.StatusOK, models.StatsResponse{Success: true, Stats: stats})
}
