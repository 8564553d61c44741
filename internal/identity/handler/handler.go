// Package handler exposes the resolution facade over read-only HTTP endpoints. The tenant
// path segment is the scope of every call.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"custid/internal/identity/models"
	dErrors "custid/pkg/domain-errors"
	"custid/pkg/platform/httputil"
	"custid/pkg/requestcontext"
)

// Service defines the interface for resolution operations.
type Service interface {
	GetByEmail(ctx context.Context, scope models.TenantScope, email string) (*models.Resolution, error)
	GetByPhone(ctx context.Context, scope models.TenantScope, phone string) (*models.Resolution, error)
	ResolveFromOrderReference(ctx context.Context, scope models.TenantScope, reference string) (*models.CanonicalCustomer, error)
	ListAmbiguous(ctx context.Context, scope models.TenantScope, limit int) ([]models.AmbiguousEntry, error)
}

// Handler wires customer resolution endpoints to the resolution service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a resolution handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts resolution endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/tenants/{tenantID}/customers", func(r chi.Router) {
		r.Get("/", h.HandleLookup)
		r.Get("/by-reference/{reference}", h.HandleByReference)
		r.Get("/ambiguous", h.HandleAmbiguous)
	})
}

// AmbiguousResponse wraps the ambiguity scan so the body can grow without breaking clients.
type AmbiguousResponse struct {
	Entries []models.AmbiguousEntry `json:"entries"`
}

// HandleLookup handles GET /tenants/{tenantID}/customers?email=|phone=.
// Exactly one of the two identifiers must be given.
func (h *Handler) HandleLookup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	scope, ok := h.scope(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	email, phone := q.Get("email"), q.Get("phone")
	var (
		result *models.Resolution
		err    error
		query  string
	)
	switch {
	case email != "" && phone != "":
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "query by email or phone, not both"))
		return
	case email != "":
		query = "email"
		result, err = h.service.GetByEmail(ctx, scope, email)
	case phone != "":
		query = "phone"
		result, err = h.service.GetByPhone(ctx, scope, phone)
	default:
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "email or phone query parameter is required"))
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "customer lookup failed",
			"request_id", requestID,
			"tenant_id", scope.String(),
			"query", query,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "customer lookup served",
		"request_id", requestID,
		"tenant_id", scope.String(),
		"query", query,
		"customers", len(result.Customers),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, result)
}

// HandleByReference handles GET /tenants/{tenantID}/customers/by-reference/{reference}.
func (h *Handler) HandleByReference(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	scope, ok := h.scope(w, r)
	if !ok {
		return
	}

	customer, err := h.service.ResolveFromOrderReference(ctx, scope, chi.URLParam(r, "reference"))
	if err != nil {
		h.logger.ErrorContext(ctx, "reference lookup failed",
			"request_id", requestID,
			"tenant_id", scope.String(),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	if customer == nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "no customer holds this reference"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, customer)
}

// HandleAmbiguous handles GET /tenants/{tenantID}/customers/ambiguous?limit=N.
func (h *Handler) HandleAmbiguous(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	scope, ok := h.scope(w, r)
	if !ok {
		return
	}

	limit := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "limit must be a non-negative integer"))
			return
		}
		limit = n
	}

	entries, err := h.service.ListAmbiguous(ctx, scope, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "ambiguity scan failed",
			"request_id", requestID,
			"tenant_id", scope.String(),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, AmbiguousResponse{Entries: entries})
}

func (h *Handler) scope(w http.ResponseWriter, r *http.Request) (models.TenantScope, bool) {
	scope, err := models.ParseTenantScope(chi.URLParam(r, "tenantID"))
	if err != nil {
		httputil.WriteError(w, err)
		return models.TenantScope{}, false
	}
	return scope, true
}
