package ledgers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/coldstore-erp/coldstore-erp/internal/accounting/shared"
	"github.com/coldstore-erp/coldstore-erp/internal/platform/httpx"
)

// ReportCache is bumped after every write so derived reports recompute.
type ReportCache interface {
	Bump(ctx context.Context) error
}

type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
	reports   ReportCache
}

func NewHandler(logger *slog.Logger, service *Service, reports ReportCache) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		validator: validator.New(),
		reports:   reports,
	}
}

// MountRoutes registers ledger routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/ledgers", h.handleList)
	r.Post("/ledgers", h.handleCreate)
	r.Put("/ledgers/{ledgerID}", h.handleUpdate)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list ledgers", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	out := make([]LedgerResponse, 0, len(list))
	for _, l := range list {
		out = append(out, ToResponse(l))
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateLedgerRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	l, err := h.service.Create(r.Context(), CreateInput{
		Name:           req.Name,
		Type:           LedgerType(req.Type),
		SubType:        req.SubType,
		Category:       req.Category,
		OpeningBalance: req.OpeningBalance,
		ClosingBalance: req.ClosingBalance,
	})
	if err != nil {
		h.respondDomainError(w, "create ledger", err)
		return
	}
	h.bumpReports(r.Context())
	httpx.JSON(w, http.StatusCreated, ToResponse(l))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "ledgerID"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid ID", "ledger id must be a UUID")
		return
	}
	var req UpdateLedgerRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	l, err := h.service.Update(r.Context(), id, UpdateInput{
		Name:           req.Name,
		Type:           LedgerType(req.Type),
		SubType:        req.SubType,
		Category:       req.Category,
		OpeningBalance: req.OpeningBalance,
		ClosingBalance: req.ClosingBalance,
	})
	if err != nil {
		h.respondDomainError(w, "update ledger", err)
		return
	}
	h.bumpReports(r.Context())
	httpx.JSON(w, http.StatusOK, ToResponse(l))
}

func (h *Handler) respondDomainError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, shared.ErrLedgerNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, shared.ErrDuplicateName):
		httpx.Problem(w, http.StatusConflict, "Duplicate", err.Error())
	case errors.Is(err, shared.ErrSystemLedger):
		httpx.Problem(w, http.StatusForbidden, "Forbidden", err.Error())
	default:
		h.logger.Error(op, slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}

func (h *Handler) bumpReports(ctx context.Context) {
	if h.reports == nil {
		return
	}
	if err := h.reports.Bump(ctx); err != nil {
		h.logger.Warn("bump report cache", slog.Any("error", err))
	}
}
