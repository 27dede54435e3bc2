package vouchers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

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

// MountRoutes registers voucher routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/vouchers", h.handleList)
	r.Post("/vouchers", h.handleCreate)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	rng, err := parseDateRange(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Filter", err.Error())
		return
	}
	list, err := h.service.List(r.Context(), rng)
	if err != nil {
		h.logger.Error("list vouchers", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	out := make([]VoucherResponse, 0, len(list))
	for _, v := range list {
		out = append(out, ToResponse(v))
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateVoucherRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	debitID, err := uuid.Parse(req.DebitLedgerID)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid ID", "debit ledger id must be a UUID")
		return
	}
	creditID, err := uuid.Parse(req.CreditLedgerID)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid ID", "credit ledger id must be a UUID")
		return
	}

	v, err := h.service.Create(r.Context(), CreateInput{
		Date:           req.Date,
		DebitLedgerID:  debitID,
		CreditLedgerID: creditID,
		Amount:         req.Amount,
		Narration:      req.Narration,
	})
	if err != nil {
		switch {
		case errors.Is(err, shared.ErrNonPositiveAmount), errors.Is(err, shared.ErrSameLedger):
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		case errors.Is(err, shared.ErrLedgerNotFound):
			httpx.Problem(w, http.StatusUnprocessableEntity, "Unknown Ledger", err.Error())
		default:
			h.logger.Error("create voucher", slog.Any("error", err))
			httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		}
		return
	}
	if h.reports != nil {
		if err := h.reports.Bump(r.Context()); err != nil {
			h.logger.Warn("bump report cache", slog.Any("error", err))
		}
	}
	httpx.JSON(w, http.StatusCreated, ToResponse(v))
}

// parseDateRange reads the optional from/to ISO date query parameters.
func parseDateRange(r *http.Request) (DateRange, error) {
	var rng DateRange
	if raw := r.URL.Query().Get("from"); raw != "" {
		t, err := parseISODate(raw)
		if err != nil {
			return DateRange{}, err
		}
		rng.From = t
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		t, err := parseISODate(raw)
		if err != nil {
			return DateRange{}, err
		}
		rng.To = t
	}
	return rng, nil
}

func parseISODate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
