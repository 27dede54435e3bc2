// Package http exposes the derived accounting reports over JSON and CSV.
package http

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/google/uuid"

	"github.com/coldstore-erp/coldstore-erp/internal/accounting/ledgers"
	"github.com/coldstore-erp/coldstore-erp/internal/accounting/reports"
	"github.com/coldstore-erp/coldstore-erp/internal/accounting/vouchers"
	"github.com/coldstore-erp/coldstore-erp/internal/platform/httpx"
)

// Handler wires the report endpoints.
type Handler struct {
	logger    *slog.Logger
	ledgers   *ledgers.Service
	vouchers  *vouchers.Service
	cache     *Cache
	rateLimit func(http.Handler) http.Handler
}

// NewHandler constructs the report handler. cache may be nil in tests.
func NewHandler(logger *slog.Logger, ledgerSvc *ledgers.Service, voucherSvc *vouchers.Service, cache *Cache) *Handler {
	limiter := httprate.Limit(10, time.Minute, httprate.WithKeyFuncs(func(r *http.Request) (string, error) {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			return "ip:" + r.RemoteAddr, nil
		}
		return "ip:" + host, nil
	}))
	return &Handler{
		logger:    logger,
		ledgers:   ledgerSvc,
		vouchers:  voucherSvc,
		cache:     cache,
		rateLimit: limiter,
	}
}

// MountRoutes registers report routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/reports/balances", h.handleBalances)
	r.Get("/reports/trading-pl", h.handleTradingPL)
	r.Get("/reports/balance-sheet", h.handleBalanceSheet)
	r.Get("/reports/trial-balance", h.handleTrialBalance)
	r.Get("/reports/ledgers/{ledgerID}/statement", h.handleStatement)
	r.Group(func(r chi.Router) {
		r.Use(h.rateLimit)
		r.Get("/reports/balance-sheet/export.csv", h.handleBalanceSheetCSV)
		r.Get("/reports/ledgers/{ledgerID}/statement/export.csv", h.handleStatementCSV)
	})
}

// Warm precomputes the heavy reports and primes the cache. The worker's
// warmup task calls this after every cache bump.
func (h *Handler) Warm(ctx context.Context) error {
	if _, err := h.balances(ctx); err != nil {
		return err
	}
	if _, err := h.tradingPL(ctx); err != nil {
		return err
	}
	if _, err := h.balanceSheet(ctx); err != nil {
		return err
	}
	_, err := h.trialBalance(ctx)
	return err
}

// snapshot materializes the full ledger and voucher set a derivation needs.
func (h *Handler) snapshot(ctx context.Context) ([]ledgers.Ledger, []vouchers.Voucher, error) {
	ls, err := h.ledgers.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	vs, err := h.vouchers.List(ctx, vouchers.DateRange{})
	if err != nil {
		return nil, nil, err
	}
	return ls, vs, nil
}

func (h *Handler) balances(ctx context.Context) ([]LedgerBalanceVM, error) {
	key, err := h.cache.BuildKey(ctx, "reports", "balances")
	if err != nil {
		return nil, err
	}
	var vm []LedgerBalanceVM
	err = h.cache.FetchJSON(ctx, key, &vm, func(ctx context.Context) (interface{}, error) {
		return singleflightBuild(ctx, key, func(ctx context.Context) (interface{}, error) {
			ls, vs, err := h.snapshot(ctx)
			if err != nil {
				return nil, err
			}
			return balancesVM(ls, reports.ComputeBalances(ls, vs)), nil
		})
	})
	return vm, err
}

func (h *Handler) tradingPL(ctx context.Context) (TradingVM, error) {
	key, err := h.cache.BuildKey(ctx, "reports", "trading-pl")
	if err != nil {
		return TradingVM{}, err
	}
	var vm TradingVM
	err = h.cache.FetchJSON(ctx, key, &vm, func(ctx context.Context) (interface{}, error) {
		return singleflightBuild(ctx, key, func(ctx context.Context) (interface{}, error) {
			ls, vs, err := h.snapshot(ctx)
			if err != nil {
				return nil, err
			}
			balances := reports.ComputeBalances(ls, vs)
			res := reports.DeriveTradingAndPL(ls, func(l ledgers.Ledger) float64 {
				return reports.EffectiveBalance(l, balances)
			})
			return tradingVM(res), nil
		})
	})
	return vm, err
}

func (h *Handler) balanceSheet(ctx context.Context) (BalanceSheetVM, error) {
	key, err := h.cache.BuildKey(ctx, "reports", "balance-sheet")
	if err != nil {
		return BalanceSheetVM{}, err
	}
	var vm BalanceSheetVM
	err = h.cache.FetchJSON(ctx, key, &vm, func(ctx context.Context) (interface{}, error) {
		return singleflightBuild(ctx, key, func(ctx context.Context) (interface{}, error) {
			ls, vs, err := h.snapshot(ctx)
			if err != nil {
				return nil, err
			}
			return balanceSheetVM(reports.ComposeBalanceSheet(ls, vs)), nil
		})
	})
	return vm, err
}

func (h *Handler) trialBalance(ctx context.Context) (TrialBalanceVM, error) {
	key, err := h.cache.BuildKey(ctx, "reports", "trial-balance")
	if err != nil {
		return TrialBalanceVM{}, err
	}
	var vm TrialBalanceVM
	err = h.cache.FetchJSON(ctx, key, &vm, func(ctx context.Context) (interface{}, error) {
		return singleflightBuild(ctx, key, func(ctx context.Context) (interface{}, error) {
			ls, vs, err := h.snapshot(ctx)
			if err != nil {
				return nil, err
			}
			return trialBalanceVM(reports.BuildTrialBalance(ls, vs)), nil
		})
	})
	return vm, err
}

func (h *Handler) statement(ctx context.Context, id uuid.UUID) (StatementVM, bool, error) {
	key, err := h.cache.BuildKey(ctx, "reports", "statement", id.String())
	if err != nil {
		return StatementVM{}, false, err
	}
	var vm StatementVM
	err = h.cache.FetchJSON(ctx, key, &vm, func(ctx context.Context) (interface{}, error) {
		return singleflightBuild(ctx, key, func(ctx context.Context) (interface{}, error) {
			ls, vs, err := h.snapshot(ctx)
			if err != nil {
				return nil, err
			}
			st, ok := reports.BuildStatement(id, ls, vs)
			if !ok {
				// Cached as an empty statement; the empty LedgerID marks it.
				return StatementVM{}, nil
			}
			return statementVM(st), nil
		})
	})
	if err != nil {
		return StatementVM{}, false, err
	}
	if vm.LedgerID == "" {
		return StatementVM{}, false, nil
	}
	return vm, true, nil
}

func (h *Handler) handleBalances(w http.ResponseWriter, r *http.Request) {
	vm, err := h.balances(r.Context())
	if err != nil {
		h.internalError(w, "derive balances", err)
		return
	}
	httpx.JSON(w, http.StatusOK, vm)
}

func (h *Handler) handleTradingPL(w http.ResponseWriter, r *http.Request) {
	vm, err := h.tradingPL(r.Context())
	if err != nil {
		h.internalError(w, "derive trading and pl", err)
		return
	}
	httpx.JSON(w, http.StatusOK, vm)
}

func (h *Handler) handleBalanceSheet(w http.ResponseWriter, r *http.Request) {
	vm, err := h.balanceSheet(r.Context())
	if err != nil {
		h.internalError(w, "compose balance sheet", err)
		return
	}
	httpx.JSON(w, http.StatusOK, vm)
}

func (h *Handler) handleTrialBalance(w http.ResponseWriter, r *http.Request) {
	vm, err := h.trialBalance(r.Context())
	if err != nil {
		h.internalError(w, "build trial balance", err)
		return
	}
	httpx.JSON(w, http.StatusOK, vm)
}

func (h *Handler) handleStatement(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "ledgerID"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid ID", "ledger id must be a UUID")
		return
	}
	vm, ok, err := h.statement(r.Context(), id)
	if err != nil {
		h.internalError(w, "build statement", err)
		return
	}
	if !ok {
		httpx.Problem(w, http.StatusNotFound, "Not Found", "ledger not found")
		return
	}
	httpx.JSON(w, http.StatusOK, vm)
}

func (h *Handler) internalError(w http.ResponseWriter, op string, err error) {
	h.logger.Error(op, slog.Any("error", err))
	httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
}
