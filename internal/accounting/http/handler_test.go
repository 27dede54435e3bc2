package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/coldstore-erp/coldstore-erp/internal/accounting/ledgers"
	"github.com/coldstore-erp/coldstore-erp/internal/accounting/shared"
	"github.com/coldstore-erp/coldstore-erp/internal/accounting/vouchers"
	_ "github.com/coldstore-erp/coldstore-erp/testing"
)

type ledgerRepo struct {
	items     []ledgers.Ledger
	listCalls int
}

func (r *ledgerRepo) List(ctx context.Context) ([]ledgers.Ledger, error) {
	r.listCalls++
	return r.items, nil
}

func (r *ledgerRepo) Get(ctx context.Context, id uuid.UUID) (ledgers.Ledger, error) {
	for _, l := range r.items {
		if l.ID == id {
			return l, nil
		}
	}
	return ledgers.Ledger{}, shared.ErrLedgerNotFound
}

func (r *ledgerRepo) Insert(ctx context.Context, l ledgers.Ledger) error {
	r.items = append(r.items, l)
	return nil
}

func (r *ledgerRepo) Update(ctx context.Context, l ledgers.Ledger) error {
	for i := range r.items {
		if r.items[i].ID == l.ID {
			r.items[i] = l
			return nil
		}
	}
	return shared.ErrLedgerNotFound
}

type voucherRepo struct {
	items []vouchers.Voucher
}

func (r *voucherRepo) List(ctx context.Context, rng vouchers.DateRange) ([]vouchers.Voucher, error) {
	var out []vouchers.Voucher
	for _, v := range r.items {
		if rng.Contains(v.Date) {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *voucherRepo) Get(ctx context.Context, id uuid.UUID) (vouchers.Voucher, error) {
	for _, v := range r.items {
		if v.ID == id {
			return v, nil
		}
	}
	return vouchers.Voucher{}, shared.ErrVoucherNotFound
}

func (r *voucherRepo) WithTx(ctx context.Context, fn func(context.Context, vouchers.TxRepository) error) error {
	return fn(ctx, voucherTx{repo: r})
}

type voucherTx struct {
	repo *voucherRepo
}

func (t voucherTx) LedgerExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return true, nil
}

func (t voucherTx) NextNumber(ctx context.Context) (int64, error) {
	return int64(len(t.repo.items) + 1), nil
}

func (t voucherTx) Insert(ctx context.Context, v vouchers.Voucher) error {
	t.repo.items = append(t.repo.items, v)
	return nil
}

func slogDiscard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fixture() (*ledgerRepo, *voucherRepo, uuid.UUID) {
	capital := uuid.New()
	cash := uuid.New()
	sales := uuid.New()
	lr := &ledgerRepo{items: []ledgers.Ledger{
		{ID: capital, Name: "Owner Capital", Type: ledgers.TypeEquity, OpeningBalance: 1000},
		{ID: cash, Name: "Cash", Type: ledgers.TypeAsset, SubType: ledgers.SubTypeCurrentAssets, OpeningBalance: 1000},
		{ID: sales, Name: "Sales", Type: ledgers.TypeIncome, Category: "Sales"},
	}}
	vr := &voucherRepo{items: []vouchers.Voucher{
		{
			ID:             uuid.New(),
			Number:         1,
			Date:           time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC),
			DebitLedgerID:  cash,
			CreditLedgerID: sales,
			Amount:         500,
		},
	}}
	return lr, vr, cash
}

func newTestHandler(t *testing.T, lr *ledgerRepo, vr *voucherRepo) (*Handler, *Cache, func()) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := NewCache(client, time.Minute)
	handler := NewHandler(slogDiscard(), ledgers.NewService(lr), vouchers.NewService(vr), cache)
	return handler, cache, func() {
		_ = client.Close()
		mr.Close()
	}
}

func serve(t *testing.T, h *Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	r := chi.NewRouter()
	h.MountRoutes(r)
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	req.RemoteAddr = "10.0.0.1:1234"
	r.ServeHTTP(rr, req)
	return rr
}

func TestBalancesEndpointCachesSnapshot(t *testing.T) {
	lr, vr, _ := fixture()
	handler, cache, cleanup := newTestHandler(t, lr, vr)
	defer cleanup()

	rr := serve(t, handler, http.MethodGet, "/reports/balances")
	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", rr.Code, rr.Body.String())
	}
	if lr.listCalls != 1 {
		t.Fatalf("expected one snapshot load, got %d", lr.listCalls)
	}

	var balances []LedgerBalanceVM
	if err := json.Unmarshal(rr.Body.Bytes(), &balances); err != nil {
		t.Fatalf("decode balances: %v", err)
	}
	if len(balances) != 3 {
		t.Fatalf("expected 3 balances, got %d", len(balances))
	}
	var cashBalance float64
	for _, b := range balances {
		if b.Name == "Cash" {
			cashBalance = b.Balance
		}
	}
	if cashBalance != 1500 {
		t.Fatalf("expected cash balance 1500, got %.2f", cashBalance)
	}

	// Second request must come from Redis.
	rr = serve(t, handler, http.MethodGet, "/reports/balances")
	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status on cached read: %d", rr.Code)
	}
	if lr.listCalls != 1 {
		t.Fatalf("expected cached result, snapshot loaded %d times", lr.listCalls)
	}

	// Bumping the version forces a rebuild.
	if err := cache.Bump(context.Background()); err != nil {
		t.Fatalf("bump failed: %v", err)
	}
	rr = serve(t, handler, http.MethodGet, "/reports/balances")
	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status after bump: %d", rr.Code)
	}
	if lr.listCalls != 2 {
		t.Fatalf("expected rebuild after bump, snapshot loaded %d times", lr.listCalls)
	}
}

func TestBalanceSheetEndpointBalances(t *testing.T) {
	lr, vr, _ := fixture()
	handler, _, cleanup := newTestHandler(t, lr, vr)
	defer cleanup()

	rr := serve(t, handler, http.MethodGet, "/reports/balance-sheet")
	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", rr.Code, rr.Body.String())
	}
	var vm BalanceSheetVM
	if err := json.Unmarshal(rr.Body.Bytes(), &vm); err != nil {
		t.Fatalf("decode balance sheet: %v", err)
	}
	if !vm.Balanced {
		t.Fatalf("expected balanced sheet, assets %.2f vs liabilities %.2f", vm.TotalAssets, vm.TotalLiabilitiesAndEquity)
	}
	if vm.TotalAssets != 1500 {
		t.Fatalf("expected total assets 1500, got %.2f", vm.TotalAssets)
	}
}

func TestStatementEndpoint(t *testing.T) {
	lr, vr, cash := fixture()
	handler, _, cleanup := newTestHandler(t, lr, vr)
	defer cleanup()

	rr := serve(t, handler, http.MethodGet, "/reports/ledgers/"+cash.String()+"/statement")
	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", rr.Code, rr.Body.String())
	}
	var vm StatementVM
	if err := json.Unmarshal(rr.Body.Bytes(), &vm); err != nil {
		t.Fatalf("decode statement: %v", err)
	}
	if len(vm.Rows) != 1 {
		t.Fatalf("expected 1 statement row, got %d", len(vm.Rows))
	}
	if vm.ClosingBalance != 1500 {
		t.Fatalf("expected closing balance 1500, got %.2f", vm.ClosingBalance)
	}

	rr = serve(t, handler, http.MethodGet, "/reports/ledgers/"+uuid.NewString()+"/statement")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown ledger, got %d", rr.Code)
	}

	rr = serve(t, handler, http.MethodGet, "/reports/ledgers/not-a-uuid/statement")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed id, got %d", rr.Code)
	}
}

func TestBalanceSheetCSVExport(t *testing.T) {
	lr, vr, _ := fixture()
	handler, _, cleanup := newTestHandler(t, lr, vr)
	defer cleanup()

	rr := serve(t, handler, http.MethodGet, "/reports/balance-sheet/export.csv")
	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); !strings.Contains(ct, "text/csv") {
		t.Fatalf("unexpected content type: %q", ct)
	}
	if !strings.Contains(rr.Body.String(), "Total Assets") {
		t.Fatalf("expected totals in export, got: %s", rr.Body.String())
	}
}

func TestWarmPrimesEveryReport(t *testing.T) {
	lr, vr, _ := fixture()
	handler, _, cleanup := newTestHandler(t, lr, vr)
	defer cleanup()

	if err := handler.Warm(context.Background()); err != nil {
		t.Fatalf("warm failed: %v", err)
	}
	loads := lr.listCalls

	// Every report endpoint should now be served from cache.
	for _, target := range []string{
		"/reports/balances",
		"/reports/trading-pl",
		"/reports/balance-sheet",
		"/reports/trial-balance",
	} {
		rr := serve(t, handler, http.MethodGet, target)
		if rr.Code != http.StatusOK {
			t.Fatalf("unexpected status for %s: %d", target, rr.Code)
		}
	}
	if lr.listCalls != loads {
		t.Fatalf("expected warmed cache to serve reads, snapshot loads went from %d to %d", loads, lr.listCalls)
	}
}
