package http

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/coldstore-erp/coldstore-erp/internal/platform/httpx"
)

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func (h *Handler) handleBalanceSheetCSV(w http.ResponseWriter, r *http.Request) {
	vm, err := h.balanceSheet(r.Context())
	if err != nil {
		h.internalError(w, "compose balance sheet", err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="balance_sheet.csv"`)

	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	write := func(row []string) {
		_ = cw.Write(row)
	}

	write([]string{"section", "kind", "label", "amount"})
	for _, row := range vm.LiabilityRows {
		write([]string{"liabilities", row.Kind, row.Label, formatAmount(row.Amount)})
	}
	for _, row := range vm.AssetRows {
		write([]string{"assets", row.Kind, row.Label, formatAmount(row.Amount)})
	}
	write([]string{"totals", "total", "Total Liabilities & Equity", formatAmount(vm.TotalLiabilitiesAndEquity)})
	write([]string{"totals", "total", "Total Assets", formatAmount(vm.TotalAssets)})
	write([]string{"totals", "check", "Balanced", fmt.Sprintf("%t", vm.Balanced)})

	cw.Flush()
	if err := cw.Error(); err != nil {
		h.logger.Error("write balance sheet csv", slog.Any("error", err))
	}
}

func (h *Handler) handleStatementCSV(w http.ResponseWriter, r *http.Request) {
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

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="ledger_statement.csv"`)

	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	_ = cw.Write([]string{"date", "voucher", "side", "narration", "amount", "running_balance"})
	for _, row := range vm.Rows {
		_ = cw.Write([]string{
			row.Date.Format("2006-01-02"),
			strconv.FormatInt(row.VoucherNumber, 10),
			row.Side,
			row.Narration,
			formatAmount(row.Amount),
			formatAmount(row.RunningBalance),
		})
	}
	_ = cw.Write([]string{"", "", "", "Closing Balance", "", formatAmount(vm.ClosingBalance)})

	cw.Flush()
	if err := cw.Error(); err != nil {
		h.logger.Error("write statement csv", slog.Any("error", err))
	}
}
