package http

import (
	"time"

	"github.com/google/uuid"

	"github.com/coldstore-erp/coldstore-erp/internal/accounting/ledgers"
	"github.com/coldstore-erp/coldstore-erp/internal/accounting/reports"
)

// LedgerBalanceVM is one resolved ledger balance.
type LedgerBalanceVM struct {
	LedgerID     string  `json:"ledgerId"`
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	Balance      float64 `json:"balance"`
	DebitBalance bool    `json:"isDebitBalance"`
}

// StatementRowVM is one row of a ledger statement.
type StatementRowVM struct {
	VoucherID      string    `json:"voucherId"`
	VoucherNumber  int64     `json:"voucherNumber"`
	Date           time.Time `json:"date"`
	Side           string    `json:"side"`
	Amount         float64   `json:"amount"`
	Narration      string    `json:"narration"`
	RunningBalance float64   `json:"runningBalance"`
}

// StatementVM is the JSON shape of a running ledger statement.
type StatementVM struct {
	LedgerID       string           `json:"ledgerId"`
	LedgerName     string           `json:"ledgerName"`
	OpeningBalance float64          `json:"openingBalance"`
	Rows           []StatementRowVM `json:"rows"`
	ClosingBalance float64          `json:"closingBalance"`
	DebitBalance   bool             `json:"isDebitBalance"`
}

// PLRowVM is one labelled P&L line.
type PLRowVM struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// TradingVM is the JSON shape of the trading and P&L derivation.
type TradingVM struct {
	OpeningStock         float64   `json:"openingStock"`
	ClosingStock         float64   `json:"closingStock"`
	SalesTotal           float64   `json:"salesTotal"`
	PurchaseTotal        float64   `json:"purchaseTotal"`
	GrossProfit          float64   `json:"grossProfit"`
	IndirectIncomeTotal  float64   `json:"indirectIncomeTotal"`
	IndirectExpenseTotal float64   `json:"indirectExpenseTotal"`
	NetProfitLoss        float64   `json:"netProfitLoss"`
	DebitRows            []PLRowVM `json:"pnlDebitRows"`
	CreditRows           []PLRowVM `json:"pnlCreditRows"`
}

// BalanceSheetRowVM is one balance sheet line.
type BalanceSheetRowVM struct {
	Kind   string  `json:"kind"`
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// BalanceSheetVM is the JSON shape of the composed balance sheet.
type BalanceSheetVM struct {
	LiabilityRows             []BalanceSheetRowVM `json:"liabilityRows"`
	AssetRows                 []BalanceSheetRowVM `json:"assetRows"`
	NetProfitLoss             float64             `json:"netProfitLoss"`
	TotalCapital              float64             `json:"totalCapital"`
	TotalLiabilitiesAndEquity float64             `json:"totalLiabilitiesAndEquity"`
	TotalAssets               float64             `json:"totalAssets"`
	Balanced                  bool                `json:"isBalanced"`
}

// TrialBalanceRowVM is one trial balance line.
type TrialBalanceRowVM struct {
	LedgerID string  `json:"ledgerId"`
	Name     string  `json:"name"`
	SubType  string  `json:"subType"`
	Category string  `json:"category"`
	Debit    float64 `json:"debit"`
	Credit   float64 `json:"credit"`
}

// TrialBalanceGroupVM is one typed trial balance section.
type TrialBalanceGroupVM struct {
	Type   string              `json:"type"`
	Rows   []TrialBalanceRowVM `json:"rows"`
	Debit  float64             `json:"debit"`
	Credit float64             `json:"credit"`
}

// TrialBalanceVM is the JSON shape of the trial balance.
type TrialBalanceVM struct {
	Groups      []TrialBalanceGroupVM `json:"groups"`
	TotalDebit  float64               `json:"totalDebit"`
	TotalCredit float64               `json:"totalCredit"`
	Balanced    bool                  `json:"isBalanced"`
}

func statementVM(st reports.Statement) StatementVM {
	rows := make([]StatementRowVM, 0, len(st.Rows))
	for _, r := range st.Rows {
		rows = append(rows, StatementRowVM{
			VoucherID:      r.VoucherID.String(),
			VoucherNumber:  r.VoucherNumber,
			Date:           r.Date,
			Side:           string(r.Side),
			Amount:         r.Amount,
			Narration:      r.Narration,
			RunningBalance: r.RunningBalance,
		})
	}
	return StatementVM{
		LedgerID:       st.LedgerID.String(),
		LedgerName:     st.LedgerName,
		OpeningBalance: st.OpeningBalance,
		Rows:           rows,
		ClosingBalance: st.ClosingBalance,
		DebitBalance:   st.DebitBalance,
	}
}

func plRowsVM(rows []reports.PLRow) []PLRowVM {
	out := make([]PLRowVM, 0, len(rows))
	for _, r := range rows {
		out = append(out, PLRowVM{Label: r.Label, Amount: r.Amount})
	}
	return out
}

func tradingVM(res reports.TradingResult) TradingVM {
	return TradingVM{
		OpeningStock:         res.OpeningStock,
		ClosingStock:         res.ClosingStock,
		SalesTotal:           res.SalesTotal,
		PurchaseTotal:        res.PurchaseTotal,
		GrossProfit:          res.GrossProfit,
		IndirectIncomeTotal:  res.IndirectIncomeTotal,
		IndirectExpenseTotal: res.IndirectExpenseTotal,
		NetProfitLoss:        res.NetProfitLoss,
		DebitRows:            plRowsVM(res.DebitRows),
		CreditRows:           plRowsVM(res.CreditRows),
	}
}

func balanceSheetRowsVM(rows []reports.BalanceSheetRow) []BalanceSheetRowVM {
	out := make([]BalanceSheetRowVM, 0, len(rows))
	for _, r := range rows {
		out = append(out, BalanceSheetRowVM{Kind: string(r.Kind), Label: r.Label, Amount: r.Amount})
	}
	return out
}

func balanceSheetVM(bs reports.BalanceSheet) BalanceSheetVM {
	return BalanceSheetVM{
		LiabilityRows:             balanceSheetRowsVM(bs.LiabilityRows),
		AssetRows:                 balanceSheetRowsVM(bs.AssetRows),
		NetProfitLoss:             bs.NetProfitLoss,
		TotalCapital:              bs.TotalCapital,
		TotalLiabilitiesAndEquity: bs.TotalLiabilitiesAndEquity,
		TotalAssets:               bs.TotalAssets,
		Balanced:                  bs.Balanced,
	}
}

func trialBalanceVM(tb reports.TrialBalance) TrialBalanceVM {
	groups := make([]TrialBalanceGroupVM, 0, len(tb.Groups))
	for _, g := range tb.Groups {
		rows := make([]TrialBalanceRowVM, 0, len(g.Rows))
		for _, r := range g.Rows {
			rows = append(rows, TrialBalanceRowVM{
				LedgerID: r.LedgerID.String(),
				Name:     r.Name,
				SubType:  r.SubType,
				Category: r.Category,
				Debit:    r.Debit,
				Credit:   r.Credit,
			})
		}
		groups = append(groups, TrialBalanceGroupVM{Type: string(g.Type), Rows: rows, Debit: g.Debit, Credit: g.Credit})
	}
	return TrialBalanceVM{
		Groups:      groups,
		TotalDebit:  tb.TotalDebit,
		TotalCredit: tb.TotalCredit,
		Balanced:    tb.Balanced,
	}
}

func balancesVM(ls []ledgers.Ledger, balances map[uuid.UUID]float64) []LedgerBalanceVM {
	out := make([]LedgerBalanceVM, 0, len(ls))
	for _, l := range ls {
		b := reports.EffectiveBalance(l, balances)
		out = append(out, LedgerBalanceVM{
			LedgerID:     l.ID.String(),
			Name:         l.Name,
			Type:         string(l.Type),
			Balance:      b,
			DebitBalance: reports.IsDebitBalance(l.Type, b),
		})
	}
	return out
}
