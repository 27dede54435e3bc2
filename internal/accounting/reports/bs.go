package reports

import (
	"math"

	"github.com/google/uuid"

	"github.com/coldstore-erp/coldstore-erp/internal/accounting/ledgers"
	"github.com/coldstore-erp/coldstore-erp/internal/accounting/vouchers"
)

// balanceEpsilon is the tolerance for the accounting-equation check.
// Balances are float64 sums, exact equality is too strict.
const balanceEpsilon = 0.01

// RowKind distinguishes presentation roles inside a balance sheet section.
type RowKind string

const (
	RowHeader RowKind = "header"
	RowDetail RowKind = "detail"
	RowTotal  RowKind = "total"
)

// BalanceSheetRow is one line of the liabilities or assets side.
type BalanceSheetRow struct {
	Kind   RowKind
	Label  string
	Amount float64
}

// BalanceSheet is the composed statement of capital, liabilities, and assets.
type BalanceSheet struct {
	LiabilityRows             []BalanceSheetRow
	AssetRows                 []BalanceSheetRow
	NetProfitLoss             float64
	TotalCapital              float64
	TotalLiabilitiesAndEquity float64
	TotalAssets               float64
	Balanced                  bool
}

// ComposeBalanceSheet assembles the capital section from equity ledgers and
// their voucher movements, groups liability and asset ledgers by sub type,
// and checks the accounting equation within a small epsilon.
func ComposeBalanceSheet(ls []ledgers.Ledger, vs []vouchers.Voucher) BalanceSheet {
	balances := ComputeBalances(ls, vs)
	pl := DeriveTradingAndPL(ls, func(l ledgers.Ledger) float64 {
		return EffectiveBalance(l, balances)
	})

	var bs BalanceSheet
	bs.NetProfitLoss = pl.NetProfitLoss

	bs.LiabilityRows = append(bs.LiabilityRows, capitalSection(ls, vs, balances, pl.NetProfitLoss, &bs.TotalCapital)...)

	var liabilityTotal float64
	bs.LiabilityRows = append(bs.LiabilityRows, groupedSection(ls, ledgers.TypeLiability, balances, nil, &liabilityTotal)...)

	assetPriority := []string{ledgers.SubTypeFixedAssets, ledgers.SubTypeCurrentAssets}
	bs.AssetRows = groupedSection(ls, ledgers.TypeAsset, balances, assetPriority, &bs.TotalAssets)

	bs.TotalLiabilitiesAndEquity = liabilityTotal + bs.TotalCapital
	bs.Balanced = math.Abs(bs.TotalAssets-bs.TotalLiabilitiesAndEquity) < balanceEpsilon
	return bs
}

// capitalSection emits per-equity-ledger opening balances and capital
// movements, the shared profit or loss line, and the total capital row.
// totalCapital receives the sum of equity balances plus net profit.
func capitalSection(ls []ledgers.Ledger, vs []vouchers.Voucher, balances map[uuid.UUID]float64, netPL float64, totalCapital *float64) []BalanceSheetRow {
	rows := []BalanceSheetRow{{Kind: RowHeader, Label: "Capital"}}
	equitySeen := false
	var equityTotal float64

	for _, l := range ls {
		if l.Type != ledgers.TypeEquity {
			continue
		}
		equitySeen = true
		equityTotal += EffectiveBalance(l, balances)

		rows = append(rows,
			BalanceSheetRow{Kind: RowHeader, Label: l.Name},
			BalanceSheetRow{Kind: RowDetail, Label: "Opening Balance", Amount: l.OpeningBalance},
		)

		var additions, deletions float64
		for _, v := range vs {
			if v.CreditLedgerID == l.ID {
				additions += v.Amount
			}
			if v.DebitLedgerID == l.ID {
				deletions += v.Amount
			}
		}
		net := additions - deletions
		switch {
		case additions != 0 && deletions != 0 && net == 0:
			// Offsetting movements are shown unreduced.
			rows = append(rows,
				BalanceSheetRow{Kind: RowDetail, Label: "Add: Capital Introduced", Amount: additions},
				BalanceSheetRow{Kind: RowDetail, Label: "Less: Capital Withdrawn", Amount: deletions},
			)
		case net > 0:
			rows = append(rows, BalanceSheetRow{Kind: RowDetail, Label: "Add: Capital Introduced", Amount: net})
		case net < 0:
			rows = append(rows, BalanceSheetRow{Kind: RowDetail, Label: "Less: Capital Withdrawn", Amount: math.Abs(net)})
		}
	}

	// The profit or loss transfer belongs to capital whether or not any
	// equity ledger exists; only a fully empty section is omitted.
	if !equitySeen && netPL == 0 {
		return nil
	}
	if netPL > 0 {
		rows = append(rows, BalanceSheetRow{Kind: RowDetail, Label: "Add: Profit", Amount: netPL})
	} else if netPL < 0 {
		rows = append(rows, BalanceSheetRow{Kind: RowDetail, Label: "Less: Loss", Amount: math.Abs(netPL)})
	}
	*totalCapital = equityTotal + netPL
	rows = append(rows, BalanceSheetRow{Kind: RowTotal, Label: "Total Capital", Amount: *totalCapital})
	return rows
}

// groupedSection groups one ledger type by sub type, one detail row per
// (sub type, category) pair, each group closed by its total. Priority sub
// types lead, everything else keeps first-encounter order. total receives
// the summed section balance.
func groupedSection(ls []ledgers.Ledger, t ledgers.LedgerType, balances map[uuid.UUID]float64, priority []string, total *float64) []BalanceSheetRow {
	type group struct {
		subType    string
		categories []string
		totals     map[string]float64
	}
	groupIndex := make(map[string]*group)
	order := make([]string, 0)

	for _, l := range ls {
		if l.Type != t {
			continue
		}
		g, ok := groupIndex[l.SubType]
		if !ok {
			g = &group{subType: l.SubType, totals: make(map[string]float64)}
			groupIndex[l.SubType] = g
			order = append(order, l.SubType)
		}
		label := l.Category
		if label == "" {
			label = l.Name
		}
		if _, ok := g.totals[label]; !ok {
			g.categories = append(g.categories, label)
		}
		g.totals[label] += EffectiveBalance(l, balances)
	}

	ordered := make([]string, 0, len(order))
	for _, p := range priority {
		if _, ok := groupIndex[p]; ok {
			ordered = append(ordered, p)
		}
	}
	for _, subType := range order {
		prioritized := false
		for _, p := range priority {
			if subType == p {
				prioritized = true
				break
			}
		}
		if !prioritized {
			ordered = append(ordered, subType)
		}
	}

	var rows []BalanceSheetRow
	for _, subType := range ordered {
		g := groupIndex[subType]
		rows = append(rows, BalanceSheetRow{Kind: RowHeader, Label: g.subType})
		var groupTotal float64
		for _, cat := range g.categories {
			rows = append(rows, BalanceSheetRow{Kind: RowDetail, Label: cat, Amount: g.totals[cat]})
			groupTotal += g.totals[cat]
		}
		rows = append(rows, BalanceSheetRow{Kind: RowTotal, Label: "Total " + g.subType, Amount: groupTotal})
		*total += groupTotal
	}
	return rows
}
