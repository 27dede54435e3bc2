package ledgers

// CreateLedgerRequest is the JSON body for opening a ledger.
type CreateLedgerRequest struct {
	Name           string   `json:"name" validate:"required,max=120"`
	Type           string   `json:"type" validate:"required,oneof=ASSET LIABILITY INCOME EXPENSE EQUITY"`
	SubType        string   `json:"subType" validate:"max=120"`
	Category       string   `json:"category" validate:"max=120"`
	OpeningBalance float64  `json:"openingBalance"`
	ClosingBalance *float64 `json:"closingBalance"`
}

// UpdateLedgerRequest is the JSON body for editing a ledger.
type UpdateLedgerRequest struct {
	Name           string   `json:"name" validate:"required,max=120"`
	Type           string   `json:"type" validate:"required,oneof=ASSET LIABILITY INCOME EXPENSE EQUITY"`
	SubType        string   `json:"subType" validate:"max=120"`
	Category       string   `json:"category" validate:"max=120"`
	OpeningBalance float64  `json:"openingBalance"`
	ClosingBalance *float64 `json:"closingBalance"`
}

// LedgerResponse is the JSON shape returned to API consumers.
type LedgerResponse struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Type           string   `json:"type"`
	SubType        string   `json:"subType"`
	Category       string   `json:"category"`
	OpeningBalance float64  `json:"openingBalance"`
	ClosingBalance *float64 `json:"closingBalance,omitempty"`
	IsSystem       bool     `json:"isSystemLedger"`
}

// ToResponse converts a Ledger for serialization.
func ToResponse(l Ledger) LedgerResponse {
	return LedgerResponse{
		ID:             l.ID.String(),
		Name:           l.Name,
		Type:           string(l.Type),
		SubType:        l.SubType,
		Category:       l.Category,
		OpeningBalance: l.OpeningBalance,
		ClosingBalance: l.ClosingBalance,
		IsSystem:       l.IsSystem,
	}
}
