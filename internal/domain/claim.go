package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClaimReceipt is the confirmation of a submitted claim transaction.
// The pending balance itself is owned by the on-chain ledger; this system
// only observes it and triggers the pending-to-paid transition.
type ClaimReceipt struct {
	TxHash      string          `json:"tx_hash"`
	Address     string          `json:"address"`
	Amount      decimal.Decimal `json:"amount"`
	SubmittedAt time.Time       `json:"submitted_at"`
}

// SpinReceipt is the confirmation of a spin fee transaction.
type SpinReceipt struct {
	TxHash      string          `json:"tx_hash"`
	Address     string          `json:"address"`
	Fee         decimal.Decimal `json:"fee"`
	SubmittedAt time.Time       `json:"submitted_at"`
}
