package preauth

import "github.com/stremovskyy/go-payhost/payment"

// CompleteRequest captures previously reserved funds
// (POST .../online-transaction/pre-auth-completion).
type CompleteRequest struct {
	TransactionID string
	Amount        int64
}

// CompleteWithPayoutRequest captures reserved funds and distributes them
// (POST .../online-transaction/pre-auth-completion-with-payout).
type CompleteWithPayoutRequest struct {
	TransactionID string
	Amount        int64
	Payout        []payment.PayoutEntry
}

// CancelRequest releases previously reserved funds
// (POST .../online-transaction/pre-auth-cancellation).
type CancelRequest struct {
	TransactionID string
	Amount        int64
}

// auth is the sensitive sub-payload serialized and encrypted into the
// merchant_auth field. Field order is part of the wire contract.
type auth struct {
	TransactionID string                `json:"transaction_id"`
	Amount        int64                 `json:"amount"`
	Payout        []payment.PayoutEntry `json:"payout,omitempty"`
}

// AuthPayload returns the canonical merchant_auth value for a completion.
func (r *CompleteRequest) AuthPayload() any {
	return auth{TransactionID: r.TransactionID, Amount: r.Amount}
}

// AuthPayload returns the canonical merchant_auth value for a completion with payout.
func (r *CompleteWithPayoutRequest) AuthPayload() any {
	return auth{TransactionID: r.TransactionID, Amount: r.Amount, Payout: r.Payout}
}

// AuthPayload returns the canonical merchant_auth value for a cancellation.
func (r *CancelRequest) AuthPayload() any {
	return auth{TransactionID: r.TransactionID, Amount: r.Amount}
}
