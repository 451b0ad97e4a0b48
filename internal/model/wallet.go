package model

// Wallet holds the e-wallet balance. The balance is only ever changed
// server-side; the client refetches rather than adjusting it locally.
type Wallet struct {
	Balance float64 `json:"balance"`
}

// Transaction is one e-wallet ledger entry. Done flips from false to
// true when the external payment provider confirms the payment; the
// client observes the flip via refetch.
type Transaction struct {
	ID     string  `json:"id"`
	Amount float64 `json:"amount"`
	Date   string  `json:"date"`
	Credit float64 `json:"credit"`
	Debit  float64 `json:"debit"`
	Done   bool    `json:"done"`
}

// AddFundsResponse is returned by POST /e-wallet. The client redirects
// the user to PaymentURL; reconciliation happens out-of-band.
type AddFundsResponse struct {
	PaymentURL string `json:"payment_url"`
}
