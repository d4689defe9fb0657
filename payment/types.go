package payment

// PurchaseRequest corresponds to "Create transaction"
// (POST api/payment-gateway/v1/payments/purchase).
//
// Amounts are integer minor units. Optional fields left nil are dropped from
// the request entirely and contribute nothing to the signature.
type PurchaseRequest struct {
	TransactionID string
	Amount        int64

	Items    []Item
	Shipping *Shipping

	FirstName *string
	LastName  *string
	Email     *string
	Phone     *string

	Type          *string
	PaymentOption *string

	ReturnURL      *string
	CancelURL      *string
	ContinueURL    *string
	ReturnDeeplink *Deeplink

	Currency         *string
	CustomFields     map[string]string
	ReturnParams     *string
	Payout           []PayoutEntry
	Lifetime         *int64
	AdditionalParams map[string]string
	WalletToken      *string
	SkipSuccessPage  *bool

	// ViewMode controls how the hosted page renders (consts.ViewMode*).
	// It is appended after signing and never enters the signed sequence.
	ViewMode *string
}

type Item struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
	Price int64  `json:"price"`
}

type Shipping struct {
	Title string `json:"title"`
	Price int64  `json:"price"`
}

// Deeplink is the post-payment return target for mobile integrations.
//
// When URL is set it is used verbatim; otherwise the per-platform schemes are
// serialized to a JSON record before base64 encoding.
type Deeplink struct {
	URL     string `json:"-"`
	IOS     string `json:"ios,omitempty"`
	Android string `json:"android,omitempty"`
}

// PayoutEntry is one line of a payout distribution list.
type PayoutEntry struct {
	Account string `json:"account"`
	Amount  int64  `json:"amount"`
}

// CheckTransactionRequest corresponds to "Check transaction"
// (POST api/payment-gateway/v1/payments/check-transaction).
type CheckTransactionRequest struct {
	TransactionID string
}

// TransactionListRequest corresponds to "Transaction list"
// (POST api/payment-gateway/v1/payments/transaction-list).
//
// Dates use the gateway timestamp format (yyyyMMddHHmmss).
type TransactionListRequest struct {
	DateFrom   *string
	DateTo     *string
	AmountFrom *int64
	AmountTo   *int64
	Status     *string
}
