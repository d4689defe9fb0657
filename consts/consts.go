package consts

const (
	HeaderAccept      = "Accept"
	HeaderContentType = "Content-Type"
	HeaderXRequestID  = "x-request-id"

	ContentTypeJSON = "application/json"
	ContentTypeHTML = "text/html"
	ContentTypeForm = "application/x-www-form-urlencoded"
)

// Base URLs.
const (
	DefaultBaseURL    = "https://dev-gw.payhost.io/" // test
	ProductionBaseURL = "https://gw.payhost.io/"     // prod
)

// Payment gateway endpoint paths, joined onto the base URL.
const (
	PurchasePath         = "api/payment-gateway/v1/payments/purchase"
	CheckTransactionPath = "api/payment-gateway/v1/payments/check-transaction"
	TransactionListPath  = "api/payment-gateway/v1/payments/transaction-list"
)

// Pre-authorization endpoint paths (merchant portal API).
const (
	PreAuthCompletionPath           = "api/merchant-portal/merchant-access/online-transaction/pre-auth-completion"
	PreAuthCompletionWithPayoutPath = "api/merchant-portal/merchant-access/online-transaction/pre-auth-completion-with-payout"
	PreAuthCancellationPath         = "api/merchant-portal/merchant-access/online-transaction/pre-auth-cancellation"
)

// Request field keys shared across operations.
const (
	FieldRequestTime  = "request_time"
	FieldMerchantID   = "merchant_id"
	FieldHash         = "hash"
	FieldMerchantAuth = "merchant_auth"
	FieldViewMode     = "view_mode"
)

// RequestTimeLayout is the gateway timestamp format (yyyyMMddHHmmss).
const RequestTimeLayout = "20060102150405"

// Payment options (the "ps" field).
//
// PaymentOptionWeb makes the gateway respond with a rendered checkout page
// instead of JSON; Execute refuses it unless WithAllowHTML is given.
const (
	PaymentOptionWeb    = "WEB"
	PaymentOptionCard   = "CARD"
	PaymentOptionWallet = "WALLET"
)

// View modes for the hosted payment page. Presentation only: view_mode is
// added to the request after signing and never enters the signed sequence.
const (
	ViewModeRedirect = "REDIRECT"
	ViewModePopup    = "POPUP"
	ViewModeIframe   = "IFRAME"
)
