package usecases

import "time"

// ReplyKind identifies a notification to render for the user. Wording and
// localization live in the chat transport; use cases only pick the kind and
// attach the dynamic parts.
type ReplyKind string

const (
	ReplyNone              ReplyKind = ""
	ReplyAskAssetInvoice   ReplyKind = "ask_asset_invoice"
	ReplyAskBtcAddress     ReplyKind = "ask_btc_address"
	ReplySending           ReplyKind = "sending"
	ReplyAssetSent         ReplyKind = "asset_sent"
	ReplyBtcSent           ReplyKind = "btc_sent"
	ReplyDescriptorUsed    ReplyKind = "descriptor_used"
	ReplyInvalidEndpoints  ReplyKind = "invalid_endpoints"
	ReplySendFailed        ReplyKind = "send_failed"
	ReplyRateLimited       ReplyKind = "rate_limited"
	ReplyUnrecognizedInput ReplyKind = "unrecognized_input"
	ReplyInvoiceIssued     ReplyKind = "invoice_issued"
	ReplyInvoicePending    ReplyKind = "invoice_pending"
	ReplyInvoicePaid       ReplyKind = "invoice_paid"
	ReplyInvoiceExpired    ReplyKind = "invoice_expired"
	ReplyInvoiceFailed     ReplyKind = "invoice_failed"
)

// Reply is a notification instruction returned by use case operations
type Reply struct {
	Kind    ReplyKind
	TxID    string
	Invoice string
	RetryAt time.Time
}
