package telegram

import (
	"fmt"
	"time"

	"rln-faucet.backend/internal/usecases"
)

// MessageCatalog renders reply instructions into user-facing text. All
// wording lives here so the use cases stay presentation-free.
type MessageCatalog struct {
	AssetTicker string
	AssetAmount uint64
	SatAmount   uint64
	NodeURI     string
	Network     string
}

// Render turns a reply into the message text for the user. An empty
// string means nothing should be sent.
func (c *MessageCatalog) Render(reply usecases.Reply) string {
	switch reply.Kind {
	case usecases.ReplyAskAssetInvoice:
		return fmt.Sprintf(
			"OK, I will send you %d %s. Please send me an RGB invoice for the transfer.",
			c.AssetAmount, c.AssetTicker)

	case usecases.ReplyAskBtcAddress:
		return fmt.Sprintf(
			"OK, I will send you %d sats. Please send me a bitcoin address.",
			c.SatAmount)

	case usecases.ReplySending:
		return "Sending... this may take a while, please wait."

	case usecases.ReplyAssetSent:
		return fmt.Sprintf(
			"Sent! You will receive %d %s once the transaction is confirmed.\nTXID: %s",
			c.AssetAmount, c.AssetTicker, reply.TxID)

	case usecases.ReplyBtcSent:
		return fmt.Sprintf(
			"Sent! You will receive %d sats once the transaction is confirmed.\nTXID: %s",
			c.SatAmount, reply.TxID)

	case usecases.ReplyDescriptorUsed:
		return "This RGB invoice has already been used. Please generate a new one and send it to me."

	case usecases.ReplyInvalidEndpoints:
		return "The transport endpoints of this invoice are invalid. Please generate a new invoice and try again."

	case usecases.ReplySendFailed:
		return "Something went wrong while sending. Please try again later."

	case usecases.ReplyRateLimited:
		return fmt.Sprintf(
			"You have already received your allowance for today. You can ask again %s.",
			retryPhrase(time.Now(), reply.RetryAt))

	case usecases.ReplyUnrecognizedInput:
		return "I don't understand that. Send /help to see what I can do."

	case usecases.ReplyInvoiceIssued:
		return fmt.Sprintf(
			"Here is your LN invoice. Pay it to receive %d %s over Lightning:\n\n%s",
			c.AssetAmount, c.AssetTicker, reply.Invoice)

	case usecases.ReplyInvoicePending:
		return fmt.Sprintf(
			"You already have an unpaid invoice. Pay this one first:\n\n%s",
			reply.Invoice)

	case usecases.ReplyInvoicePaid:
		return fmt.Sprintf(
			"Payment received! %d %s are on their way to you.",
			c.AssetAmount, c.AssetTicker)

	case usecases.ReplyInvoiceExpired:
		return "Your invoice expired before it was paid. Send /getinvoice to get a new one."

	case usecases.ReplyInvoiceFailed:
		return "Something went wrong with your invoice. The operator has been notified."

	default:
		return ""
	}
}

// Welcome is the /start greeting
func (c *MessageCatalog) Welcome() string {
	return fmt.Sprintf(
		"Hi! I am a faucet for %s, a test asset on the %s network.\nSend /help to see what I can do.",
		c.AssetTicker, c.Network)
}

// Help lists the available commands
func (c *MessageCatalog) Help() string {
	return fmt.Sprintf(`Here is what I can do:
/getasset - receive %d %s to an RGB invoice
/getbtc - receive %d sats to a bitcoin address
/getinvoice - buy %s over Lightning
/getnodeinfo - show the node I run on
/help - show this message`,
		c.AssetAmount, c.AssetTicker, c.SatAmount, c.AssetTicker)
}

// NodeInfo describes the backing node for channel peering
func (c *MessageCatalog) NodeInfo() string {
	return fmt.Sprintf(
		"I run on an RGB Lightning Node on the %s network.\nYou can open a channel to me at:\n%s",
		c.Network, c.NodeURI)
}

// SomethingWentWrong is the catch-all failure message
func (c *MessageCatalog) SomethingWentWrong() string {
	return "Something went wrong. Please try again later."
}

// retryPhrase renders a retry timestamp relative to now. Same calendar
// day reads as today, the next one as tomorrow; anything later gets the
// full date.
func retryPhrase(now, retryAt time.Time) string {
	nowY, nowM, nowD := now.Date()
	retryY, retryM, retryD := retryAt.Date()
	clock := retryAt.Format("15:04:05")

	switch {
	case nowY == retryY && nowM == retryM && nowD == retryD:
		return fmt.Sprintf("today at %s", clock)
	case retryAt.Sub(now) < 48*time.Hour && now.AddDate(0, 0, 1).Day() == retryD:
		return fmt.Sprintf("tomorrow at %s", clock)
	default:
		return fmt.Sprintf("on %s at %s", retryAt.Format("2006-01-02"), clock)
	}
}
