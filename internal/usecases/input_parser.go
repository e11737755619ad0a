package usecases

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/btcsuite/btcutil/base58"
	"github.com/btcsuite/btcutil/bech32"

	domainerrors "rln-faucet.backend/internal/domain/errors"
)

const minRecipientIDLen = 20

// RGBInvoice is a parsed RGB invoice string
type RGBInvoice struct {
	RecipientID        string
	TransportEndpoints []string
}

// ParseRGBInvoice parses an RGB invoice of the form
// utxob:<blinded-utxo> or witness:<address>, optionally followed by a
// query string carrying transport endpoints.
func ParseRGBInvoice(input string) (*RGBInvoice, error) {
	input = strings.TrimSpace(input)
	if input == "" || strings.ContainsAny(input, " \t\n") {
		return nil, domainerrors.ErrInvalidInvoice
	}

	base := input
	var rawQuery string
	if idx := strings.IndexByte(input, '?'); idx >= 0 {
		base = input[:idx]
		rawQuery = input[idx+1:]
	}

	if !strings.HasPrefix(base, "utxob:") && !strings.HasPrefix(base, "witness:") {
		return nil, domainerrors.ErrInvalidInvoice
	}
	if colon := strings.IndexByte(base, ':'); len(base)-colon-1 < minRecipientIDLen {
		return nil, domainerrors.ErrInvalidInvoice
	}

	invoice := &RGBInvoice{RecipientID: base}
	if rawQuery != "" {
		values, err := url.ParseQuery(rawQuery)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domainerrors.ErrInvalidInvoice, err)
		}
		if raw := values.Get("endpoints"); raw != "" {
			for _, e := range strings.Split(raw, ",") {
				if trimmed := strings.TrimSpace(e); trimmed != "" {
					invoice.TransportEndpoints = append(invoice.TransportEndpoints, trimmed)
				}
			}
		}
	}
	return invoice, nil
}

// ValidateBtcAddress accepts bech32 (segwit) and base58check addresses
func ValidateBtcAddress(input string) (string, error) {
	addr := strings.TrimSpace(input)
	if addr == "" || strings.ContainsAny(addr, " \t\n") {
		return "", domainerrors.ErrInvalidAddress
	}

	if _, _, err := bech32.Decode(addr); err == nil {
		return addr, nil
	}
	if _, _, err := base58.CheckDecode(addr); err == nil {
		return addr, nil
	}
	return "", domainerrors.ErrInvalidAddress
}
