package usecases

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	domainerrors "rln-faucet.backend/internal/domain/errors"
)

func TestParseRGBInvoiceBlinded(t *testing.T) {
	invoice, err := ParseRGBInvoice("utxob:2FZsSgk8Nq6pXyhM4vLdR7tW9eKbC1jA3oUuGmTf5BxVnYw")
	require.NoError(t, err)
	require.Equal(t, "utxob:2FZsSgk8Nq6pXyhM4vLdR7tW9eKbC1jA3oUuGmTf5BxVnYw", invoice.RecipientID)
	require.Empty(t, invoice.TransportEndpoints)
}

func TestParseRGBInvoiceWitness(t *testing.T) {
	invoice, err := ParseRGBInvoice("witness:bcrt1qw508d6qejxtdg4y5r3zarvary0c5xw7k3k4sj5")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(invoice.RecipientID, "witness:"))
}

func TestParseRGBInvoiceWithEndpoints(t *testing.T) {
	invoice, err := ParseRGBInvoice(
		"utxob:2FZsSgk8Nq6pXyhM4vLdR7tW9eKbC1jA3oUuGmTf5BxVnYw?endpoints=rpc://proxy.example:3000/json-rpc,rpc://other.example/json-rpc")
	require.NoError(t, err)
	require.Equal(t, "utxob:2FZsSgk8Nq6pXyhM4vLdR7tW9eKbC1jA3oUuGmTf5BxVnYw", invoice.RecipientID)
	require.Equal(t, []string{
		"rpc://proxy.example:3000/json-rpc",
		"rpc://other.example/json-rpc",
	}, invoice.TransportEndpoints)
}

func TestParseRGBInvoiceRejects(t *testing.T) {
	cases := []string{
		"",
		"hello there",
		"utxob:short",
		"lnbcrt1pabcdef",
		"utxob:2FZsSgk8Nq6pXyhM 4vLdR7tW9eKbC1jA3oUu",
	}
	for _, input := range cases {
		_, err := ParseRGBInvoice(input)
		require.ErrorIs(t, err, domainerrors.ErrInvalidInvoice, "input %q", input)
	}
}

func TestValidateBtcAddressBech32(t *testing.T) {
	addr, err := ValidateBtcAddress("bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t4")
	require.NoError(t, err)
	require.Equal(t, "bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t4", addr)
}

func TestValidateBtcAddressBase58(t *testing.T) {
	addr, err := ValidateBtcAddress("1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa")
	require.NoError(t, err)
	require.Equal(t, "1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa", addr)
}

func TestValidateBtcAddressRejects(t *testing.T) {
	cases := []string{
		"",
		"not an address",
		"bc1qinvalidchecksum00000000000000000000000",
		"utxob:2FZsSgk8Nq6pXyhM4vLdR7tW9eKbC1jA3oUuGmTf5BxVnYw",
	}
	for _, input := range cases {
		_, err := ValidateBtcAddress(input)
		require.ErrorIs(t, err, domainerrors.ErrInvalidAddress, "input %q", input)
	}
}
