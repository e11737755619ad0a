// Package node implements the HTTP client for the RGB Lightning Node API.
package node

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	domainerrors "rln-faucet.backend/internal/domain/errors"
)

// Params holds the send parameters applied to every faucet transfer
type Params struct {
	AssetID              string
	AssetAmount          uint64
	SatAmount            uint64
	InvoiceExpirationSec uint32
	InvoicePriceMsat     uint64
	UtxosToCreate        uint8
	FeeRate              uint64
}

// Client talks to a single RGB Lightning Node over its JSON HTTP API
type Client struct {
	baseURL    string
	httpClient *http.Client
	params     Params
}

// NewClient creates a node client with the given request timeout
func NewClient(baseURL string, timeout time.Duration, params Params) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		params:     params,
	}
}

// Balance is a settled/future/spendable amount triple
type Balance struct {
	Settled   uint64 `json:"settled"`
	Future    uint64 `json:"future"`
	Spendable uint64 `json:"spendable"`
}

// AssetBalanceResponse is the /assetbalance response body
type AssetBalanceResponse struct {
	Settled   uint64 `json:"settled"`
	Future    uint64 `json:"future"`
	Spendable uint64 `json:"spendable"`
}

// BtcBalanceResponse is the /btcbalance response body
type BtcBalanceResponse struct {
	Vanilla Balance `json:"vanilla"`
	Colored Balance `json:"colored"`
}

// InvoiceResponse is the /lninvoice response body
type InvoiceResponse struct {
	Invoice string `json:"invoice"`
}

// InvoiceStatus is the payment state reported by /invoicestatus
type InvoiceStatus string

const (
	InvoiceStatusPending   InvoiceStatus = "Pending"
	InvoiceStatusSucceeded InvoiceStatus = "Succeeded"
	InvoiceStatusFailed    InvoiceStatus = "Failed"
	InvoiceStatusExpired   InvoiceStatus = "Expired"
)

// NodeInfoResponse is the /nodeinfo response body
type NodeInfoResponse struct {
	Pubkey string `json:"pubkey"`
}

// NetworkInfoResponse is the /networkinfo response body
type NetworkInfoResponse struct {
	Network string `json:"network"`
}

// Asset describes one NIA asset known to the node
type Asset struct {
	AssetID string `json:"asset_id"`
	Ticker  string `json:"ticker"`
}

type listAssetsResponse struct {
	Nia []Asset `json:"nia"`
}

type sendResponse struct {
	Txid string `json:"txid"`
}

type invoiceStatusResponse struct {
	Status string `json:"status"`
}

type errorProbe struct {
	Error string `json:"error"`
}

// classifyErr maps node error strings to sentinel errors
func classifyErr(message string) error {
	switch {
	case strings.Contains(message, "Allocations already available"):
		return domainerrors.ErrAllocationsAlreadyAvailable
	case strings.Contains(message, "Invalid transport endpoints"):
		return domainerrors.ErrInvalidTransportEndpoints
	case strings.Contains(message, "Recipient ID already used"):
		return domainerrors.ErrRecipientAlreadyUsed
	default:
		return domainerrors.NewNodeError(message)
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s request: %w", path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domainerrors.ErrNodeUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read %s response: %v", domainerrors.ErrNodeUnavailable, path, err)
	}

	if resp.StatusCode != http.StatusOK {
		var probe errorProbe
		if err := json.Unmarshal(raw, &probe); err == nil && probe.Error != "" {
			return classifyErr(probe.Error)
		}
		return domainerrors.NewNodeError(fmt.Sprintf("%s returned status %d", path, resp.StatusCode))
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode %s response: %w", path, err)
		}
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// AssetBalance returns the faucet asset balance
func (c *Client) AssetBalance(ctx context.Context) (*AssetBalanceResponse, error) {
	var out AssetBalanceResponse
	err := c.post(ctx, "/assetbalance", map[string]interface{}{
		"asset_id": c.params.AssetID,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// BtcBalance returns the on-chain BTC balances
func (c *Client) BtcBalance(ctx context.Context) (*BtcBalanceResponse, error) {
	var out BtcBalanceResponse
	err := c.post(ctx, "/btcbalance", map[string]interface{}{
		"skip_sync": false,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateUtxos asks the node to split fresh colorable UTXOs
func (c *Client) CreateUtxos(ctx context.Context) error {
	return c.post(ctx, "/createutxos", map[string]interface{}{
		"up_to":     false,
		"num":       c.params.UtxosToCreate,
		"size":      32500,
		"fee_rate":  c.params.FeeRate,
		"skip_sync": false,
	}, nil)
}

// Invoice creates a new LN invoice priced for one asset purchase
func (c *Client) Invoice(ctx context.Context) (string, error) {
	var out InvoiceResponse
	err := c.post(ctx, "/lninvoice", map[string]interface{}{
		"amt_msat":                    c.params.InvoicePriceMsat,
		"expiry_sec":                  c.params.InvoiceExpirationSec,
		"asset_id":                    c.params.AssetID,
		"asset_amount":                c.params.AssetAmount,
		"min_final_cltv_expiry_delta": 32,
	}, &out)
	if err != nil {
		return "", err
	}
	return out.Invoice, nil
}

// InvoiceStatus fetches the payment state of a previously issued invoice
func (c *Client) InvoiceStatus(ctx context.Context, invoice string) (InvoiceStatus, error) {
	var out invoiceStatusResponse
	err := c.post(ctx, "/invoicestatus", map[string]interface{}{
		"invoice": invoice,
	}, &out)
	if err != nil {
		return "", err
	}
	return InvoiceStatus(out.Status), nil
}

// NodeInfo returns the node identity
func (c *Client) NodeInfo(ctx context.Context) (*NodeInfoResponse, error) {
	var out NodeInfoResponse
	if err := c.get(ctx, "/nodeinfo", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// NetworkInfo returns the bitcoin network the node runs on
func (c *Client) NetworkInfo(ctx context.Context) (*NetworkInfoResponse, error) {
	var out NetworkInfoResponse
	if err := c.get(ctx, "/networkinfo", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListAssets returns the NIA assets known to the node
func (c *Client) ListAssets(ctx context.Context) ([]Asset, error) {
	var out listAssetsResponse
	err := c.post(ctx, "/listassets", map[string]interface{}{
		"filter_asset_schemas": []string{"Nia"},
	}, &out)
	if err != nil {
		return nil, err
	}
	return out.Nia, nil
}

// RefreshTransfers asks the node to make progress on in-flight transfers
func (c *Client) RefreshTransfers(ctx context.Context) error {
	return c.post(ctx, "/refreshtransfers", map[string]interface{}{
		"skip_sync": false,
	}, nil)
}

// SendAsset sends the configured asset amount to an RGB recipient
func (c *Client) SendAsset(ctx context.Context, recipientID string, transportEndpoints []string) (string, error) {
	var out sendResponse
	err := c.post(ctx, "/sendasset", map[string]interface{}{
		"asset_id": c.params.AssetID,
		"assignment": map[string]interface{}{
			"type":  "Fungible",
			"value": c.params.AssetAmount,
		},
		"recipient_id":        recipientID,
		"donation":            true,
		"fee_rate":            c.params.FeeRate,
		"min_confirmations":   0,
		"transport_endpoints": transportEndpoints,
		"skip_sync":           false,
	}, &out)
	if err != nil {
		return "", err
	}
	return out.Txid, nil
}

// SendBtc sends the configured sat amount to an on-chain address
func (c *Client) SendBtc(ctx context.Context, address string) (string, error) {
	var out sendResponse
	err := c.post(ctx, "/sendbtc", map[string]interface{}{
		"amount":    c.params.SatAmount,
		"address":   address,
		"fee_rate":  c.params.FeeRate,
		"skip_sync": false,
	}, &out)
	if err != nil {
		return "", err
	}
	return out.Txid, nil
}
