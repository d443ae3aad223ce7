package chain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
)

// Client talks to the wheel contract over JSON-RPC.
type Client interface {
	// SpinFee returns the current fee for one paid spin, in USDC.
	SpinFee(ctx context.Context) (decimal.Decimal, error)

	// PendingBalance returns the unclaimed winnings held by the contract
	// for the given address, in USDC.
	PendingBalance(ctx context.Context, address string) (decimal.Decimal, error)

	// SubmitSpin sends the spin fee transaction from the given address and
	// waits for it to be mined. The returned hash identifies the mined
	// transaction.
	SubmitSpin(ctx context.Context, address string) (string, error)

	// Claim sends the claim transaction for the given address and waits
	// for it to be mined.
	Claim(ctx context.Context, address string) (string, error)
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
	ID      uint64 `json:"id"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

type txParams struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Data  string `json:"data"`
	Value string `json:"value,omitempty"`
}

type receipt struct {
	TransactionHash string `json:"transactionHash"`
	Status          string `json:"status"`
	BlockNumber     string `json:"blockNumber"`
}

// rpcClient is the HTTP JSON-RPC implementation of Client.
type rpcClient struct {
	endpoint string
	contract string
	http     *http.Client
	nextID   atomic.Uint64

	pollInterval time.Duration
	waitTimeout  time.Duration
}

// NewClient creates a JSON-RPC client bound to one node endpoint and one
// contract address.
func NewClient(endpoint, contract string) Client {
	return &rpcClient{
		endpoint:     endpoint,
		contract:     contract,
		http:         &http.Client{Timeout: DefaultRequestTimeout},
		pollInterval: ReceiptPollInterval,
		waitTimeout:  ReceiptWaitTimeout,
	}
}

func (c *rpcClient) call(ctx context.Context, method string, params []any, result any) error {
	req := rpcRequest{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
		ID:      c.nextID.Add(1),
	}

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf(ErrMsgRPCRequestFailed, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf(ErrMsgRPCRequestFailed, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return fmt.Errorf(ErrMsgRPCRequestFailed, err)
	}
	defer resp.Body.Close()

	var rpcResp rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		return fmt.Errorf(ErrMsgDecodeResultFailed, err)
	}
	if rpcResp.Error != nil {
		return fmt.Errorf(ErrMsgRPCError, rpcResp.Error.Code, rpcResp.Error.Message)
	}

	if result != nil {
		if err := json.Unmarshal(rpcResp.Result, result); err != nil {
			return fmt.Errorf(ErrMsgDecodeResultFailed, err)
		}
	}
	return nil
}

func (c *rpcClient) readUint256(ctx context.Context, data string) (decimal.Decimal, error) {
	if c.contract == "" {
		return decimal.Zero, fmt.Errorf(ErrMsgNoContract)
	}

	var hex string
	params := []any{txParams{To: c.contract, Data: data}, "latest"}
	if err := c.call(ctx, methodCall, params, &hex); err != nil {
		return decimal.Zero, err
	}
	return parseQuantity(hex)
}

func (c *rpcClient) SpinFee(ctx context.Context) (decimal.Decimal, error) {
	return c.readUint256(ctx, selectorSpinFee)
}

func (c *rpcClient) PendingBalance(ctx context.Context, address string) (decimal.Decimal, error) {
	return c.readUint256(ctx, selectorPendingBalance+padAddress(address))
}

func (c *rpcClient) SubmitSpin(ctx context.Context, address string) (string, error) {
	return c.sendAndWait(ctx, address, selectorSpin)
}

func (c *rpcClient) Claim(ctx context.Context, address string) (string, error) {
	return c.sendAndWait(ctx, address, selectorClaim)
}

func (c *rpcClient) sendAndWait(ctx context.Context, from, data string) (string, error) {
	if c.contract == "" {
		return "", fmt.Errorf(ErrMsgNoContract)
	}

	var txHash string
	params := []any{txParams{From: from, To: c.contract, Data: data}}
	if err := c.call(ctx, methodSendTransaction, params, &txHash); err != nil {
		return "", err
	}
	if err := c.waitForReceipt(ctx, txHash); err != nil {
		return txHash, err
	}
	return txHash, nil
}

// waitForReceipt polls until the transaction is mined or the wait cap is hit.
func (c *rpcClient) waitForReceipt(ctx context.Context, txHash string) error {
	deadline := time.Now().Add(c.waitTimeout)
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		var r *receipt
		if err := c.call(ctx, methodGetReceipt, []any{txHash}, &r); err != nil {
			return err
		}
		if r != nil && r.BlockNumber != "" {
			if r.Status != receiptStatusSuccess {
				return fmt.Errorf(ErrMsgTxReverted, txHash)
			}
			return nil
		}

		if time.Now().After(deadline) {
			return fmt.Errorf(ErrMsgReceiptTimeout, txHash)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// parseQuantity converts a 0x-prefixed hex quantity into USDC units.
func parseQuantity(hex string) (decimal.Decimal, error) {
	trimmed := strings.TrimPrefix(hex, "0x")
	if trimmed == "" {
		return decimal.Zero, fmt.Errorf(ErrMsgBadQuantity, hex)
	}

	v, ok := new(big.Int).SetString(trimmed, 16)
	if !ok {
		return decimal.Zero, fmt.Errorf(ErrMsgBadQuantity, hex)
	}
	return decimal.NewFromBigInt(v, -USDCDecimals), nil
}

// padAddress left-pads a hex address to the 32-byte call argument width.
func padAddress(address string) string {
	trimmed := strings.ToLower(strings.TrimPrefix(address, "0x"))
	return strings.Repeat("0", 64-len(trimmed)) + trimmed
}
