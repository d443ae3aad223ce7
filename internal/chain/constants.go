package chain

import "time"

// JSON-RPC methods
const (
	methodCall            = "eth_call"
	methodSendTransaction = "eth_sendTransaction"
	methodGetReceipt      = "eth_getTransactionReceipt"
)

// Contract call selectors (first four bytes of the keccak256 method hash)
const (
	selectorSpinFee        = "0x63b63a2a"
	selectorPendingBalance = "0x4a733bff"
	selectorSpin           = "0x249099ac"
	selectorClaim          = "0x4e71d92d"
)

// USDCDecimals is the fixed-point scale of the reward token.
const USDCDecimals = 6

// Receipt polling
const (
	ReceiptPollInterval = 2 * time.Second
	ReceiptWaitTimeout  = 60 * time.Second
)

// DefaultRequestTimeout bounds a single RPC round trip.
const DefaultRequestTimeout = 15 * time.Second

// Receipt status values
const (
	receiptStatusSuccess = "0x1"
)

// Error message formats
const (
	ErrMsgRPCRequestFailed   = "rpc request failed: %w"
	ErrMsgRPCError           = "rpc error %d: %s"
	ErrMsgDecodeResultFailed = "failed to decode rpc result: %w"
	ErrMsgBadQuantity        = "malformed quantity %q"
	ErrMsgReceiptTimeout     = "timed out waiting for receipt of %s"
	ErrMsgTxReverted         = "transaction %s reverted"
	ErrMsgSpinFeeFailed      = "failed to read spin fee: %w"
	ErrMsgNoContract         = "no contract address configured"
)

// Log messages
const (
	LogMsgPendingBalanceFailed = "Pending balance lookup failed, reporting zero"
	LogMsgClaimSubmitted       = "Claim transaction submitted"
	LogMsgSpinCommitted        = "Spin fee transaction confirmed"
	LogMsgSpinFeeFallback      = "On-chain spin fee unavailable, using configured fee"
)
