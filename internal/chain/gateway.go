package chain

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fortunaspin/fortuna/internal/domain"
	"github.com/fortunaspin/fortuna/internal/logger"
	"github.com/fortunaspin/fortuna/internal/metrics"
)

// Gateway defines the on-chain operations the game exposes.
type Gateway interface {
	// SpinFee returns the fee for one paid spin, preferring the on-chain
	// value and falling back to the configured one.
	SpinFee(ctx context.Context) decimal.Decimal

	// PendingBalance returns the unclaimed winnings for an address. The
	// value is advisory: any failure reports zero instead of an error.
	PendingBalance(ctx context.Context, address string) decimal.Decimal

	// CommitSpin pays the spin fee for an address and waits for the
	// transaction to be mined. A failure here blocks the spin.
	CommitSpin(ctx context.Context, address string) (*domain.SpinReceipt, error)

	// Claim submits a claim transaction for an address. Only ever invoked
	// by an explicit player request.
	Claim(ctx context.Context, address string) (*domain.ClaimReceipt, error)
}

type gateway struct {
	client      Client
	fallbackFee decimal.Decimal
}

// NewGateway creates a gateway over a chain client. fallbackFee is the
// configured spin fee used when the on-chain read fails.
func NewGateway(client Client, fallbackFee decimal.Decimal) Gateway {
	return &gateway{client: client, fallbackFee: fallbackFee}
}

func (g *gateway) SpinFee(ctx context.Context) decimal.Decimal {
	fee, err := g.client.SpinFee(ctx)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgSpinFeeFallback, "error", err)
		return g.fallbackFee
	}
	return fee
}

func (g *gateway) PendingBalance(ctx context.Context, address string) decimal.Decimal {
	if address == "" {
		return decimal.Zero
	}

	balance, err := g.client.PendingBalance(ctx, address)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgPendingBalanceFailed, "error", err, "address", address)
		return decimal.Zero
	}
	return balance
}

func (g *gateway) CommitSpin(ctx context.Context, address string) (*domain.SpinReceipt, error) {
	if address == "" {
		return nil, domain.ErrNoWallet
	}

	fee := g.SpinFee(ctx)
	txHash, err := g.client.SubmitSpin(ctx, address)
	if err != nil {
		metrics.ChainCommits.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: %v", domain.ErrTransactionFailed, err)
	}
	metrics.ChainCommits.WithLabelValues("ok").Inc()

	logger.FromContext(ctx).Info(LogMsgSpinCommitted, "tx_hash", txHash, "address", address)

	return &domain.SpinReceipt{
		TxHash:      txHash,
		Address:     address,
		Fee:         fee,
		SubmittedAt: time.Now().UTC(),
	}, nil
}

func (g *gateway) Claim(ctx context.Context, address string) (*domain.ClaimReceipt, error) {
	if address == "" {
		return nil, domain.ErrNoWallet
	}

	amount := g.PendingBalance(ctx, address)

	txHash, err := g.client.Claim(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrClaimFailed, err)
	}

	logger.FromContext(ctx).Info(LogMsgClaimSubmitted, "tx_hash", txHash, "address", address)

	return &domain.ClaimReceipt{
		TxHash:      txHash,
		Address:     address,
		Amount:      amount,
		SubmittedAt: time.Now().UTC(),
	}, nil
}
