package chain

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortunaspin/fortuna/internal/domain"
)

type mockClient struct {
	spinFeeFunc        func(ctx context.Context) (decimal.Decimal, error)
	pendingBalanceFunc func(ctx context.Context, address string) (decimal.Decimal, error)
	submitSpinFunc     func(ctx context.Context, address string) (string, error)
	claimFunc          func(ctx context.Context, address string) (string, error)
}

func (m *mockClient) SpinFee(ctx context.Context) (decimal.Decimal, error) {
	if m.spinFeeFunc != nil {
		return m.spinFeeFunc(ctx)
	}
	return decimal.Zero, nil
}

func (m *mockClient) PendingBalance(ctx context.Context, address string) (decimal.Decimal, error) {
	if m.pendingBalanceFunc != nil {
		return m.pendingBalanceFunc(ctx, address)
	}
	return decimal.Zero, nil
}

func (m *mockClient) SubmitSpin(ctx context.Context, address string) (string, error) {
	if m.submitSpinFunc != nil {
		return m.submitSpinFunc(ctx, address)
	}
	return "0x1", nil
}

func (m *mockClient) Claim(ctx context.Context, address string) (string, error) {
	if m.claimFunc != nil {
		return m.claimFunc(ctx, address)
	}
	return "0x2", nil
}

func TestPendingBalanceZeroOnFailure(t *testing.T) {
	client := &mockClient{
		pendingBalanceFunc: func(_ context.Context, _ string) (decimal.Decimal, error) {
			return decimal.Zero, errors.New("node unreachable")
		},
	}
	g := NewGateway(client, decimal.Zero)

	balance := g.PendingBalance(context.Background(), "0xabc")

	assert.True(t, balance.IsZero())
}

func TestPendingBalanceZeroWithoutAddress(t *testing.T) {
	client := &mockClient{
		pendingBalanceFunc: func(_ context.Context, _ string) (decimal.Decimal, error) {
			t.Fatal("client must not be called without an address")
			return decimal.Zero, nil
		},
	}
	g := NewGateway(client, decimal.Zero)

	assert.True(t, g.PendingBalance(context.Background(), "").IsZero())
}

func TestPendingBalancePassesThrough(t *testing.T) {
	client := &mockClient{
		pendingBalanceFunc: func(_ context.Context, _ string) (decimal.Decimal, error) {
			return decimal.RequireFromString("0.03"), nil
		},
	}
	g := NewGateway(client, decimal.Zero)

	balance := g.PendingBalance(context.Background(), "0xabc")

	assert.True(t, balance.Equal(decimal.RequireFromString("0.03")))
}

func TestSpinFeeFallsBackToConfigured(t *testing.T) {
	client := &mockClient{
		spinFeeFunc: func(_ context.Context) (decimal.Decimal, error) {
			return decimal.Zero, errors.New("node unreachable")
		},
	}
	g := NewGateway(client, decimal.RequireFromString("0.005"))

	fee := g.SpinFee(context.Background())

	assert.True(t, fee.Equal(decimal.RequireFromString("0.005")))
}

func TestCommitSpinReturnsReceipt(t *testing.T) {
	client := &mockClient{
		spinFeeFunc: func(_ context.Context) (decimal.Decimal, error) {
			return decimal.RequireFromString("0.005"), nil
		},
		submitSpinFunc: func(_ context.Context, address string) (string, error) {
			return "0xcommitted", nil
		},
	}
	g := NewGateway(client, decimal.Zero)

	r, err := g.CommitSpin(context.Background(), "0xabc")

	require.NoError(t, err)
	assert.Equal(t, "0xcommitted", r.TxHash)
	assert.Equal(t, "0xabc", r.Address)
	assert.True(t, r.Fee.Equal(decimal.RequireFromString("0.005")))
	assert.False(t, r.SubmittedAt.IsZero())
}

func TestCommitSpinFailureIsTransactionFailed(t *testing.T) {
	client := &mockClient{
		submitSpinFunc: func(_ context.Context, _ string) (string, error) {
			return "", errors.New("rejected")
		},
	}
	g := NewGateway(client, decimal.Zero)

	_, err := g.CommitSpin(context.Background(), "0xabc")

	assert.ErrorIs(t, err, domain.ErrTransactionFailed)
}

func TestCommitSpinRequiresWallet(t *testing.T) {
	g := NewGateway(&mockClient{}, decimal.Zero)

	_, err := g.CommitSpin(context.Background(), "")

	assert.ErrorIs(t, err, domain.ErrNoWallet)
}

func TestClaimReturnsReceiptWithBalance(t *testing.T) {
	client := &mockClient{
		pendingBalanceFunc: func(_ context.Context, _ string) (decimal.Decimal, error) {
			return decimal.RequireFromString("0.08"), nil
		},
		claimFunc: func(_ context.Context, _ string) (string, error) {
			return "0xclaimed", nil
		},
	}
	g := NewGateway(client, decimal.Zero)

	r, err := g.Claim(context.Background(), "0xabc")

	require.NoError(t, err)
	assert.Equal(t, "0xclaimed", r.TxHash)
	assert.True(t, r.Amount.Equal(decimal.RequireFromString("0.08")))
}

func TestClaimFailureIsClaimFailed(t *testing.T) {
	client := &mockClient{
		claimFunc: func(_ context.Context, _ string) (string, error) {
			return "", errors.New("reverted")
		},
	}
	g := NewGateway(client, decimal.Zero)

	_, err := g.Claim(context.Background(), "0xabc")

	assert.ErrorIs(t, err, domain.ErrClaimFailed)
	assert.Contains(t, err.Error(), "reverted")
}

func TestClaimRequiresWallet(t *testing.T) {
	g := NewGateway(&mockClient{}, decimal.Zero)

	_, err := g.Claim(context.Background(), "")

	assert.ErrorIs(t, err, domain.ErrNoWallet)
}
