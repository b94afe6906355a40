// Package chain provides access to the upstream Solana node.
package chain

import (
	"context"
	"net/http"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
	logging "github.com/ipfs/go-log/v2"
)

var logger = logging.Logger("chain")

// AccountSnapshot is the per-request view of an on-chain account. It is
// built from the RPC response and discarded once the HTTP response is sent.
type AccountSnapshot struct {
	Lamports uint64
	DataSize int
}

// Client exposes the two node operations the gateway relays. Handlers hold
// this interface so tests can substitute a recording stub.
type Client interface {
	GetSlot(ctx context.Context) (uint64, error)
	GetAccount(ctx context.Context, key solana.PublicKey) (*AccountSnapshot, error)
}

type RPCClient struct {
	client *rpc.Client
}

// NewRPCClient builds the shared RPC client. Upstream calls are bounded by
// timeout; the node itself configures none.
func NewRPCClient(endpoint string, timeout time.Duration) *RPCClient {
	httpClient := &http.Client{Timeout: timeout}
	jrpcClient := jsonrpc.NewClientWithOpts(endpoint, &jsonrpc.RPCClientOpts{
		HTTPClient: httpClient,
	})
	return &RPCClient{client: rpc.NewWithCustomRPCClient(jrpcClient)}
}

func (r *RPCClient) GetSlot(ctx context.Context) (uint64, error) {
	return r.client.GetSlot(ctx, rpc.CommitmentConfirmed)
}

// GetAccount fetches an account at confirmed commitment. A missing account
// surfaces as rpc.ErrNotFound; callers treat it like any other upstream
// failure.
func (r *RPCClient) GetAccount(ctx context.Context, key solana.PublicKey) (*AccountSnapshot, error) {
	res, err := r.client.GetAccountInfoWithOpts(ctx, key, &rpc.GetAccountInfoOpts{
		Encoding:   solana.EncodingBase64,
		Commitment: rpc.CommitmentConfirmed,
	})
	if err != nil {
		return nil, err
	}
	if res.Value == nil {
		return nil, rpc.ErrNotFound
	}
	datasize := 0
	if res.Value.Data != nil {
		datasize = len(res.Value.Data.GetBinary())
	}
	logger.Debugf("account %s: %d lamports, %d bytes", key, res.Value.Lamports, datasize)
	return &AccountSnapshot{
		Lamports: res.Value.Lamports,
		DataSize: datasize,
	}, nil
}
