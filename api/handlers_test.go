package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huaguoyu/solpoold/chain"
	"github.com/huaguoyu/solpoold/explorer"
)

// Wrapped SOL mint and the system program, both syntactically valid keys.
const (
	validKeyA = "So11111111111111111111111111111111111111112"
	validKeyB = "11111111111111111111111111111111"
)

type stubChain struct {
	slot     uint64
	slotErr  error
	accounts map[string]*chain.AccountSnapshot
	errs     map[string]error
	calls    int
}

func (s *stubChain) GetSlot(ctx context.Context) (uint64, error) {
	s.calls++
	return s.slot, s.slotErr
}

func (s *stubChain) GetAccount(ctx context.Context, key solana.PublicKey) (*chain.AccountSnapshot, error) {
	s.calls++
	if err, ok := s.errs[key.String()]; ok {
		return nil, err
	}
	if acc, ok := s.accounts[key.String()]; ok {
		return acc, nil
	}
	return nil, errors.New("AccountNotFound")
}

type stubExplorer struct {
	data     json.RawMessage
	err      error
	calls    int
	gotToken string
	gotLimit int
}

func (s *stubExplorer) TokenTransfers(ctx context.Context, token string, limit int) (json.RawMessage, error) {
	s.calls++
	s.gotToken = token
	s.gotLimit = limit
	return s.data, s.err
}

func newTestHandler(t *testing.T, sc chain.Client, se explorer.Client) *Handler {
	t.Helper()
	pool := chain.NewTaskPool(2, 4)
	t.Cleanup(pool.Close)
	return &Handler{
		Ctx:          context.Background(),
		Chain:        sc,
		Pool:         pool,
		Explorer:     se,
		HistoryLimit: 50,
	}
}

func doGet(t *testing.T, fn echo.HandlerFunc, path string, names, values []string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath(path)
	c.SetParamNames(names...)
	c.SetParamValues(values...)
	require.NoError(t, fn(c))
	return rec
}

func TestGetSolanaStatus(t *testing.T) {
	sc := &stubChain{slot: 12345}
	h := newTestHandler(t, sc, &stubExplorer{})

	rec := doGet(t, h.GetSolanaStatus, "/solana/status", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"connected","current_slot":12345}`, rec.Body.String())
}

func TestGetSolanaStatusUpstreamError(t *testing.T) {
	sc := &stubChain{slotErr: errors.New("node unreachable")}
	h := newTestHandler(t, sc, &stubExplorer{})

	rec := doGet(t, h.GetSolanaStatus, "/solana/status", nil, nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Failed to get slot: node unreachable"}`, rec.Body.String())
}

func TestGetSolanaStatusIdempotent(t *testing.T) {
	sc := &stubChain{slot: 777}
	h := newTestHandler(t, sc, &stubExplorer{})

	first := doGet(t, h.GetSolanaStatus, "/solana/status", nil, nil)
	second := doGet(t, h.GetSolanaStatus, "/solana/status", nil, nil)
	assert.Equal(t, first.Body.Bytes(), second.Body.Bytes())
	assert.Equal(t, first.Code, second.Code)
}

func TestGetSolanaStatusTaskFailed(t *testing.T) {
	sc := &stubChain{slot: 1}
	h := newTestHandler(t, sc, &stubExplorer{})
	h.Pool.Close()

	rec := doGet(t, h.GetSolanaStatus, "/solana/status", nil, nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Task failed: ")
	assert.Equal(t, 0, sc.calls)
}

func TestGetPoolInfo(t *testing.T) {
	sc := &stubChain{accounts: map[string]*chain.AccountSnapshot{
		validKeyA: {Lamports: 2039280, DataSize: 165},
	}}
	h := newTestHandler(t, sc, &stubExplorer{})

	rec := doGet(t, h.GetPoolInfo, "/pool/:pool_id", []string{"pool_id"}, []string{validKeyA})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"pool_id":"`+validKeyA+`","lamports":2039280,"data_size":165}`, rec.Body.String())
}

func TestGetPoolInfoInvalidAddress(t *testing.T) {
	sc := &stubChain{}
	h := newTestHandler(t, sc, &stubExplorer{})

	rec := doGet(t, h.GetPoolInfo, "/pool/:pool_id", []string{"pool_id"}, []string{"not-a-pubkey"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid pool ID: ")
	// Validation rejects before anything is sent upstream.
	assert.Equal(t, 0, sc.calls)
}

func TestGetPoolInfoMissingAccount(t *testing.T) {
	sc := &stubChain{}
	h := newTestHandler(t, sc, &stubExplorer{})

	rec := doGet(t, h.GetPoolInfo, "/pool/:pool_id", []string{"pool_id"}, []string{validKeyA})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Failed to get account: ")
	assert.Equal(t, 1, sc.calls)
}

func TestGetTokenPairInfo(t *testing.T) {
	sc := &stubChain{accounts: map[string]*chain.AccountSnapshot{
		validKeyA: {Lamports: 10, DataSize: 82},
		validKeyB: {Lamports: 20, DataSize: 165},
	}}
	h := newTestHandler(t, sc, &stubExplorer{})

	rec := doGet(t, h.GetTokenPairInfo, "/token-pair/:token_a/:token_b",
		[]string{"token_a", "token_b"}, []string{validKeyA, validKeyB})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"token_a": {"address":"`+validKeyA+`","data_size":82},
		"token_b": {"address":"`+validKeyB+`","data_size":165}
	}`, rec.Body.String())
	assert.Equal(t, 2, sc.calls)
}

func TestGetTokenPairInfoInvalidTokenA(t *testing.T) {
	sc := &stubChain{}
	h := newTestHandler(t, sc, &stubExplorer{})

	rec := doGet(t, h.GetTokenPairInfo, "/token-pair/:token_a/:token_b",
		[]string{"token_a", "token_b"}, []string{"garbage", validKeyB})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid token A address: ")
	assert.Equal(t, 0, sc.calls)
}

func TestGetTokenPairInfoInvalidTokenB(t *testing.T) {
	sc := &stubChain{}
	h := newTestHandler(t, sc, &stubExplorer{})

	rec := doGet(t, h.GetTokenPairInfo, "/token-pair/:token_a/:token_b",
		[]string{"token_a", "token_b"}, []string{validKeyA, "garbage"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid token B address: ")
	assert.Equal(t, 0, sc.calls)
}

func TestGetTokenPairInfoNoPartialResult(t *testing.T) {
	sc := &stubChain{
		accounts: map[string]*chain.AccountSnapshot{
			validKeyA: {Lamports: 10, DataSize: 82},
		},
		errs: map[string]error{
			validKeyB: errors.New("connection reset"),
		},
	}
	h := newTestHandler(t, sc, &stubExplorer{})

	rec := doGet(t, h.GetTokenPairInfo, "/token-pair/:token_a/:token_b",
		[]string{"token_a", "token_b"}, []string{validKeyA, validKeyB})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Failed to get token info: connection reset"}`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "data_size")
}

func TestGetTokenTransactionsPassThrough(t *testing.T) {
	upstream := json.RawMessage(`[{"txHash":"5Kd3","amount":1500},{"txHash":"9Qa7","amount":30}]`)
	se := &stubExplorer{data: upstream}
	h := newTestHandler(t, &stubChain{}, se)

	rec := doGet(t, h.GetTokenTransactions, "/transactions/:token",
		[]string{"token"}, []string{"EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, string(upstream), rec.Body.String())
	assert.Equal(t, "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v", se.gotToken)
	assert.Equal(t, 50, se.gotLimit)
}

func TestGetTokenTransactionsFetchError(t *testing.T) {
	se := &stubExplorer{err: &explorer.FetchError{Cause: errors.New("dial tcp: timeout")}}
	h := newTestHandler(t, &stubChain{}, se)

	rec := doGet(t, h.GetTokenTransactions, "/transactions/:token",
		[]string{"token"}, []string{"sometoken"})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Failed to fetch transactions: ")
}

func TestGetTokenTransactionsParseError(t *testing.T) {
	se := &stubExplorer{err: &explorer.ParseError{Cause: errors.New("invalid character '<'")}}
	h := newTestHandler(t, &stubChain{}, se)

	rec := doGet(t, h.GetTokenTransactions, "/transactions/:token",
		[]string{"token"}, []string{"sometoken"})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Failed to parse response: ")
}

func TestGetTokenTransactionsOpaqueTokenNotBase58Checked(t *testing.T) {
	// The explorer token is opaque; a string that would fail pubkey
	// parsing still goes upstream verbatim.
	upstream := json.RawMessage(`[]`)
	se := &stubExplorer{data: upstream}
	h := newTestHandler(t, &stubChain{}, se)

	rec := doGet(t, h.GetTokenTransactions, "/transactions/:token",
		[]string{"token"}, []string{"not-a-pubkey"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, se.calls)
	assert.Equal(t, "not-a-pubkey", se.gotToken)
}
