// Package api provides the HTTP API for solpoold.
package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gagliardetto/solana-go"
	"github.com/labstack/echo/v4"

	"github.com/huaguoyu/solpoold/chain"
)

// GetTokenPairInfo looks up both sides of a pair. Token A is validated
// before token B is even looked at, and the pair is fetched in one task so
// a failure on either side fails the whole request.
func (h *Handler) GetTokenPairInfo(c echo.Context) (err error) {
	output := make(map[string]interface{})
	ctx := c.Request().Context()

	tokena := c.Param("token_a")
	tokenb := c.Param("token_b")
	apilog.Infof("Analyzing token pair: %s and %s", tokena, tokenb)

	pubkeya, err := solana.PublicKeyFromBase58(tokena)
	if err != nil {
		output[ERROR_INFO] = fmt.Sprintf("Invalid token A address: %s", err)
		return c.JSON(http.StatusBadRequest, output)
	}
	pubkeyb, err := solana.PublicKeyFromBase58(tokenb)
	if err != nil {
		output[ERROR_INFO] = fmt.Sprintf("Invalid token B address: %s", err)
		return c.JSON(http.StatusBadRequest, output)
	}

	var accounta, accountb *chain.AccountSnapshot
	err = h.Pool.Submit(ctx, func() error {
		var aerr error
		if accounta, aerr = h.Chain.GetAccount(ctx, pubkeya); aerr != nil {
			return aerr
		}
		accountb, aerr = h.Chain.GetAccount(ctx, pubkeyb)
		return aerr
	})

	var derr *chain.DispatchError
	if errors.As(err, &derr) {
		apilog.Errorf("Task error: %s", derr.Cause)
		output[ERROR_INFO] = fmt.Sprintf("Task failed: %s", derr.Cause)
		return c.JSON(http.StatusInternalServerError, output)
	}
	if err != nil {
		apilog.Errorf("RPC error getting token info: %s", err)
		output[ERROR_INFO] = fmt.Sprintf("Failed to get token info: %s", err)
		return c.JSON(http.StatusInternalServerError, output)
	}

	output[TOKEN_A] = map[string]interface{}{
		ADDRESS:   tokena,
		DATA_SIZE: accounta.DataSize,
	}
	output[TOKEN_B] = map[string]interface{}{
		ADDRESS:   tokenb,
		DATA_SIZE: accountb.DataSize,
	}
	return c.JSON(http.StatusOK, output)
}
