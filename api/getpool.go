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

func (h *Handler) GetPoolInfo(c echo.Context) (err error) {
	output := make(map[string]interface{})
	ctx := c.Request().Context()

	poolid := c.Param("pool_id")
	pubkey, err := solana.PublicKeyFromBase58(poolid)
	if err != nil {
		output[ERROR_INFO] = fmt.Sprintf("Invalid pool ID: %s", err)
		return c.JSON(http.StatusBadRequest, output)
	}

	var account *chain.AccountSnapshot
	err = h.Pool.Submit(ctx, func() error {
		var aerr error
		account, aerr = h.Chain.GetAccount(ctx, pubkey)
		return aerr
	})

	var derr *chain.DispatchError
	if errors.As(err, &derr) {
		apilog.Errorf("Task error: %s", derr.Cause)
		output[ERROR_INFO] = fmt.Sprintf("Task failed: %s", derr.Cause)
		return c.JSON(http.StatusInternalServerError, output)
	}
	if err != nil {
		apilog.Errorf("RPC error getting account: %s", err)
		output[ERROR_INFO] = fmt.Sprintf("Failed to get account: %s", err)
		return c.JSON(http.StatusInternalServerError, output)
	}

	output[POOL_ID] = poolid
	output[LAMPORTS] = account.Lamports
	output[DATA_SIZE] = account.DataSize
	return c.JSON(http.StatusOK, output)
}
