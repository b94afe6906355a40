// Package api provides the HTTP API for solpoold.
package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/huaguoyu/solpoold/chain"
)

func (h *Handler) GetSolanaStatus(c echo.Context) (err error) {
	output := make(map[string]interface{})
	ctx := c.Request().Context()

	var slot uint64
	err = h.Pool.Submit(ctx, func() error {
		var serr error
		slot, serr = h.Chain.GetSlot(ctx)
		return serr
	})

	var derr *chain.DispatchError
	if errors.As(err, &derr) {
		apilog.Errorf("Task error: %s", derr.Cause)
		output[ERROR_INFO] = fmt.Sprintf("Task failed: %s", derr.Cause)
		return c.JSON(http.StatusInternalServerError, output)
	}
	if err != nil {
		apilog.Errorf("Error with RPC: %s", err)
		output[ERROR_INFO] = fmt.Sprintf("Failed to get slot: %s", err)
		return c.JSON(http.StatusInternalServerError, output)
	}

	output[STATUS] = STATUS_CONNECTED
	output[CURRENT_SLOT] = slot
	return c.JSON(http.StatusOK, output)
}
