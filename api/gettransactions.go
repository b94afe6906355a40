// Package api provides the HTTP API for solpoold.
package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/huaguoyu/solpoold/explorer"
)

// The token identifier is opaque to the explorer; only presence is checked,
// no base58 parse.
type TokenTransfersParam struct {
	Token string `from:"token" json:"token" validate:"required"`
}

func (h *Handler) GetTokenTransactions(c echo.Context) (err error) {
	output := make(map[string]interface{})
	ctx := c.Request().Context()

	params := &TokenTransfersParam{Token: c.Param("token")}
	validate := validator.New()
	if err = validate.Struct(params); err != nil {
		output[ERROR_INFO] = err.Error()
		return c.JSON(http.StatusBadRequest, output)
	}

	apilog.Infof("Fetching explorer transactions for token: %s", params.Token)
	data, err := h.Explorer.TokenTransfers(ctx, params.Token, h.HistoryLimit)
	if err != nil {
		var perr *explorer.ParseError
		if errors.As(err, &perr) {
			apilog.Errorf("Error parsing response: %s", err)
			output[ERROR_INFO] = fmt.Sprintf("Failed to parse response: %s", err)
			return c.JSON(http.StatusInternalServerError, output)
		}
		apilog.Errorf("Error fetching from explorer: %s", err)
		output[ERROR_INFO] = fmt.Sprintf("Failed to fetch transactions: %s", err)
		return c.JSON(http.StatusInternalServerError, output)
	}

	return c.JSONBlob(http.StatusOK, data)
}
