// Package api provides the HTTP API for solpoold.
package api

import (
	"context"

	"github.com/huaguoyu/solpoold/chain"
	"github.com/huaguoyu/solpoold/explorer"
)

type (
	Handler struct {
		Ctx          context.Context
		Chain        chain.Client
		Pool         *chain.TaskPool
		Explorer     explorer.Client
		HistoryLimit int
		GitCommit    string
	}

	ErrorResponse struct {
		Error string `json:"error" validate:"required"`
	}
)
