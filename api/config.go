// Package api provides the HTTP API for solpoold.
package api

//response field name
const (
	STATUS       string = "status"
	CURRENT_SLOT string = "current_slot"
	POOL_ID      string = "pool_id"
	LAMPORTS     string = "lamports"
	DATA_SIZE    string = "data_size"
	ADDRESS      string = "address"
	TOKEN_A      string = "token_a"
	TOKEN_B      string = "token_b"
)

//status value reported by /solana/status
const STATUS_CONNECTED string = "connected"

//error
const ERROR_INFO string = "error"
