// Package api provides the HTTP API for solpoold.
package api

import (
	"fmt"
	"os"
	"strings"
	"syscall"

	logging "github.com/ipfs/go-log/v2"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/huaguoyu/solpoold/api/sd"
	"github.com/huaguoyu/solpoold/utils/cli"
)

var apilog = logging.Logger("api")

var quitch chan os.Signal

// StartAPIServer runs the gateway HTTP surface until the process exits.
func StartAPIServer(config cli.Config, signalch chan os.Signal, h *Handler) {
	quitch = signalch
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.CORSWithConfig(corsConfig(config)))

	r := e.Group("api")
	s := e.Group("sd")

	r.GET("/quit", quitapp)

	// Check sd info.
	s.GET("/health", sd.HealthCheck())
	s.GET("/disk", sd.DiskCheck())
	s.GET("/cpu", sd.CPUCheck())
	s.GET("/ram", sd.RAMCheck())
	s.GET("/host", sd.HostCheck())

	e.GET("/solana/status", h.GetSolanaStatus)
	e.GET("/pool/:pool_id", h.GetPoolInfo)
	e.GET("/token-pair/:token_a/:token_b", h.GetTokenPairInfo)
	e.GET("/transactions/:token", h.GetTokenTransactions)

	e.Logger.Fatal(e.Start(config.APIListenAddresses))
}

// corsConfig maps the flag allow-lists onto the middleware. An empty flag
// keeps the allow-everything behavior.
func corsConfig(config cli.Config) middleware.CORSConfig {
	cc := middleware.DefaultCORSConfig
	if config.CORSOrigins != "" {
		cc.AllowOrigins = splitList(config.CORSOrigins)
	}
	if config.CORSMethods != "" {
		cc.AllowMethods = splitList(config.CORSMethods)
	}
	if config.CORSHeaders != "" {
		cc.AllowHeaders = splitList(config.CORSHeaders)
	}
	return cc
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func quitapp(c echo.Context) (err error) {
	fmt.Println("/api/quit has been called, send Signal SIGNERM...")
	quitch <- syscall.SIGTERM
	return nil
}
