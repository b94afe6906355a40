// Package main provides the entry point to the program.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	logging "github.com/ipfs/go-log/v2"

	"github.com/huaguoyu/solpoold/api"
	"github.com/huaguoyu/solpoold/chain"
	"github.com/huaguoyu/solpoold/explorer"
	"github.com/huaguoyu/solpoold/utils/cli"
)

// GitCommit is set through ldflags at build time.
var GitCommit string

var (
	signalch chan os.Signal
	mainlog  = logging.Logger("main")
)

func mainRet(config cli.Config) int {
	ctx := context.Background()

	if err := logging.SetLogLevel("*", config.LogLevel); err != nil {
		fmt.Printf("Invalid log level %s: %s\n", config.LogLevel, err)
		return 1
	}

	rpcclient := chain.NewRPCClient(config.RPCEndpoint, config.UpstreamTimeout)
	pool := chain.NewTaskPool(config.PoolWorkers, config.PoolDepth)
	defer pool.Close()
	history := explorer.NewHTTPClient(config.ExplorerEndpoint, config.UpstreamTimeout)

	h := &api.Handler{
		Ctx:          ctx,
		Chain:        rpcclient,
		Pool:         pool,
		Explorer:     history,
		HistoryLimit: config.HistoryLimit,
		GitCommit:    GitCommit,
	}

	signalch = make(chan os.Signal, 1)
	go api.StartAPIServer(config, signalch, h)

	mainlog.Infof("Starting server at http://%s", config.APIListenAddresses)
	mainlog.Infof("Solana RPC endpoint: %s", config.RPCEndpoint)
	mainlog.Infof("Explorer endpoint: %s", config.ExplorerEndpoint)

	signal.Notify(signalch, os.Interrupt, syscall.SIGTERM)
	signalType := <-signalch
	signal.Stop(signalch)

	mainlog.Infof("On Signal <%s>, exit...", signalType.String())
	return 0
}

func main() {
	config, err := cli.ParseFlags()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	os.Exit(mainRet(config))
}
