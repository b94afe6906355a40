// Package cli provides the process configuration flags.
package cli

import (
	"flag"
	"fmt"
	"time"
)

type Config struct {
	APIListenAddresses string
	RPCEndpoint        string
	ExplorerEndpoint   string
	UpstreamTimeout    time.Duration
	HistoryLimit       int
	PoolWorkers        int
	PoolDepth          int
	CORSOrigins        string
	CORSMethods        string
	CORSHeaders        string
	LogLevel           string
}

func ParseFlags() (Config, error) {
	config := Config{}
	flag.StringVar(&config.APIListenAddresses, "apilisten", "127.0.0.1:3000", "api server listen address")
	flag.StringVar(&config.RPCEndpoint, "rpcendpoint", "https://api.mainnet-beta.solana.com", "solana rpc endpoint")
	flag.StringVar(&config.ExplorerEndpoint, "explorerendpoint", "https://public-api.solscan.io", "block explorer api endpoint")
	flag.DurationVar(&config.UpstreamTimeout, "upstreamtimeout", 30*time.Second, "timeout for upstream calls")
	flag.IntVar(&config.HistoryLimit, "historylimit", 50, "max transfer records fetched per history request")
	flag.IntVar(&config.PoolWorkers, "poolworkers", 16, "rpc dispatch pool workers")
	flag.IntVar(&config.PoolDepth, "pooldepth", 64, "rpc dispatch pool queue depth")
	flag.StringVar(&config.CORSOrigins, "corsorigins", "", "comma separated allowed CORS origins, empty for any")
	flag.StringVar(&config.CORSMethods, "corsmethods", "", "comma separated allowed CORS methods, empty for any")
	flag.StringVar(&config.CORSHeaders, "corsheaders", "", "comma separated allowed CORS headers, empty for any")
	flag.StringVar(&config.LogLevel, "loglevel", "info", "log level")
	flag.Parse()

	if config.HistoryLimit <= 0 {
		return config, fmt.Errorf("historylimit must be positive, got %d", config.HistoryLimit)
	}
	if config.UpstreamTimeout <= 0 {
		return config, fmt.Errorf("upstreamtimeout must be positive, got %s", config.UpstreamTimeout)
	}
	return config, nil
}
