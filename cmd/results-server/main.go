package main

import (
	"context"
	"flag"
	"resultfetcher/internal/config"
	"resultfetcher/lib/serviceutil"
	"resultfetcher/lib/telemetry"
)

func main() {
	configPath := flag.String("config", "config.json5", "Path to the config file.")
	verbose := flag.Bool("v", false, "Enable debug logging.")
	flag.Parse()

	ctx, cancel := serviceutil.SignalContext()
	defer cancel()

	telemetry.InitSlog(*verbose)
	t, err := telemetry.SetupFromEnv(ctx, "results-server")
	if err != nil {
		serviceutil.Fatal("setup telemetry", err)
	}
	defer t.Shutdown(context.Background())

	cfg, err := config.Read(*configPath)
	if err != nil {
		serviceutil.Fatal("read config", err)
	}
	fetcher, err := cfg.NewFetcher(config.BuildOptions{})
	if err != nil {
		serviceutil.Fatal("create fetcher", err)
	}

	err = serviceutil.StartHttpServer(ctx, cfg.Server.Port, NewHandler(fetcher))
	if err != nil {
		serviceutil.Fatal("serve", err)
	}
}
