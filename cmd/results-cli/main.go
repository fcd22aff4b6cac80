package main

import (
	"context"
	"resultfetcher/cmd/results-cli/commands"
	"resultfetcher/lib/serviceutil"
	"resultfetcher/lib/telemetry"
)

func main() {
	ctx, cancel := serviceutil.SignalContext()
	defer cancel()

	t, err := telemetry.SetupFromEnv(ctx, "results-cli")
	if err != nil {
		serviceutil.Fatal("setup telemetry", err)
	}
	defer t.Shutdown(context.Background())

	commands.ExecuteContext(ctx)
}
