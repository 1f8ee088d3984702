// Heartbeat job. Invoked on a schedule by an external cron; appends a
// timestamped liveness line to the heartbeat log, then probes the API's hello
// query. A failed probe degrades to a logged line, never a non-zero exit.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"crm_api/internal/config"
	"crm_api/internal/infrastructure/http/crmclient"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config failed: %v\n", err)
		os.Exit(1)
	}

	stamp := time.Now().Format("02/01/2006-15:04:05")

	if err := appendLine(cfg.Jobs.HeartbeatLogPath, stamp+" CRM is alive"); err != nil {
		fmt.Fprintf(os.Stderr, "write heartbeat log: %v\n", err)
		os.Exit(1)
	}

	clientCfg := cfg.Client
	clientCfg.MaxRetries = cfg.Jobs.HeartbeatRetries
	client := crmclient.NewClient(clientCfg)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	hello, err := client.Hello(ctx)
	if err != nil {
		// Degraded, not fatal: record the failure and keep the heartbeat.
		_ = appendLine(cfg.Jobs.HeartbeatLogPath, fmt.Sprintf("%s API check failed: %v", stamp, err))
		return
	}

	_ = appendLine(cfg.Jobs.HeartbeatLogPath, fmt.Sprintf("%s API hello: %s", stamp, hello))
}

func appendLine(path, line string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.WriteString(line + "\n")
	return err
}
