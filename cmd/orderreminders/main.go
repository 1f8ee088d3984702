// Order-reminder job. Invoked on a schedule by an external cron; queries the
// API for pending orders placed within the reminder window and appends one
// line per order to the reminder log. Any failure exits non-zero so the
// invoker can alert.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"crm_api/internal/config"
	"crm_api/internal/domain/order"
	"crm_api/internal/infrastructure/http/crmclient"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fail(err)
	}

	clientCfg := cfg.Client
	clientCfg.MaxRetries = cfg.Jobs.ReminderRetries
	client := crmclient.NewClient(clientCfg)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	since := time.Now().UTC().AddDate(0, 0, -cfg.Jobs.ReminderWindowDays)

	reminders, err := client.RecentOrders(ctx, since, order.StatusPending)
	if err != nil {
		fail(err)
	}

	if err := writeReminders(cfg.Jobs.ReminderLogPath, reminders); err != nil {
		fail(err)
	}

	fmt.Println("Order reminders processed!")
}

func writeReminders(path string, reminders []crmclient.Reminder) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	stamp := time.Now().Format("2006-01-02 15:04:05")
	for _, rem := range reminders {
		line := fmt.Sprintf("%s - Reminder: Order %s for %s\n", stamp, rem.OrderID, rem.CustomerEmail)
		if _, err := f.WriteString(line); err != nil {
			return err
		}
	}
	return nil
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error processing reminders: %v\n", err)
	os.Exit(1)
}
