package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/fmansouri/pocketledger/internal/auth"
	"github.com/fmansouri/pocketledger/internal/common"
	"github.com/fmansouri/pocketledger/internal/config"
	"github.com/fmansouri/pocketledger/internal/ledger"
	"github.com/fmansouri/pocketledger/internal/netmon"
	"github.com/fmansouri/pocketledger/internal/service"
	"github.com/fmansouri/pocketledger/internal/storage"
	"github.com/spf13/viper"
)

// openKV opens the durable key-value store configured under data.path.
func openKV() (service.KVStore, error) {
	path := viper.GetString("data.path")
	if path == "" {
		path = config.DefaultDataPath()
	}
	kv, err := storage.NewSQLiteKV(config.ExpandPath(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger database: %w", err)
	}
	return kv, nil
}

// openLedger builds and hydrates the ledger store. The returned
// cleanup drains pending writes and closes the database.
func openLedger(ctx context.Context) (*ledger.Store, func(), error) {
	kv, err := openKV()
	if err != nil {
		return nil, nil, err
	}

	store := ledger.NewStore(kv)
	if err := store.Hydrate(ctx); err != nil {
		_ = kv.Close()
		return nil, nil, fmt.Errorf("failed to hydrate ledger: %w", err)
	}

	cleanup := func() {
		if err := store.Close(); err != nil {
			slog.Error("failed to close ledger store", "error", err)
		}
		if err := kv.Close(); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}
	return store, cleanup, nil
}

// openSession builds and hydrates the session client, probing the
// account server for reachability.
func openSession(ctx context.Context) (*auth.Client, func(), error) {
	baseURL := viper.GetString("api.base_url")
	if baseURL == "" {
		return nil, nil, common.NewUserError(
			"No account server configured. Set api.base_url or --api-url.",
			common.ErrMissingConfig)
	}

	kv, err := openKV()
	if err != nil {
		return nil, nil, err
	}

	interval := viper.GetDuration("network.probe_interval")
	if interval <= 0 {
		interval = 15 * time.Second
	}
	probe := netmon.NewProbe(baseURL, netmon.WithInterval(interval))

	client := auth.NewClient(baseURL, kv, probe)
	if err := client.Hydrate(ctx); err != nil {
		probe.Stop()
		_ = kv.Close()
		return nil, nil, fmt.Errorf("failed to restore session: %w", err)
	}

	cleanup := func() {
		if err := client.Close(); err != nil {
			slog.Error("failed to close session client", "error", err)
		}
		probe.Stop()
		if err := kv.Close(); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}
	return client, cleanup, nil
}

// confirm asks a yes/no question on stdin unless --yes was given.
func confirm(question string, assumeYes bool) bool {
	if assumeYes {
		return true
	}
	fmt.Printf("%s [y/N]: ", question)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// promptLine reads one line from stdin with a prompt, for values the
// user did not pass as flags.
func promptLine(prompt string) (string, error) {
	fmt.Printf("%s: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// formatAmount renders a currency amount for tables.
func formatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
