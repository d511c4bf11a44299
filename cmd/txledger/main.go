package main

import (
	"TxLedger/internal/core"
	"TxLedger/internal/ingestion"
	"TxLedger/internal/observability"
	"TxLedger/internal/query"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Config holds all application configuration. Loaded from environment
// variables; the input path is the only positional argument.
type Config struct {
	// Logging
	LogLevel string

	// Metrics textfile; empty disables the export
	MetricsFile string
}

func DefaultConfig() Config {
	return Config{
		LogLevel:    envOrDefault("TXLEDGER_LOG_LEVEL", "info"),
		MetricsFile: envOrDefault("TXLEDGER_METRICS_FILE", ""),
	}
}

var errMissingInput = errors.New("missing input file")

func main() {
	cfg := DefaultConfig()
	logger := observability.NewLoggerTo(os.Stderr, "txledger", observability.ParseLogLevel(cfg.LogLevel)).
		With().
		Str("run_id", uuid.NewString()).
		Logger()

	if err := run(os.Args[1:], cfg, os.Stdout, logger); err != nil {
		logger.Fatal().Err(err).Msg("run failed")
	}
}

// run processes one input file and writes the account report to stdout.
// Malformed records and rejected transactions are logged and skipped.
func run(args []string, cfg Config, stdout io.Writer, logger zerolog.Logger) error {
	if len(args) < 1 || args[0] == "" {
		return errMissingInput
	}
	path := args[0]

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	metrics := observability.NewMetrics()
	engine := core.NewEngine(metrics)
	reader := ingestion.NewReader(f)

	logger.Info().Str("input", path).Msg("processing transactions")

	var malformed int64
	for {
		tx, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}

		var recErr *ingestion.RecordError
		if errors.As(err, &recErr) {
			malformed++
			metrics.RecordsMalformed.Inc()
			logger.Warn().Int("line", recErr.Line).Err(recErr.Err).Msg("skipping malformed record")
			continue
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		if err := engine.ProcessTransaction(tx); err != nil {
			var rej *core.RejectionError
			if !errors.As(err, &rej) {
				return err
			}
			logger.Debug().
				Uint32("tx", uint32(rej.Tx)).
				Uint16("client", uint16(rej.Client)).
				Str("type", rej.Type.String()).
				Str("reason", rej.Reason()).
				Msg("transaction rejected")
		}
	}

	if err := engine.CheckInvariants(); err != nil {
		return fmt.Errorf("invariant check: %w", err)
	}

	if err := query.WriteBalances(stdout, engine.Accounts()); err != nil {
		return err
	}

	if cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsFile); err != nil {
			// The report is already written; a failed export is not fatal.
			logger.Error().Err(err).Msg("metrics export failed")
		}
	}

	stats := engine.Stats()
	hash := engine.StateHash()
	logger.Info().
		Int64("applied", stats.Applied).
		Int64("rejected", stats.Rejected).
		Int64("malformed", malformed).
		Int("clients", stats.Clients).
		Int("locked_clients", stats.LockedClients).
		Str("state_hash", hex.EncodeToString(hash[:])).
		Msg("run complete")

	return nil
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}
