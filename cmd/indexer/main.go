package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"
	"github.com/tsenovilla/asset-hub-xcm-minimal-indexer/internal/extractor"
	"github.com/tsenovilla/asset-hub-xcm-minimal-indexer/internal/output"
	"github.com/tsenovilla/asset-hub-xcm-minimal-indexer/internal/worker"
	"github.com/tsenovilla/asset-hub-xcm-minimal-indexer/pkg/blockstore"
	"github.com/tsenovilla/asset-hub-xcm-minimal-indexer/pkg/chain"
	"github.com/tsenovilla/asset-hub-xcm-minimal-indexer/pkg/common/config"
	"github.com/tsenovilla/asset-hub-xcm-minimal-indexer/pkg/common/logger"
	"github.com/tsenovilla/asset-hub-xcm-minimal-indexer/pkg/events"
	"github.com/tsenovilla/asset-hub-xcm-minimal-indexer/pkg/retry"
)

var (
	configPath string
	outputPath string
	debug      bool
)

func main() {
	root := &cobra.Command{
		Use:   "xcm-indexer",
		Short: "Extract cross-chain asset transfers from Asset Hub blocks",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if debug {
				level = slog.LevelDebug
			}
			logger.Init(&logger.Options{Level: level, TimeFormat: time.RFC3339})
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/config.yaml", "Path to config file")
	root.PersistentFlags().StringVarP(&outputPath, "output", "o", "", "Write output to this file instead of the configured destination")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logs")

	root.AddCommand(newExtractCmd(), newSubscribeCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() *config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Warn("Config file not found, using defaults", "path", configPath)
			return config.Default()
		}
		logger.Fatal("Load config failed", "error", err)
	}
	if outputPath != "" {
		cfg.Output.Path = outputPath
	}
	return cfg
}

func newExtractor(cfg *config.Config) *extractor.Extractor {
	return extractor.New(extractor.WithNativeToken(cfg.NativeToken.Symbol, cfg.NativeToken.Decimals))
}

// newExtractCmd builds the single-query mode: one decoded block document
// in, one JSON array of transfers out.
func newExtractCmd() *cobra.Command {
	var blockFile string

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract all xcm transfers from one decoded block document",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()

			data, err := os.ReadFile(blockFile)
			if err != nil {
				return fmt.Errorf("read block document: %w", err)
			}
			var doc chain.BlockDocument
			if err := json.Unmarshal(data, &doc); err != nil {
				return fmt.Errorf("decode block document: %w", err)
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			transfers, err := newExtractor(cfg).ExtractBlock(ctx, &doc.Block, doc.Storage())
			if err != nil {
				return fmt.Errorf("extract block %d: %w", doc.Number, err)
			}

			writer, err := output.NewWriter(cfg.Output.Path, false)
			if err != nil {
				return err
			}
			return writer.WriteTransfers(transfers)
		},
	}
	cmd.Flags().StringVarP(&blockFile, "block-file", "b", "", "Path to the decoded block document")
	_ = cmd.MarkFlagRequired("block-file")
	return cmd
}

// newSubscribeCmd builds subscribe mode: per finalized block document
// published on the block subject, append one JSON array of transfers (or
// nothing, if the block has none).
func newSubscribeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "subscribe",
		Short: "Follow finalized blocks and extract their xcm transfers",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()

			var conn *nats.Conn
			err := retry.Constant(func() error {
				var err error
				conn, err = nats.Connect(cfg.NATS.URL)
				return err
			}, retry.DefaultMaxAttempts, retry.DefaultInterval)
			if err != nil {
				return fmt.Errorf("connect to NATS: %w", err)
			}
			defer conn.Close()

			cursor, err := blockstore.Open(cfg.Storage.DataDir)
			if err != nil {
				return err
			}
			defer cursor.Close()

			writer, err := output.NewWriter(cfg.Output.Path, true)
			if err != nil {
				return err
			}

			var emitter *events.Emitter
			if cfg.NATS.TransferSubject != "" {
				emitter = events.NewEmitter(conn, cfg.NATS.TransferSubject)
			}

			w := worker.New(newExtractor(cfg), cursor, writer, emitter, conn, cfg.NATS.BlockSubject)
			if err := w.Start(); err != nil {
				return fmt.Errorf("start worker: %w", err)
			}

			logger.Info("Indexer is running... Press Ctrl+C to stop")
			waitForShutdown()
			w.Stop()
			return nil
		},
	}
}

func waitForShutdown() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
}
